// Package server serves the pattern catalog over HTTP.
//
// Pages are rendered on the server from the same views the terminal
// browser uses. A request render binds its loadables to a fresh scope,
// waits up to RenderTimeout for them to settle and renders again. A page
// that is still loading ships with a small deferred script that opens a live
// session on /live.
//
// # Live sessions
//
// Each websocket connection owns a session:
//
//   - a loop.Loop on which every loadable continuation and render runs
//   - a binding.Scope whose refresh schedules a render on that loop
//   - a heartbeat goroutine sending pings
//
// Every render that changes the markup is pushed as a JSON text frame:
//
//	{"type":"render","title":"...","status":200,"pending":false,"html":"<div id=\"app\">..."}
//
// When the connection ends the scope is disposed exactly once, which
// unwatches and cancels every bound loadable.
//
// # Routes
//
//	GET /                  home page
//	GET /pattern/{id}      pattern detail, 404 for unknown ids
//	GET /api/patterns      JSON list, optional ?category=
//	GET /api/patterns/{id} JSON pattern
//	GET /live?path=        live session for a page path
//	GET /assets/{name}     fingerprinted stylesheet and live script
//	GET /healthz           liveness
//	GET /metrics           Prometheus, when enabled
package server
