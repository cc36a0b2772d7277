package server

import (
	"bytes"
	"context"
	"net/http"

	"github.com/vango-dev/patterns/internal/errors"
	"github.com/vango-dev/patterns/pkg/binding"
	"github.com/vango-dev/patterns/pkg/render"
	"github.com/vango-dev/patterns/pkg/routepath"
	"github.com/vango-dev/patterns/pkg/views"
)

// view renders one page against a scope.
type view func(ctx context.Context, s *binding.Scope, env views.Env) views.Page

func homeView(ctx context.Context, s *binding.Scope, env views.Env) views.Page {
	return views.Home(ctx, s, env)
}

func detailView(id string) view {
	return func(ctx context.Context, s *binding.Scope, env views.Env) views.Page {
		return views.Detail(ctx, s, env, id)
	}
}

// resolve maps a page path to its view.
func resolve(path string) (view, bool) {
	canonical, err := routepath.Validate(path)
	if err != nil {
		return nil, false
	}
	segs, err := routepath.Segments(canonical)
	if err != nil {
		return nil, false
	}

	switch {
	case len(segs) == 0:
		return homeView, true
	case len(segs) == 2 && segs[0] == "pattern":
		return detailView(segs[1]), true
	}
	return nil, false
}

// liveScript attaches a pending page to /live and swaps in each frame.
const liveScript = `(function(){
var proto = location.protocol === "https:" ? "wss:" : "ws:";
var ws = new WebSocket(proto + "//" + location.host + "/live?path=" + encodeURIComponent(location.pathname));
ws.onmessage = function(e) {
  var f = JSON.parse(e.data);
  if (f.type !== "render") return;
  var root = document.getElementById("` + views.RootID + `");
  if (root) root.outerHTML = f.html;
  document.title = f.title;
  if (!f.pending) ws.close();
};
})();`

// page renders v for one request. The first pass starts the loads; if
// any are pending the render waits up to RenderTimeout and runs again.
func (s *Server) page(v view) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		scope := binding.NewScope(nil, binding.WithLogger(s.logger))
		defer scope.Dispose()

		env := s.env()
		scope.Begin()
		p := v(ctx, scope, env)

		if p.Pending && s.config.RenderTimeout > 0 {
			waitCtx, cancel := context.WithTimeout(ctx, s.config.RenderTimeout)
			err := scope.Wait(waitCtx)
			cancel()
			if err != nil {
				s.logger.Debug("render timeout, shipping loading state", "path", r.URL.Path)
			}
			scope.Begin()
			p = v(ctx, scope, env)
		}

		s.write(w, r, p)
	}
}

// write renders p as a full document.
func (s *Server) write(w http.ResponseWriter, r *http.Request, p views.Page) {
	data := render.PageData{
		Title:       p.Title,
		Body:        p.Body,
		Stylesheets: []string{s.assets.Asset("style.css")},
	}
	if p.Pending && s.config.Live {
		data.ScriptURLs = []string{s.assets.Asset("live.js")}
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderPage(&buf, data); err != nil {
		s.logger.Error("render failed", "path", r.URL.Path, "error", errors.New("P040").Wrap(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	status := p.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
