package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/patterns/pkg/binding"
	"github.com/vango-dev/patterns/pkg/loop"
)

// Frame is a message pushed to a live client.
type Frame struct {
	// Type is "hello" for the first frame, then "render".
	Type string `json:"type"`

	// Session is the session id, sent with hello.
	Session string `json:"session,omitempty"`

	Title   string `json:"title,omitempty"`
	Status  int    `json:"status,omitempty"`
	Pending bool   `json:"pending"`
	HTML    string `json:"html,omitempty"`
}

// handleLive upgrades the connection and runs a session for the page at
// ?path= until the client goes away.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	v, ok := resolve(path)
	if !ok {
		http.Error(w, "unknown page path", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.WebSocketError("upgrade")
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := s.newSession(r.Context(), conn, path, v)
	sess.start()
	sess.readLoop()
}

// session is one live connection.
type session struct {
	id   string
	path string
	view view

	conn   *websocket.Conn
	loop   *loop.Loop
	scope  *binding.Scope
	ctx    context.Context
	cancel context.CancelFunc

	// writeMu serializes data frames; pings use WriteControl.
	writeMu sync.Mutex
	queued  atomic.Bool
	last    Frame

	closeOnce sync.Once
	done      chan struct{}

	server *Server
	logger *slog.Logger
}

func (s *Server) newSession(parent context.Context, conn *websocket.Conn, path string, v view) *session {
	id := uuid.NewString()
	logger := s.logger.With("session_id", id, "path", path)

	// Detached from request cancellation. Values such as the trace span
	// stay attached.
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))

	sess := &session{
		id:     id,
		path:   path,
		view:   v,
		conn:   conn,
		loop:   loop.New(logger),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		server: s,
		logger: logger,
	}
	sess.scope = binding.NewScope(sess.invalidate, binding.WithLogger(logger))
	return sess
}

// start registers the session and launches its loop and heartbeat.
func (sess *session) start() {
	s := sess.server
	s.sessions.add(sess)
	s.metrics.SessionOpened()
	sess.logger.Info("live session opened")

	go func() {
		if err := sess.loop.Run(sess.ctx); err != nil && !errors.Is(err, loop.ErrClosed) && !errors.Is(err, context.Canceled) {
			sess.logger.Warn("session loop stopped", "error", err)
		}
	}()
	go sess.heartbeat()

	sess.send(Frame{Type: "hello", Session: sess.id, Pending: true})
	sess.invalidate()
}

// invalidate schedules one render on the session loop. Calls made while
// a render is already queued coalesce.
func (sess *session) invalidate() {
	if !sess.queued.CompareAndSwap(false, true) {
		return
	}
	if !sess.loop.Dispatch(sess.render) {
		sess.queued.Store(false)
	}
}

// render runs on the session loop.
func (sess *session) render() {
	sess.queued.Store(false)
	if sess.scope.Disposed() {
		return
	}

	env := sess.server.env()
	env.Dispatcher = sess.loop
	env.Logger = sess.logger

	sess.scope.Begin()
	p := sess.view(sess.ctx, sess.scope, env)

	html, err := sess.server.renderer.RenderToString(p.Body)
	if err != nil {
		sess.logger.Error("live render failed", "error", err)
		return
	}
	f := Frame{
		Type:    "render",
		Title:   p.Title,
		Status:  p.Status,
		Pending: p.Pending,
		HTML:    html,
	}
	if f == sess.last {
		return
	}
	sess.last = f

	sess.send(f)
}

// send writes a frame. Failures close the session.
func (sess *session) send(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		sess.logger.Error("frame encode failed", "error", err)
		return
	}

	sess.writeMu.Lock()
	sess.conn.SetWriteDeadline(time.Now().Add(sess.server.config.WriteTimeout))
	err = sess.conn.WriteMessage(websocket.TextMessage, data)
	sess.writeMu.Unlock()

	if err != nil {
		sess.server.metrics.WebSocketError("write")
		sess.logger.Debug("write failed", "error", err)
		sess.close()
		return
	}
	if f.Type == "render" {
		sess.server.metrics.FrameSent()
	}
}

// readLoop drains client messages until the connection fails. Pongs push
// the read deadline forward.
func (sess *session) readLoop() {
	defer sess.close()

	wait := 2 * sess.server.config.HeartbeatInterval
	sess.conn.SetReadLimit(4096)
	sess.conn.SetReadDeadline(time.Now().Add(wait))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(wait))
	})

	for {
		if _, _, err := sess.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				sess.server.metrics.WebSocketError("read")
				sess.logger.Error("read error", "error", err)
			}
			return
		}
	}
}

// heartbeat sends pings until the session closes.
func (sess *session) heartbeat() {
	ticker := time.NewTicker(sess.server.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(sess.server.config.WriteTimeout)
			if err := sess.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				sess.server.metrics.WebSocketError("ping")
				sess.close()
				return
			}

		case <-sess.done:
			return
		}
	}
}

// close tears the session down once: the scope is disposed, cancelling
// every bound loadable, then the loop and connection are closed.
func (sess *session) close() {
	sess.closeOnce.Do(func() {
		close(sess.done)
		sess.scope.Dispose()
		sess.cancel()
		sess.loop.Close()

		sess.writeMu.Lock()
		sess.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		sess.conn.Close()
		sess.writeMu.Unlock()

		sess.server.sessions.remove(sess.id)
		sess.server.metrics.SessionClosed()
		sess.logger.Info("live session closed")
	})
}

// Done is closed once the session has been torn down.
func (sess *session) Done() <-chan struct{} {
	return sess.done
}

// sessionRegistry tracks open sessions.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session)}
}

func (r *sessionRegistry) add(sess *session) {
	r.mu.Lock()
	r.sessions[sess.id] = sess
	r.mu.Unlock()
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *sessionRegistry) get(id string) *session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

func (r *sessionRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// closeAll closes every session concurrently and returns how many there
// were.
func (r *sessionRegistry) closeAll() int {
	r.mu.RLock()
	sessions := make([]*session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		sessions = append(sessions, sess)
	}
	r.mu.RUnlock()

	var wg sync.WaitGroup
	for _, sess := range sessions {
		wg.Add(1)
		go func(sess *session) {
			defer wg.Done()
			sess.close()
		}(sess)
	}
	wg.Wait()
	return len(sessions)
}
