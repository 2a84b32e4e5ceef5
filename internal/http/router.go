package http

import (
	"context"
	"net/http"
	"strings"
)

// RouterConfig wires handlers and middleware into the HTTP mux.
type RouterConfig struct {
	Agent      *AgentHandler
	Meetings   *MeetingHandler
	Users      *UserHandler
	Health     func(ctx context.Context) error
	Middleware []func(http.Handler) http.Handler
}

// NewRouter builds the API surface:
//
//   - POST /agent/message: one conversational turn
//   - POST /agent/confirm: commit the pending proposal
//   - POST /agent/cancel: discard the pending proposal
//   - GET /meetings, GET /meetings/export, GET /meetings/{id}
//   - GET /users, POST /users, GET /users/{id}, PUT /users/{id}
//   - GET /healthz
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Agent != nil {
		mux.HandleFunc("/agent/message", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Agent.Message(w, r)
		})
		mux.HandleFunc("/agent/confirm", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Agent.Confirm(w, r)
		})
		mux.HandleFunc("/agent/cancel", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Agent.Cancel(w, r)
		})
	}

	if cfg.Meetings != nil {
		mux.HandleFunc("/meetings", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Meetings.List(w, r)
		})
		mux.HandleFunc("/meetings/export", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Meetings.Export(w, r)
		})
		mux.HandleFunc("/meetings/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/meetings/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			r = r.WithContext(ContextWithPathID(r.Context(), id))
			cfg.Meetings.Get(w, r)
		})
	}

	if cfg.Users != nil {
		mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Users.List(w, r)
			case http.MethodPost:
				cfg.Users.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/users/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithPathID(r.Context(), id))
			switch r.Method {
			case http.MethodGet:
				cfg.Users.Get(w, r)
			case http.MethodPut:
				cfg.Users.Update(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut)
			}
		})
	}

	if cfg.Health != nil {
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			if err := cfg.Health(r.Context()); err != nil {
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		})
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
