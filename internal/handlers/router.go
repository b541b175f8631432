package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/veltmach/procboard/internal/session"
	"github.com/veltmach/procboard/internal/upstream"
	"github.com/veltmach/procboard/internal/websocket"
)

// Router wraps the mux router, the upstream client and the session manager
type Router struct {
	*mux.Router
	api      *upstream.Client
	sessions *session.Manager
	hub      *websocket.Hub
	views    *renderer
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(api *upstream.Client, sessions *session.Manager, hub *websocket.Hub) (*Router, error) {
	views, err := newRenderer()
	if err != nil {
		return nil, err
	}

	r := &Router{
		Router:   mux.NewRouter(),
		api:      api,
		sessions: sessions,
		hub:      hub,
		views:    views,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	r.HandleFunc("/login", r.loginPage).Methods("GET")
	r.HandleFunc("/login", r.loginSubmit).Methods("POST")

	// Tab routes (each navigation re-fetches; nothing is cached)
	r.HandleFunc("/", r.root).Methods("GET")
	r.HandleFunc("/requests", r.withSession(r.listRequests)).Methods("GET")
	r.HandleFunc("/requests", r.withSession(r.createRequest)).Methods("POST")
	r.HandleFunc("/kanban", r.withSession(r.kanbanBoard)).Methods("GET")
	r.HandleFunc("/machines", r.withSession(r.listMachines)).Methods("GET")
	r.HandleFunc("/machines", r.withSession(r.createMachine)).Methods("POST")
	r.HandleFunc("/partners", r.withSession(r.listPartners)).Methods("GET")
	r.HandleFunc("/notifications", r.withSession(r.notificationsPage)).Methods("GET")

	// Request detail and actions
	r.HandleFunc("/requests/{id:[0-9]+}", r.withSession(r.viewRequest)).Methods("GET")
	r.HandleFunc("/requests/{id:[0-9]+}/select-quote", r.withSession(r.selectQuote)).Methods("POST")
	r.HandleFunc("/requests/{id:[0-9]+}/contract", r.withSession(r.updateContract)).Methods("POST")
	r.HandleFunc("/requests/{id:[0-9]+}/accept", r.withSession(r.completeAcceptance)).Methods("POST")
	r.HandleFunc("/requests/{id:[0-9]+}/documents", r.withSession(r.uploadDocument)).Methods("POST")
	r.HandleFunc("/requests/{id:[0-9]+}/timeline", r.withSession(r.requestTimeline)).Methods("GET")
	r.HandleFunc("/requests/{id:[0-9]+}/summary.pdf", r.withSession(r.requestSummaryPDF)).Methods("GET")

	// Machine detail and actions
	r.HandleFunc("/machines/{id:[0-9]+}", r.withSession(r.viewMachine)).Methods("GET")
	r.HandleFunc("/machines/{id:[0-9]+}/maintenance", r.withSession(r.addMaintenance)).Methods("POST")
	r.HandleFunc("/machines/{id:[0-9]+}/label.pdf", r.withSession(r.machineLabelPDF)).Methods("GET")

	// Document download proxy
	r.HandleFunc("/documents/{id:[0-9]+}/download", r.withSession(r.downloadDocument)).Methods("GET")

	// Live notification push
	r.HandleFunc("/ws", r.withSession(r.serveWs)).Methods("GET")

	// Static assets
	r.PathPrefix("/static/").Handler(staticHandler())

	return r, nil
}

// sessionHandler is a handler that requires an authenticated session
type sessionHandler func(w http.ResponseWriter, req *http.Request, sess *session.Session)

// withSession resolves the session cookie and redirects to the login surface
// when no credential is present
func (r *Router) withSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		sess, ok := r.sessions.Resolve(req)
		if !ok {
			http.Redirect(w, req, "/login", http.StatusSeeOther)
			return
		}
		next(w, req, sess)
	}
}

// root lands authenticated users on the request list
func (r *Router) root(w http.ResponseWriter, req *http.Request) {
	if _, ok := r.sessions.Resolve(req); !ok {
		http.Redirect(w, req, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, req, "/requests", http.StatusSeeOther)
}

// healthCheck returns the health status of the dashboard
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// serveWs upgrades the connection for notification push
func (r *Router) serveWs(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	websocket.ServeWs(r.hub, w, req, sess.SID)
}
