package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/veltmach/procboard/internal/session"
	"github.com/veltmach/procboard/internal/upstream"
	"github.com/veltmach/procboard/web"
)

// renderer executes the embedded page templates
type renderer struct {
	tmpl *template.Template
}

func newRenderer() (*renderer, error) {
	fsys, err := web.Templates()
	if err != nil {
		return nil, err
	}
	tmpl, err := template.ParseFS(fsys, "*.html")
	if err != nil {
		return nil, err
	}
	return &renderer{tmpl: tmpl}, nil
}

// page is the envelope every template receives
type page struct {
	Title     string
	ActiveTab string
	Data      interface{}
}

func (v *renderer) render(w http.ResponseWriter, status int, name string, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := v.tmpl.ExecuteTemplate(w, name, p); err != nil {
		log.Printf("Template %s failed: %v", name, err)
	}
}

// errorPage is the data for the blocking error surface
type errorPage struct {
	Detail string
	Back   string
}

// failUpstream maps an upstream error onto the UI: 401 surfaces the login
// page and discards the response, everything else becomes a blocking error
// page carrying the server detail text. No retry in either case.
func (r *Router) failUpstream(w http.ResponseWriter, req *http.Request, sess *session.Session, err error) {
	if errors.Is(err, upstream.ErrUnauthorized) {
		r.sessions.Expire(req.Context(), w, sess.SID)
		http.Redirect(w, req, "/login", http.StatusSeeOther)
		return
	}

	detail := "Request failed"
	status := http.StatusBadGateway
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		detail = apiErr.Detail
		if apiErr.Status >= 400 {
			status = apiErr.Status
		}
	}
	log.Printf("Upstream call failed: %v", err)

	r.views.render(w, status, "error.html", page{
		Title: "Error",
		Data:  errorPage{Detail: detail, Back: backTarget(req)},
	})
}

// failLocal reports a validation failure caught before any upstream call
func (r *Router) failLocal(w http.ResponseWriter, req *http.Request, message string) {
	r.views.render(w, http.StatusBadRequest, "error.html", page{
		Title: "Error",
		Data:  errorPage{Detail: message, Back: backTarget(req)},
	})
}

func backTarget(req *http.Request) string {
	if ref := req.Referer(); ref != "" {
		return ref
	}
	return "/requests"
}

// staticHandler serves the embedded static assets
func staticHandler() http.Handler {
	fsys, err := web.Static()
	if err != nil {
		log.Printf("Static assets unavailable: %v", err)
		return http.NotFoundHandler()
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(fsys)))
}
