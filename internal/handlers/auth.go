package handlers

import (
	"errors"
	"net/http"

	"github.com/veltmach/procboard/internal/upstream"
)

// loginPageData is the data for the login surface
type loginPageData struct {
	Error string
}

// loginPage shows the login surface. Already-authenticated sessions go
// straight into the app.
func (r *Router) loginPage(w http.ResponseWriter, req *http.Request) {
	if _, ok := r.sessions.Resolve(req); ok {
		http.Redirect(w, req, "/requests", http.StatusSeeOther)
		return
	}
	r.views.render(w, http.StatusOK, "login.html", page{Title: "Sign in", Data: loginPageData{}})
}

// loginSubmit exchanges the submitted credentials for an upstream bearer
// token and opens a session
func (r *Router) loginSubmit(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		r.views.render(w, http.StatusBadRequest, "login.html",
			page{Title: "Sign in", Data: loginPageData{Error: "Invalid form submission"}})
		return
	}

	username := req.PostFormValue("username")
	password := req.PostFormValue("password")
	if username == "" || password == "" {
		r.views.render(w, http.StatusBadRequest, "login.html",
			page{Title: "Sign in", Data: loginPageData{Error: "Username and password are required"}})
		return
	}

	token, err := r.api.Login(req.Context(), username, password)
	if err != nil {
		message := "Login failed"
		if errors.Is(err, upstream.ErrUnauthorized) {
			message = "Invalid credentials"
		} else {
			var apiErr *upstream.APIError
			if errors.As(err, &apiErr) {
				message = apiErr.Detail
			}
		}
		r.views.render(w, http.StatusUnauthorized, "login.html",
			page{Title: "Sign in", Data: loginPageData{Error: message}})
		return
	}

	if err := r.sessions.Issue(req.Context(), w, token); err != nil {
		r.views.render(w, http.StatusInternalServerError, "login.html",
			page{Title: "Sign in", Data: loginPageData{Error: "Could not open a session"}})
		return
	}

	http.Redirect(w, req, "/requests", http.StatusSeeOther)
}
