package handlers

import (
	"net/http"

	"github.com/veltmach/procboard/internal/session"
	"github.com/veltmach/procboard/internal/views"
)

// listPartners renders the partner list tab
func (r *Router) listPartners(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	partners, err := r.api.ListPartners(req.Context(), sess.Token)
	if err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	r.views.render(w, http.StatusOK, "partners.html", page{
		Title:     "Partners",
		ActiveTab: "partners",
		Data:      views.BuildPartnerList(partners),
	})
}

// notificationsPage renders the alert panel; the websocket keeps it fresh
// afterwards
func (r *Router) notificationsPage(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	notifications, err := r.api.GetNotifications(req.Context(), sess.Token)
	if err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	r.views.render(w, http.StatusOK, "notifications.html", page{
		Title:     "Alerts",
		ActiveTab: "notifications",
		Data:      views.BuildNotificationPanel(notifications),
	})
}
