package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/veltmach/procboard/internal/services/printer"
	"github.com/veltmach/procboard/internal/session"
	"github.com/veltmach/procboard/internal/upstream"
	"github.com/veltmach/procboard/internal/views"
)

// pathID extracts the numeric {id} path variable
func pathID(req *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
}

// listRequests renders the request list tab
func (r *Router) listRequests(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	requests, err := r.api.ListRequests(req.Context(), sess.Token)
	if err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	r.views.render(w, http.StatusOK, "requests.html", page{
		Title:     "Requests",
		ActiveTab: "requests",
		Data:      views.BuildRequestList(requests),
	})
}

// kanbanBoard renders the per-stage board of all requests
func (r *Router) kanbanBoard(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	requests, err := r.api.ListRequests(req.Context(), sess.Token)
	if err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	r.views.render(w, http.StatusOK, "kanban.html", page{
		Title:     "Board",
		ActiveTab: "kanban",
		Data:      views.BuildKanban(requests),
	})
}

// viewRequest renders the flow-control panel for one request. The stage
// position is always derived from the freshly fetched status.
func (r *Router) viewRequest(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	id, err := pathID(req)
	if err != nil {
		r.failLocal(w, req, "Invalid request ID")
		return
	}

	request, err := r.api.GetRequest(req.Context(), sess.Token, id)
	if err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	r.views.render(w, http.StatusOK, "request_detail.html", page{
		Title:     fmt.Sprintf("Request #%d", id),
		ActiveTab: "requests",
		Data:      views.BuildRequestDetail(request),
	})
}

// createRequest handles the new-request form, then returns to the fresh list
func (r *Router) createRequest(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	if err := req.ParseForm(); err != nil {
		r.failLocal(w, req, "Invalid form submission")
		return
	}

	clientID := req.PostFormValue("client_id")
	description := req.PostFormValue("description")
	if clientID == "" {
		r.failLocal(w, req, "Client is required")
		return
	}

	_, err := r.api.CreateRequest(req.Context(), sess.Token, upstream.CreateRequestInput{
		ClientID:    clientID,
		Description: description,
	})
	if err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	http.Redirect(w, req, "/requests", http.StatusSeeOther)
}

// selectQuote marks a quote as selected, then re-renders the detail panel
func (r *Router) selectQuote(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	id, err := pathID(req)
	if err != nil {
		r.failLocal(w, req, "Invalid request ID")
		return
	}
	quoteID, err := strconv.ParseInt(req.FormValue("quote_id"), 10, 64)
	if err != nil {
		r.failLocal(w, req, "Invalid quote ID")
		return
	}

	if err := r.api.SelectQuote(req.Context(), sess.Token, id, quoteID); err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	http.Redirect(w, req, fmt.Sprintf("/requests/%d", id), http.StatusSeeOther)
}

// updateContract updates contract details. Blank inputs go upstream as
// null, never as empty strings.
func (r *Router) updateContract(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	id, err := pathID(req)
	if err != nil {
		r.failLocal(w, req, "Invalid request ID")
		return
	}
	if err := req.ParseForm(); err != nil {
		r.failLocal(w, req, "Invalid form submission")
		return
	}

	var input upstream.ContractDetailsInput
	if expiration := req.PostFormValue("contract_expiration"); expiration != "" {
		input.ContractExpiration = &expiration
	}
	if monthText := req.PostFormValue("adjustment_month"); monthText != "" {
		month, err := strconv.Atoi(monthText)
		if err != nil || month < 1 || month > 12 {
			r.failLocal(w, req, "Adjustment month must be between 1 and 12")
			return
		}
		input.AdjustmentMonth = &month
	}

	if err := r.api.UpdateContractDetails(req.Context(), sess.Token, id, input); err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	http.Redirect(w, req, fmt.Sprintf("/requests/%d", id), http.StatusSeeOther)
}

// completeAcceptance triggers the terminal-stage transition
func (r *Router) completeAcceptance(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	id, err := pathID(req)
	if err != nil {
		r.failLocal(w, req, "Invalid request ID")
		return
	}

	if err := r.api.CompleteTechnicalAcceptance(req.Context(), sess.Token, id); err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	http.Redirect(w, req, fmt.Sprintf("/requests/%d", id), http.StatusSeeOther)
}

// requestTimeline renders the audit log of a request
func (r *Router) requestTimeline(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	id, err := pathID(req)
	if err != nil {
		r.failLocal(w, req, "Invalid request ID")
		return
	}

	entries, err := r.api.GetTimeline(req.Context(), sess.Token, id)
	if err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	data := struct {
		RequestID int64
		Timeline  views.TimelineView
	}{RequestID: id, Timeline: views.BuildTimeline(entries)}

	r.views.render(w, http.StatusOK, "timeline.html", page{
		Title:     fmt.Sprintf("Timeline #%d", id),
		ActiveTab: "requests",
		Data:      data,
	})
}

// requestSummaryPDF streams a printable one-page summary
func (r *Router) requestSummaryPDF(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	id, err := pathID(req)
	if err != nil {
		r.failLocal(w, req, "Invalid request ID")
		return
	}

	request, err := r.api.GetRequest(req.Context(), sess.Token, id)
	if err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	pdfBytes, err := printer.GenerateRequestSummary(request)
	if err != nil {
		r.failLocal(w, req, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"request_%d.pdf\"", id))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}
