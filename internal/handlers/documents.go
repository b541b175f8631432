package handlers

import (
	"fmt"
	"net/http"

	"github.com/veltmach/procboard/internal/session"
)

// maxUploadBytes caps in-memory parsing of document uploads
const maxUploadBytes = 32 << 20

// uploadDocument proxies a multipart document upload for a request, then
// returns to the refreshed detail panel
func (r *Router) uploadDocument(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	id, err := pathID(req)
	if err != nil {
		r.failLocal(w, req, "Invalid request ID")
		return
	}

	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		r.failLocal(w, req, "Invalid upload submission")
		return
	}

	docType := req.PostFormValue("doc_type")
	if docType == "" {
		r.failLocal(w, req, "Document type is required")
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		// Caught before any upstream call.
		r.failLocal(w, req, "Select a file")
		return
	}
	defer file.Close()

	if err := r.api.UploadDocument(req.Context(), sess.Token, id, docType, header.Filename, file); err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	http.Redirect(w, req, fmt.Sprintf("/requests/%d", id), http.StatusSeeOther)
}

// downloadDocument proxies a document download from the upstream API
func (r *Router) downloadDocument(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	id, err := pathID(req)
	if err != nil {
		r.failLocal(w, req, "Invalid document ID")
		return
	}

	file, err := r.api.DownloadDocument(req.Context(), sess.Token, id)
	if err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	if file.ContentType != "" {
		w.Header().Set("Content-Type", file.ContentType)
	}
	if file.Disposition != "" {
		w.Header().Set("Content-Disposition", file.Disposition)
	}
	w.Write(file.Body)
}
