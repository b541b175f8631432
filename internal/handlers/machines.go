package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/veltmach/procboard/internal/services/printer"
	"github.com/veltmach/procboard/internal/session"
	"github.com/veltmach/procboard/internal/upstream"
	"github.com/veltmach/procboard/internal/views"
)

// listMachines renders the machine list tab
func (r *Router) listMachines(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	machines, err := r.api.ListMachines(req.Context(), sess.Token)
	if err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	r.views.render(w, http.StatusOK, "machines.html", page{
		Title:     "Machines",
		ActiveTab: "machines",
		Data:      views.BuildMachineList(machines),
	})
}

// createMachine handles the new-machine form, then returns to the fresh list
func (r *Router) createMachine(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	if err := req.ParseForm(); err != nil {
		r.failLocal(w, req, "Invalid form submission")
		return
	}

	input := upstream.CreateMachineInput{
		SerialNumber: req.PostFormValue("serial_number"),
		Model:        req.PostFormValue("model"),
		Brand:        req.PostFormValue("brand"),
		Location:     req.PostFormValue("location"),
	}
	if input.SerialNumber == "" {
		r.failLocal(w, req, "Serial number is required")
		return
	}

	if _, err := r.api.CreateMachine(req.Context(), sess.Token, input); err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	http.Redirect(w, req, "/machines", http.StatusSeeOther)
}

// machineDetailData is the machine history panel data
type machineDetailData struct {
	Machine views.MachineRow
	History views.MaintenanceHistory
}

// viewMachine renders a machine's maintenance history
func (r *Router) viewMachine(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	id, err := pathID(req)
	if err != nil {
		r.failLocal(w, req, "Invalid machine ID")
		return
	}

	machine, err := r.api.GetMachine(req.Context(), sess.Token, id)
	if err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}
	logs, err := r.api.ListMaintenance(req.Context(), sess.Token, id)
	if err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	list := views.BuildMachineList([]upstream.Machine{*machine})
	r.views.render(w, http.StatusOK, "machine_detail.html", page{
		Title:     "Machine " + machine.SerialNumber,
		ActiveTab: "machines",
		Data: machineDetailData{
			Machine: list.Rows[0],
			History: views.BuildMaintenanceHistory(logs),
		},
	})
}

// addMaintenance appends a maintenance log entry, then re-renders the history
func (r *Router) addMaintenance(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	id, err := pathID(req)
	if err != nil {
		r.failLocal(w, req, "Invalid machine ID")
		return
	}
	if err := req.ParseForm(); err != nil {
		r.failLocal(w, req, "Invalid form submission")
		return
	}

	input := upstream.MaintenanceInput{
		MachineID:   id,
		Date:        req.PostFormValue("date"),
		Description: req.PostFormValue("description"),
		Technician:  req.PostFormValue("technician"),
	}
	if input.Date == "" || input.Description == "" {
		r.failLocal(w, req, "Date and description are required")
		return
	}
	// Blank next-maintenance date goes upstream as null.
	if next := req.PostFormValue("next_maintenance_date"); next != "" {
		input.NextMaintenanceDate = &next
	}

	if err := r.api.AddMaintenance(req.Context(), sess.Token, id, input); err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	http.Redirect(w, req, fmt.Sprintf("/machines/%d", id), http.StatusSeeOther)
}

// machineLabelPDF streams a printable QR label for the machine
func (r *Router) machineLabelPDF(w http.ResponseWriter, req *http.Request, sess *session.Session) {
	id, err := pathID(req)
	if err != nil {
		r.failLocal(w, req, "Invalid machine ID")
		return
	}

	machine, err := r.api.GetMachine(req.Context(), sess.Token, id)
	if err != nil {
		r.failUpstream(w, req, sess, err)
		return
	}

	pdfBytes, err := printer.GenerateMachineLabel(machine)
	if err != nil {
		r.failLocal(w, req, "Failed to generate label")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"label_%s.pdf\"", machine.SerialNumber))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}
