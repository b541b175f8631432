// Package views maps upstream state to declarative view descriptions. All
// builders are pure: same input, same output, no I/O. The handlers feed the
// results into templates, so rendering rules stay testable without a display.
package views

import (
	"fmt"
	"strings"

	"github.com/veltmach/procboard/internal/stages"
	"github.com/veltmach/procboard/internal/upstream"
)

// Placeholder texts for empty collections. Empty regions are never rendered
// bare; each one carries an explicit message.
const (
	NoRequestsPlaceholder      = "No requests yet."
	NoQuotesPlaceholder        = "Waiting for supplier proposals..."
	NoDocumentsPlaceholder     = "No documents uploaded."
	NoMaintenancePlaceholder   = "No maintenance records found."
	NoPartnersPlaceholder      = "No partners registered."
	NoNotificationsPlaceholder = "No pending alerts."
	NoTimelinePlaceholder      = "No activity recorded."
)

// RequestRow is one row of the request list
type RequestRow struct {
	ID          int64
	ClientID    string
	StatusBadge string
	CreatedDate string
}

// RequestList is the request list panel
type RequestList struct {
	Rows        []RequestRow
	Placeholder string // set only when Rows is empty
}

// BuildRequestList builds the request list view
func BuildRequestList(requests []upstream.Request) RequestList {
	list := RequestList{Rows: make([]RequestRow, 0, len(requests))}
	for _, req := range requests {
		list.Rows = append(list.Rows, buildRequestRow(req))
	}
	if len(list.Rows) == 0 {
		list.Placeholder = NoRequestsPlaceholder
	}
	return list
}

func buildRequestRow(req upstream.Request) RequestRow {
	return RequestRow{
		ID:          req.ID,
		ClientID:    req.ClientID,
		StatusBadge: strings.ReplaceAll(req.Status, "_", " "),
		CreatedDate: req.CreatedAt.Format("2006-01-02"),
	}
}

// QuoteCard is one quote proposal on the request detail panel
type QuoteCard struct {
	ID        int64
	PartnerID int64
	Price     float64
	Details   string
	Selected  bool
	CanSelect bool
}

// FinalAction is the action region at the bottom of the request detail
type FinalAction int

const (
	FinalActionNone FinalAction = iota
	FinalActionAccept
	FinalActionCompletedBanner
)

// IsAccept reports whether the accept button is offered
func (f FinalAction) IsAccept() bool { return f == FinalActionAccept }

// IsCompleted reports whether the success banner is shown
func (f FinalAction) IsCompleted() bool { return f == FinalActionCompletedBanner }

// DocumentRow is one uploaded document on the request detail panel
type DocumentRow struct {
	ID       int64
	DocType  string
	Filename string
}

// RequestDetail is the full flow-control panel for one request
type RequestDetail struct {
	ID                   int64
	Title                string
	Steps                []stages.Step
	Quotes               []QuoteCard
	QuotesPlaceholder    string
	Documents            []DocumentRow
	DocumentsPlaceholder string
	ContractExpiration   string // input value, empty when unset
	AdjustmentMonth      string // input value, empty when unset
	FinalAction          FinalAction
}

// BuildRequestDetail builds the detail view for one request. Stage position
// is recomputed from the fresh status string on every call; nothing here is
// carried over between renders.
func BuildRequestDetail(req *upstream.Request) RequestDetail {
	detail := RequestDetail{
		ID:    req.ID,
		Title: fmt.Sprintf("Flow Control: #%d - %s", req.ID, req.ClientID),
		Steps: stages.Stepper(req.Status),
	}

	selectionOpen := stages.QuoteSelectionOpen(req.Status)
	for _, q := range req.Quotes {
		selected := req.SelectedQuoteID != nil && *req.SelectedQuoteID == q.ID
		detail.Quotes = append(detail.Quotes, QuoteCard{
			ID:        q.ID,
			PartnerID: q.PartnerID,
			Price:     q.Price,
			Details:   q.Details,
			Selected:  selected,
			CanSelect: !selected && selectionOpen,
		})
	}
	if len(detail.Quotes) == 0 {
		detail.QuotesPlaceholder = NoQuotesPlaceholder
	}

	for _, doc := range req.Documents {
		detail.Documents = append(detail.Documents, DocumentRow{
			ID:       doc.ID,
			DocType:  doc.DocType,
			Filename: doc.Filename,
		})
	}
	if len(detail.Documents) == 0 {
		detail.DocumentsPlaceholder = NoDocumentsPlaceholder
	}

	if req.ContractExpiration != nil {
		detail.ContractExpiration = *req.ContractExpiration
	}
	if req.AdjustmentMonth != nil {
		detail.AdjustmentMonth = fmt.Sprintf("%d", *req.AdjustmentMonth)
	}

	switch req.Status {
	case stages.TechnicalAcceptance:
		detail.FinalAction = FinalActionAccept
	case stages.Completed:
		detail.FinalAction = FinalActionCompletedBanner
	}

	return detail
}

// KanbanColumn is one per-stage column of the board
type KanbanColumn struct {
	Stage stages.Stage
	Cards []RequestRow
}

// BuildKanban partitions requests into per-stage columns by exact status
// match, preserving fetch order within each column. Requests with an unknown
// status fall into no column.
func BuildKanban(requests []upstream.Request) []KanbanColumn {
	columns := make([]KanbanColumn, len(stages.All))
	for i, stage := range stages.All {
		columns[i].Stage = stage
	}
	for _, req := range requests {
		for i := range columns {
			if columns[i].Stage.ID == req.Status {
				columns[i].Cards = append(columns[i].Cards, buildRequestRow(req))
				break
			}
		}
	}
	return columns
}

// TimelineRow is one audit entry of a request's event log
type TimelineRow struct {
	Timestamp string
	Action    string
	Details   string
}

// TimelineView is the rendered event log
type TimelineView struct {
	Rows        []TimelineRow
	Placeholder string
}

// BuildTimeline builds the timeline view, keeping the server-side order
func BuildTimeline(entries []upstream.TimelineEntry) TimelineView {
	view := TimelineView{Rows: make([]TimelineRow, 0, len(entries))}
	for _, entry := range entries {
		row := TimelineRow{
			Timestamp: entry.Timestamp.Format("2006-01-02 15:04"),
			Action:    strings.ReplaceAll(entry.Action, "_", " "),
		}
		if len(entry.Details) > 0 && string(entry.Details) != "null" {
			row.Details = string(entry.Details)
		}
		view.Rows = append(view.Rows, row)
	}
	if len(view.Rows) == 0 {
		view.Placeholder = NoTimelinePlaceholder
	}
	return view
}
