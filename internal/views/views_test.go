package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veltmach/procboard/internal/stages"
	"github.com/veltmach/procboard/internal/upstream"
)

func ptr[T any](v T) *T { return &v }

func sampleRequest(status string) *upstream.Request {
	return &upstream.Request{
		ID:        7,
		ClientID:  "ACME",
		Status:    status,
		CreatedAt: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Quotes: []upstream.Quote{
			{ID: 1, RequestID: 7, PartnerID: 10, Price: 1200, Details: "Base model"},
			{ID: 2, RequestID: 7, PartnerID: 11, Price: 1500, Details: "Extended warranty"},
		},
	}
}

func TestQuoteSelectOfferedOnlyWhileSelectionOpen(t *testing.T) {
	for _, status := range []string{stages.Quotation, stages.SupplierInteraction} {
		detail := BuildRequestDetail(sampleRequest(status))
		require.Len(t, detail.Quotes, 2)
		for _, card := range detail.Quotes {
			assert.True(t, card.CanSelect, "status %s", status)
			assert.False(t, card.Selected)
		}
	}

	for _, status := range []string{stages.Selection, stages.Contracting, stages.Completed} {
		detail := BuildRequestDetail(sampleRequest(status))
		for _, card := range detail.Quotes {
			assert.False(t, card.CanSelect, "status %s", status)
		}
	}
}

func TestSelectedQuoteBadgeExclusive(t *testing.T) {
	req := sampleRequest(stages.SupplierInteraction)
	req.SelectedQuoteID = ptr(int64(2))

	detail := BuildRequestDetail(req)
	selected := 0
	for _, card := range detail.Quotes {
		if card.Selected {
			selected++
			assert.Equal(t, int64(2), card.ID)
			// Selected quotes offer no action.
			assert.False(t, card.CanSelect)
		}
	}
	assert.Equal(t, 1, selected)
}

func TestRequestDetailFinalAction(t *testing.T) {
	assert.Equal(t, FinalActionAccept,
		BuildRequestDetail(sampleRequest(stages.TechnicalAcceptance)).FinalAction)
	assert.Equal(t, FinalActionCompletedBanner,
		BuildRequestDetail(sampleRequest(stages.Completed)).FinalAction)
	assert.Equal(t, FinalActionNone,
		BuildRequestDetail(sampleRequest(stages.Contracting)).FinalAction)
}

func TestRequestDetailPlaceholders(t *testing.T) {
	req := sampleRequest(stages.Quotation)
	req.Quotes = nil

	detail := BuildRequestDetail(req)
	assert.Equal(t, NoQuotesPlaceholder, detail.QuotesPlaceholder)
	assert.Equal(t, NoDocumentsPlaceholder, detail.DocumentsPlaceholder)
}

func TestRequestDetailContractInputs(t *testing.T) {
	req := sampleRequest(stages.Contracting)
	req.ContractExpiration = ptr("2027-06-30")
	req.AdjustmentMonth = ptr(6)

	detail := BuildRequestDetail(req)
	assert.Equal(t, "2027-06-30", detail.ContractExpiration)
	assert.Equal(t, "6", detail.AdjustmentMonth)

	blank := BuildRequestDetail(sampleRequest(stages.Contracting))
	assert.Empty(t, blank.ContractExpiration)
	assert.Empty(t, blank.AdjustmentMonth)
}

func TestRequestDetailIdempotent(t *testing.T) {
	req := sampleRequest(stages.Selection)
	req.SelectedQuoteID = ptr(int64(1))
	assert.Equal(t, BuildRequestDetail(req), BuildRequestDetail(req))
}

func TestBuildRequestListFormatsRows(t *testing.T) {
	list := BuildRequestList([]upstream.Request{*sampleRequest(stages.SupplierInteraction)})
	require.Len(t, list.Rows, 1)
	assert.Equal(t, "supplier interaction", list.Rows[0].StatusBadge)
	assert.Equal(t, "2026-03-15", list.Rows[0].CreatedDate)
	assert.Empty(t, list.Placeholder)

	empty := BuildRequestList(nil)
	assert.Equal(t, NoRequestsPlaceholder, empty.Placeholder)
}

func TestBuildKanbanPartition(t *testing.T) {
	requests := []upstream.Request{
		{ID: 1, Status: stages.Quotation, CreatedAt: time.Now()},
		{ID: 2, Status: stages.Contracting, CreatedAt: time.Now()},
		{ID: 3, Status: stages.Quotation, CreatedAt: time.Now()},
		{ID: 4, Status: "mystery", CreatedAt: time.Now()},
	}

	columns := BuildKanban(requests)
	require.Len(t, columns, len(stages.All))

	assert.Equal(t, stages.Quotation, columns[0].Stage.ID)
	require.Len(t, columns[0].Cards, 2)
	// Fetch order preserved within the column.
	assert.Equal(t, int64(1), columns[0].Cards[0].ID)
	assert.Equal(t, int64(3), columns[0].Cards[1].ID)

	total := 0
	for _, col := range columns {
		total += len(col.Cards)
	}
	// The unknown-status request lands nowhere.
	assert.Equal(t, 3, total)
}

func TestBuildMachineListLocationFallback(t *testing.T) {
	list := BuildMachineList([]upstream.Machine{
		{ID: 1, SerialNumber: "SN-1", Model: "X1", Brand: "Acme", Status: "active", Location: ""},
		{ID: 2, SerialNumber: "SN-2", Model: "Y2", Brand: "Bolt", Status: "maintenance", Location: "Hall 3"},
	})
	require.Len(t, list.Rows, 2)
	assert.Equal(t, "N/A", list.Rows[0].Location)
	assert.Equal(t, "Acme X1", list.Rows[0].Name)
	assert.Equal(t, "Hall 3", list.Rows[1].Location)
}

func TestBuildMaintenanceHistory(t *testing.T) {
	history := BuildMaintenanceHistory([]upstream.Maintenance{
		{Date: "2026-01-10", Technician: "J. Silva", Description: "Belt change",
			NextMaintenanceDate: ptr("2026-07-10")},
		{Date: "2025-07-01", Technician: "M. Costa", Description: "Inspection"},
	})
	require.Len(t, history.Rows, 2)
	assert.Equal(t, "2026-07-10", history.Rows[0].NextDue)
	assert.Empty(t, history.Rows[1].NextDue)

	empty := BuildMaintenanceHistory(nil)
	assert.Equal(t, NoMaintenancePlaceholder, empty.Placeholder)
}

func TestBuildNotificationPanel(t *testing.T) {
	panel := BuildNotificationPanel([]upstream.Notification{
		{ID: 1, ClientID: "ACME", ContractExpiration: ptr("2026-09-01")},
		{ID: 2, ClientID: "Bolt", AdjustmentMonth: ptr(9)},
	})
	require.Len(t, panel.Items, 2)
	assert.Equal(t, "Expiring: 2026-09-01", panel.Items[0].Detail)
	assert.Equal(t, "Adjustment Due", panel.Items[1].Detail)
	assert.Empty(t, panel.Placeholder)
}

func TestBuildNotificationPanelEmpty(t *testing.T) {
	panel := BuildNotificationPanel(nil)
	assert.Empty(t, panel.Items)
	assert.Equal(t, "No pending alerts.", panel.Placeholder)
}

func TestBuildTimeline(t *testing.T) {
	view := BuildTimeline([]upstream.TimelineEntry{
		{Action: "STATUS_CHANGE", Timestamp: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
			Details: []byte(`{"from":"quotation","to":"selection"}`)},
		{Action: "UPLOAD_DOC", Timestamp: time.Date(2026, 2, 2, 14, 0, 0, 0, time.UTC)},
	})
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "STATUS CHANGE", view.Rows[0].Action)
	assert.Equal(t, "2026-02-01 09:30", view.Rows[0].Timestamp)
	assert.NotEmpty(t, view.Rows[0].Details)
	assert.Empty(t, view.Rows[1].Details)

	assert.Equal(t, NoTimelinePlaceholder, BuildTimeline(nil).Placeholder)
}
