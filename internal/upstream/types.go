package upstream

import (
	"encoding/json"
	"time"
)

// Request represents a procurement request moving through the workflow
type Request struct {
	ID                 int64      `json:"id"`
	ClientID           string     `json:"client_id"`
	Description        string     `json:"description"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	ContractExpiration *string    `json:"contract_expiration"` // ISO date, nullable
	AdjustmentMonth    *int       `json:"adjustment_month"`    // 1-12, nullable
	MachineID          *int64     `json:"machine_id"`
	SelectedQuoteID    *int64     `json:"selected_quote_id"`
	Quotes             []Quote    `json:"quotes"`
	Documents          []Document `json:"documents"`
}

// Quote represents a partner's priced proposal against a request
type Quote struct {
	ID        int64   `json:"id"`
	RequestID int64   `json:"request_id"`
	PartnerID int64   `json:"partner_id"`
	Price     float64 `json:"price"`
	Details   string  `json:"details"`
}

// Document represents an uploaded file attached to a request
type Document struct {
	ID        int64  `json:"id"`
	RequestID int64  `json:"request_id"`
	DocType   string `json:"doc_type"`
	Filename  string `json:"filename"`
}

// Machine represents a piece of equipment with maintenance history
type Machine struct {
	ID               int64   `json:"id"`
	SerialNumber     string  `json:"serial_number"`
	Model            string  `json:"model"`
	Brand            string  `json:"brand"`
	InstallationDate *string `json:"installation_date"`
	Status           string  `json:"status"`
	Location         string  `json:"location"`
}

// Maintenance represents one maintenance log entry for a machine
type Maintenance struct {
	ID                  int64    `json:"id"`
	MachineID           int64    `json:"machine_id"`
	Date                string   `json:"date"`
	Description         string   `json:"description"`
	Technician          string   `json:"technician"`
	Cost                *float64 `json:"cost"`
	NextMaintenanceDate *string  `json:"next_maintenance_date"`
}

// Partner represents a supplier
type Partner struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

// TimelineEntry is one immutable audit record of an action taken on a request
type TimelineEntry struct {
	ID        int64           `json:"id"`
	RequestID int64           `json:"request_id"`
	Action    string          `json:"action"`
	Timestamp time.Time       `json:"timestamp"`
	Details   json.RawMessage `json:"details"`
}

// Notification is a request needing attention (contract expiring or
// adjustment due)
type Notification struct {
	ID                 int64   `json:"id"`
	ClientID           string  `json:"client_id"`
	ContractExpiration *string `json:"contract_expiration"`
	AdjustmentMonth    *int    `json:"adjustment_month"`
}

// DocumentFile is a downloaded document payload
type DocumentFile struct {
	ContentType string
	Disposition string
	Body        []byte
}

// CreateRequestInput is the payload for creating a request
type CreateRequestInput struct {
	ClientID    string `json:"client_id"`
	Description string `json:"description"`
}

// CreateMachineInput is the payload for registering a machine
type CreateMachineInput struct {
	SerialNumber string `json:"serial_number"`
	Model        string `json:"model"`
	Brand        string `json:"brand"`
	Location     string `json:"location"`
}

// MaintenanceInput is the payload for appending a maintenance log entry
type MaintenanceInput struct {
	MachineID           int64   `json:"machine_id"`
	Date                string  `json:"date"`
	Description         string  `json:"description"`
	Technician          string  `json:"technician"`
	NextMaintenanceDate *string `json:"next_maintenance_date"`
}

// ContractDetailsInput is the payload for updating contract details.
// Both fields are nullable on the wire, never empty strings.
type ContractDetailsInput struct {
	ContractExpiration *string `json:"contract_expiration"`
	AdjustmentMonth    *int    `json:"adjustment_month"`
}
