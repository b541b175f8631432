package views

import (
	"github.com/veltmach/procboard/internal/upstream"
)

// MachineRow is one row of the machine list
type MachineRow struct {
	ID           int64
	SerialNumber string
	Name         string // brand + model
	StatusBadge  string
	Location     string
}

// MachineList is the machine list panel
type MachineList struct {
	Rows        []MachineRow
	Placeholder string
}

// BuildMachineList builds the machine list view. A blank location renders
// as "N/A".
func BuildMachineList(machines []upstream.Machine) MachineList {
	list := MachineList{Rows: make([]MachineRow, 0, len(machines))}
	for _, m := range machines {
		location := m.Location
		if location == "" {
			location = "N/A"
		}
		list.Rows = append(list.Rows, MachineRow{
			ID:           m.ID,
			SerialNumber: m.SerialNumber,
			Name:         m.Brand + " " + m.Model,
			StatusBadge:  m.Status,
			Location:     location,
		})
	}
	if len(list.Rows) == 0 {
		list.Placeholder = "No machines registered."
	}
	return list
}

// MaintenanceRow is one maintenance log entry of a machine's history
type MaintenanceRow struct {
	Date        string
	Technician  string
	Description string
	NextDue     string // empty when no next maintenance is scheduled
}

// MaintenanceHistory is the machine history panel
type MaintenanceHistory struct {
	Rows        []MaintenanceRow
	Placeholder string
}

// BuildMaintenanceHistory builds a machine's maintenance history view
func BuildMaintenanceHistory(logs []upstream.Maintenance) MaintenanceHistory {
	history := MaintenanceHistory{Rows: make([]MaintenanceRow, 0, len(logs))}
	for _, entry := range logs {
		row := MaintenanceRow{
			Date:        entry.Date,
			Technician:  entry.Technician,
			Description: entry.Description,
		}
		if entry.NextMaintenanceDate != nil {
			row.NextDue = *entry.NextMaintenanceDate
		}
		history.Rows = append(history.Rows, row)
	}
	if len(history.Rows) == 0 {
		history.Placeholder = NoMaintenancePlaceholder
	}
	return history
}

// PartnerRow is one row of the partner list
type PartnerRow struct {
	ID          int64
	Name        string
	ContactInfo string
}

// PartnerList is the partner list panel
type PartnerList struct {
	Rows        []PartnerRow
	Placeholder string
}

// BuildPartnerList builds the partner list view
func BuildPartnerList(partners []upstream.Partner) PartnerList {
	list := PartnerList{Rows: make([]PartnerRow, 0, len(partners))}
	for _, p := range partners {
		list.Rows = append(list.Rows, PartnerRow{
			ID:          p.ID,
			Name:        p.Name,
			ContactInfo: p.ContactInfo,
		})
	}
	if len(list.Rows) == 0 {
		list.Placeholder = NoPartnersPlaceholder
	}
	return list
}

// NotificationItem is one alert of the notification panel
type NotificationItem struct {
	ID       int64
	ClientID string
	Detail   string
}

// NotificationPanel is the rendered notification region
type NotificationPanel struct {
	Items       []NotificationItem
	Placeholder string
}

// BuildNotificationPanel builds the notification view. Items with a contract
// expiration show the date; the rest are adjustment reminders.
func BuildNotificationPanel(notifications []upstream.Notification) NotificationPanel {
	panel := NotificationPanel{Items: make([]NotificationItem, 0, len(notifications))}
	for _, n := range notifications {
		detail := "Adjustment Due"
		if n.ContractExpiration != nil {
			detail = "Expiring: " + *n.ContractExpiration
		}
		panel.Items = append(panel.Items, NotificationItem{
			ID:       n.ID,
			ClientID: n.ClientID,
			Detail:   detail,
		})
	}
	if len(panel.Items) == 0 {
		panel.Placeholder = NoNotificationsPlaceholder
	}
	return panel
}
