// Package stages defines the fixed procurement workflow stages and the
// computations the dashboard derives from a request's current status.
package stages

// Stage is one fixed step in the request lifecycle.
type Stage struct {
	ID    string
	Label string
}

// Ordered workflow stages. The upstream API owns all transitions; the
// dashboard only displays the position of a status within this order.
var All = []Stage{
	{ID: "quotation", Label: "Quotation"},
	{ID: "supplier_interaction", Label: "Supplier"},
	{ID: "selection", Label: "Selection"},
	{ID: "contracting", Label: "Contracting"},
	{ID: "installation", Label: "Installation"},
	{ID: "technical_acceptance", Label: "Acceptance"},
	{ID: "completed", Label: "Done"},
}

// Stage IDs referenced by rendering rules.
const (
	Quotation           = "quotation"
	SupplierInteraction = "supplier_interaction"
	Selection           = "selection"
	Contracting         = "contracting"
	Installation        = "installation"
	TechnicalAcceptance = "technical_acceptance"
	Completed           = "completed"
)

// StepState is the visual state of one step in the progress indicator.
type StepState string

const (
	StepPending   StepState = "pending"
	StepActive    StepState = "active"
	StepCompleted StepState = "completed"
)

// Step is one entry of the rendered progress indicator.
type Step struct {
	ID    string
	Label string
	Index int // 1-based display index
	State StepState
}

// Stepper computes the progress indicator for a status. Exactly one step is
// active when the status matches a known stage; every stage before it is
// completed and every stage after it pending. An unknown status yields all
// pending steps and no active marker.
func Stepper(status string) []Step {
	steps := make([]Step, 0, len(All))
	reachedActive := false
	known := IsKnown(status)
	for i, stage := range All {
		state := StepPending
		switch {
		case stage.ID == status:
			state = StepActive
			reachedActive = true
		case known && !reachedActive:
			state = StepCompleted
		}
		steps = append(steps, Step{
			ID:    stage.ID,
			Label: stage.Label,
			Index: i + 1,
			State: state,
		})
	}
	return steps
}

// IsKnown reports whether status matches one of the fixed stages.
func IsKnown(status string) bool {
	for _, stage := range All {
		if stage.ID == status {
			return true
		}
	}
	return false
}

// QuoteSelectionOpen reports whether quotes may still be selected for a
// request in the given status.
func QuoteSelectionOpen(status string) bool {
	return status == Quotation || status == SupplierInteraction
}
