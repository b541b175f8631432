package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepperMarksExactlyOneActive(t *testing.T) {
	for _, stage := range All {
		steps := Stepper(stage.ID)
		require.Len(t, steps, len(All))

		active := 0
		for _, s := range steps {
			if s.State == StepActive {
				active++
				assert.Equal(t, stage.ID, s.ID)
			}
		}
		assert.Equal(t, 1, active, "status %s", stage.ID)
	}
}

func TestStepperCompletedBeforePendingAfter(t *testing.T) {
	steps := Stepper("contracting")

	// quotation, supplier_interaction, selection precede contracting
	for i := 0; i < 3; i++ {
		assert.Equal(t, StepCompleted, steps[i].State, steps[i].ID)
	}
	assert.Equal(t, StepActive, steps[3].State)
	for i := 4; i < len(steps); i++ {
		assert.Equal(t, StepPending, steps[i].State, steps[i].ID)
	}
}

func TestStepperTerminalStage(t *testing.T) {
	steps := Stepper(Completed)
	last := steps[len(steps)-1]
	assert.Equal(t, StepActive, last.State)
	for _, s := range steps[:len(steps)-1] {
		assert.Equal(t, StepCompleted, s.State)
	}
}

func TestStepperUnknownStatus(t *testing.T) {
	steps := Stepper("archived")
	require.Len(t, steps, len(All))
	for _, s := range steps {
		assert.Equal(t, StepPending, s.State, s.ID)
	}
}

func TestStepperDisplayIndexes(t *testing.T) {
	steps := Stepper(Quotation)
	for i, s := range steps {
		assert.Equal(t, i+1, s.Index)
	}
}

func TestQuoteSelectionOpen(t *testing.T) {
	assert.True(t, QuoteSelectionOpen(Quotation))
	assert.True(t, QuoteSelectionOpen(SupplierInteraction))
	assert.False(t, QuoteSelectionOpen(Selection))
	assert.False(t, QuoteSelectionOpen(Completed))
	assert.False(t, QuoteSelectionOpen(""))
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown(Installation))
	assert.False(t, IsKnown("shipped"))
}
