package milestone

import (
	"errors"

	"github.com/shopspring/decimal"
)

// State is the display state of a component's milestone block.
type State int

const (
	NoPeriodSelected State = iota
	FieldsVisible
	Reconciled
)

func (s State) String() string {
	switch s {
	case NoPeriodSelected:
		return "no_period_selected"
	case FieldsVisible:
		return "fields_visible"
	case Reconciled:
		return "reconciled"
	}
	return "unknown"
}

// Block is the editable milestone block of one component on the work form.
// Every edit returns a new Block; the caller keeps whichever it wants to show.
type Block struct {
	PeriodMonths int
	Component    Component
}

// State derives the block's state from its component.
func (b Block) State() State {
	c := b.Component
	if c.MilestoneCount < 1 || c.MilestoneCount > MaxMilestones {
		return NoPeriodSelected
	}
	if c.AllSet() && Validate(c, LiveEdit).Valid {
		return Reconciled
	}
	return FieldsVisible
}

// Validate runs the live-edit check the form shows as the user types.
func (b Block) Validate() Result {
	return Validate(b.Component, LiveEdit)
}

// SelectPeriod picks a work period. Unmapped periods hide the milestone fields.
func (b Block) SelectPeriod(months int, periods PeriodMilestoneMap) Block {
	b.PeriodMonths = months
	b.Component = b.Component.WithCount(periods.Count(months))
	return b
}

// EditTotal applies a keystroke to the total quantity field. Invalid input is rejected
// and b is returned unchanged along with the field error.
func (b Block) EditTotal(raw string) (Block, error) {
	q, err := ParseQuantity(raw)
	switch {
	case errors.Is(err, ErrEmpty):
		b.Component.Total = decimal.Zero
		return b, nil
	case err != nil:
		return b, &FieldError{Field: TotalField, Message: err.Error()}
	}
	b.Component.Total = q
	return b, nil
}

// EditMilestone applies a keystroke to milestone i (zero based).
func (b Block) EditMilestone(i int, raw string) (Block, error) {
	if i < 0 || i >= b.Component.MilestoneCount {
		return b, &FieldError{Field: MilestoneField(i), Message: "milestone is not applicable for the selected period"}
	}
	q, err := ParseQuantity(raw)
	switch {
	case errors.Is(err, ErrEmpty):
		b.Component = b.Component.Clear(i)
		return b, nil
	case err != nil:
		return b, &FieldError{Field: MilestoneField(i), Message: err.Error()}
	}
	b.Component = b.Component.Set(i, q)
	return b, nil
}

// AutoDistribute splits the total evenly across the applicable milestones.
func (b Block) AutoDistribute() Block {
	b.Component = AutoDistribute(b.Component)
	return b
}
