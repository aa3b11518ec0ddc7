package milestone

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateToleranceBoundary(t *testing.T) {
	c := Component{Total: qty("100.00"), MilestoneCount: 2}.Set(0, qty("50.00")).Set(1, qty("49.00"))

	submit := Validate(c, FormSubmit)
	assert.True(t, submit.Valid, submit.Errors)
	assert.Equal(t, "1.00", submit.Tolerance.StringFixed(2))

	live := Validate(c, LiveEdit)
	assert.False(t, live.Valid)
	assert.Equal(t, "Sum of milestone quantities (99.00) must equal total quantity (100.00)", live.Errors[SumField])
}

func TestValidateMessageRoundsForDisplay(t *testing.T) {
	c := Component{Total: qty("100"), MilestoneCount: 3}.Set(0, qty("33.33")).Set(1, qty("33.33")).Set(2, qty("33.33"))

	res := Validate(c, LiveEdit)
	assert.False(t, res.Valid)
	assert.Equal(t, "Sum of milestone quantities (99.99) must equal total quantity (100.00)", res.Errors[SumField])
}

func TestValidateOverAllocation(t *testing.T) {
	c := Component{Total: qty("100.00"), MilestoneCount: 1}.Set(0, qty("150.00")).Set(1, qty("0")).Set(2, qty("0"))

	res := Validate(c, FormSubmit)
	assert.False(t, res.Valid)
	assert.Equal(t, "Milestone 1 quantity (150.00) cannot exceed total quantity (100.00)", res.Errors["milestone1_qty"])
}

func TestValidateOverAllocationEvenWhenSumReconciles(t *testing.T) {
	c := Component{Total: qty("100"), MilestoneCount: 2}.Set(0, qty("120")).Set(1, qty("-20"))

	res := Validate(c, FormSubmit)
	assert.False(t, res.Valid)
	assert.NotContains(t, res.Errors, SumField)
	assert.Contains(t, res.Errors, "milestone1_qty")
	assert.NotContains(t, res.Errors, "milestone2_qty")
}

func TestValidateUnsetEntriesCountAsZero(t *testing.T) {
	c := Component{Total: qty("100"), MilestoneCount: 2}.Set(0, qty("100"))

	live := Validate(c, LiveEdit)
	assert.True(t, live.Valid, live.Errors)
	assert.True(t, live.Sum.Equal(qty("100")))

	submit := Validate(c, FormSubmit)
	assert.False(t, submit.Valid)
	assert.Equal(t, "Milestone 2 quantity is required", submit.Errors["milestone2_qty"])
}

func TestValidateIgnoresEntriesBeyondCount(t *testing.T) {
	c := Component{Total: qty("10"), MilestoneCount: 1}
	c.Milestones[0] = decimal.NewNullDecimal(qty("10"))
	c.Milestones[2] = decimal.NewNullDecimal(qty("500"))

	assert.True(t, Validate(c, LiveEdit).Valid)
}

func TestValidateNoMilestones(t *testing.T) {
	res := Validate(Component{Total: qty("10")}, FormSubmit)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateRequiresPositiveTotal(t *testing.T) {
	c := Component{MilestoneCount: 1}.Set(0, qty("10"))

	res := Validate(c, LiveEdit)
	assert.False(t, res.Valid)
	assert.Equal(t, "Total quantity must be greater than 0", res.Errors[TotalField])
	assert.NotContains(t, res.Errors, SumField)
}

func TestValidateIsIdempotent(t *testing.T) {
	c := Component{Total: qty("75.5"), MilestoneCount: 3}.Set(0, qty("25")).Set(1, qty("25")).Set(2, qty("20"))

	first := Validate(c, LiveEdit)
	second := Validate(c, LiveEdit)
	assert.Equal(t, first, second)
}

func TestSubmitToleranceFloor(t *testing.T) {
	assert.Equal(t, "0.01", FormSubmit.Tolerance(qty("0.5")).StringFixed(2))
	assert.Equal(t, "5.00", FormSubmit.Tolerance(qty("500")).StringFixed(2))
	assert.Equal(t, "0.0001", LiveEdit.Tolerance(qty("500")).String())
}

func TestParsePolicy(t *testing.T) {
	p, ok := ParsePolicy("submit")
	assert.True(t, ok)
	assert.Equal(t, FormSubmit, p)

	p, ok = ParsePolicy("")
	assert.True(t, ok)
	assert.Equal(t, LiveEdit, p)

	_, ok = ParsePolicy("strict")
	assert.False(t, ok)
}
