package models

import (
	"encoding/json"
	"testing"

	"worksmis/milestone"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityInputUnmarshal(t *testing.T) {
	var p ComponentPayload
	err := json.Unmarshal([]byte(`{"totalQty":250.5,"milestone1_qty":"100","milestone2_qty":null,"milestone3_qty":""}`), &p)
	require.NoError(t, err)

	assert.Equal(t, QuantityInput("250.5"), p.TotalQty)
	assert.Equal(t, QuantityInput("100"), p.Milestone1Qty)
	assert.Equal(t, QuantityInput(""), p.Milestone2Qty)
	assert.Equal(t, QuantityInput(""), p.Milestone3Qty)

	assert.Error(t, json.Unmarshal([]byte(`{"totalQty":true}`), &p))
}

func TestComponentPayloadToComponent(t *testing.T) {
	p := ComponentPayload{
		ComponentName:     " Canal lining ",
		Unit:              "Sqm",
		TotalQty:          "100",
		NumberOfMilestone: 3,
		Milestone1Qty:     "33.33",
		Milestone2Qty:     "33.33",
		Milestone3Qty:     "",
	}
	c, errs := p.ToComponent(milestone.ExtendedPeriods)
	require.Empty(t, errs)
	assert.Equal(t, "Canal lining", c.Name)
	assert.Equal(t, 3, c.MilestoneCount)
	assert.True(t, c.Total.Equal(decimal.NewFromInt(100)))
	assert.True(t, c.Milestones[0].Valid)
	assert.False(t, c.Milestones[2].Valid)
}

func TestComponentPayloadPeriod(t *testing.T) {
	c, errs := ComponentPayload{TotalQty: "10", PeriodMonths: 32}.ToComponent(milestone.ExtendedPeriods)
	require.Empty(t, errs)
	assert.Equal(t, 2, c.MilestoneCount)

	_, errs = ComponentPayload{TotalQty: "10", PeriodMonths: 32}.ToComponent(milestone.StandardPeriods)
	assert.Contains(t, errs, "periodMonths")

	_, errs = ComponentPayload{TotalQty: "10", PeriodMonths: 24, NumberOfMilestone: 3}.ToComponent(milestone.StandardPeriods)
	assert.Equal(t, "A 24 month period has 2 milestones, not 3", errs["Numberofmilestone"])
}

func TestComponentPayloadParseErrors(t *testing.T) {
	p := ComponentPayload{
		TotalQty:          "1e3",
		NumberOfMilestone: 2,
		Milestone1Qty:     "1.234",
		Milestone2Qty:     "-4",
		Milestone3Qty:     "abc",
	}
	_, errs := p.ToComponent(milestone.ExtendedPeriods)

	assert.Contains(t, errs, milestone.TotalField)
	assert.Contains(t, errs, "milestone1_qty")
	assert.Contains(t, errs, "milestone2_qty")
	assert.NotContains(t, errs, "milestone3_qty", "entries beyond the count are ignored")

	_, errs = ComponentPayload{NumberOfMilestone: 5}.ToComponent(milestone.ExtendedPeriods)
	assert.Contains(t, errs, "Numberofmilestone")
}

func TestNewComponentPayloadRoundTrip(t *testing.T) {
	c := milestone.AutoDistribute(milestone.Component{
		Name: "Earthwork", Unit: "Cum", Total: decimal.RequireFromString("0.05"), MilestoneCount: 2,
	})
	p := NewComponentPayload(c, 24)

	assert.Equal(t, QuantityInput("0.05"), p.TotalQty)
	assert.Equal(t, QuantityInput("0.03"), p.Milestone1Qty)
	assert.Equal(t, QuantityInput("0.02"), p.Milestone2Qty)
	assert.Equal(t, QuantityInput(""), p.Milestone3Qty)
	assert.Equal(t, "M1:0.03,M2:0.02", p.MilestoneDetails)

	back, errs := p.ToComponent(milestone.ExtendedPeriods)
	require.Empty(t, errs)
	assert.True(t, milestone.Validate(back, milestone.LiveEdit).Valid)
}

func TestNewPaginationInfo(t *testing.T) {
	p := NewPaginationInfo(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	assert.Equal(t, 0, NewPaginationInfo(1, 10, 0).TotalPages)
}
