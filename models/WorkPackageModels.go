package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"worksmis/milestone"

	"github.com/shopspring/decimal"
)

// QuantityInput is a quantity as typed on the form. It accepts a JSON number, a numeric
// string, an empty string or null, and keeps the raw text for ParseQuantity.
type QuantityInput string

func (q *QuantityInput) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*q = ""
		return nil
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*q = QuantityInput(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("quantity must be a number or string: %w", err)
	}
	*q = QuantityInput(n.String())
	return nil
}

// ComponentPayload is the component row exchanged with the work form and stored by the
// "add components and milestones" endpoint.
type ComponentPayload struct {
	ComponentName     string        `json:"componentname" example:"Canal lining"`
	Unit              string        `json:"unit" example:"Cum"`
	TotalQty          QuantityInput `json:"totalQty" swaggertype:"string" example:"100.00"`
	NumberOfMilestone int           `json:"Numberofmilestone" example:"3"`
	PeriodMonths      int           `json:"periodMonths,omitempty" example:"36"`
	Milestone1Qty     QuantityInput `json:"milestone1_qty" swaggertype:"string" example:"33.33"`
	Milestone2Qty     QuantityInput `json:"milestone2_qty" swaggertype:"string" example:"33.33"`
	Milestone3Qty     QuantityInput `json:"milestone3_qty" swaggertype:"string" example:"33.34"`
	MilestoneDetails  string        `json:"milestonedetails" example:"M1:33.33,M2:33.33,M3:33.34"`
}

func (p ComponentPayload) milestoneInputs() [milestone.MaxMilestones]QuantityInput {
	return [milestone.MaxMilestones]QuantityInput{p.Milestone1Qty, p.Milestone2Qty, p.Milestone3Qty}
}

// ToComponent parses the payload. Input-format problems are returned keyed by field name;
// the component still carries every field that parsed.
func (p ComponentPayload) ToComponent(periods milestone.PeriodMilestoneMap) (milestone.Component, map[string]string) {
	errs := map[string]string{}
	c := milestone.Component{
		Name: strings.TrimSpace(p.ComponentName),
		Unit: strings.TrimSpace(p.Unit),
	}

	count := p.NumberOfMilestone
	if p.PeriodMonths != 0 {
		mapped := periods.Count(p.PeriodMonths)
		switch {
		case mapped == 0:
			errs["periodMonths"] = fmt.Sprintf("Period of %d months is not supported", p.PeriodMonths)
		case count != 0 && count != mapped:
			errs["Numberofmilestone"] = fmt.Sprintf("A %d month period has %d milestones, not %d", p.PeriodMonths, mapped, count)
		}
		count = mapped
	}
	if count < 0 || count > milestone.MaxMilestones {
		errs["Numberofmilestone"] = fmt.Sprintf("Number of milestones must be between 0 and %d", milestone.MaxMilestones)
		count = 0
	}
	c = c.WithCount(count)

	if total, err := milestone.ParseQuantity(string(p.TotalQty)); err == nil {
		c.Total = total
	} else if !errors.Is(err, milestone.ErrEmpty) {
		errs[milestone.TotalField] = err.Error()
	}

	for i, raw := range p.milestoneInputs() {
		if i >= count {
			break
		}
		q, err := milestone.ParseQuantity(string(raw))
		switch {
		case errors.Is(err, milestone.ErrEmpty):
		case err != nil:
			errs[milestone.MilestoneField(i)] = err.Error()
		default:
			c = c.Set(i, q)
		}
	}
	return c, errs
}

// NewComponentPayload renders a component back into its wire shape.
func NewComponentPayload(c milestone.Component, periodMonths int) ComponentPayload {
	p := ComponentPayload{
		ComponentName:     c.Name,
		Unit:              c.Unit,
		NumberOfMilestone: c.MilestoneCount,
		PeriodMonths:      periodMonths,
		MilestoneDetails:  milestone.FormatDetails(c),
	}
	if !c.Total.IsZero() {
		p.TotalQty = QuantityInput(c.Total.StringFixed(2))
	}

	out := [milestone.MaxMilestones]*QuantityInput{&p.Milestone1Qty, &p.Milestone2Qty, &p.Milestone3Qty}
	for i, m := range c.Applicable() {
		if m.Valid {
			*out[i] = QuantityInput(m.Decimal.StringFixed(2))
		}
	}
	return p
}

// WorkPackageRequest is the body of a batch "create work" submission.
type WorkPackageRequest struct {
	WorkName      string             `json:"work_name" binding:"required" example:"Minor canal rehabilitation"`
	SchemeName    string             `json:"scheme_name" example:"Medium irrigation scheme"`
	District      string             `json:"district" example:"Nashik"`
	Division      string             `json:"division" example:"Irrigation Division 2"`
	WUAName       string             `json:"wua_name" example:"Shivneri WUA"`
	EstimatedCost decimal.Decimal    `json:"estimated_cost" swaggertype:"string" example:"2500000.00"`
	PeriodMonths  int                `json:"period_months" binding:"required" example:"36"`
	StartDate     string             `json:"start_date" example:"2026-04-01"`
	Components    []ComponentPayload `json:"components" binding:"required,min=1,dive"`
}

// ComponentsRequest is the body of the "add components and milestones" endpoint.
type ComponentsRequest struct {
	Components []ComponentPayload `json:"components" binding:"required,min=1,dive"`
}

// ValidationResponse is the JSON form of milestone.Result.
type ValidationResponse struct {
	Valid     bool              `json:"valid" example:"false"`
	Mode      string            `json:"mode" example:"live"`
	State     string            `json:"state,omitempty" example:"fields_visible"`
	Sum       string            `json:"sum" example:"99.99"`
	Tolerance string            `json:"tolerance" example:"0.0001"`
	Errors    map[string]string `json:"errors"`
}

// NewValidationResponse converts a milestone.Result for the given policy.
func NewValidationResponse(res milestone.Result, p milestone.Policy) ValidationResponse {
	return ValidationResponse{
		Valid:     res.Valid,
		Mode:      p.String(),
		Sum:       res.Sum.StringFixed(2),
		Tolerance: res.Tolerance.String(),
		Errors:    res.Errors,
	}
}

// AutoDistributeResponse carries the distributed component and its live validation.
type AutoDistributeResponse struct {
	Component  ComponentPayload   `json:"component"`
	Validation ValidationResponse `json:"validation"`
}

// PeriodOption is one selectable work period.
type PeriodOption struct {
	Months     int `json:"months" example:"36"`
	Milestones int `json:"milestones" example:"3"`
}

// WorkPackageSummary is a row of the work package list.
type WorkPackageSummary struct {
	ID             uint   `json:"id" example:"1"`
	ReferenceCode  string `json:"reference_code" example:"WP-7F3A9C21"`
	WorkName       string `json:"work_name" example:"Minor canal rehabilitation"`
	District       string `json:"district" example:"Nashik"`
	PeriodMonths   int    `json:"period_months" example:"36"`
	ComponentCount int    `json:"component_count" example:"2"`
	Reconciled     bool   `json:"reconciled" example:"true"`
	CreatedBy      string `json:"created_by" example:"engineer@example.com"`
}
