package milestone

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Policy selects the tolerance used when reconciling milestones against the total.
type Policy int

const (
	// LiveEdit is used while the user types; the sum must match almost exactly.
	LiveEdit Policy = iota
	// FormSubmit gates submission of the work package; it allows 1% of the total
	// or 0.01, whichever is larger, and requires every applicable milestone.
	FormSubmit
)

var (
	liveTolerance  = decimal.RequireFromString("0.0001")
	minTolerance   = decimal.RequireFromString("0.01")
	submitFraction = decimal.RequireFromString("0.01")
)

func (p Policy) String() string {
	switch p {
	case LiveEdit:
		return "live"
	case FormSubmit:
		return "submit"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps "live" and "submit" to a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "live", "":
		return LiveEdit, true
	case "submit":
		return FormSubmit, true
	}
	return LiveEdit, false
}

// Tolerance returns the allowed absolute difference between the milestone sum and total.
func (p Policy) Tolerance(total decimal.Decimal) decimal.Decimal {
	if p == FormSubmit {
		return decimal.Max(total.Abs().Mul(submitFraction), minTolerance)
	}
	return liveTolerance
}

// Result is the outcome of Validate. Errors is keyed by field name.
type Result struct {
	Valid     bool
	Sum       decimal.Decimal
	Tolerance decimal.Decimal
	Errors    map[string]string
}

// Validate checks that the milestones of c reconcile with its total under policy p.
func Validate(c Component, p Policy) Result {
	res := Result{
		Sum:       c.Sum(),
		Tolerance: p.Tolerance(c.Total),
		Errors:    map[string]string{},
	}
	if c.MilestoneCount < 1 || c.MilestoneCount > MaxMilestones {
		res.Valid = true
		return res
	}

	if p == FormSubmit {
		for i, m := range c.Applicable() {
			if !m.Valid {
				res.Errors[MilestoneField(i)] = fmt.Sprintf("Milestone %d quantity is required", i+1)
			}
		}
	}

	if !c.Total.IsPositive() {
		res.Errors[TotalField] = "Total quantity must be greater than 0"
		res.Valid = false
		return res
	}

	if res.Sum.Sub(c.Total).Abs().GreaterThan(res.Tolerance) {
		res.Errors[SumField] = fmt.Sprintf("Sum of milestone quantities (%s) must equal total quantity (%s)",
			fmtQty(res.Sum), fmtQty(c.Total))
	}

	limit := c.Total.Add(res.Tolerance)
	for i, m := range c.Applicable() {
		if m.Valid && m.Decimal.GreaterThan(limit) {
			res.Errors[MilestoneField(i)] = fmt.Sprintf("Milestone %d quantity (%s) cannot exceed total quantity (%s)",
				i+1, fmtQty(m.Decimal), fmtQty(c.Total))
		}
	}

	res.Valid = len(res.Errors) == 0
	return res
}
