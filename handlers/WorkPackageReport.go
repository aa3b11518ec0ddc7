package handlers

import (
	"time"

	"worksmis/milestone"
	"worksmis/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// workReport is the export-ready view of a work package shared by the Excel and PDF reports.
type workReport struct {
	WP         models.WorkPackageGorm
	Components []componentReport
	TotalQty   decimal.Decimal
}

type componentReport struct {
	Name       string
	Unit       string
	Component  milestone.Component
	Sum        decimal.Decimal
	Reconciled bool
	Details    string
	Milestones []milestoneReport
}

type milestoneReport struct {
	Index    int
	Quantity decimal.Decimal
	Set      bool
	Share    decimal.Decimal
	DueDate  *time.Time
}

func buildWorkReport(wp models.WorkPackageGorm) workReport {
	titleCaser := cases.Title(language.Und)
	r := workReport{WP: wp, TotalQty: decimal.Zero}

	for _, row := range wp.Components {
		comp := row.ToComponent()
		var due []time.Time
		if wp.StartDate != nil {
			due = milestone.DueDates(*wp.StartDate, wp.PeriodMonths, comp.MilestoneCount)
		}

		cr := componentReport{
			Name:       titleCaser.String(comp.Name),
			Unit:       comp.Unit,
			Component:  comp,
			Sum:        comp.Sum(),
			Reconciled: milestone.Validate(comp, milestone.FormSubmit).Valid,
			Details:    milestone.FormatDetails(comp),
		}
		for i, m := range comp.Applicable() {
			mr := milestoneReport{Index: i + 1, Set: m.Valid, Quantity: decimal.Zero, Share: decimal.Zero}
			if m.Valid {
				mr.Quantity = m.Decimal
				mr.Share = milestone.Share(m.Decimal, comp.Total)
			}
			if i < len(due) {
				d := due[i]
				mr.DueDate = &d
			}
			cr.Milestones = append(cr.Milestones, mr)
		}

		r.TotalQty = r.TotalQty.Add(comp.Total)
		r.Components = append(r.Components, cr)
	}
	return r
}

// Reconciled reports whether every component in the report reconciles.
func (r workReport) Reconciled() bool {
	for _, c := range r.Components {
		if !c.Reconciled {
			return false
		}
	}
	return true
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02-01-2006")
}
