package models

import (
	"time"

	"worksmis/milestone"

	"github.com/shopspring/decimal"
)

// GORM-compatible models with proper tags

// WorkPackageGorm represents the work_package table with GORM tags
type WorkPackageGorm struct {
	ID             uint                `gorm:"primaryKey;column:id" json:"id"`
	ReferenceCode  string              `gorm:"column:reference_code;uniqueIndex;not null" json:"reference_code"`
	WorkName       string              `gorm:"column:work_name;not null" json:"work_name"`
	SchemeName     string              `gorm:"column:scheme_name" json:"scheme_name"`
	District       string              `gorm:"column:district" json:"district"`
	Division       string              `gorm:"column:division" json:"division"`
	WUAName        string              `gorm:"column:wua_name" json:"wua_name"`
	EstimatedCost  decimal.Decimal     `gorm:"column:estimated_cost;type:numeric(14,2);default:0" json:"estimated_cost"`
	PeriodMonths   int                 `gorm:"column:period_months;not null" json:"period_months"`
	MilestoneCount int                 `gorm:"column:milestone_count;not null" json:"milestone_count"`
	StartDate      *time.Time          `gorm:"column:start_date" json:"start_date,omitempty"`
	CreatedBy      string              `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt      time.Time           `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;not null" json:"updated_at"`
	Components     []WorkComponentGorm `gorm:"foreignKey:WorkPackageID" json:"components,omitempty"`
}

// TableName specifies the table name for WorkPackageGorm
func (WorkPackageGorm) TableName() string {
	return "work_package"
}

// Reconciled reports whether every component passed the last reconciliation.
func (w WorkPackageGorm) Reconciled() bool {
	for _, c := range w.Components {
		if !c.MilestonesReconciled {
			return false
		}
	}
	return true
}

// WorkComponentGorm represents the work_component table with GORM tags
type WorkComponentGorm struct {
	ID                   uint                `gorm:"primaryKey;column:id" json:"id"`
	WorkPackageID        uint                `gorm:"column:work_package_id;not null;index" json:"work_package_id"`
	ComponentName        string              `gorm:"column:component_name;not null" json:"componentname"`
	Unit                 string              `gorm:"column:unit" json:"unit"`
	TotalQty             decimal.Decimal     `gorm:"column:total_qty;type:numeric(10,2);not null" json:"totalQty"`
	NumberOfMilestone    int                 `gorm:"column:number_of_milestone;not null;default:0" json:"Numberofmilestone"`
	Milestone1Qty        decimal.NullDecimal `gorm:"column:milestone1_qty;type:numeric(10,2)" json:"milestone1_qty"`
	Milestone2Qty        decimal.NullDecimal `gorm:"column:milestone2_qty;type:numeric(10,2)" json:"milestone2_qty"`
	Milestone3Qty        decimal.NullDecimal `gorm:"column:milestone3_qty;type:numeric(10,2)" json:"milestone3_qty"`
	MilestoneDetails     string              `gorm:"column:milestone_details" json:"milestonedetails"`
	MilestonesReconciled bool                `gorm:"column:milestones_reconciled;default:false" json:"milestones_reconciled"`
	CreatedAt            time.Time           `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt            time.Time           `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for WorkComponentGorm
func (WorkComponentGorm) TableName() string {
	return "work_component"
}

// ToComponent converts the stored row into a milestone.Component.
func (w WorkComponentGorm) ToComponent() milestone.Component {
	c := milestone.Component{
		Name:           w.ComponentName,
		Unit:           w.Unit,
		Total:          w.TotalQty,
		MilestoneCount: w.NumberOfMilestone,
		Milestones:     [milestone.MaxMilestones]decimal.NullDecimal{w.Milestone1Qty, w.Milestone2Qty, w.Milestone3Qty},
	}
	return c.WithCount(w.NumberOfMilestone)
}

// NewWorkComponentGorm builds a row from a validated component.
func NewWorkComponentGorm(workPackageID uint, c milestone.Component, reconciled bool) WorkComponentGorm {
	return WorkComponentGorm{
		WorkPackageID:        workPackageID,
		ComponentName:        c.Name,
		Unit:                 c.Unit,
		TotalQty:             c.Total,
		NumberOfMilestone:    c.MilestoneCount,
		Milestone1Qty:        c.Milestones[0],
		Milestone2Qty:        c.Milestones[1],
		Milestone3Qty:        c.Milestones[2],
		MilestoneDetails:     milestone.FormatDetails(c),
		MilestonesReconciled: reconciled,
	}
}

// UnitGorm represents the units table with GORM tags
type UnitGorm struct {
	ID          uint   `gorm:"primaryKey;column:id" json:"id"`
	UnitName    string `gorm:"column:unit_name;uniqueIndex;not null" json:"unit_name"`
	Description string `gorm:"column:description" json:"description"`
}

// TableName specifies the table name for UnitGorm
func (UnitGorm) TableName() string {
	return "units"
}

// UserGorm represents the users table with GORM tags
type UserGorm struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Email     string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	FirstName string    `gorm:"column:first_name" json:"first_name"`
	LastName  string    `gorm:"column:last_name" json:"last_name"`
	Suspended bool      `gorm:"column:suspended;default:false" json:"suspended"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for UserGorm
func (UserGorm) TableName() string {
	return "users"
}
