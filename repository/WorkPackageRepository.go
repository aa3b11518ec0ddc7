package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"worksmis/milestone"
	"worksmis/models"
	"worksmis/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// WorkPackageRepository writes work packages through database/sql transactions and
// reads them back through GORM.
type WorkPackageRepository struct {
	db     *sql.DB
	gdb    *gorm.DB
	logger *zap.Logger
}

func NewWorkPackageRepository(db *sql.DB, gdb *gorm.DB, logger *zap.Logger) *WorkPackageRepository {
	return &WorkPackageRepository{db: db, gdb: gdb, logger: logger}
}

// NewReferenceCode returns a short human-readable work package reference.
func NewReferenceCode() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "WP-" + strings.ToUpper(id[:8])
}

// Create inserts the work package and all of its components in one transaction.
// Components must already have passed submit-time validation.
func (r *WorkPackageRepository) Create(ctx context.Context, wp *models.WorkPackageGorm, comps []milestone.Component) (uint, error) {
	ctx, cancel := utils.TxQuery.Context(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if wp.ReferenceCode == "" {
		wp.ReferenceCode = NewReferenceCode()
	}
	now := time.Now()

	var id uint
	err = tx.QueryRowContext(ctx, `
		INSERT INTO work_package
		(reference_code, work_name, scheme_name, district, division, wua_name, estimated_cost,
		 period_months, milestone_count, start_date, created_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$12) RETURNING id`,
		wp.ReferenceCode, wp.WorkName, wp.SchemeName, wp.District, wp.Division, wp.WUAName, wp.EstimatedCost,
		wp.PeriodMonths, wp.MilestoneCount, wp.StartDate, wp.CreatedBy, now).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert work package: %w", err)
	}

	if _, err := insertComponents(ctx, tx, id, comps); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	r.logger.Info("Work package created",
		zap.Uint("id", id),
		zap.String("reference_code", wp.ReferenceCode),
		zap.Int("components", len(comps)),
	)
	wp.ID = id
	wp.CreatedAt = now
	wp.UpdatedAt = now
	return id, nil
}

// AddComponents appends components to an existing work package in one transaction.
func (r *WorkPackageRepository) AddComponents(ctx context.Context, workPackageID uint, comps []milestone.Component) ([]uint, error) {
	ctx, cancel := utils.TxQuery.Context(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM work_package WHERE id = $1)`, workPackageID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check work package: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	ids, err := insertComponents(ctx, tx, workPackageID, comps)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE work_package SET updated_at = NOW() WHERE id = $1`, workPackageID); err != nil {
		return nil, fmt.Errorf("touch work package: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	r.logger.Info("Components added",
		zap.Uint("work_package_id", workPackageID),
		zap.Int("count", len(ids)),
	)
	return ids, nil
}

func insertComponents(ctx context.Context, tx *sql.Tx, workPackageID uint, comps []milestone.Component) ([]uint, error) {
	ids := make([]uint, 0, len(comps))
	for i, c := range comps {
		row := models.NewWorkComponentGorm(workPackageID, c, milestone.Validate(c, milestone.FormSubmit).Valid)

		var id uint
		err := tx.QueryRowContext(ctx, `
			INSERT INTO work_component
			(work_package_id, component_name, unit, total_qty, number_of_milestone,
			 milestone1_qty, milestone2_qty, milestone3_qty, milestone_details, milestones_reconciled, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW(),NOW()) RETURNING id`,
			row.WorkPackageID, row.ComponentName, row.Unit, row.TotalQty, row.NumberOfMilestone,
			row.Milestone1Qty, row.Milestone2Qty, row.Milestone3Qty, row.MilestoneDetails, row.MilestonesReconciled).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert component %d (%s): %w", i, c.Name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Get loads a work package with its components.
func (r *WorkPackageRepository) Get(ctx context.Context, id uint) (*models.WorkPackageGorm, error) {
	ctx, cancel := utils.FastQuery.Context(ctx)
	defer cancel()

	var wp models.WorkPackageGorm
	err := r.gdb.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&wp, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get work package %d: %w", id, err)
	}
	return &wp, nil
}

// List returns one page of work packages, newest first, and the total count.
func (r *WorkPackageRepository) List(ctx context.Context, page, pageSize int) ([]models.WorkPackageGorm, int64, error) {
	ctx, cancel := utils.TxQuery.Context(ctx)
	defer cancel()

	var total int64
	if err := r.gdb.WithContext(ctx).Model(&models.WorkPackageGorm{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count work packages: %w", err)
	}

	var list []models.WorkPackageGorm
	err := r.gdb.WithContext(ctx).
		Preload("Components").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list work packages: %w", err)
	}
	return list, total, nil
}

// Components returns the components of a work package in insertion order.
func (r *WorkPackageRepository) Components(ctx context.Context, workPackageID uint) ([]models.WorkComponentGorm, error) {
	ctx, cancel := utils.FastQuery.Context(ctx)
	defer cancel()

	var count int64
	if err := r.gdb.WithContext(ctx).Model(&models.WorkPackageGorm{}).Where("id = ?", workPackageID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check work package: %w", err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	var comps []models.WorkComponentGorm
	err := r.gdb.WithContext(ctx).Where("work_package_id = ?", workPackageID).Order("id").Find(&comps).Error
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	return comps, nil
}

// Delete removes a work package and its components.
func (r *WorkPackageRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := utils.TxQuery.Context(ctx)
	defer cancel()

	return r.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_package_id = ?", id).Delete(&models.WorkComponentGorm{}).Error; err != nil {
			return fmt.Errorf("delete components: %w", err)
		}
		res := tx.Delete(&models.WorkPackageGorm{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete work package: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AuditStats summarises a reconciliation run.
type AuditStats struct {
	Checked    int
	Mismatched int
	Drifted    int
	Updated    int
}

// componentAudit is the outcome of re-validating one stored component.
type componentAudit struct {
	Result  milestone.Result
	Details string
	// Drifted is set when the stored details string no longer describes the milestone columns.
	Drifted bool
	Changed bool
}

func auditComponent(row models.WorkComponentGorm) componentAudit {
	c := row.ToComponent()
	a := componentAudit{
		Result:  milestone.Validate(c, milestone.FormSubmit),
		Details: milestone.FormatDetails(c),
	}
	a.Drifted = !detailsMatch(row.MilestoneDetails, c)
	a.Changed = a.Result.Valid != row.MilestonesReconciled || a.Details != row.MilestoneDetails
	return a
}

func detailsMatch(stored string, c milestone.Component) bool {
	values, err := milestone.ParseDetails(stored)
	if err != nil {
		return false
	}
	applicable := c.Applicable()
	if len(values) != len(applicable) {
		return false
	}
	for i, m := range applicable {
		want := decimal.Zero
		if m.Valid {
			want = m.Decimal
		}
		if !values[i].Equal(want) {
			return false
		}
	}
	return true
}

type componentUpdater func(id uint, reconciled bool, details string) error

// auditBatch re-validates rows and writes back only the components whose outcome changed.
func (s *AuditStats) auditBatch(ctx context.Context, rows []models.WorkComponentGorm, update componentUpdater, logger *zap.Logger) error {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Checked++

		a := auditComponent(row)
		if !a.Result.Valid {
			s.Mismatched++
			logger.Warn("Milestones do not reconcile",
				zap.Uint("component_id", row.ID),
				zap.Uint("work_package_id", row.WorkPackageID),
				zap.String("details", a.Details),
				zap.Any("errors", a.Result.Errors),
			)
		}
		if a.Drifted {
			s.Drifted++
			logger.Warn("Stored milestone details disagree with milestone columns",
				zap.Uint("component_id", row.ID),
				zap.String("stored", row.MilestoneDetails),
				zap.String("columns", a.Details),
			)
		}

		if !a.Changed {
			continue
		}
		if err := update(row.ID, a.Result.Valid, a.Details); err != nil {
			return fmt.Errorf("update component %d: %w", row.ID, err)
		}
		s.Updated++
	}
	return nil
}

// ReconcileAll re-validates every stored component under the submit policy, cross-checks
// milestone_details against the columns and stores the outcome in milestones_reconciled.
func (r *WorkPackageRepository) ReconcileAll(ctx context.Context) (AuditStats, error) {
	var stats AuditStats
	var batchErr error
	var rows []models.WorkComponentGorm

	update := func(id uint, reconciled bool, details string) error {
		return r.gdb.WithContext(ctx).Model(&models.WorkComponentGorm{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"milestones_reconciled": reconciled,
				"milestone_details":     details,
				"updated_at":            time.Now(),
			}).Error
	}

	res := r.gdb.WithContext(ctx).Order("id").
		FindInBatches(&rows, 500, func(tx *gorm.DB, _ int) error {
			batchErr = stats.auditBatch(ctx, rows, update, r.logger)
			return batchErr
		})
	if batchErr != nil {
		return stats, batchErr
	}
	if res.Error != nil {
		return stats, fmt.Errorf("scan components: %w", res.Error)
	}
	return stats, nil
}
