package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"worksmis/models"
	"worksmis/utils"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var ErrDuplicate = errors.New("duplicate record")

// uniqueViolation is the postgres error code for a unique constraint violation.
const uniqueViolation = "23505"

type UnitRepository struct {
	db  *sql.DB
	gdb *gorm.DB
}

func NewUnitRepository(db *sql.DB, gdb *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db, gdb: gdb}
}

func translatePQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func (r *UnitRepository) Create(ctx context.Context, u *models.Unit) error {
	ctx, cancel := utils.FastQuery.Context(ctx)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `INSERT INTO units (unit_name, description) VALUES ($1, $2) RETURNING id`,
		u.UnitName, u.Description).Scan(&u.ID)
	if err != nil {
		return translatePQError(err)
	}
	return nil
}

func (r *UnitRepository) Update(ctx context.Context, u models.Unit) error {
	ctx, cancel := utils.FastQuery.Context(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE units SET unit_name=$1, description=$2 WHERE id=$3`, u.UnitName, u.Description, u.ID)
	if err != nil {
		return translatePQError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UnitRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := utils.FastQuery.Context(ctx)
	defer cancel()

	res := r.gdb.WithContext(ctx).Delete(&models.UnitGorm{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UnitRepository) List(ctx context.Context) ([]models.Unit, error) {
	ctx, cancel := utils.FastQuery.Context(ctx)
	defer cancel()

	var rows []models.UnitGorm
	if err := r.gdb.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	units := make([]models.Unit, 0, len(rows))
	for _, row := range rows {
		units = append(units, models.UnitFromGorm(row))
	}
	return units, nil
}

func (r *UnitRepository) Get(ctx context.Context, id uint) (models.Unit, error) {
	ctx, cancel := utils.FastQuery.Context(ctx)
	defer cancel()

	var row models.UnitGorm
	err := r.gdb.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Unit{}, ErrNotFound
	}
	if err != nil {
		return models.Unit{}, err
	}
	return models.UnitFromGorm(row), nil
}

// Missing returns the names in names that are not in the units table.
func (r *UnitRepository) Missing(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	ctx, cancel := utils.FastQuery.Context(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT unit_name FROM units WHERE unit_name = ANY($1)`, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("look up units: %w", err)
	}
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		found[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []string
	seen := map[string]bool{}
	for _, n := range names {
		if !found[n] && !seen[n] {
			missing = append(missing, n)
			seen[n] = true
		}
	}
	return missing, nil
}
