package repository

import (
	"context"
	"errors"
	"testing"

	"worksmis/milestone"
	"worksmis/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type componentUpdate struct {
	id         uint
	reconciled bool
	details    string
}

func recordUpdates(got *[]componentUpdate) componentUpdater {
	return func(id uint, reconciled bool, details string) error {
		*got = append(*got, componentUpdate{id, reconciled, details})
		return nil
	}
}

func evenRow(id uint) models.WorkComponentGorm {
	c := milestone.AutoDistribute(milestone.Component{
		Name:           "Canal lining",
		Unit:           "Sqm",
		Total:          decimal.NewFromInt(100),
		MilestoneCount: 3,
	})
	row := models.NewWorkComponentGorm(1, c, true)
	row.ID = id
	return row
}

func auditRows() []models.WorkComponentGorm {
	short := evenRow(2)
	short.Milestone1Qty = decimal.NewNullDecimal(decimal.NewFromInt(30))
	short.Milestone2Qty = decimal.NewNullDecimal(decimal.NewFromInt(30))
	short.Milestone3Qty = decimal.NewNullDecimal(decimal.NewFromInt(30))
	short.MilestoneDetails = "M1:30.00,M2:30.00,M3:30.00"

	stale := evenRow(3)
	stale.MilestonesReconciled = false
	stale.MilestoneDetails = "M1:10.00"

	padded := evenRow(4)
	padded.MilestoneDetails = "M1:33.330,M2:33.33,M3:33.34"

	return []models.WorkComponentGorm{evenRow(1), short, stale, padded}
}

func TestAuditComponent(t *testing.T) {
	rows := auditRows()

	ok := auditComponent(rows[0])
	assert.True(t, ok.Result.Valid)
	assert.False(t, ok.Drifted)
	assert.False(t, ok.Changed)

	short := auditComponent(rows[1])
	assert.False(t, short.Result.Valid)
	assert.False(t, short.Drifted)
	assert.True(t, short.Changed)

	stale := auditComponent(rows[2])
	assert.True(t, stale.Result.Valid)
	assert.True(t, stale.Drifted)
	assert.True(t, stale.Changed)
	assert.Equal(t, "M1:33.33,M2:33.33,M3:33.34", stale.Details)

	padded := auditComponent(rows[3])
	assert.False(t, padded.Drifted)
	assert.True(t, padded.Changed)
}

func TestDetailsMatch(t *testing.T) {
	c := evenRow(1).ToComponent()
	assert.True(t, detailsMatch("M1:33.33,M2:33.33,M3:33.34", c))
	assert.False(t, detailsMatch("M1:33.33,M2:33.33", c))
	assert.False(t, detailsMatch("M1:33.33,M2:33.33,M3:33.35", c))
	assert.False(t, detailsMatch("garbage", c))

	unset := milestone.Component{Total: decimal.NewFromInt(5), MilestoneCount: 1}
	assert.True(t, detailsMatch("M1:0.00", unset))
}

func TestAuditBatchCounts(t *testing.T) {
	var updates []componentUpdate
	var stats AuditStats

	require.NoError(t, stats.auditBatch(context.Background(), auditRows(), recordUpdates(&updates), zap.NewNop()))
	assert.Equal(t, AuditStats{Checked: 4, Mismatched: 1, Drifted: 1, Updated: 3}, stats)
	assert.Equal(t, []componentUpdate{
		{2, false, "M1:30.00,M2:30.00,M3:30.00"},
		{3, true, "M1:33.33,M2:33.33,M3:33.34"},
		{4, true, "M1:33.33,M2:33.33,M3:33.34"},
	}, updates)
}

func TestAuditBatchSkipsUnchangedRows(t *testing.T) {
	var updates []componentUpdate
	var stats AuditStats

	rows := []models.WorkComponentGorm{evenRow(1), evenRow(2)}
	require.NoError(t, stats.auditBatch(context.Background(), rows, recordUpdates(&updates), zap.NewNop()))
	assert.Equal(t, AuditStats{Checked: 2}, stats)
	assert.Empty(t, updates)
}

func TestAuditBatchUpdateError(t *testing.T) {
	var stats AuditStats
	fail := func(uint, bool, string) error { return errors.New("connection reset") }

	err := stats.auditBatch(context.Background(), auditRows(), fail, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update component 2")
	assert.Equal(t, 2, stats.Checked)
	assert.Equal(t, 0, stats.Updated)
}

func TestAuditBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stats AuditStats
	err := stats.auditBatch(ctx, auditRows(), recordUpdates(new([]componentUpdate)), zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Checked)
}
