package utils

import (
	"context"
	"time"
)

// QueryBudget bounds how long a single repository call may hold a connection.
type QueryBudget time.Duration

const (
	// FastQuery covers single-row lookups and small writes.
	FastQuery QueryBudget = QueryBudget(5 * time.Second)
	// TxQuery covers multi-statement transactions and paged reads.
	TxQuery QueryBudget = QueryBudget(20 * time.Second)
)

// Context derives a context that expires after the budget. A nil parent is treated as
// context.Background so cron jobs can call repositories directly.
func (b QueryBudget) Context(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, time.Duration(b))
}
