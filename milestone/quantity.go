package milestone

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxMilestones is the largest number of milestones a component can be split into.
const MaxMilestones = 3

// MaxDecimalPlaces is the number of decimal places a quantity may carry.
const MaxDecimalPlaces = 2

// MaxQuantity is the largest quantity accepted by ParseQuantity.
var MaxQuantity = decimal.RequireFromString("99999999.99")

var (
	ErrEmpty           = errors.New("quantity is empty")
	ErrNotNumeric      = errors.New("quantity must be a number")
	ErrTooManyDecimals = errors.New("quantity can have at most 2 decimal places")
	ErrTooLarge        = errors.New("quantity cannot exceed 99999999.99")
	ErrNegative        = errors.New("quantity cannot be negative")
)

var quantityRe = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)$`)

// ParseQuantity parses a user-entered quantity.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrEmpty
	}
	if !quantityRe.MatchString(s) {
		return decimal.Zero, ErrNotNumeric
	}
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 > MaxDecimalPlaces {
		return decimal.Zero, ErrTooManyDecimals
	}

	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	} else if strings.HasPrefix(s, "-.") {
		s = "-0" + s[1:]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNotNumeric
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegative
	}
	if d.GreaterThan(MaxQuantity) {
		return decimal.Zero, ErrTooLarge
	}
	return d, nil
}

// FieldError is a data-entry error scoped to one form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// TotalField is the field name of a component's total quantity.
const TotalField = "totalQty"

// SumField is the field name the reconciliation message is keyed by.
const SumField = "milestones"

// MilestoneField returns the field name of milestone i (zero based), e.g. "milestone1_qty".
func MilestoneField(i int) string {
	return fmt.Sprintf("milestone%d_qty", i+1)
}

func fmtQty(d decimal.Decimal) string {
	return d.StringFixed(MaxDecimalPlaces)
}
