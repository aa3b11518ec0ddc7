package milestone

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatDetails renders the applicable milestones as "M1:<v>,M2:<v>,M3:<v>".
func FormatDetails(c Component) string {
	parts := make([]string, 0, MaxMilestones)
	for i, m := range c.Applicable() {
		v := decimal.Zero
		if m.Valid {
			v = m.Decimal
		}
		parts = append(parts, fmt.Sprintf("M%d:%s", i+1, fmtQty(v)))
	}
	return strings.Join(parts, ",")
}

// ParseDetails reads a string produced by FormatDetails back into milestone values.
func ParseDetails(s string) ([]decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	entries := strings.Split(s, ",")
	if len(entries) > MaxMilestones {
		return nil, fmt.Errorf("milestone details %q: more than %d milestones", s, MaxMilestones)
	}

	out := make([]decimal.Decimal, len(entries))
	for i, e := range entries {
		label, value, ok := strings.Cut(strings.TrimSpace(e), ":")
		if !ok || !strings.HasPrefix(label, "M") {
			return nil, fmt.Errorf("milestone details %q: malformed entry %q", s, e)
		}
		n, err := strconv.Atoi(label[1:])
		if err != nil || n != i+1 {
			return nil, fmt.Errorf("milestone details %q: unexpected label %q", s, label)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("milestone details %q: %w", s, err)
		}
		out[i] = d
	}
	return out, nil
}
