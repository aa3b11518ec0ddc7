package milestone

import "github.com/shopspring/decimal"

// Component is one physical or financial component of a work package together with
// its milestone split. It is a value: operations return a modified copy.
type Component struct {
	Name           string
	Unit           string
	Total          decimal.Decimal
	MilestoneCount int
	Milestones     [MaxMilestones]decimal.NullDecimal
}

// Set returns c with milestone i set to q.
func (c Component) Set(i int, q decimal.Decimal) Component {
	if i < 0 || i >= MaxMilestones {
		return c
	}
	c.Milestones[i] = decimal.NewNullDecimal(q)
	return c
}

// Clear returns c with milestone i unset.
func (c Component) Clear(i int) Component {
	if i < 0 || i >= MaxMilestones {
		return c
	}
	c.Milestones[i] = decimal.NullDecimal{}
	return c
}

// WithCount returns c with a new milestone count. Entries at or beyond the count are
// dropped.
func (c Component) WithCount(n int) Component {
	if n < 0 || n > MaxMilestones {
		n = 0
	}
	c.MilestoneCount = n
	for i := n; i < MaxMilestones; i++ {
		c.Milestones[i] = decimal.NullDecimal{}
	}
	return c
}

// Applicable returns the milestone entries below MilestoneCount.
func (c Component) Applicable() []decimal.NullDecimal {
	n := c.MilestoneCount
	if n < 0 || n > MaxMilestones {
		n = 0
	}
	return c.Milestones[:n]
}

// AllSet reports whether every applicable milestone has a value.
func (c Component) AllSet() bool {
	for _, m := range c.Applicable() {
		if !m.Valid {
			return false
		}
	}
	return true
}

// Sum adds the applicable milestones; unset entries count as zero.
func (c Component) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, m := range c.Applicable() {
		if m.Valid {
			sum = sum.Add(m.Decimal)
		}
	}
	return sum
}

// Split divides total evenly into n parts. Every part but the last is rounded to two
// decimal places and the last takes the remainder, so the parts always add up to total.
// ok is false when total is not positive or n is outside 1..MaxMilestones.
func Split(total decimal.Decimal, n int) (parts []decimal.Decimal, ok bool) {
	if !total.IsPositive() || n < 1 || n > MaxMilestones {
		return nil, false
	}

	parts = make([]decimal.Decimal, n)
	share := total.DivRound(decimal.NewFromInt(int64(n)), MaxDecimalPlaces)
	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = share
		allocated = allocated.Add(share)
	}
	parts[n-1] = total.Sub(allocated)
	return parts, true
}

// AutoDistribute overwrites the milestones of c with an even split of its total.
// It returns c unchanged when the total is not positive or no milestones apply.
func AutoDistribute(c Component) Component {
	parts, ok := Split(c.Total, c.MilestoneCount)
	if !ok {
		return c
	}
	for i := range c.Milestones {
		if i < len(parts) {
			c.Milestones[i] = decimal.NewNullDecimal(parts[i])
		} else {
			c.Milestones[i] = decimal.NullDecimal{}
		}
	}
	return c
}
