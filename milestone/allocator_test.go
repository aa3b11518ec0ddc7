package milestone

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func values(c Component) []string {
	var out []string
	for _, m := range c.Milestones {
		if m.Valid {
			out = append(out, m.Decimal.StringFixed(2))
		} else {
			out = append(out, "")
		}
	}
	return out
}

func TestAutoDistributeThreeWayTakesRemainder(t *testing.T) {
	c := AutoDistribute(Component{Total: qty("100.00"), MilestoneCount: 3})

	assert.Equal(t, []string{"33.33", "33.33", "33.34"}, values(c))
	assert.True(t, c.Sum().Equal(qty("100")))
}

func TestAutoDistributeTwoWayIsExact(t *testing.T) {
	c := AutoDistribute(Component{Total: qty("100.01"), MilestoneCount: 2})

	assert.Equal(t, []string{"50.01", "50.00", ""}, values(c))
	assert.True(t, c.Sum().Equal(qty("100.01")))
}

func TestAutoDistributeSingleMilestonePassthrough(t *testing.T) {
	c := AutoDistribute(Component{Total: qty("12345.67"), MilestoneCount: 1})

	require.True(t, c.Milestones[0].Valid)
	assert.True(t, c.Milestones[0].Decimal.Equal(qty("12345.67")))
	assert.False(t, c.Milestones[1].Valid)
	assert.False(t, c.Milestones[2].Valid)
}

func TestAutoDistributeExactSumProperty(t *testing.T) {
	totals := []string{"0.01", "0.02", "0.05", "1", "10.10", "99.99", "100", "333.33", "1000.01", "99999999.99"}
	for _, total := range totals {
		for n := 1; n <= MaxMilestones; n++ {
			c := AutoDistribute(Component{Total: qty(total), MilestoneCount: n})
			assert.Truef(t, c.Sum().Equal(qty(total)), "total %s split %d ways sums to %s", total, n, c.Sum())
			for i := 0; i < n; i++ {
				require.True(t, c.Milestones[i].Valid)
				assert.LessOrEqual(t, -c.Milestones[i].Decimal.Exponent(), int32(2))
			}
		}
	}
}

func TestAutoDistributeNoOp(t *testing.T) {
	existing := Component{Total: qty("0"), MilestoneCount: 2}.Set(0, qty("5")).Set(1, qty("7"))

	assert.Equal(t, existing, AutoDistribute(existing))

	noCount := Component{Total: qty("100"), MilestoneCount: 0}.Set(0, qty("5"))
	assert.Equal(t, noCount, AutoDistribute(noCount))

	badCount := Component{Total: qty("100"), MilestoneCount: 4}
	assert.Equal(t, badCount, AutoDistribute(badCount))
}

func TestAutoDistributeOverwritesManualValues(t *testing.T) {
	c := Component{Total: qty("90"), MilestoneCount: 3}.Set(0, qty("1")).Set(1, qty("2")).Set(2, qty("3"))

	assert.Equal(t, []string{"30.00", "30.00", "30.00"}, values(AutoDistribute(c)))
}

func TestSplit(t *testing.T) {
	parts, ok := Split(qty("10"), 3)
	require.True(t, ok)
	assert.Equal(t, "3.33", parts[0].StringFixed(2))
	assert.Equal(t, "3.33", parts[1].StringFixed(2))
	assert.Equal(t, "3.34", parts[2].StringFixed(2))

	_, ok = Split(qty("-1"), 2)
	assert.False(t, ok)
}

func TestWithCountDropsEntriesBeyondCount(t *testing.T) {
	c := Component{Total: qty("9"), MilestoneCount: 3}.Set(0, qty("3")).Set(1, qty("3")).Set(2, qty("3"))

	c = c.WithCount(1)
	assert.Equal(t, []string{"3.00", "", ""}, values(c))
	assert.Equal(t, 1, c.MilestoneCount)
}
