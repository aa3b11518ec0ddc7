package milestone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		err  error
	}{
		{raw: "100", want: "100.00"},
		{raw: " 12.5 ", want: "12.50"},
		{raw: ".75", want: "0.75"},
		{raw: "7.", want: "7.00"},
		{raw: "0", want: "0.00"},
		{raw: "99999999.99", want: "99999999.99"},
		{raw: "", err: ErrEmpty},
		{raw: "   ", err: ErrEmpty},
		{raw: "abc", err: ErrNotNumeric},
		{raw: "1e3", err: ErrNotNumeric},
		{raw: "1,000", err: ErrNotNumeric},
		{raw: "1.2.3", err: ErrNotNumeric},
		{raw: "12.345", err: ErrTooManyDecimals},
		{raw: "100000000", err: ErrTooLarge},
		{raw: "-5", err: ErrNegative},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseQuantity(tt.raw)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestMilestoneField(t *testing.T) {
	assert.Equal(t, "milestone1_qty", MilestoneField(0))
	assert.Equal(t, "milestone3_qty", MilestoneField(2))
}

func TestPeriodMaps(t *testing.T) {
	assert.Equal(t, 2, StandardPeriods.Count(24))
	assert.Equal(t, 0, StandardPeriods.Count(16))
	assert.Equal(t, 1, ExtendedPeriods.Count(16))
	assert.Equal(t, []int{12, 16, 24, 32, 36}, ExtendedPeriods.Months())
	assert.Equal(t, StandardPeriods, PeriodMapByName("standard"))
	assert.Equal(t, ExtendedPeriods, PeriodMapByName("anything"))
}
