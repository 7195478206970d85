package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestResolveUnitCost_PartialPackDividesByPackSize(t *testing.T) {
	// 100 per strip of 10 tablets, sold loose.
	cost := ResolveUnitCost(dec("100"), 10, UnitBase)
	assert.True(t, cost.Equal(dec("10")), "got %s", cost)
}

func TestResolveUnitCost_WholePackUsesPackPrice(t *testing.T) {
	cost := ResolveUnitCost(dec("100"), 10, UnitPack)
	assert.True(t, cost.Equal(dec("100")), "got %s", cost)
}

func TestResolveUnitCost_CostEquivalenceAcrossUnits(t *testing.T) {
	// Selling exactly one pack's worth of base units costs the same as one pack.
	cases := []struct {
		price string
		units int64
	}{
		{"100", 10},
		{"33.33", 3},
		{"7.5", 15},
		{"0", 10},
	}
	for _, tc := range cases {
		baseCost := ResolveUnitCost(dec(tc.price), tc.units, UnitBase).Mul(decimal.NewFromInt(tc.units))
		packCost := ResolveUnitCost(dec(tc.price), tc.units, UnitPack)
		assert.True(t, baseCost.Equal(packCost), "price=%s units=%d: %s != %s", tc.price, tc.units, baseCost, packCost)
	}
}

func TestResolveUnitCost_ZeroPackSizeFallsBackToIndivisible(t *testing.T) {
	cost := ResolveUnitCost(dec("50"), 0, UnitBase)
	assert.True(t, cost.Equal(dec("50")))

	cost = ResolveUnitCost(dec("50"), -3, UnitBase)
	assert.True(t, cost.Equal(dec("50")))
}

func TestResolveUnitCost_NegativePriceTreatedAsZero(t *testing.T) {
	cost := ResolveUnitCost(dec("-12"), 10, UnitBase)
	assert.True(t, cost.IsZero())

	cost = ResolveUnitCost(dec("-12"), 10, UnitPack)
	assert.True(t, cost.IsZero())
}

func TestNetRevenueFromGross(t *testing.T) {
	// 112 gross at 12% GST → 100 net.
	net := NetRevenueFromGross(dec("112"), dec("12"))
	assert.True(t, net.Equal(dec("100")), "got %s", net)

	// Zero rate passes through.
	net = NetRevenueFromGross(dec("250"), decimal.Zero)
	assert.True(t, net.Equal(dec("250")))
}

func TestComputeLineMargin(t *testing.T) {
	// Taxable 180, unit cost 10, qty 5 → cost 50, margin 130, ~72.22%.
	line := ComputeLineMargin(dec("180"), dec("10"), dec("5"))
	assert.True(t, line.TotalCost.Equal(dec("50")))
	assert.True(t, line.MarginAmount.Equal(dec("130")))
	assert.True(t, line.MarginAmount.Equal(line.NetRevenue.Sub(line.TotalCost)))

	pct, _ := line.MarginPercent.Float64()
	assert.InDelta(t, 72.22, pct, 0.01)
}

func TestComputeLineMargin_ZeroRevenueHasZeroPercent(t *testing.T) {
	// Fully discounted line: margin is negative cost, percent pinned to zero.
	line := ComputeLineMargin(decimal.Zero, dec("10"), dec("5"))
	assert.True(t, line.MarginAmount.Equal(dec("-50")))
	assert.True(t, line.MarginPercent.IsZero())
}

func TestMarginPercent_NeverDividesByZero(t *testing.T) {
	assert.True(t, MarginPercent(dec("10"), decimal.Zero).IsZero())
	assert.True(t, MarginPercent(decimal.Zero, decimal.Zero).IsZero())
}

func TestUnitKindValid(t *testing.T) {
	assert.True(t, UnitBase.Valid())
	assert.True(t, UnitPack.Valid())
	assert.False(t, UnitKind("strip").Valid())
	assert.False(t, UnitKind("").Valid())
}
