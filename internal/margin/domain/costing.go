package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ResolveUnitCost converts a pack-level purchase price into the cost of one
// unit in the denomination the quantity is sold in.
//
// A base-unit quantity against a multi-unit pack divides the pack price by
// the pack size; a pack-unit quantity uses the pack price directly. A pack
// size of zero (or less) means the pack size is unknown and the pack is
// treated as indivisible. A negative purchase price is treated as zero so a
// bad batch record never produces a negative cost.
func ResolveUnitCost(purchasePricePerPack decimal.Decimal, baseUnitsPerPack int64, kind UnitKind) decimal.Decimal {
	price := purchasePricePerPack
	if price.IsNegative() {
		price = decimal.Zero
	}
	if kind != UnitBase {
		return price
	}
	if baseUnitsPerPack <= 0 {
		baseUnitsPerPack = 1
	}
	return price.Div(decimal.NewFromInt(baseUnitsPerPack))
}

// NetRevenueFromGross strips GST from a tax-inclusive gross amount:
// net = gross / (1 + rate/100). A zero or negative rate returns the gross
// unchanged.
func NetRevenueFromGross(gross, gstRatePercent decimal.Decimal) decimal.Decimal {
	if gstRatePercent.Sign() <= 0 {
		return gross
	}
	return gross.Div(decimal.NewFromInt(1).Add(gstRatePercent.Div(hundred)))
}

// LineMargin is the pure result of the margin math for a single line.
type LineMargin struct {
	UnitCost      decimal.Decimal
	Quantity      decimal.Decimal
	NetRevenue    decimal.Decimal
	TotalCost     decimal.Decimal
	MarginAmount  decimal.Decimal
	MarginPercent decimal.Decimal
}

// ComputeLineMargin derives cost, margin and margin percent for one line from
// its tax-exclusive revenue and resolved per-unit cost. Margin percent is
// defined as zero when net revenue is zero.
func ComputeLineMargin(netRevenue, unitCost, quantity decimal.Decimal) LineMargin {
	totalCost := unitCost.Mul(quantity)
	margin := netRevenue.Sub(totalCost)
	return LineMargin{
		UnitCost:      unitCost,
		Quantity:      quantity,
		NetRevenue:    netRevenue,
		TotalCost:     totalCost,
		MarginAmount:  margin,
		MarginPercent: MarginPercent(margin, netRevenue),
	}
}

// MarginPercent computes margin/revenue*100 with the zero-revenue case pinned
// to exactly zero. Used everywhere a percentage is derived so the
// division-by-zero rule holds uniformly.
func MarginPercent(margin, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return margin.Div(revenue).Mul(hundred)
}
