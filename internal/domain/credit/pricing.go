package credit

import "github.com/shopspring/decimal"

// Emission model constants. A petrol car emits roughly 0.21 kg CO2 per km;
// the grid emits roughly 0.5 kg CO2 per kWh charged.
var (
	petrolKgPerKm = decimal.RequireFromString("0.21")
	gridKgPerKwh  = decimal.RequireFromString("0.5")
	kgPerTonne    = decimal.NewFromInt(1000)
)

// tierBonuses rewards larger verified reductions. Thresholds are inclusive
// lower bounds, evaluated highest first.
var tierBonuses = []struct {
	minCO2Kg decimal.Decimal
	factor   decimal.Decimal
}{
	{decimal.NewFromInt(50), decimal.RequireFromString("1.5")},
	{decimal.NewFromInt(20), decimal.RequireFromString("1.2")},
	{decimal.NewFromInt(5), decimal.RequireFromString("1.0")},
}

var belowTierFactor = decimal.RequireFromString("0.5")

// confidenceFactors discounts a credit's value by how far along the
// verification lifecycle it is. Keep this table exhaustive: a new Status
// without an entry silently falls back to the conservative default, and
// the pricing tests pin every known status.
var confidenceFactors = map[Status]decimal.Decimal{
	StatusPending:  decimal.RequireFromString("0.7"),
	StatusVerified: decimal.RequireFromString("1.0"),
	StatusListed:   decimal.RequireFromString("1.0"),
	StatusSold:     decimal.RequireFromString("1.0"),
	StatusRejected: decimal.Zero,
}

var defaultConfidence = decimal.RequireFromString("0.8")

// CO2Reduction computes the CO2 saved by an EV journey against a petrol
// baseline: max(0, distanceKm*0.21 - energyKwh*0.5), rounded to 2 decimal
// places half-up. Input validation (positive distance/energy) belongs to
// the journey intake layer, not here.
func CO2Reduction(distanceKm, energyKwh decimal.Decimal) decimal.Decimal {
	saved := distanceKm.Mul(petrolKgPerKm).Sub(energyKwh.Mul(gridKgPerKwh))
	if saved.IsNegative() {
		return decimal.Zero.Round(2)
	}
	return saved.Round(2)
}

// CreditAmount converts a CO2 reduction into a tradeable credit amount at
// the confidence implied by the credit's current status. The result must be
// recomputed on every status transition; storing it across transitions
// yields stale values because confidence changes.
func CreditAmount(co2Kg decimal.Decimal, status Status) decimal.Decimal {
	if status == StatusRejected {
		return decimal.Zero
	}

	base := co2Kg.Div(kgPerTonne).Round(6)
	amount := base.Mul(tierBonus(co2Kg)).Mul(confidence(status))
	return amount.Round(6)
}

func tierBonus(co2Kg decimal.Decimal) decimal.Decimal {
	for _, tier := range tierBonuses {
		if co2Kg.GreaterThanOrEqual(tier.minCO2Kg) {
			return tier.factor
		}
	}
	return belowTierFactor
}

func confidence(status Status) decimal.Decimal {
	if f, ok := confidenceFactors[status]; ok {
		return f
	}
	return defaultConfidence
}
