package pricing

import (
	"math"

	"github.com/psxcreative/engine/internal/catalog"
)

const designFeePerDesign = 200.0

// MerchInput is the Merch Engine configuration.
type MerchInput struct {
	ItemIDs     []string              `json:"items"`
	Method      catalog.MerchMethod   `json:"method"`
	Platform    catalog.MerchPlatform `json:"platform"`
	Quantity    int                   `json:"qty"`
	Margin      float64               `json:"margin"`
	DesignCount int                   `json:"designs"`
}

// MerchEconomics is the margin projection for a merch run.
type MerchEconomics struct {
	Units       int     `json:"units"`
	BaseCost    float64 `json:"baseCost"`
	Price       float64 `json:"price"`
	DesignFee   float64 `json:"designFee"`
	GrossProfit float64 `json:"grossProfit"`
}

// EstimateMerchEconomics projects cost, price and profit of a merch run.
// Print-on-demand runs are priced as if at least PODMinimumUnits were made.
// Unknown item ids are ignored.
func (e *Engine) EstimateMerchEconomics(in MerchInput) MerchEconomics {
	quantity := max(in.Quantity, 0)
	margin := nonNegative(in.Margin)
	designs := max(in.DesignCount, 0)

	units := quantity
	if in.Method != catalog.MethodBulk {
		units = max(quantity, catalog.PODMinimumUnits)
	}

	unitCost, unitPrice := 0.0, 0.0
	for _, id := range dedupe(in.ItemIDs) {
		item, ok := e.catalog.MerchItem(id)
		if !ok {
			continue
		}
		unitCost += item.BaseCost
		unitPrice += item.BaseCost * (1 + margin)
	}

	baseCost := unitCost * float64(units)
	price := unitPrice * float64(units)
	designFee := float64(designs) * designFeePerDesign

	return MerchEconomics{
		Units:       units,
		BaseCost:    baseCost,
		Price:       price,
		DesignFee:   designFee,
		GrossProfit: math.Max(price-baseCost-designFee, 0),
	}
}
