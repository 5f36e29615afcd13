package pricing

import "github.com/psxcreative/engine/internal/catalog"

// StoreCart is a priced Bootstrap Store cart.
type StoreCart struct {
	Items []catalog.StoreSKU `json:"items"`
	Total float64            `json:"total"`
}

// StoreCartTotal resolves SKU ids and sums their prices. Unknown ids are ignored.
func (e *Engine) StoreCartTotal(ids []string) StoreCart {
	cart := StoreCart{Items: []catalog.StoreSKU{}}
	for _, id := range dedupe(ids) {
		sku, ok := e.catalog.StoreSKU(id)
		if !ok {
			continue
		}
		cart.Items = append(cart.Items, sku)
		cart.Total += sku.Price
	}
	return cart
}
