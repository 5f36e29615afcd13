package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/psxcreative/engine/internal/catalog"
)

var (
	// ShippingFlat is charged once per merch order.
	ShippingFlat = decimal.RequireFromString("9.99")
	// TaxRate applies to the merch order subtotal.
	TaxRate = decimal.RequireFromString("0.08")
)

// MerchOrderLine is one retail merch line: an item in a size.
type MerchOrderLine struct {
	ItemID   string `json:"itemId"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// ShippingInfo is the delivery address of a merch order. Clients may send the
// name whole or split, and the postal code as zip or zipCode.
type ShippingInfo struct {
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip,omitempty"`
	ZipCode   string `json:"zipCode,omitempty"`
	Country   string `json:"country"`
	Notes     string `json:"notes,omitempty"`
}

// FullName returns the recipient name.
func (s ShippingInfo) FullName() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(s.FirstName) + " " + strings.TrimSpace(s.LastName))
}

// PostalCode returns whichever postal code field was sent.
func (s ShippingInfo) PostalCode() string {
	if zip := strings.TrimSpace(s.Zip); zip != "" {
		return zip
	}
	return strings.TrimSpace(s.ZipCode)
}

// MerchOrder is a retail merch order for delivery.
type MerchOrder struct {
	Items    []MerchOrderLine `json:"items"`
	Shipping *ShippingInfo    `json:"shipping"`
}

// PricedLine is a MerchOrderLine resolved against the shop catalog.
type PricedLine struct {
	ItemID    string          `json:"itemId"`
	Name      string          `json:"itemName"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Totals are the money amounts of a merch order.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shippingCost"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Receipt is a priced merch order.
type Receipt struct {
	Lines []PricedLine `json:"items"`
	Totals
}

// NewTotals applies flat shipping and tax to subtotal. Tax is rounded to the
// cent so Total always equals Subtotal + Shipping + Tax.
func NewTotals(subtotal decimal.Decimal) Totals {
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Shipping: ShippingFlat,
		Tax:      tax,
		Total:    subtotal.Add(ShippingFlat).Add(tax),
	}
}

// Price validates the order and prices it from the shop catalog. Prices sent
// by the client are never trusted.
func (o MerchOrder) Price(c *catalog.Catalog) (Receipt, error) {
	p := problems{}

	if len(o.Items) == 0 {
		p.add("items", "No items in order")
	}

	lines := make([]PricedLine, 0, len(o.Items))
	subtotal := decimal.Zero
	for i, l := range o.Items {
		field := fmt.Sprintf("items[%d]", i)
		item, ok := c.ShopItem(l.ItemID)
		if !ok {
			p.add(field, fmt.Sprintf("Unknown item %q", l.ItemID))
			continue
		}
		if !item.HasSize(l.Size) {
			p.add(field+".size", fmt.Sprintf("Size %q is not available for %s", l.Size, item.Name))
			continue
		}
		if l.Quantity < 1 {
			p.add(field+".quantity", "Quantity must be at least 1")
			continue
		}

		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, PricedLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Size:      l.Size,
			Quantity:  l.Quantity,
			UnitPrice: item.Price,
			LineTotal: lineTotal,
		})
	}

	if o.Shipping == nil {
		p.add("shipping", "Shipping information is required")
	} else {
		s := o.Shipping
		p.require("shipping.name", s.FullName(), "Name is required")
		if !ValidEmail(s.Email) {
			p.add("shipping.email", "Valid email is required")
		}
		p.require("shipping.address", s.Address, "Address is required")
		p.require("shipping.city", s.City, "City is required")
		p.require("shipping.zip", s.PostalCode(), "Postal code is required")
		p.require("shipping.country", s.Country, "Country is required")
	}

	if err := p.err(); err != nil {
		return Receipt{}, err
	}
	return Receipt{Lines: lines, Totals: NewTotals(subtotal)}, nil
}
