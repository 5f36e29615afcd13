package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/psxcreative/engine/internal/catalog"
)

// StoreOrder is a Bootstrap Store cart sent for follow-up.
type StoreOrder struct {
	Project     Project  `json:"project"`
	Contact     Contact  `json:"contact"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
}

// Validate requires the project name, socials, a description and at least one
// known SKU.
func (o StoreOrder) Validate(c *catalog.Catalog) error {
	p := problems{}

	p.require("project.name", o.Project.Name, "Project name is required")
	p.require("contact.socials", o.Contact.Socials, "Socials are required")
	p.require("description", o.Description, "Description is required")

	if len(o.Items) == 0 {
		p.add("items", "No items in cart")
	}
	for _, id := range o.Items {
		if _, ok := c.StoreSKU(id); !ok {
			p.add("items", fmt.Sprintf("Unknown store item %q", id))
		}
	}

	return p.err()
}

// CartLine is one line of a merch store cart as the client priced it.
type CartLine struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Units is the line quantity, 1 when the client sent none.
func (l CartLine) Units() int {
	if l.Quantity <= 0 {
		return 1
	}
	return l.Quantity
}

// LineTotal is price × units.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Units())))
}

// MerchSettings are the Merch Engine settings that accompany a cart.
type MerchSettings struct {
	Designs  int                   `json:"designs"`
	Method   catalog.MerchMethod   `json:"method"`
	Platform catalog.MerchPlatform `json:"platform"`
	Quantity int                   `json:"quantity"`
	Margin   float64               `json:"margin"`
}

// MerchCartOrder is a merch store cart sent for follow-up.
type MerchCartOrder struct {
	Project  Project       `json:"project"`
	Contact  Contact       `json:"contact"`
	Cart     []CartLine    `json:"cart"`
	Metadata MerchSettings `json:"metadata"`
}

// Validate requires the project name, socials and a non-empty cart without
// negative prices.
func (o MerchCartOrder) Validate() error {
	p := problems{}

	p.require("project.name", o.Project.Name, "Project name is required")
	p.require("contact.socials", o.Contact.Socials, "Socials are required")

	if len(o.Cart) == 0 {
		p.add("cart", "No items in cart")
	}
	for i, l := range o.Cart {
		if l.Title == "" && l.ID == "" {
			p.add(fmt.Sprintf("cart[%d]", i), "Item id or title is required")
		}
		if l.Price.IsNegative() {
			p.add(fmt.Sprintf("cart[%d].price", i), "Price must not be negative")
		}
	}

	return p.err()
}

// Total sums the cart lines.
func (o MerchCartOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Cart {
		total = total.Add(l.LineTotal())
	}
	return total
}
