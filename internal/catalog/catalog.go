package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// ContentID identifies a content-type offering of the Creative Factory.
type ContentID string

// ChannelID identifies a distribution channel.
type ChannelID string

// StyleID identifies a visual style.
type StyleID string

// ChainID identifies a blockchain. Values are always lower-cased.
type ChainID string

// NormalizeChain maps a user-facing chain name ("Ethereum") to its ChainID.
func NormalizeChain(name string) ChainID {
	return ChainID(strings.ToLower(strings.TrimSpace(name)))
}

// ContentType is one purchasable creative deliverable.
type ContentType struct {
	ID                 ContentID             `json:"id"`
	Label              string                `json:"label"`
	BasePrice          float64               `json:"basePrice"`
	Complexity         float64               `json:"complexity"`
	MinTimeWeeks       int                   `json:"minTimeWeeks"`
	ChannelMultipliers map[ChannelID]float64 `json:"channelMultipliers,omitempty"`
	ChainBonus         map[ChainID]float64   `json:"chainBonus,omitempty"`
}

// Channel is a distribution platform option.
type Channel struct {
	ID    ChannelID `json:"id"`
	Label string    `json:"label"`
}

// Style is a visual style option.
type Style struct {
	ID    StyleID `json:"id"`
	Label string  `json:"label"`
}

// Chain is a selectable chain in the configurator.
type Chain struct {
	ID    ChainID `json:"id"`
	Label string  `json:"label"`
}

// Package is the static reference data of a service tier.
type Package struct {
	Tier         Tier     `json:"tier"`
	Name         string   `json:"name"`
	MinPrice     float64  `json:"minPrice"`
	Blurb        string   `json:"blurb"`
	Deliverables []string `json:"deliverables"`
}

// StoreSKU is an a-la-carte Bootstrap Store offering.
type StoreSKU struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// MerchItem is a merch product priced by production cost.
type MerchItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	BaseCost float64 `json:"baseCost"`
}

// ShopItem is a retail merch product sold through the merch order form.
type ShopItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Sizes []string        `json:"sizes"`
}

// HasSize reports whether size is offered for the item.
func (s ShopItem) HasSize(size string) bool {
	return slices.Contains(s.Sizes, size)
}

// Tables is the raw reference data a Catalog is built from.
type Tables struct {
	Contents         []ContentType       `json:"contentTypes"`
	Channels         []Channel           `json:"channels"`
	Styles           []Style             `json:"styles"`
	StyleMultipliers map[StyleID]float64 `json:"styleMultipliers"`
	Chains           []Chain             `json:"chains"`
	ChainFactors     map[ChainID]float64 `json:"chainFactors"`
	Packages         []Package           `json:"packages"`
	StoreSKUs        []StoreSKU          `json:"storeSkus"`
	MerchItems       []MerchItem         `json:"merchItems"`
	ShopItems        []ShopItem          `json:"shopItems"`
	Timelines        []Timeline          `json:"timelines"`
}

// Catalog is immutable reference data. All lookups apply the neutral fallback
// for unknown keys: factor 1.0, bonus 0, or not found.
type Catalog struct {
	tables   Tables
	contents map[ContentID]int
	channels map[ChannelID]int
	styles   map[StyleID]int
	packages map[Tier]int
	store    map[string]int
	merch    map[string]int
	shop     map[string]int
}

// New validates t and builds a Catalog from a private copy of it.
func New(t Tables) (*Catalog, error) {
	t = cloneTables(t)
	if len(t.Timelines) == 0 {
		t.Timelines = slices.Clone(Timelines)
	}
	if err := validate(t); err != nil {
		return nil, err
	}

	c := &Catalog{
		tables:   t,
		contents: make(map[ContentID]int, len(t.Contents)),
		channels: make(map[ChannelID]int, len(t.Channels)),
		styles:   make(map[StyleID]int, len(t.Styles)),
		packages: make(map[Tier]int, len(t.Packages)),
		store:    make(map[string]int, len(t.StoreSKUs)),
		merch:    make(map[string]int, len(t.MerchItems)),
		shop:     make(map[string]int, len(t.ShopItems)),
	}
	for i, ct := range t.Contents {
		c.contents[ct.ID] = i
	}
	for i, ch := range t.Channels {
		c.channels[ch.ID] = i
	}
	for i, st := range t.Styles {
		c.styles[st.ID] = i
	}
	for i, p := range t.Packages {
		c.packages[p.Tier] = i
	}
	for i, s := range t.StoreSKUs {
		c.store[s.ID] = i
	}
	for i, m := range t.MerchItems {
		c.merch[m.ID] = i
	}
	for i, s := range t.ShopItems {
		c.shop[s.ID] = i
	}
	return c, nil
}

// MustNew is New for static data known to be valid.
func MustNew(t Tables) *Catalog {
	c, err := New(t)
	if err != nil {
		panic(err)
	}
	return c
}

// Tables returns a copy of the reference data.
func (c *Catalog) Tables() Tables {
	return cloneTables(c.tables)
}

// Content looks up a content type.
func (c *Catalog) Content(id ContentID) (ContentType, bool) {
	ct, ok := c.content(id)
	if !ok {
		return ContentType{}, false
	}
	ct.ChannelMultipliers = maps.Clone(ct.ChannelMultipliers)
	ct.ChainBonus = maps.Clone(ct.ChainBonus)
	return ct, true
}

func (c *Catalog) content(id ContentID) (ContentType, bool) {
	i, ok := c.contents[id]
	if !ok {
		return ContentType{}, false
	}
	return c.tables.Contents[i], true
}

// Contents returns the content types in display order.
func (c *Catalog) Contents() []ContentType {
	return cloneTables(Tables{Contents: c.tables.Contents}).Contents
}

// Channel looks up a channel.
func (c *Catalog) Channel(id ChannelID) (Channel, bool) {
	i, ok := c.channels[id]
	if !ok {
		return Channel{}, false
	}
	return c.tables.Channels[i], true
}

// Style looks up a style.
func (c *Catalog) Style(id StyleID) (Style, bool) {
	i, ok := c.styles[id]
	if !ok {
		return Style{}, false
	}
	return c.tables.Styles[i], true
}

// ChannelMultiplier returns the content's factor for a channel and whether the
// content defines one.
func (c *Catalog) ChannelMultiplier(id ContentID, channel ChannelID) (float64, bool) {
	ct, ok := c.content(id)
	if !ok {
		return 1.0, false
	}
	f, ok := ct.ChannelMultipliers[channel]
	if !ok {
		return 1.0, false
	}
	return f, true
}

// StyleMultiplier returns the style factor, 1.0 for unknown styles.
func (c *Catalog) StyleMultiplier(id StyleID) float64 {
	if f, ok := c.tables.StyleMultipliers[id]; ok {
		return f
	}
	return 1.0
}

// ChainFactor returns the chain factor, 1.0 for unknown chains.
func (c *Catalog) ChainFactor(chain ChainID) float64 {
	if f, ok := c.tables.ChainFactors[NormalizeChain(string(chain))]; ok {
		return f
	}
	return 1.0
}

// ChainBonus returns the flat bonus the content defines for chain.
func (c *Catalog) ChainBonus(id ContentID, chain ChainID) (float64, bool) {
	ct, ok := c.content(id)
	if !ok || chain == "" {
		return 0, false
	}
	b, ok := ct.ChainBonus[NormalizeChain(string(chain))]
	return b, ok
}

// Package returns the static reference data for a tier. Unknown tiers resolve
// to the studio package.
func (c *Catalog) Package(tier Tier) Package {
	i, ok := c.packages[tier]
	if !ok {
		i = c.packages[TierStudio]
	}
	p := c.tables.Packages[i]
	p.Deliverables = slices.Clone(p.Deliverables)
	return p
}

// StoreSKU looks up a Bootstrap Store offering.
func (c *Catalog) StoreSKU(id string) (StoreSKU, bool) {
	i, ok := c.store[id]
	if !ok {
		return StoreSKU{}, false
	}
	return c.tables.StoreSKUs[i], true
}

// MerchItem looks up a merch production item.
func (c *Catalog) MerchItem(id string) (MerchItem, bool) {
	i, ok := c.merch[id]
	if !ok {
		return MerchItem{}, false
	}
	return c.tables.MerchItems[i], true
}

// ShopItem looks up a retail merch item.
func (c *Catalog) ShopItem(id string) (ShopItem, bool) {
	i, ok := c.shop[id]
	if !ok {
		return ShopItem{}, false
	}
	s := c.tables.ShopItems[i]
	s.Sizes = slices.Clone(s.Sizes)
	return s, true
}

func validate(t Tables) error {
	var errs []error

	seen := make(map[ContentID]bool, len(t.Contents))
	for _, ct := range t.Contents {
		if ct.ID == "" {
			errs = append(errs, errors.New("content type with empty id"))
			continue
		}
		if seen[ct.ID] {
			errs = append(errs, fmt.Errorf("content type %q: duplicate id", ct.ID))
		}
		seen[ct.ID] = true
		if ct.BasePrice < 0 {
			errs = append(errs, fmt.Errorf("content type %q: negative base price", ct.ID))
		}
		if ct.Complexity <= 0 {
			errs = append(errs, fmt.Errorf("content type %q: complexity must be positive", ct.ID))
		}
		if ct.MinTimeWeeks < 0 {
			errs = append(errs, fmt.Errorf("content type %q: negative min time", ct.ID))
		}
		for ch, f := range ct.ChannelMultipliers {
			if f <= 0 {
				errs = append(errs, fmt.Errorf("content type %q: channel %q multiplier must be positive", ct.ID, ch))
			}
		}
		for chain, b := range ct.ChainBonus {
			if b < 0 {
				errs = append(errs, fmt.Errorf("content type %q: chain %q bonus must not be negative", ct.ID, chain))
			}
			if NormalizeChain(string(chain)) != chain {
				errs = append(errs, fmt.Errorf("content type %q: chain bonus key %q must be lower-case", ct.ID, chain))
			}
		}
	}

	for id, f := range t.StyleMultipliers {
		if f < 1 {
			errs = append(errs, fmt.Errorf("style %q: multiplier must be at least 1.0", id))
		}
	}
	for id, f := range t.ChainFactors {
		if f <= 0 {
			errs = append(errs, fmt.Errorf("chain %q: factor must be positive", id))
		}
		if NormalizeChain(string(id)) != id {
			errs = append(errs, fmt.Errorf("chain factor key %q must be lower-case", id))
		}
	}

	floors := make(map[Tier]float64, len(t.Packages))
	for _, p := range t.Packages {
		if !p.Tier.Valid() {
			errs = append(errs, fmt.Errorf("package %q: unknown tier", p.Tier))
			continue
		}
		floors[p.Tier] = p.MinPrice
	}
	for _, tier := range Tiers {
		if _, ok := floors[tier]; !ok {
			errs = append(errs, fmt.Errorf("package for tier %q is missing", tier))
		}
	}
	if len(errs) == 0 && !(floors[TierStudio] <= floors[TierMindshare] && floors[TierMindshare] <= floors[TierBlacksite]) {
		errs = append(errs, errors.New("package floors must ascend studio <= mindshare <= blacksite"))
	}

	for _, s := range t.StoreSKUs {
		if s.Price < 0 {
			errs = append(errs, fmt.Errorf("store sku %q: negative price", s.ID))
		}
	}
	for _, m := range t.MerchItems {
		if m.BaseCost < 0 {
			errs = append(errs, fmt.Errorf("merch item %q: negative base cost", m.ID))
		}
	}
	for _, s := range t.ShopItems {
		if s.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("shop item %q: negative price", s.ID))
		}
		if len(s.Sizes) == 0 {
			errs = append(errs, fmt.Errorf("shop item %q: no sizes", s.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return nil
}

func cloneTables(t Tables) Tables {
	out := Tables{
		Channels:         slices.Clone(t.Channels),
		Styles:           slices.Clone(t.Styles),
		StyleMultipliers: maps.Clone(t.StyleMultipliers),
		Chains:           slices.Clone(t.Chains),
		ChainFactors:     maps.Clone(t.ChainFactors),
		StoreSKUs:        slices.Clone(t.StoreSKUs),
		MerchItems:       slices.Clone(t.MerchItems),
		Timelines:        slices.Clone(t.Timelines),
	}
	for _, ct := range t.Contents {
		ct.ChannelMultipliers = maps.Clone(ct.ChannelMultipliers)
		ct.ChainBonus = maps.Clone(ct.ChainBonus)
		out.Contents = append(out.Contents, ct)
	}
	for _, p := range t.Packages {
		p.Deliverables = slices.Clone(p.Deliverables)
		out.Packages = append(out.Packages, p)
	}
	for _, s := range t.ShopItems {
		s.Sizes = slices.Clone(s.Sizes)
		out.ShopItems = append(out.ShopItems, s)
	}
	return out
}
