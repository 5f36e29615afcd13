package pricing

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/psxcreative/engine/internal/catalog"
)

const (
	rushFactorPerWeek   = 0.2
	coordinationFee     = 400.0
	coordinationMinimum = 3
	coordinationSteps   = 2
	cinematicPremium    = 1500.0
	roundingThreshold   = 10000.0
	coarseRoundingStep  = 500.0
	fineRoundingStep    = 100.0
)

// Selection is one configurator state: what the user picked for a project.
type Selection struct {
	Chain    string              `json:"chain"`
	Timeline catalog.Timeline    `json:"timeline"`
	Budget   float64             `json:"budget"`
	Channels []catalog.ChannelID `json:"channels"`
	Content  []catalog.ContentID `json:"content"`
	Styles   []catalog.StyleID   `json:"styles"`
}

// BreakdownLine is one itemized contribution to an estimate.
type BreakdownLine struct {
	Label    string  `json:"label"`
	Value    string  `json:"value"`
	Subtotal float64 `json:"subtotal"`
}

// Estimate is the priced outcome of a Selection.
type Estimate struct {
	Total     float64         `json:"total"`
	Tier      catalog.Tier    `json:"tier"`
	Breakdown []BreakdownLine `json:"breakdown"`
}

// Engine prices selections against a catalog. It holds no mutable state.
type Engine struct {
	catalog *catalog.Catalog
}

// New returns an Engine over c, or over the built-in catalog when c is nil.
func New(c *catalog.Catalog) *Engine {
	if c == nil {
		c = catalog.Default()
	}
	return &Engine{catalog: c}
}

// Catalog returns the reference data the engine prices against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// PriceContentItem prices a single content item. Unknown ids price at 0.
func (e *Engine) PriceContentItem(id catalog.ContentID, channels []catalog.ChannelID, styles []catalog.StyleID, chain string) float64 {
	ct, ok := e.catalog.Content(id)
	if !ok {
		return 0
	}

	price := ct.BasePrice
	price *= e.channelFactor(id, channels)
	price *= e.styleFactor(styles)
	price *= e.catalog.ChainFactor(catalog.NormalizeChain(chain))
	if bonus, ok := e.catalog.ChainBonus(id, catalog.NormalizeChain(chain)); ok {
		price += bonus
	}

	return math.Round(price)
}

// ContentBreakdown explains how a single item's price is built up. The lines
// are relative to the base price and do not have to add up to the item price.
func (e *Engine) ContentBreakdown(id catalog.ContentID, channels []catalog.ChannelID, styles []catalog.StyleID, chain string) []BreakdownLine {
	ct, ok := e.catalog.Content(id)
	if !ok {
		return []BreakdownLine{}
	}

	lines := []BreakdownLine{{Label: "Base Price", Value: formatNumber(ct.BasePrice), Subtotal: ct.BasePrice}}

	for _, ch := range dedupe(channels) {
		if f, ok := e.catalog.ChannelMultiplier(id, ch); ok {
			lines = append(lines, BreakdownLine{
				Label:    string(ch) + " multiplier",
				Value:    formatFactor(f),
				Subtotal: ct.BasePrice * (f - 1),
			})
		}
	}

	for _, st := range dedupe(styles) {
		if f := e.catalog.StyleMultiplier(st); f > 1 {
			lines = append(lines, BreakdownLine{
				Label:    string(st) + " style",
				Value:    formatFactor(f),
				Subtotal: ct.BasePrice * (f - 1),
			})
		}
	}

	chain = strings.TrimSpace(chain)
	if f := e.catalog.ChainFactor(catalog.NormalizeChain(chain)); f > 1 {
		lines = append(lines, BreakdownLine{
			Label:    chain + " chain factor",
			Value:    formatFactor(f),
			Subtotal: ct.BasePrice * (f - 1),
		})
	}

	if bonus, ok := e.catalog.ChainBonus(id, catalog.NormalizeChain(chain)); ok && bonus > 0 {
		lines = append(lines, BreakdownLine{
			Label:    chain + " bonus",
			Value:    "+" + formatNumber(bonus),
			Subtotal: bonus,
		})
	}

	return lines
}

// EstimateTotal prices a whole selection. The breakdown lines always sum to
// Total; every contribution is a whole currency unit.
func (e *Engine) EstimateTotal(sel Selection) Estimate {
	sel = normalize(sel)
	tier := e.RecommendTier(sel)

	if len(sel.Channels) == 0 && len(sel.Content) == 0 {
		return Estimate{Total: 0, Tier: tier, Breakdown: []BreakdownLine{}}
	}

	lines := make([]BreakdownLine, 0, len(sel.Content)+4)
	total := 0.0
	maxWeeks := 0

	for _, id := range sel.Content {
		ct, ok := e.catalog.Content(id)
		if !ok {
			continue
		}
		price := e.PriceContentItem(id, sel.Channels, sel.Styles, sel.Chain)
		total += price
		maxWeeks = max(maxWeeks, ct.MinTimeWeeks)
		lines = append(lines, BreakdownLine{Label: ct.Label, Value: formatNumber(price), Subtotal: price})
	}

	if weeks := sel.Timeline.Weeks(); weeks < maxWeeks {
		factor := 1 + rushFactorPerWeek*float64(maxWeeks-weeks)
		before := total
		total *= factor
		lines = append(lines, BreakdownLine{
			Label:    "Rush timeline premium",
			Value:    formatFactor(factor),
			Subtotal: math.Round(total - before),
		})
	}

	if n := len(sel.Channels); n >= coordinationMinimum {
		fee := coordinationFee + coordinationFee*float64(min(n-coordinationMinimum, coordinationSteps))
		total += fee
		lines = append(lines, BreakdownLine{
			Label:    "Multi-channel coordination",
			Value:    strconv.Itoa(n) + " channels",
			Subtotal: fee,
		})
	}

	if slices.Contains(sel.Styles, catalog.StyleCinematic) {
		total += cinematicPremium
		lines = append(lines, BreakdownLine{
			Label:    "Cinematic quality premium",
			Value:    "+" + formatNumber(cinematicPremium),
			Subtotal: cinematicPremium,
		})
	}

	pkg := e.catalog.Package(tier)
	total = roundEstimate(math.Max(total, pkg.MinPrice))

	if diff := total - sumLines(lines); diff != 0 {
		lines = append(lines, BreakdownLine{
			Label:    "Package minimum & rounding",
			Value:    pkg.Name + " from " + formatNumber(pkg.MinPrice),
			Subtotal: diff,
		})
	}

	return Estimate{Total: total, Tier: tier, Breakdown: lines}
}

func (e *Engine) channelFactor(id catalog.ContentID, channels []catalog.ChannelID) float64 {
	factor := 1.0
	for _, ch := range channels {
		if f, ok := e.catalog.ChannelMultiplier(id, ch); ok && f > factor {
			factor = f
		}
	}
	return factor
}

func (e *Engine) styleFactor(styles []catalog.StyleID) float64 {
	factor := 1.0
	for _, st := range styles {
		factor = math.Max(factor, e.catalog.StyleMultiplier(st))
	}
	return factor
}

func roundEstimate(total float64) float64 {
	step := fineRoundingStep
	if total >= roundingThreshold {
		step = coarseRoundingStep
	}
	return math.Round(total/step) * step
}

func sumLines(lines []BreakdownLine) float64 {
	sum := 0.0
	for _, l := range lines {
		sum += l.Subtotal
	}
	return sum
}

func normalize(sel Selection) Selection {
	sel.Chain = strings.TrimSpace(sel.Chain)
	sel.Budget = nonNegative(sel.Budget)
	sel.Channels = dedupe(sel.Channels)
	sel.Content = dedupe(sel.Content)
	sel.Styles = dedupe(sel.Styles)
	return sel
}

func dedupe[T ~string](in []T) []T {
	out := make([]T, 0, len(in))
	seen := make(map[T]bool, len(in))
	for _, v := range in {
		v = T(strings.TrimSpace(string(v)))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFactor(f float64) string {
	return "×" + strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
