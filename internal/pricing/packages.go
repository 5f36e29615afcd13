package pricing

import (
	"math"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/psxcreative/engine/internal/catalog"
)

// PackageDetails is a tier's static package data plus what the selection adds.
type PackageDetails struct {
	catalog.Package
	Price        float64  `json:"price"`
	DisplayPrice string   `json:"displayPrice"`
	Features     []string `json:"features"`
}

// Quote bundles everything the configurator shows for a selection.
type Quote struct {
	Estimate
	Score   float64        `json:"score"`
	Package PackageDetails `json:"package"`
}

// FormatUSD renders a whole-dollar amount with thousands separators.
func FormatUSD(amount float64) string {
	return message.NewPrinter(language.English).Sprintf("$%d", int64(math.Round(amount)))
}

// Quote prices sel and describes the recommended package.
func (e *Engine) Quote(sel Selection) Quote {
	est := e.EstimateTotal(sel)
	return Quote{
		Estimate: est,
		Score:    e.Score(sel),
		Package:  e.PackageDetails(sel, est.Tier, est.Total),
	}
}

// PackageDetails describes the package for tier as priced at estimate.
func (e *Engine) PackageDetails(sel Selection, tier catalog.Tier, estimate float64) PackageDetails {
	sel = normalize(sel)
	pkg := e.catalog.Package(tier)

	return PackageDetails{
		Package:      pkg,
		Price:        estimate,
		DisplayPrice: displayPrice(pkg, estimate),
		Features:     e.features(sel, pkg.Tier),
	}
}

func displayPrice(pkg catalog.Package, estimate float64) string {
	priced := estimate >= pkg.MinPrice
	switch pkg.Tier {
	case catalog.TierMindshare:
		if priced {
			return FormatUSD(estimate)
		}
		return "$10,000–12,000"
	case catalog.TierBlacksite:
		if priced {
			return FormatUSD(estimate) + "+"
		}
		return FormatUSD(pkg.MinPrice) + "+"
	}
	if priced {
		return FormatUSD(estimate)
	}
	return "$5,000"
}

func (e *Engine) features(sel Selection, tier catalog.Tier) []string {
	blacksite := tier == catalog.TierBlacksite
	features := []string{"Creative Pipeline & Brand Foundation ($1,500)"}

	if slices.Contains(sel.Content, catalog.ContentLaunchFilm) {
		if blacksite {
			features = append(features, "3x Cinematic Trailers (3D, schizo edits, TikTok cutdowns)")
		} else {
			features = append(features, "Launch Trailer (60-90 seconds, professional edit)")
		}
	}

	if slices.Contains(sel.Content, catalog.ContentNFTSeed) {
		if blacksite {
			features = append(features,
				"NFT/PFP Collection: Up to 500 assets (custom 2D/3D)",
				"Metadata and rarity distribution included",
			)
		} else {
			features = append(features, "NFT/PFP Design: Up to 100 assets")
		}
	}

	if slices.Contains(sel.Styles, catalog.StyleCinematic) {
		features = append(features, "Cinematic Quality Premium (3D rendering, advanced post-production)")
	}

	switch sel.Timeline {
	case catalog.TimelineRush:
		features = append(features, "Timeline: Rush delivery (2-4 weeks) - Priority scheduling applied")
	case catalog.TimelineStandard:
		features = append(features, "Timeline: Standard delivery (1-2 months)")
	default:
		features = append(features, "Timeline: Extended timeline (2+ months) - Flexible scheduling")
	}

	labels := make([]string, 0, len(sel.Channels))
	for _, id := range sel.Channels {
		if ch, ok := e.catalog.Channel(id); ok {
			labels = append(labels, ch.Label)
		}
	}
	if len(labels) > 0 {
		features = append(features, "Optimized for: "+strings.Join(labels, ", "))
	}

	return features
}
