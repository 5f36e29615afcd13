package catalog

// Tier is a service package.
type Tier string

const (
	TierStudio    Tier = "studio"
	TierMindshare Tier = "mindshare"
	TierBlacksite Tier = "blacksite"
)

// Tiers lists the tiers in ascending order.
var Tiers = []Tier{TierStudio, TierMindshare, TierBlacksite}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	switch t {
	case TierStudio, TierMindshare, TierBlacksite:
		return true
	}
	return false
}

// Rank orders tiers: studio 1, mindshare 2, blacksite 3, unknown 0.
func (t Tier) Rank() int {
	switch t {
	case TierStudio:
		return 1
	case TierMindshare:
		return 2
	case TierBlacksite:
		return 3
	}
	return 0
}

// Timeline is the requested delivery window.
type Timeline string

const (
	TimelineRush     Timeline = "2-4 weeks"
	TimelineStandard Timeline = "1-2 months"
	TimelineExtended Timeline = "3+ months"
)

// Timelines lists the selectable delivery windows.
var Timelines = []Timeline{TimelineRush, TimelineStandard, TimelineExtended}

// Valid reports whether t is a known timeline.
func (t Timeline) Valid() bool {
	switch t {
	case TimelineRush, TimelineStandard, TimelineExtended:
		return true
	}
	return false
}

// Weeks is the number of production weeks the timeline allows. Anything that
// is not one of the two short windows counts as twelve weeks.
func (t Timeline) Weeks() int {
	switch t {
	case TimelineRush:
		return 3
	case TimelineStandard:
		return 6
	}
	return 12
}

// MerchMethod is the merch fulfillment model.
type MerchMethod string

const (
	MethodPOD  MerchMethod = "POD"
	MethodBulk MerchMethod = "Bulk"
)

// PODMinimumUnits is the run size print-on-demand orders are priced at, at least.
const PODMinimumUnits = 50

// MerchPlatform is the storefront merch is sold through.
type MerchPlatform string

const (
	PlatformShopify MerchPlatform = "Shopify"
	PlatformWhop    MerchPlatform = "Whop"
	PlatformGumroad MerchPlatform = "Gumroad"
)

// Valid reports whether p is a known platform.
func (p MerchPlatform) Valid() bool {
	switch p {
	case PlatformShopify, PlatformWhop, PlatformGumroad:
		return true
	}
	return false
}

// Well-known ids the pricing rules refer to by name.
const (
	StyleCinematic StyleID = "cinematic"
	StyleSchizo    StyleID = "schizo"

	ChainEthereum ChainID = "ethereum"
	ChainSolana   ChainID = "solana"
	ChainBase     ChainID = "base"

	ContentLaunchFilm ContentID = "launchFilm"
	ContentNFTSeed    ContentID = "nftSeed"
)
