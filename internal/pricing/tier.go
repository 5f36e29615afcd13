package pricing

import (
	"slices"

	"github.com/psxcreative/engine/internal/catalog"
)

const (
	blacksiteBudget = 15000.0
	mindshareBudget = 8000.0

	mindshareScore = 6.0
	blacksiteScore = 8.0
	studioScoreCap = 2.0
)

// Score is the complexity score used to escalate the budget-based tier.
func (e *Engine) Score(sel Selection) float64 {
	sel = normalize(sel)
	score := 0.0

	for _, id := range sel.Content {
		if ct, ok := e.catalog.Content(id); ok {
			score += ct.Complexity
		}
	}

	if slices.Contains(sel.Styles, catalog.StyleCinematic) {
		score += 2
	}
	if slices.Contains(sel.Styles, catalog.StyleSchizo) {
		score++
	}
	if len(sel.Styles) > 1 {
		score++
	}

	score += 0.5 * float64(len(sel.Channels))
	if len(sel.Channels) >= coordinationMinimum {
		score++
	}

	switch sel.Timeline {
	case catalog.TimelineRush:
		score += 2
	case catalog.TimelineStandard:
		score++
	}

	switch catalog.NormalizeChain(sel.Chain) {
	case catalog.ChainEthereum:
		score++
	case catalog.ChainSolana:
		score += 0.5
	}

	return score
}

// RecommendTier picks the package tier: a base tier from the budget, raised
// (never lowered) by the complexity score.
func (e *Engine) RecommendTier(sel Selection) catalog.Tier {
	sel = normalize(sel)
	tier := budgetTier(sel.Budget)
	score := e.Score(sel)

	if tier == catalog.TierStudio && score >= mindshareScore {
		tier = catalog.TierMindshare
	}
	if tier == catalog.TierMindshare && score >= blacksiteScore {
		tier = catalog.TierBlacksite
	}
	// Low-complexity projects stay on studio. Escalation only raises, so this
	// never changes the result.
	if tier == catalog.TierStudio && score <= studioScoreCap {
		tier = catalog.TierStudio
	}

	return tier
}

func budgetTier(budget float64) catalog.Tier {
	switch {
	case budget >= blacksiteBudget:
		return catalog.TierBlacksite
	case budget >= mindshareBudget:
		return catalog.TierMindshare
	}
	return catalog.TierStudio
}
