package catalog

import "github.com/shopspring/decimal"

var defaultCatalog = MustNew(DefaultTables())

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// DefaultTables returns the built-in reference data.
func DefaultTables() Tables {
	return Tables{
		Contents: []ContentType{
			{
				ID:           "launchFilm",
				Label:        "Launch Trailer (cinematic)",
				BasePrice:    2000,
				Complexity:   3,
				MinTimeWeeks: 3,
				ChannelMultipliers: map[ChannelID]float64{
					"website": 1.3, "twitter": 0.9, "tiktok": 1.2, "instagram": 1.1, "telegram": 0.8, "discord": 0.8,
				},
			},
			{
				ID:           "memes",
				Label:        "Meme Assets",
				BasePrice:    500,
				Complexity:   1,
				MinTimeWeeks: 1,
				ChannelMultipliers: map[ChannelID]float64{
					"twitter": 1.2, "tiktok": 1.1, "instagram": 1.0, "telegram": 0.9, "discord": 0.9,
				},
			},
			{
				ID:           "stickers",
				Label:        "Stickers / GIFs",
				BasePrice:    300,
				Complexity:   1,
				MinTimeWeeks: 1,
				ChannelMultipliers: map[ChannelID]float64{
					"telegram": 1.3, "discord": 1.2, "twitter": 0.8, "instagram": 0.9,
				},
			},
			{
				ID:           "shorts",
				Label:        "Shortform Verticals (TikTok/Reels)",
				BasePrice:    800,
				Complexity:   2,
				MinTimeWeeks: 2,
				ChannelMultipliers: map[ChannelID]float64{
					"tiktok": 1.3, "instagram": 1.2, "youtube": 1.1,
				},
			},
			{
				ID:                 "webAssets",
				Label:              "Website Assets (hero, banners)",
				BasePrice:          800,
				Complexity:         2,
				MinTimeWeeks:       2,
				ChannelMultipliers: map[ChannelID]float64{"website": 1.5},
			},
			{
				ID:           "nftSeed",
				Label:        "NFT/PFP Collection (100+ assets)",
				BasePrice:    3000,
				Complexity:   4,
				MinTimeWeeks: 4,
				ChainBonus: map[ChainID]float64{
					"ethereum": 2000, "solana": 1500, "base": 1000, "other": 500,
				},
			},
			{ID: "merchArt", Label: "Merch Art (design only)", BasePrice: 400, Complexity: 1, MinTimeWeeks: 1},
			{ID: "brandKit", Label: "Brand Kit (logo, colors, fonts)", BasePrice: 1200, Complexity: 2, MinTimeWeeks: 2},
			{
				ID:           "motionGraphics",
				Label:        "Motion Graphics Package",
				BasePrice:    1500,
				Complexity:   3,
				MinTimeWeeks: 3,
				ChannelMultipliers: map[ChannelID]float64{
					"website": 1.2, "instagram": 1.1, "tiktok": 1.1,
				},
			},
		},
		Channels: []Channel{
			{ID: "twitter", Label: "Twitter / X"},
			{ID: "tiktok", Label: "TikTok"},
			{ID: "telegram", Label: "Telegram"},
			{ID: "discord", Label: "Discord"},
			{ID: "instagram", Label: "Instagram / Reels"},
			{ID: "website", Label: "Website / Landing"},
		},
		Styles: []Style{
			{ID: "schizo", Label: "Schizo / meme-native"},
			{ID: "cinematic", Label: "Cinematic / 3D"},
			{ID: "minimal", Label: "Minimal / clean"},
			{ID: "dark", Label: "Dark / edgy"},
			{ID: "whimsical", Label: "Whimsical / absurd"},
			{ID: "cartoonish", Label: "Cartoonish / playful"},
			{ID: "animalMemes", Label: "Animal Memes / funny"},
		},
		StyleMultipliers: map[StyleID]float64{
			"cinematic":   1.5,
			"schizo":      1.2,
			"minimal":     1.0,
			"dark":        1.1,
			"whimsical":   1.3,
			"cartoonish":  1.4,
			"animalMemes": 1.25,
		},
		Chains: []Chain{
			{ID: "base", Label: "Base"},
			{ID: "solana", Label: "Solana"},
			{ID: "ethereum", Label: "Ethereum"},
			{ID: "other", Label: "Other"},
		},
		ChainFactors: map[ChainID]float64{
			"ethereum":  1.5,
			"solana":    1.3,
			"polygon":   1.2,
			"arbitrum":  1.2,
			"optimism":  1.2,
			"base":      1.2,
			"avalanche": 1.1,
			"bsc":       1.1,
		},
		Packages: []Package{
			{
				Tier:     TierStudio,
				Name:     "Studio Package",
				MinPrice: 2500,
				Blurb:    "Premium first impression + steady social oxygen. Dedicated Producer.",
				Deliverables: []string{
					"Brand Kit v1 (logo, color, type, motion basics)",
					"1× Launch Film (30–60s) + platform cuts",
					"15–20 memes + 6–8 vertical shorts",
					"Website starter art (hero + 2 sections)",
					"Weekly review, 24–48h hotfix lane",
				},
			},
			{
				Tier:     TierMindshare,
				Name:     "Momentum Package",
				MinPrice: 9000,
				Blurb:    "Ideal for projects scaling quickly, featuring a full creative suite with enhanced production.",
				Deliverables: []string{
					"Expanded Brand System (icons, FX library, motion grammar)",
					"2× Launch Films (30–90s; mixed 3D + edit) + alt endings",
					"30–40 memes + 12–16 shorts + sticker/GIF set",
					"Website art pack (hero + 4–6 sections, animated headers)",
					"NFT/PFP seed set (up to 100 assets)",
				},
			},
			{
				Tier:     TierBlacksite,
				Name:     "Blacksite Launch Package",
				MinPrice: 20000,
				Blurb:    "For VC-backed or institutional launches requiring maximum production value and dedicated resources.",
				Deliverables: []string{
					"Narrative Bible + full Visual OS",
					"3× Cinematic Films (teaser, main, lore vignette) with custom 3D",
					"70–100 assets across memes/shorts/stickers/GIFs",
					"Website system + modular scene library",
					"Capsule merch art design (print-ready)",
				},
			},
		},
		StoreSKUs: []StoreSKU{
			{ID: "zealy", Title: "Zealy Quest System Setup", Price: 1500, Description: "Quest tree, tiers, reward logic, bot integration, graphics kit"},
			{ID: "discord", Title: "Discord HQ Build", Price: 1200, Description: "Roles, channels, guardrails, onboarding flows"},
			{ID: "airdrop", Title: "Coming Soon", Price: 2000, Description: "TBD"},
			{ID: "sticker", Title: "Sticker Pack (+10)", Price: 500, Description: "Customized sticker set"},
			{ID: "callkit", Title: "KOL INTRO", Price: 800, Description: "Copy blocks, hooks, do/don'ts, asset pack"},
			{ID: "site", Title: "Launch Site", Price: 2200, Description: "Hero, sections, token/NFT cards, countdown"},
			{ID: "notion", Title: "Advisory", Price: 700, Description: "Lead → Proposal → Active → Case Study pipeline"},
			{ID: "anim", Title: "3D Animation", Price: 800, Description: "SVG/Lottie loops, hover states"},
			{ID: "brand", Title: "Brand Package", Price: 1800, Description: "Complete brand kit: logo suite, color palette, typography, social templates, brand guidelines, content calendar, bio optimization"},
			{ID: "social", Title: "Social Media Management", Price: 2500, Description: "30-day content calendar, post templates, story highlights, bio optimization, engagement strategy"},
			{ID: "audit", Title: "Brand Audit & Strategy", Price: 1200, Description: "Competitive analysis, brand positioning, messaging framework, growth recommendations"},
			{ID: "influencer", Title: "Influencer Kit", Price: 900, Description: "Media kit, rate card, collaboration templates, brand deck, pitch materials"},
		},
		MerchItems: []MerchItem{
			{ID: "hat", Title: "PSX Hat", BaseCost: 10},
			{ID: "tee", Title: "PSX T-Shirt", BaseCost: 20},
			{ID: "hoodie", Title: "PSX Hoodie", BaseCost: 45},
			{ID: "sticker", Title: "PSX Sticker", BaseCost: 2},
		},
		ShopItems: []ShopItem{
			{ID: "hoodie", Name: "PSX Hoodie", Price: decimal.RequireFromString("79.99"), Sizes: []string{"S", "M", "L", "XL", "2XL"}},
			{ID: "hat", Name: "PSX Snapback", Price: decimal.RequireFromString("34.99"), Sizes: []string{"One Size"}},
		},
		Timelines: []Timeline{TimelineRush, TimelineStandard, TimelineExtended},
	}
}
