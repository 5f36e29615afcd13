// Package catalogdb reads the catalog reference data out of SQLite.
package catalogdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/psxcreative/engine/internal/catalog"
)

// Empty reports whether no content types have been seeded yet.
func Empty(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM content_types`).Scan(&n); err != nil {
		return false, fmt.Errorf("count content types: %w", err)
	}
	return n == 0, nil
}

// Load reads all tables and builds a validated Catalog.
func Load(ctx context.Context, db *sql.DB) (*catalog.Catalog, error) {
	t, err := LoadTables(ctx, db)
	if err != nil {
		return nil, err
	}
	c, err := catalog.New(t)
	if err != nil {
		return nil, fmt.Errorf("build catalog from database: %w", err)
	}
	return c, nil
}

// LoadTables reads the raw reference data in display order.
func LoadTables(ctx context.Context, db *sql.DB) (catalog.Tables, error) {
	var t catalog.Tables
	r := reader{ctx: ctx, db: db}

	steps := []func(*catalog.Tables) error{
		r.contents,
		r.channels,
		r.styles,
		r.chains,
		r.packages,
		r.store,
		r.merch,
		r.shop,
		r.timelines,
	}
	for _, step := range steps {
		if err := step(&t); err != nil {
			return catalog.Tables{}, err
		}
	}
	return t, nil
}

type reader struct {
	ctx context.Context
	db  *sql.DB
}

// each runs query and calls scan once per row.
func (r reader) each(table, query string, scan func(*sql.Rows) error) error {
	rows, err := r.db.QueryContext(r.ctx, query)
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", table, err)
	}
	return nil
}

func (r reader) contents(t *catalog.Tables) error {
	index := map[catalog.ContentID]int{}
	err := r.each("content_types",
		`SELECT id, label, base_price, complexity, min_time_weeks FROM content_types ORDER BY position, id`,
		func(rows *sql.Rows) error {
			var ct catalog.ContentType
			if err := rows.Scan(&ct.ID, &ct.Label, &ct.BasePrice, &ct.Complexity, &ct.MinTimeWeeks); err != nil {
				return err
			}
			index[ct.ID] = len(t.Contents)
			t.Contents = append(t.Contents, ct)
			return nil
		})
	if err != nil {
		return err
	}

	err = r.each("content_channel_multipliers",
		`SELECT content_id, channel_id, multiplier FROM content_channel_multipliers`,
		func(rows *sql.Rows) error {
			var (
				id  catalog.ContentID
				ch  catalog.ChannelID
				mul float64
			)
			if err := rows.Scan(&id, &ch, &mul); err != nil {
				return err
			}
			ct := &t.Contents[index[id]]
			if ct.ChannelMultipliers == nil {
				ct.ChannelMultipliers = map[catalog.ChannelID]float64{}
			}
			ct.ChannelMultipliers[ch] = mul
			return nil
		})
	if err != nil {
		return err
	}

	return r.each("content_chain_bonuses",
		`SELECT content_id, chain_id, bonus FROM content_chain_bonuses`,
		func(rows *sql.Rows) error {
			var (
				id    catalog.ContentID
				chain catalog.ChainID
				bonus float64
			)
			if err := rows.Scan(&id, &chain, &bonus); err != nil {
				return err
			}
			ct := &t.Contents[index[id]]
			if ct.ChainBonus == nil {
				ct.ChainBonus = map[catalog.ChainID]float64{}
			}
			ct.ChainBonus[chain] = bonus
			return nil
		})
}

func (r reader) channels(t *catalog.Tables) error {
	return r.each("channels", `SELECT id, label FROM channels ORDER BY position, id`, func(rows *sql.Rows) error {
		var ch catalog.Channel
		if err := rows.Scan(&ch.ID, &ch.Label); err != nil {
			return err
		}
		t.Channels = append(t.Channels, ch)
		return nil
	})
}

func (r reader) styles(t *catalog.Tables) error {
	err := r.each("styles", `SELECT id, label FROM styles ORDER BY position, id`, func(rows *sql.Rows) error {
		var st catalog.Style
		if err := rows.Scan(&st.ID, &st.Label); err != nil {
			return err
		}
		t.Styles = append(t.Styles, st)
		return nil
	})
	if err != nil {
		return err
	}

	t.StyleMultipliers = map[catalog.StyleID]float64{}
	return r.each("style_multipliers", `SELECT style_id, multiplier FROM style_multipliers`, func(rows *sql.Rows) error {
		var (
			id  catalog.StyleID
			mul float64
		)
		if err := rows.Scan(&id, &mul); err != nil {
			return err
		}
		t.StyleMultipliers[id] = mul
		return nil
	})
}

func (r reader) chains(t *catalog.Tables) error {
	err := r.each("chains", `SELECT id, label FROM chains ORDER BY position, id`, func(rows *sql.Rows) error {
		var c catalog.Chain
		if err := rows.Scan(&c.ID, &c.Label); err != nil {
			return err
		}
		t.Chains = append(t.Chains, c)
		return nil
	})
	if err != nil {
		return err
	}

	t.ChainFactors = map[catalog.ChainID]float64{}
	return r.each("chain_factors", `SELECT chain_id, factor FROM chain_factors`, func(rows *sql.Rows) error {
		var (
			id     catalog.ChainID
			factor float64
		)
		if err := rows.Scan(&id, &factor); err != nil {
			return err
		}
		t.ChainFactors[id] = factor
		return nil
	})
}

func (r reader) packages(t *catalog.Tables) error {
	index := map[catalog.Tier]int{}
	err := r.each("packages", `SELECT tier, name, min_price, blurb FROM packages ORDER BY position, tier`, func(rows *sql.Rows) error {
		var p catalog.Package
		if err := rows.Scan(&p.Tier, &p.Name, &p.MinPrice, &p.Blurb); err != nil {
			return err
		}
		index[p.Tier] = len(t.Packages)
		t.Packages = append(t.Packages, p)
		return nil
	})
	if err != nil {
		return err
	}

	return r.each("package_deliverables",
		`SELECT tier, deliverable FROM package_deliverables ORDER BY tier, position`,
		func(rows *sql.Rows) error {
			var (
				tier catalog.Tier
				d    string
			)
			if err := rows.Scan(&tier, &d); err != nil {
				return err
			}
			p := &t.Packages[index[tier]]
			p.Deliverables = append(p.Deliverables, d)
			return nil
		})
}

func (r reader) store(t *catalog.Tables) error {
	return r.each("store_skus", `SELECT id, title, price, description FROM store_skus ORDER BY position, id`, func(rows *sql.Rows) error {
		var s catalog.StoreSKU
		if err := rows.Scan(&s.ID, &s.Title, &s.Price, &s.Description); err != nil {
			return err
		}
		t.StoreSKUs = append(t.StoreSKUs, s)
		return nil
	})
}

func (r reader) merch(t *catalog.Tables) error {
	return r.each("merch_items", `SELECT id, title, base_cost FROM merch_items ORDER BY position, id`, func(rows *sql.Rows) error {
		var m catalog.MerchItem
		if err := rows.Scan(&m.ID, &m.Title, &m.BaseCost); err != nil {
			return err
		}
		t.MerchItems = append(t.MerchItems, m)
		return nil
	})
}

func (r reader) shop(t *catalog.Tables) error {
	index := map[string]int{}
	err := r.each("shop_items", `SELECT id, name, price FROM shop_items ORDER BY position, id`, func(rows *sql.Rows) error {
		var (
			s     catalog.ShopItem
			price string
		)
		if err := rows.Scan(&s.ID, &s.Name, &price); err != nil {
			return err
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return fmt.Errorf("shop item %q price: %w", s.ID, err)
		}
		s.Price = d
		index[s.ID] = len(t.ShopItems)
		t.ShopItems = append(t.ShopItems, s)
		return nil
	})
	if err != nil {
		return err
	}

	return r.each("shop_item_sizes", `SELECT item_id, size FROM shop_item_sizes ORDER BY item_id, position`, func(rows *sql.Rows) error {
		var id, size string
		if err := rows.Scan(&id, &size); err != nil {
			return err
		}
		s := &t.ShopItems[index[id]]
		s.Sizes = append(s.Sizes, size)
		return nil
	})
}

func (r reader) timelines(t *catalog.Tables) error {
	return r.each("timelines", `SELECT value FROM timelines ORDER BY position`, func(rows *sql.Rows) error {
		var tl catalog.Timeline
		if err := rows.Scan(&tl); err != nil {
			return err
		}
		t.Timelines = append(t.Timelines, tl)
		return nil
	})
}
