// Package seed writes catalog reference data into the catalog database.
package seed

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/psxcreative/engine/internal/catalog"
)

// Options controls how existing rows are treated.
type Options struct {
	// Overwrite updates rows whose values differ from the seed. Without it,
	// existing rows are kept as edited and only missing rows are inserted.
	Overwrite bool
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run seeds t in one transaction. It is idempotent: a second run with the same
// tables reports no inserts and no updates. Rows absent from t are never deleted.
func Run(db *sql.DB, t catalog.Tables, opts Options) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	s := &seeder{tx: tx, opts: opts}
	steps := []func(catalog.Tables) error{
		s.contents,
		s.channels,
		s.styles,
		s.chains,
		s.packages,
		s.store,
		s.merch,
		s.shop,
		s.timelines,
	}
	for _, step := range steps {
		if err := step(t); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}
	return s.stats, nil
}

// Default seeds the built-in catalog.
func Default(db *sql.DB, opts Options) (Stats, error) {
	return Run(db, catalog.DefaultTables(), opts)
}

type seeder struct {
	tx    *sql.Tx
	opts  Options
	stats Stats
}

// col is one column name and value.
type col struct {
	name  string
	value any
}

// ensure inserts the row identified by keys, or updates its values when they
// differ and overwriting is enabled.
func (s *seeder) ensure(table string, keys, values []col) error {
	where := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		where[i] = k.name + " = ?"
		args[i] = k.value
	}

	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.name
	}

	current := make([]any, len(values))
	dest := make([]any, len(values))
	for i := range current {
		dest[i] = &current[i]
	}

	err := s.tx.QueryRow(
		`SELECT `+strings.Join(names, ", ")+` FROM `+table+` WHERE `+strings.Join(where, " AND "),
		args...,
	).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return s.insert(table, append(append([]col{}, keys...), values...))
	}
	if err != nil {
		return fmt.Errorf("check %s row existence: %w", table, err)
	}

	if !s.opts.Overwrite || sameValues(current, values) {
		return nil
	}

	set := make([]string, len(values))
	updateArgs := make([]any, 0, len(values)+len(keys))
	for i, v := range values {
		set[i] = v.name + " = ?"
		updateArgs = append(updateArgs, v.value)
	}
	updateArgs = append(updateArgs, args...)

	if _, err := s.tx.Exec(
		`UPDATE `+table+` SET `+strings.Join(set, ", ")+` WHERE `+strings.Join(where, " AND "),
		updateArgs...,
	); err != nil {
		return fmt.Errorf("update %s row: %w", table, err)
	}
	s.stats.Updates++
	return nil
}

func (s *seeder) insert(table string, cols []col) error {
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = c.name
		marks[i] = "?"
		args[i] = c.value
	}

	if _, err := s.tx.Exec(
		`INSERT INTO `+table+` (`+strings.Join(names, ", ")+`) VALUES (`+strings.Join(marks, ", ")+`)`,
		args...,
	); err != nil {
		return fmt.Errorf("insert %s row: %w", table, err)
	}
	s.stats.Inserts++
	return nil
}

func sameValues(current []any, want []col) bool {
	for i, v := range want {
		if fmt.Sprint(normalize(current[i])) != fmt.Sprint(normalize(v.value)) {
			return false
		}
	}
	return true
}

func normalize(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	}
	return v
}

func (s *seeder) contents(t catalog.Tables) error {
	for i, ct := range t.Contents {
		if err := s.ensure("content_types",
			[]col{{"id", string(ct.ID)}},
			[]col{
				{"position", i},
				{"label", ct.Label},
				{"base_price", ct.BasePrice},
				{"complexity", ct.Complexity},
				{"min_time_weeks", ct.MinTimeWeeks},
			},
		); err != nil {
			return err
		}
		for ch, f := range ct.ChannelMultipliers {
			if err := s.ensure("content_channel_multipliers",
				[]col{{"content_id", string(ct.ID)}, {"channel_id", string(ch)}},
				[]col{{"multiplier", f}},
			); err != nil {
				return err
			}
		}
		for chain, bonus := range ct.ChainBonus {
			if err := s.ensure("content_chain_bonuses",
				[]col{{"content_id", string(ct.ID)}, {"chain_id", string(chain)}},
				[]col{{"bonus", bonus}},
			); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *seeder) channels(t catalog.Tables) error {
	for i, ch := range t.Channels {
		if err := s.ensure("channels",
			[]col{{"id", string(ch.ID)}},
			[]col{{"position", i}, {"label", ch.Label}},
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) styles(t catalog.Tables) error {
	for i, st := range t.Styles {
		if err := s.ensure("styles",
			[]col{{"id", string(st.ID)}},
			[]col{{"position", i}, {"label", st.Label}},
		); err != nil {
			return err
		}
	}
	for id, f := range t.StyleMultipliers {
		if err := s.ensure("style_multipliers",
			[]col{{"style_id", string(id)}},
			[]col{{"multiplier", f}},
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) chains(t catalog.Tables) error {
	for i, c := range t.Chains {
		if err := s.ensure("chains",
			[]col{{"id", string(c.ID)}},
			[]col{{"position", i}, {"label", c.Label}},
		); err != nil {
			return err
		}
	}
	for id, f := range t.ChainFactors {
		if err := s.ensure("chain_factors",
			[]col{{"chain_id", string(id)}},
			[]col{{"factor", f}},
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) packages(t catalog.Tables) error {
	for i, p := range t.Packages {
		if err := s.ensure("packages",
			[]col{{"tier", string(p.Tier)}},
			[]col{{"position", i}, {"name", p.Name}, {"min_price", p.MinPrice}, {"blurb", p.Blurb}},
		); err != nil {
			return err
		}
		for j, d := range p.Deliverables {
			if err := s.ensure("package_deliverables",
				[]col{{"tier", string(p.Tier)}, {"position", j}},
				[]col{{"deliverable", d}},
			); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *seeder) store(t catalog.Tables) error {
	for i, sku := range t.StoreSKUs {
		if err := s.ensure("store_skus",
			[]col{{"id", sku.ID}},
			[]col{{"position", i}, {"title", sku.Title}, {"price", sku.Price}, {"description", sku.Description}},
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) merch(t catalog.Tables) error {
	for i, m := range t.MerchItems {
		if err := s.ensure("merch_items",
			[]col{{"id", m.ID}},
			[]col{{"position", i}, {"title", m.Title}, {"base_cost", m.BaseCost}},
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) shop(t catalog.Tables) error {
	for i, item := range t.ShopItems {
		if err := s.ensure("shop_items",
			[]col{{"id", item.ID}},
			[]col{{"position", i}, {"name", item.Name}, {"price", item.Price.String()}},
		); err != nil {
			return err
		}
		for j, size := range item.Sizes {
			if err := s.ensure("shop_item_sizes",
				[]col{{"item_id", item.ID}, {"position", j}},
				[]col{{"size", size}},
			); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *seeder) timelines(t catalog.Tables) error {
	timelines := t.Timelines
	if len(timelines) == 0 {
		timelines = catalog.Timelines
	}
	for i, tl := range timelines {
		if err := s.ensure("timelines",
			[]col{{"value", string(tl)}},
			[]col{{"position", i}},
		); err != nil {
			return err
		}
	}
	return nil
}
