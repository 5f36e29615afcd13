package catalogdb

import (
	"context"
	"fmt"

	"github.com/psxcreative/engine/internal/catalog"
	"github.com/psxcreative/engine/internal/db"
	"github.com/psxcreative/engine/internal/migrations"
	"github.com/psxcreative/engine/internal/seed"
)

// Bootstrap opens the catalog database at path, migrates it, seeds the
// built-in catalog into an empty database and loads the result. The database
// is closed before returning; the Catalog does not depend on it.
func Bootstrap(ctx context.Context, path string) (*catalog.Catalog, bool, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		return nil, false, err
	}

	empty, err := Empty(ctx, database)
	if err != nil {
		return nil, false, err
	}
	if empty {
		if _, err := seed.Default(database, seed.Options{}); err != nil {
			return nil, false, fmt.Errorf("seed catalog: %w", err)
		}
	}

	c, err := Load(ctx, database)
	if err != nil {
		return nil, false, err
	}
	return c, empty, nil
}
