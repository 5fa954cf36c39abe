package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// ResolveBrand maps a brand display name to its row id, creating the row if it
// does not exist yet. The lookup and the insert are one statement, so two
// concurrent imports resolving the same new name can never race each other
// into a duplicate: the conflict branch is a no-op update that still makes
// RETURNING yield the existing id.
//
// An empty or missing name resolves to no reference (nil, nil), not an error.
func ResolveBrand(ctx context.Context, tx *sql.Tx, name string) (*int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	const query = `
		INSERT INTO brands (name, slug)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	var id int64
	if err := tx.QueryRowContext(ctx, query, name, slug.Make(name)).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to resolve brand %q: %w", name, err)
	}
	return &id, nil
}
