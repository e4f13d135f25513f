package seeds

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/OWDB/OWDB-Backend/internal/wrestlers"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is what the roster seeder needs from the wrestler store.
type Store interface {
	FindByNameExact(ctx context.Context, name string) (*wrestlers.Wrestler, error)
	FindBySlug(ctx context.Context, slug string) (*wrestlers.Wrestler, error)
	Create(ctx context.Context, w *wrestlers.Wrestler) error
}

type Result struct {
	Created int
	Skipped int
}

// SeedRoster creates a bare profile (name, slug, wikipedia_url) for every
// row that has no profile yet, matched by exact name or slug. Existing
// profiles are never touched.
func SeedRoster(ctx context.Context, store Store, rows []RosterRow, ns uuid.UUID, dryRun bool, out io.Writer, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var res Result

	fmt.Fprintf(out, "\n=== Seeding Wrestler Profiles ===\n\n")

	for _, row := range rows {
		found, err := exists(ctx, store, row)
		if err != nil {
			return res, fmt.Errorf("lookup %q: %w", row.Name, err)
		}
		if found {
			logger.Debug("wrestler exists, skipping", zap.String("wrestler", row.Name))
			res.Skipped++
			continue
		}

		w := &wrestlers.Wrestler{
			ID:   WrestlerID(ns, row.Slug),
			Name: row.Name,
			Slug: row.Slug,
		}
		if row.WikipediaURL != "" {
			url := row.WikipediaURL
			w.WikipediaURL = &url
		}

		if !dryRun {
			if err := store.Create(ctx, w); err != nil {
				return res, fmt.Errorf("failed to create wrestler %s: %w", row.Name, err)
			}
		}
		fmt.Fprintf(out, "  Created: %s\n", row.Name)
		res.Created++
	}

	fmt.Fprintf(out, "\nCreated %d, skipped %d existing\n", res.Created, res.Skipped)
	logger.Info("roster seeded",
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped),
		zap.Bool("dry_run", dryRun),
	)
	return res, nil
}

func exists(ctx context.Context, store Store, row RosterRow) (bool, error) {
	for _, find := range []func() (*wrestlers.Wrestler, error){
		func() (*wrestlers.Wrestler, error) { return store.FindByNameExact(ctx, row.Name) },
		func() (*wrestlers.Wrestler, error) { return store.FindBySlug(ctx, row.Slug) },
	} {
		w, err := find()
		if errors.Is(err, wrestlers.ErrNotFound) {
			continue
		}
		if err != nil {
			return false, err
		}
		if w != nil {
			return true, nil
		}
	}
	return false, nil
}
