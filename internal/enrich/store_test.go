package enrich_test

import (
	"context"
	"strings"
	"time"

	"github.com/OWDB/OWDB-Backend/internal/utils"
	"github.com/OWDB/OWDB-Backend/internal/wrestlers"
	"github.com/google/uuid"
)

// memStore implements enrich.ProfileStore in memory. Profiles are kept in
// insertion order, which stands in for created_at order.
type memStore struct {
	profiles []*wrestlers.Wrestler
	saves    int
	saveErr  error
	findErr  error
	countErr error
}

func newMemStore(profiles ...*wrestlers.Wrestler) *memStore {
	s := &memStore{}
	for _, p := range profiles {
		s.add(p)
	}
	return s
}

func (s *memStore) add(p *wrestlers.Wrestler) *wrestlers.Wrestler {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Slug == "" {
		p.Slug = utils.Slugify(p.Name)
	}
	s.profiles = append(s.profiles, p)
	return p
}

func (s *memStore) find(match func(*wrestlers.Wrestler) bool) (*wrestlers.Wrestler, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, p := range s.profiles {
		if match(p) {
			c := *p
			return &c, nil
		}
	}
	return nil, wrestlers.ErrNotFound
}

func (s *memStore) FindByNameExact(_ context.Context, name string) (*wrestlers.Wrestler, error) {
	return s.find(func(p *wrestlers.Wrestler) bool { return strings.EqualFold(p.Name, name) })
}

func (s *memStore) FindBySlug(_ context.Context, slug string) (*wrestlers.Wrestler, error) {
	return s.find(func(p *wrestlers.Wrestler) bool { return p.Slug == slug })
}

func (s *memStore) FindByNameContains(_ context.Context, token string) (*wrestlers.Wrestler, error) {
	token = strings.ToLower(token)
	return s.find(func(p *wrestlers.Wrestler) bool { return strings.Contains(strings.ToLower(p.Name), token) })
}

func (s *memStore) Save(_ context.Context, w *wrestlers.Wrestler) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	for i, p := range s.profiles {
		if p.ID == w.ID {
			c := *w
			s.profiles[i] = &c
			return nil
		}
	}
	return wrestlers.ErrNotFound
}

func (s *memStore) Count(context.Context) (int64, error) {
	return int64(len(s.profiles)), s.countErr
}

func (s *memStore) get(name string) *wrestlers.Wrestler {
	for _, p := range s.profiles {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
