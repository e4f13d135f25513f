package wrestlers

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("wrestler not found")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository is the gorm-backed wrestler store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByNameExact matches the display name case-insensitively.
func (r *Repository) FindByNameExact(ctx context.Context, name string) (*Wrestler, error) {
	return r.first(ctx, "LOWER(name) = LOWER(?)", name)
}

func (r *Repository) FindBySlug(ctx context.Context, slug string) (*Wrestler, error) {
	return r.first(ctx, "slug = ?", slug)
}

// FindByNameContains returns the oldest profile whose name contains token,
// ignoring case. LIKE wildcards in token match literally.
func (r *Repository) FindByNameContains(ctx context.Context, token string) (*Wrestler, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(token)) + "%"
	return r.first(ctx, `LOWER(name) LIKE ? ESCAPE '\'`, pattern)
}

func (r *Repository) Save(ctx context.Context, w *Wrestler) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *Repository) Create(ctx context.Context, w *Wrestler) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Wrestler{}).Count(&n).Error
	return n, err
}

// first returns the oldest row matching the condition. Ties on created_at
// fall back to primary key order.
func (r *Repository) first(ctx context.Context, where string, arg any) (*Wrestler, error) {
	var w Wrestler
	err := r.db.WithContext(ctx).Where(where, arg).Order("created_at ASC").Order("id ASC").Take(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}
