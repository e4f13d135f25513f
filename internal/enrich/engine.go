package enrich

import (
	"context"
	"errors"
	"time"

	"github.com/OWDB/OWDB-Backend/internal/utils"
	"github.com/OWDB/OWDB-Backend/internal/wrestlers"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Store is the part of the wrestler store the engine needs. The Find
// methods return wrestlers.ErrNotFound when nothing matches.
type Store interface {
	FindByNameExact(ctx context.Context, name string) (*wrestlers.Wrestler, error)
	FindBySlug(ctx context.Context, slug string) (*wrestlers.Wrestler, error)
	FindByNameContains(ctx context.Context, token string) (*wrestlers.Wrestler, error)
	Save(ctx context.Context, w *wrestlers.Wrestler) error
}

// Engine merges candidate field values into existing wrestler profiles.
// It never creates profiles.
type Engine struct {
	store   Store
	logger  *zap.Logger
	limiter *rate.Limiter
	now     func() time.Time
	dryRun  bool
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithWriteRate caps saves per second. Zero or less means unlimited.
func WithWriteRate(perSecond float64) Option {
	return func(e *Engine) {
		if perSecond > 0 {
			e.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithDryRun makes the engine report what it would write without saving.
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) { e.dryRun = dryRun }
}

func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		logger:  zap.NewNop(),
		limiter: rate.NewLimiter(rate.Inf, 1),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich finds the profile for name and merges fields into it. It returns 1
// when the profile was written and 0 when nothing matched or nothing
// qualified. Store errors are returned as they are.
func (e *Engine) Enrich(ctx context.Context, name string, fields Fields) (int, error) {
	log := e.logger.With(zap.String("wrestler", name))
	if runID, ok := utils.GetRunIDFromContext(ctx); ok {
		log = log.With(zap.String("run_id", runID.String()))
	}

	if unknown := fields.Unknown(); len(unknown) > 0 {
		log.Warn("ignoring unknown fields", zap.Strings("fields", unknown))
	}

	found, rule, err := e.locate(ctx, name)
	if err != nil {
		return 0, err
	}
	if found == nil {
		log.Debug("no matching profile")
		return 0, nil
	}

	profile := *found
	changed, err := Merge(&profile, fields)
	if err != nil {
		return 0, err
	}
	if len(changed) == 0 {
		log.Debug("profile already complete", zap.String("matched", profile.Name), zap.String("rule", rule))
		return 0, nil
	}

	now := e.now()
	profile.LastEnriched = &now

	log = log.With(
		zap.String("matched", profile.Name),
		zap.String("rule", rule),
		zap.Strings("fields", changed),
	)
	if e.dryRun {
		log.Info("would update profile")
		return 1, nil
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	if err := e.store.Save(ctx, &profile); err != nil {
		return 0, err
	}
	log.Info("updated profile")
	return 1, nil
}

// locate applies the match rules in order: exact name (any case), slug,
// then the first word of name anywhere in a stored name. The first rule
// that finds a profile wins.
func (e *Engine) locate(ctx context.Context, name string) (*wrestlers.Wrestler, string, error) {
	type rule struct {
		name string
		find func() (*wrestlers.Wrestler, error)
	}

	rules := []rule{{"exact", func() (*wrestlers.Wrestler, error) {
		return e.store.FindByNameExact(ctx, name)
	}}}
	if slug := utils.Slugify(name); slug != "" {
		rules = append(rules, rule{"slug", func() (*wrestlers.Wrestler, error) {
			return e.store.FindBySlug(ctx, slug)
		}})
	}
	if token := utils.FirstToken(name); token != "" {
		rules = append(rules, rule{"partial", func() (*wrestlers.Wrestler, error) {
			return e.store.FindByNameContains(ctx, token)
		}})
	}

	for _, r := range rules {
		w, err := r.find()
		if errors.Is(err, wrestlers.ErrNotFound) || (err == nil && w == nil) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		return w, r.name, nil
	}
	return nil, "", nil
}
