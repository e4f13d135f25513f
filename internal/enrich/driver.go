package enrich

import (
	"context"
	"fmt"
	"io"

	"github.com/OWDB/OWDB-Backend/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Enricher is satisfied by *Engine.
type Enricher interface {
	Enrich(ctx context.Context, name string, fields Fields) (int, error)
}

// Counter reports how many profiles the store holds.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type BatchResult struct {
	ID        int    `json:"id"`
	Key       string `json:"key"`
	Label     string `json:"label"`
	Attempted int    `json:"attempted"`
	Updated   int    `json:"updated"`
}

type Report struct {
	RunID    uuid.UUID     `json:"run_id"`
	Selector int           `json:"selector"`
	Batches  []BatchResult `json:"batches"`
	Total    int           `json:"total_updated"`
	Profiles int64         `json:"total_profiles"`
}

// Driver runs catalogue batches through an Enricher and prints progress.
type Driver struct {
	engine    Enricher
	counter   Counter
	catalogue *Catalogue
	out       io.Writer
	logger    *zap.Logger
}

func NewDriver(engine Enricher, counter Counter, catalogue *Catalogue, out io.Writer, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		engine:    engine,
		counter:   counter,
		catalogue: catalogue,
		out:       out,
		logger:    logger,
	}
}

// Run enriches every batch when selector is 0, or only batch selector
// otherwise. Records run strictly in order. The first engine or store
// error stops the run; the partial report is returned with it.
func (d *Driver) Run(ctx context.Context, selector int) (Report, error) {
	report := Report{RunID: uuid.New(), Selector: selector, Batches: []BatchResult{}}
	ctx = utils.WithRunID(ctx, report.RunID)
	log := d.logger.With(zap.String("run_id", report.RunID.String()), zap.Int("selector", selector))

	fmt.Fprintf(d.out, "\n=== WRESTLER ENRICHMENT ===\n\n")

	batches := d.catalogue.Select(selector)
	if len(batches) == 0 {
		log.Warn("no batch matches selector", zap.Int("batches", len(d.catalogue.Batches())))
	}

	for _, b := range batches {
		res, err := d.runBatch(ctx, b)
		report.Batches = append(report.Batches, res)
		report.Total += res.Updated
		if err != nil {
			log.Error("enrichment aborted", zap.Int("batch", b.ID), zap.Error(err))
			return report, err
		}
	}

	count, err := d.counter.Count(ctx)
	if err != nil {
		return report, err
	}
	report.Profiles = count

	fmt.Fprintf(d.out, "\n=== ENRICHMENT COMPLETE ===\n")
	fmt.Fprintf(d.out, "Total wrestlers updated: %d\n", report.Total)
	fmt.Fprintf(d.out, "Total wrestlers in DB: %d\n", report.Profiles)

	log.Info("enrichment finished", zap.Int("updated", report.Total), zap.Int64("profiles", report.Profiles))
	return report, nil
}

func (d *Driver) runBatch(ctx context.Context, b Batch) (BatchResult, error) {
	res := BatchResult{ID: b.ID, Key: b.Key, Label: b.Label}

	fmt.Fprintf(d.out, "--- Enriching %s ---\n", b.Label)
	for _, rec := range b.Records {
		name, fields := rec.Split()
		res.Attempted++
		n, err := d.engine.Enrich(ctx, name, fields)
		if err != nil {
			return res, err
		}
		res.Updated += n
	}
	fmt.Fprintf(d.out, "  Updated %d %s\n", res.Updated, b.Noun)

	return res, nil
}
