package enrich_test

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/OWDB/OWDB-Backend/internal/enrich"
	"github.com/OWDB/OWDB-Backend/internal/utils"
	"github.com/OWDB/OWDB-Backend/internal/wrestlers"
)

// mockEnricher reports an update for every name in matches and records the
// order of calls.
type mockEnricher struct {
	matches map[string]bool
	failOn  string
	err     error
	calls   []string
	sawRun  bool
}

func (m *mockEnricher) Enrich(ctx context.Context, name string, _ enrich.Fields) (int, error) {
	m.calls = append(m.calls, name)
	if _, ok := utils.GetRunIDFromContext(ctx); ok {
		m.sawRun = true
	}
	if name == m.failOn {
		return 0, m.err
	}
	if m.matches[name] {
		return 1, nil
	}
	return 0, nil
}

type mockCounter struct {
	n      int64
	err    error
	called bool
}

func (m *mockCounter) Count(context.Context) (int64, error) {
	m.called = true
	return m.n, m.err
}

func records(names ...string) []enrich.Record {
	out := make([]enrich.Record, len(names))
	for i, n := range names {
		out[i] = enrich.Record{"name": n, "about": n + " bio"}
	}
	return out
}

func twoBatchCatalogue() *enrich.Catalogue {
	return enrich.NewCatalogue(
		enrich.Batch{ID: 1, Key: "x", Label: "Batch X", Noun: "X wrestlers", Records: records("a1", "a2", "a3")},
		enrich.Batch{ID: 2, Key: "y", Label: "Batch Y", Noun: "Y wrestlers", Records: records("b1", "b2", "b3", "b4", "b5")},
	)
}

func TestDriver_RunAll(t *testing.T) {
	engine := &mockEnricher{matches: map[string]bool{"a1": true, "a3": true, "b1": true, "b2": true, "b4": true, "b5": true}}
	counter := &mockCounter{n: 42}
	var out bytes.Buffer

	report, err := enrich.NewDriver(engine, counter, twoBatchCatalogue(), &out, nil).Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Total != 6 {
		t.Errorf("total = %d, want 6", report.Total)
	}
	if len(report.Batches) != 2 || report.Batches[0].Updated != 2 || report.Batches[1].Updated != 4 {
		t.Errorf("batch results = %+v", report.Batches)
	}
	if report.Profiles != 42 {
		t.Errorf("profiles = %d", report.Profiles)
	}

	wantCalls := []string{"a1", "a2", "a3", "b1", "b2", "b3", "b4", "b5"}
	if !reflect.DeepEqual(engine.calls, wantCalls) {
		t.Errorf("calls = %v, want %v", engine.calls, wantCalls)
	}
	if !engine.sawRun {
		t.Error("run id was not carried in the context")
	}

	want := "\n=== WRESTLER ENRICHMENT ===\n\n" +
		"--- Enriching Batch X ---\n" +
		"  Updated 2 X wrestlers\n" +
		"--- Enriching Batch Y ---\n" +
		"  Updated 4 Y wrestlers\n" +
		"\n=== ENRICHMENT COMPLETE ===\n" +
		"Total wrestlers updated: 6\n" +
		"Total wrestlers in DB: 42\n"
	if out.String() != want {
		t.Errorf("output mismatch\n got: %q\nwant: %q", out.String(), want)
	}
}

func TestDriver_RunSingleBatch(t *testing.T) {
	engine := &mockEnricher{matches: map[string]bool{"a1": true, "b2": true}}
	var out bytes.Buffer

	report, err := enrich.NewDriver(engine, &mockCounter{n: 7}, twoBatchCatalogue(), &out, nil).Run(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Total != 1 || len(report.Batches) != 1 || report.Batches[0].ID != 2 {
		t.Errorf("report = %+v", report)
	}
	if strings.Contains(out.String(), "Batch X") {
		t.Errorf("unselected batch ran:\n%s", out.String())
	}
	if len(engine.calls) != 5 {
		t.Errorf("expected 5 calls, got %v", engine.calls)
	}
}

func TestDriver_UnknownSelector(t *testing.T) {
	engine := &mockEnricher{}
	counter := &mockCounter{n: 3}
	var out bytes.Buffer

	report, err := enrich.NewDriver(engine, counter, twoBatchCatalogue(), &out, nil).Run(context.Background(), 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(engine.calls) != 0 {
		t.Errorf("records ran for unknown selector: %v", engine.calls)
	}
	if report.Total != 0 || report.Profiles != 3 {
		t.Errorf("report = %+v", report)
	}
	if !strings.Contains(out.String(), "Total wrestlers updated: 0\n") {
		t.Errorf("summary missing:\n%s", out.String())
	}
}

func TestDriver_AbortsOnError(t *testing.T) {
	boom := errors.New("db down")
	engine := &mockEnricher{matches: map[string]bool{"a1": true}, failOn: "a2", err: boom}
	counter := &mockCounter{}
	var out bytes.Buffer

	report, err := enrich.NewDriver(engine, counter, twoBatchCatalogue(), &out, nil).Run(context.Background(), 0)
	if err != boom {
		t.Fatalf("expected the engine error unchanged, got %v", err)
	}
	if report.Total != 1 || len(report.Batches) != 1 || report.Batches[0].Attempted != 2 {
		t.Errorf("partial report = %+v", report)
	}
	if !reflect.DeepEqual(engine.calls, []string{"a1", "a2"}) {
		t.Errorf("calls after failure: %v", engine.calls)
	}
	if counter.called {
		t.Error("count queried after an aborted run")
	}
	if strings.Contains(out.String(), "ENRICHMENT COMPLETE") {
		t.Errorf("completion printed for an aborted run:\n%s", out.String())
	}
}

// TestDriver_WithEngine wires the real engine against the in-memory store:
// each record only counts once it has updated a stored profile.
func TestDriver_WithEngine(t *testing.T) {
	store := newMemStore(
		&wrestlers.Wrestler{Name: "a1"},
		&wrestlers.Wrestler{Name: "b3"},
		&wrestlers.Wrestler{Name: "b5"},
	)
	var out bytes.Buffer

	report, err := enrich.NewDriver(newTestEngine(store), store, twoBatchCatalogue(), &out, nil).Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Total != 3 || report.Profiles != 3 {
		t.Errorf("report = %+v", report)
	}
	if store.saves != 3 {
		t.Errorf("saves = %d", store.saves)
	}
}
