package enrich

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// ProfileStore is everything a run needs from the wrestler store.
type ProfileStore interface {
	Store
	Counter
}

// Handlers serves the catalogue and triggers runs over HTTP. Only one run
// executes at a time.
type Handlers struct {
	catalogue *Catalogue
	store     ProfileStore
	opts      []Option
	logger    *zap.Logger

	running sync.Mutex
}

func NewHandlers(catalogue *Catalogue, store ProfileStore, logger *zap.Logger, opts ...Option) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		catalogue: catalogue,
		store:     store,
		opts:      opts,
		logger:    logger,
	}
}

type batchSummary struct {
	Batch
	Records int `json:"records"`
}

func (h *Handlers) ListBatches(w http.ResponseWriter, r *http.Request) {
	batches := h.catalogue.Batches()
	out := make([]batchSummary, 0, len(batches))
	for _, b := range batches {
		out = append(out, batchSummary{Batch: b, Records: len(b.Records)})
	}
	writeJSON(w, http.StatusOK, out)
}

type runResponse struct {
	Report
	DryRun bool   `json:"dry_run"`
	Output string `json:"output"`
}

// Run handles POST /run?batch=N&dry_run=true.
func (h *Handlers) Run(w http.ResponseWriter, r *http.Request) {
	selector := 0
	if raw := r.URL.Query().Get("batch"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "batch must be an integer", http.StatusBadRequest)
			return
		}
		selector = n
	}

	dryRun := false
	if raw := r.URL.Query().Get("dry_run"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "dry_run must be a boolean", http.StatusBadRequest)
			return
		}
		dryRun = b
	}

	if !h.running.TryLock() {
		http.Error(w, "An enrichment run is already in progress", http.StatusConflict)
		return
	}
	defer h.running.Unlock()

	opts := append(append([]Option{WithLogger(h.logger)}, h.opts...), WithDryRun(dryRun))
	engine := NewEngine(h.store, opts...)

	var out bytes.Buffer
	report, err := NewDriver(engine, h.store, h.catalogue, &out, h.logger).Run(r.Context(), selector)
	if err != nil {
		http.Error(w, "Enrichment failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, runResponse{Report: report, DryRun: dryRun, Output: out.String()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
