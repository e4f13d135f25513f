package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OWDB/OWDB-Backend/internal/config"
	"github.com/OWDB/OWDB-Backend/internal/db"
	"github.com/OWDB/OWDB-Backend/internal/enrich"
	"github.com/OWDB/OWDB-Backend/internal/wrestlers"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	conn, err := db.Open(db.SQLitePrefix+"file::memory:", zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := wrestlers.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	catalogue, err := enrich.DefaultCatalogue()
	if err != nil {
		t.Fatalf("catalogue: %v", err)
	}

	cfg := config.Config{CORSOrigins: []string{"http://localhost:5173"}}
	return NewRouter(cfg, wrestlers.NewRepository(conn), catalogue, zap.NewNop())
}

func TestRouter(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{http.MethodGet, "/", http.StatusOK, "Server is up!"},
		{http.MethodGet, "/wrestlers/count", http.StatusOK, `"count":0`},
		{http.MethodGet, "/wrestlers/sting", http.StatusNotFound, "Wrestler not found"},
		{http.MethodGet, "/enrichment/batches", http.StatusOK, `"key":"wwe-legends"`},
		{http.MethodPost, "/enrichment/run", http.StatusUnauthorized, "not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}
