package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OWDB/OWDB-Backend/internal/db"
	"github.com/OWDB/OWDB-Backend/internal/wrestlers"
	"go.uber.org/zap"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dsn := db.SQLitePrefix + filepath.Join(dir, "owdb.db")
	t.Setenv("DATABASE_URL", dsn)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("ENRICH_DATA_DIR", "")
	return dsn
}

func TestRootCmd_Subcommands(t *testing.T) {
	want := map[string]bool{"enrich-wrestlers": false, "batches": false, "migrate": false, "seed-wrestlers": false}
	for _, c := range newRootCmd().Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestBatchesCmd(t *testing.T) {
	setupEnv(t)

	out, err := runCLI(t, "batches")
	if err != nil {
		t.Fatalf("batches: %v", err)
	}
	if !strings.HasPrefix(out, "ID") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "wwe-legends") || !strings.Contains(out, "british-indie") {
		t.Errorf("catalogue not listed:\n%s", out)
	}
}

func TestEnrichCmd_RequiresDatabase(t *testing.T) {
	setupEnv(t)
	t.Setenv("DATABASE_URL", "")

	if _, err := runCLI(t, "enrich-wrestlers"); err == nil {
		t.Fatal("expected an error without DATABASE_URL")
	}
}

func TestEnrichCmd_BadFlag(t *testing.T) {
	setupEnv(t)

	if _, err := runCLI(t, "enrich-wrestlers", "--batch", "one"); err == nil {
		t.Fatal("expected a flag parse error")
	}
}

// TestCLI_EndToEnd migrates a fresh SQLite file, seeds two legends and runs
// the first batch against them.
func TestCLI_EndToEnd(t *testing.T) {
	dsn := setupEnv(t)

	if _, err := runCLI(t, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	roster := filepath.Join(t.TempDir(), "roster.csv")
	if err := os.WriteFile(roster, []byte("name\nHulk Hogan\nBret Hart\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "seed-wrestlers", "--csv", roster)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "Created 2, skipped 0 existing") {
		t.Errorf("unexpected seed output:\n%s", out)
	}

	out, err = runCLI(t, "enrich-wrestlers", "--batch", "1")
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	for _, line := range []string{
		"=== WRESTLER ENRICHMENT ===",
		"--- Enriching WWE Legends ---",
		"  Updated 2 WWE legends",
		"Total wrestlers updated: 2",
		"Total wrestlers in DB: 2",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("output missing %q:\n%s", line, out)
		}
	}

	conn, err := db.Open(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	hogan, err := wrestlers.NewRepository(conn).FindBySlug(context.Background(), "hulk-hogan")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if hogan.RealName == nil || *hogan.RealName != "Terry Gene Bollea" {
		t.Errorf("real_name = %v", hogan.RealName)
	}
	if hogan.LastEnriched == nil {
		t.Error("last_enriched not stamped")
	}
}
