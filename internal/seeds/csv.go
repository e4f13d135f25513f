package seeds

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OWDB/OWDB-Backend/internal/utils"
)

// RosterRow is one wrestler to make sure exists.
type RosterRow struct {
	Name         string
	Slug         string
	WikipediaURL string
}

var ErrEmptyRoster = errors.New("csv has no data rows")

func ParseRosterFile(path string) ([]RosterRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseRosterCSV(bufio.NewReader(f))
}

// ParseRosterCSV reads a roster with a required "name" column and an
// optional "wikipedia_url" column. Blank lines are skipped; two rows that
// slugify to the same slug are an error.
func ParseRosterCSV(in io.Reader) ([]RosterRow, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, ErrEmptyRoster
	}

	header := records[0]
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, fmt.Errorf("missing required column: name")
	}

	seen := map[string]int{}
	var out []RosterRow

	for rowIdx := 1; rowIdx < len(records); rowIdx++ {
		rec := records[rowIdx]
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		name := get("name")
		if name == "" {
			continue
		}
		slug := utils.Slugify(name)
		if slug == "" {
			return nil, fmt.Errorf("row %d: %q has no usable slug", rowIdx+1, name)
		}
		if first, dup := seen[slug]; dup {
			return nil, fmt.Errorf("row %d: duplicate wrestler %q (slug %q, first seen on row %d)", rowIdx+1, name, slug, first)
		}
		seen[slug] = rowIdx + 1

		out = append(out, RosterRow{
			Name:         name,
			Slug:         slug,
			WikipediaURL: get("wikipedia_url"),
		})
	}

	if len(out) == 0 {
		return nil, ErrEmptyRoster
	}
	return out, nil
}
