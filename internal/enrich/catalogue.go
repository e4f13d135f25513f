package enrich

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	catalogueFile = "catalogue.yaml"
	nameKey       = "name"
)

var ErrInvalidCatalogue = errors.New("invalid catalogue")

// Record is one wrestler entry of a batch: the lookup name under "name"
// plus candidate values for enrichable fields.
type Record map[string]any

func (r Record) Name() string {
	s, _ := r[nameKey].(string)
	return strings.TrimSpace(s)
}

// Split separates the lookup name from the candidate fields. The record
// itself is left untouched so a catalogue can be run more than once.
func (r Record) Split() (string, Fields) {
	fields := make(Fields, len(r))
	for k, v := range r {
		if k != nameKey {
			fields[k] = v
		}
	}
	return r.Name(), fields
}

// Batch is a named group of records selectable by ID.
type Batch struct {
	ID      int      `yaml:"id" json:"id"`
	Key     string   `yaml:"key" json:"key"`
	Label   string   `yaml:"label" json:"label"`
	Noun    string   `yaml:"noun" json:"noun"`
	File    string   `yaml:"file" json:"-"`
	Records []Record `yaml:"-" json:"-"`
}

// Catalogue is the ordered list of batches. Order is canonical: selector 0
// runs the batches in exactly this order.
type Catalogue struct {
	batches []Batch
}

func NewCatalogue(batches ...Batch) *Catalogue {
	return &Catalogue{batches: batches}
}

func (c *Catalogue) Batches() []Batch {
	return c.batches
}

func (c *Catalogue) Get(id int) (Batch, bool) {
	for _, b := range c.batches {
		if b.ID == id {
			return b, true
		}
	}
	return Batch{}, false
}

// Select returns every batch for selector 0 and the batch numbered
// selector otherwise. An unknown selector selects nothing.
func (c *Catalogue) Select(selector int) []Batch {
	if selector == 0 {
		return c.batches
	}
	if b, ok := c.Get(selector); ok {
		return []Batch{b}
	}
	return nil
}

// DefaultCatalogue loads the catalogue compiled into the binary.
func DefaultCatalogue() (*Catalogue, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadCatalogue(sub)
}

// OpenCatalogue loads the catalogue from dir, or the embedded one when dir
// is empty.
func OpenCatalogue(dir string) (*Catalogue, error) {
	if dir == "" {
		return DefaultCatalogue()
	}
	return LoadCatalogue(os.DirFS(dir))
}

// LoadCatalogue reads catalogue.yaml and every batch file it lists from fsys
// and validates them.
func LoadCatalogue(fsys fs.FS) (*Catalogue, error) {
	raw, err := fs.ReadFile(fsys, catalogueFile)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", catalogueFile, err)
	}

	var index struct {
		Batches []Batch `yaml:"batches"`
	}
	if err := yaml.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", catalogueFile, err)
	}

	seen := map[int]bool{}
	for i := range index.Batches {
		b := &index.Batches[i]
		if b.ID <= 0 {
			return nil, fmt.Errorf("%w: batch %q: id must be positive (got %d)", ErrInvalidCatalogue, b.Key, b.ID)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("%w: duplicate batch id %d", ErrInvalidCatalogue, b.ID)
		}
		seen[b.ID] = true

		if b.Label == "" {
			return nil, fmt.Errorf("%w: batch %d: label is required", ErrInvalidCatalogue, b.ID)
		}
		if b.Noun == "" {
			b.Noun = b.Label
		}
		if b.File == "" {
			return nil, fmt.Errorf("%w: batch %d: file is required", ErrInvalidCatalogue, b.ID)
		}

		records, err := loadRecords(fsys, b.File)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", b.ID, err)
		}
		b.Records = records
	}

	return &Catalogue{batches: index.Batches}, nil
}

func loadRecords(fsys fs.FS, file string) ([]Record, error) {
	raw, err := fs.ReadFile(fsys, path.Clean(file))
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", file, err)
	}

	var doc struct {
		Records []map[string]any `yaml:"records"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	records := make([]Record, 0, len(doc.Records))
	for i, m := range doc.Records {
		rec := Record(m)
		if rec.Name() == "" {
			return nil, fmt.Errorf("%w: %s record %d: name is required", ErrInvalidCatalogue, file, i+1)
		}
		_, fields := rec.Split()
		if unknown := fields.Unknown(); len(unknown) > 0 {
			return nil, fmt.Errorf("%w: %s record %d (%s): unknown fields %s",
				ErrInvalidCatalogue, file, i+1, rec.Name(), strings.Join(unknown, ", "))
		}
		records = append(records, rec)
	}
	return records, nil
}
