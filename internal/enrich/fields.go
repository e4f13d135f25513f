package enrich

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/OWDB/OWDB-Backend/internal/wrestlers"
)

// AboutField is the one field that is always overwritten.
const AboutField = "about"

const dateLayout = "2006-01-02"

var ErrInvalidValue = errors.New("invalid field value")

// Fields maps a wrestler field name to a candidate value.
type Fields map[string]any

// Unknown returns the keys of f that are not enrichable fields, sorted.
func (f Fields) Unknown() []string {
	var out []string
	for k := range f {
		if !KnownField(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

type field struct {
	name   string
	isSet  func(w *wrestlers.Wrestler) bool
	assign func(w *wrestlers.Wrestler, v any) error
}

var fieldTable = []field{
	textField("real_name", func(w *wrestlers.Wrestler) **string { return &w.RealName }),
	dateField("birth_date", func(w *wrestlers.Wrestler) **time.Time { return &w.BirthDate }),
	dateField("death_date", func(w *wrestlers.Wrestler) **time.Time { return &w.DeathDate }),
	textField("hometown", func(w *wrestlers.Wrestler) **string { return &w.Hometown }),
	textField("nationality", func(w *wrestlers.Wrestler) **string { return &w.Nationality }),
	textField("height", func(w *wrestlers.Wrestler) **string { return &w.Height }),
	textField("weight", func(w *wrestlers.Wrestler) **string { return &w.Weight }),
	yearField("debut_year", func(w *wrestlers.Wrestler) **int { return &w.DebutYear }),
	yearField("retirement_year", func(w *wrestlers.Wrestler) **int { return &w.RetirementYear }),
	textField("aliases", func(w *wrestlers.Wrestler) **string { return &w.Aliases }),
	textField("finishers", func(w *wrestlers.Wrestler) **string { return &w.Finishers }),
	textField("signature_moves", func(w *wrestlers.Wrestler) **string { return &w.SignatureMoves }),
	textField("trained_by", func(w *wrestlers.Wrestler) **string { return &w.TrainedBy }),
	textField(AboutField, func(w *wrestlers.Wrestler) **string { return &w.About }),
	textField("wikipedia_url", func(w *wrestlers.Wrestler) **string { return &w.WikipediaURL }),
}

var fieldIndex = func() map[string]struct{} {
	idx := make(map[string]struct{}, len(fieldTable))
	for _, f := range fieldTable {
		idx[f.name] = struct{}{}
	}
	return idx
}()

func KnownField(name string) bool {
	_, ok := fieldIndex[name]
	return ok
}

// FieldNames lists the enrichable fields in merge order.
func FieldNames() []string {
	names := make([]string, len(fieldTable))
	for i, f := range fieldTable {
		names[i] = f.name
	}
	return names
}

// Merge writes the non-empty candidates in fields into w. "about" is always
// written; every other field only when w has no value for it yet. It
// returns the names of the fields it wrote, in merge order.
func Merge(w *wrestlers.Wrestler, fields Fields) ([]string, error) {
	var changed []string
	for _, f := range fieldTable {
		v, ok := fields[f.name]
		if !ok || isEmpty(v) {
			continue
		}
		if f.name != AboutField && f.isSet(w) {
			continue
		}
		if err := f.assign(w, v); err != nil {
			return nil, err
		}
		changed = append(changed, f.name)
	}
	return changed, nil
}

// isEmpty mirrors truthiness of the catalogue values: nil, "", zero numbers,
// false, zero times and empty lists all count as "no candidate".
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if t, ok := v.(time.Time); ok {
		return t.IsZero()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return rv.IsZero()
}

func textField(name string, ptr func(*wrestlers.Wrestler) **string) field {
	return field{
		name: name,
		isSet: func(w *wrestlers.Wrestler) bool {
			p := *ptr(w)
			return p != nil && *p != ""
		},
		assign: func(w *wrestlers.Wrestler, v any) error {
			s := toText(v)
			*ptr(w) = &s
			return nil
		},
	}
}

func yearField(name string, ptr func(*wrestlers.Wrestler) **int) field {
	return field{
		name: name,
		isSet: func(w *wrestlers.Wrestler) bool {
			p := *ptr(w)
			return p != nil && *p != 0
		},
		assign: func(w *wrestlers.Wrestler, v any) error {
			n, err := toInt(v)
			if err != nil {
				return fmt.Errorf("%s: %w: %v", name, ErrInvalidValue, err)
			}
			*ptr(w) = &n
			return nil
		},
	}
}

func dateField(name string, ptr func(*wrestlers.Wrestler) **time.Time) field {
	return field{
		name: name,
		isSet: func(w *wrestlers.Wrestler) bool {
			p := *ptr(w)
			return p != nil && !p.IsZero()
		},
		assign: func(w *wrestlers.Wrestler, v any) error {
			t, err := toDate(v)
			if err != nil {
				return fmt.Errorf("%s: %w: %v", name, ErrInvalidValue, err)
			}
			*ptr(w) = &t
			return nil
		},
	}
}

// toText renders a candidate as text. Lists become comma-separated.
func toText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, ", ")
	case []any:
		parts := make([]string, 0, len(x))
		for _, p := range x {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, ", ")
	case time.Time:
		return x.Format(dateLayout)
	}
	return fmt.Sprint(v)
}

func toInt(v any) (int, error) {
	if s, ok := v.(string); ok {
		return strconv.Atoi(strings.TrimSpace(s))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != float64(int(f)) {
			return 0, fmt.Errorf("%v is not a whole number", f)
		}
		return int(f), nil
	}
	return 0, fmt.Errorf("cannot use %T as a year", v)
}

func toDate(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		return time.Parse(dateLayout, strings.TrimSpace(x))
	}
	return time.Time{}, fmt.Errorf("cannot use %T as a date", v)
}
