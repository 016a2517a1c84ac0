package frame

import (
	"fmt"
	"math"
	"time"
)

// Kind tells float columns from categorical ones.
type Kind int

const (
	KindFloat Kind = iota
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindTag:
		return "tag"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Column is a named column ready to be appended with Table.Extend.
type Column struct {
	Name   string
	Kind   Kind
	Start  int
	Floats []float64
	Tags   []string
}

// FloatColumn wraps a float series as a named column.
func FloatColumn(name string, s Series) Column {
	return Column{Name: name, Kind: KindFloat, Start: s.Start, Floats: s.Values}
}

// TagColumn wraps a categorical series as a named column.
func TagColumn(name string, s TagSeries) Column {
	return Column{Name: name, Kind: KindTag, Start: s.Start, Tags: s.Values}
}

func (c Column) rows() int {
	if c.Kind == KindTag {
		return len(c.Tags)
	}
	return len(c.Floats)
}

// Table is an ordered time series: a strictly increasing time index and a set
// of named columns aligned to it. Columns can only be appended.
type Table struct {
	index []time.Time
	names []string
	cols  map[string]*Column
}

// New creates an empty table over the given index.
func New(index []time.Time) (*Table, error) {
	for i := 1; i < len(index); i++ {
		if !index[i].After(index[i-1]) {
			return nil, fmt.Errorf("row %d (%s) not after row %d (%s): %w",
				i, index[i].Format(time.RFC3339), i-1, index[i-1].Format(time.RFC3339), ErrUnordered)
		}
	}
	idx := make([]time.Time, len(index))
	copy(idx, index)
	return &Table{
		index: idx,
		cols:  make(map[string]*Column),
	}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.index) }

// Index returns a copy of the time index.
func (t *Table) Index() []time.Time {
	idx := make([]time.Time, len(t.index))
	copy(idx, t.index)
	return idx
}

// Names returns the column names in append order.
func (t *Table) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Kind returns the kind of a column.
func (t *Table) Kind(name string) (Kind, error) {
	c, ok := t.cols[name]
	if !ok {
		return 0, &MissingColumnError{Name: name}
	}
	return c.Kind, nil
}

// Float returns a copy of a float column.
func (t *Table) Float(name string) (Series, error) {
	c, ok := t.cols[name]
	if !ok {
		return Series{}, &MissingColumnError{Name: name}
	}
	if c.Kind != KindFloat {
		return Series{}, fmt.Errorf("column %q is %s: %w", name, c.Kind, ErrKindMismatch)
	}
	values := make([]float64, len(c.Floats))
	copy(values, c.Floats)
	return Series{Start: c.Start, Values: values}, nil
}

// Tags returns a copy of a categorical column.
func (t *Table) Tags(name string) (TagSeries, error) {
	c, ok := t.cols[name]
	if !ok {
		return TagSeries{}, &MissingColumnError{Name: name}
	}
	if c.Kind != KindTag {
		return TagSeries{}, fmt.Errorf("column %q is %s: %w", name, c.Kind, ErrKindMismatch)
	}
	values := make([]string, len(c.Tags))
	copy(values, c.Tags)
	return TagSeries{Start: c.Start, Values: values}, nil
}

// Extend appends columns in order. All columns are validated before any is
// appended, so a failed call leaves the table unchanged.
func (t *Table) Extend(cols ...Column) error {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if c.Name == "" {
			return ErrEmptyName
		}
		if t.Has(c.Name) {
			return fmt.Errorf("column %q: %w", c.Name, ErrColumnExists)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("column %q appended twice: %w", c.Name, ErrColumnExists)
		}
		seen[c.Name] = struct{}{}
		if c.Kind != KindFloat && c.Kind != KindTag {
			return fmt.Errorf("column %q has %s: %w", c.Name, c.Kind, ErrKindMismatch)
		}
		if c.rows() != t.Len() {
			return fmt.Errorf("column %q has %d rows, table has %d: %w", c.Name, c.rows(), t.Len(), ErrRowMismatch)
		}
		if c.Start < 0 || c.Start > t.Len() {
			return fmt.Errorf("column %q starts at %d, table has %d rows: %w", c.Name, c.Start, t.Len(), ErrBadStart)
		}
	}

	for _, c := range cols {
		stored := &Column{Name: c.Name, Kind: c.Kind, Start: c.Start}
		if c.Kind == KindTag {
			stored.Tags = make([]string, len(c.Tags))
			copy(stored.Tags[c.Start:], c.Tags[c.Start:])
		} else {
			stored.Floats = make([]float64, len(c.Floats))
			for i := 0; i < c.Start; i++ {
				stored.Floats[i] = math.NaN()
			}
			copy(stored.Floats[c.Start:], c.Floats[c.Start:])
		}
		t.cols[c.Name] = stored
		t.names = append(t.names, c.Name)
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		index: t.Index(),
		names: t.Names(),
		cols:  make(map[string]*Column, len(t.cols)),
	}
	for name, c := range t.cols {
		cp := &Column{Name: c.Name, Kind: c.Kind, Start: c.Start}
		if c.Tags != nil {
			cp.Tags = append([]string(nil), c.Tags...)
		}
		if c.Floats != nil {
			cp.Floats = append([]float64(nil), c.Floats...)
		}
		out.cols[name] = cp
	}
	return out
}
