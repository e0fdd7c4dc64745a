// Package frame contains the column-oriented tables passed between layers.
//
// A Frame is the in-memory shape of a prediction file or a gold standard:
// named columns of equal length, string-valued for identifiers and
// float-valued for measurements. Frames are immutable after construction.
package frame

import (
	"fmt"
	"math"
)

// Column holds one named column. Exactly one of Strings or Floats is set.
type Column struct {
	Name    string
	Strings []string
	Floats  []float64
}

// StringColumn builds an identifier-style column.
func StringColumn(name string, values ...string) Column {
	return Column{Name: name, Strings: values}
}

// FloatColumn builds a numeric column. Missing values are NaN.
func FloatColumn(name string, values ...float64) Column {
	return Column{Name: name, Floats: values}
}

func (c Column) len() int {
	if c.Strings != nil {
		return len(c.Strings)
	}
	return len(c.Floats)
}

// Frame is an ordered collection of equal-length columns.
type Frame struct {
	columns []Column
	rows    int
}

// New builds a Frame from columns. All columns must have the same length
// and at least one column is required.
func New(columns ...Column) (*Frame, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: frame needs at least one column", ErrEmptyFrame)
	}
	rows := columns[0].len()
	for _, c := range columns {
		if c.Strings != nil && c.Floats != nil {
			return nil, fmt.Errorf("%w: column %q is both string and float valued", ErrMixedColumn, c.Name)
		}
		if c.len() != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrRaggedColumns, c.Name, c.len(), rows)
		}
	}
	return &Frame{columns: columns, rows: rows}, nil
}

// MustNew is New for frames known to be well formed, e.g. test fixtures.
func MustNew(columns ...Column) *Frame {
	f, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return f
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.rows
}

// Names returns the column names in declared order, duplicates included.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether a column with the given name exists.
func (f *Frame) Has(name string) bool {
	for _, c := range f.columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Strings returns the values of a string column. The second return is
// false when the column is absent or float-valued.
func (f *Frame) Strings(name string) ([]string, bool) {
	for _, c := range f.columns {
		if c.Name == name && c.Strings != nil {
			return c.Strings, true
		}
	}
	return nil, false
}

// Floats returns the values of a float column. The second return is
// false when the column is absent or string-valued.
func (f *Frame) Floats(name string) ([]float64, bool) {
	for _, c := range f.columns {
		if c.Name == name && c.Floats != nil {
			return c.Floats, true
		}
	}
	return nil, false
}

// Keys builds the row keys for the given identifier columns. Composite
// identifiers join their parts with a unit separator so distinct tuples
// never collide. The second return is false when any column is missing.
func (f *Frame) Keys(idColumns []string) ([]string, bool) {
	if len(idColumns) == 0 {
		return nil, false
	}
	parts := make([][]string, len(idColumns))
	for i, name := range idColumns {
		col, ok := f.Strings(name)
		if !ok {
			return nil, false
		}
		parts[i] = col
	}
	keys := make([]string, f.rows)
	for r := 0; r < f.rows; r++ {
		key := parts[0][r]
		for i := 1; i < len(parts); i++ {
			key += "\x1f" + parts[i][r]
		}
		keys[r] = key
	}
	return keys, true
}

// IsMissing reports whether a float value counts as missing: NaN or infinite.
func IsMissing(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
