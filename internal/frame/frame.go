// Package frame implements the small column-ordered table passed
// between the dataset builder, the feature transforms and the models.
// Values are float64 throughout; NaN marks a null. Column order is
// preserved through every operation so persisted feature lists stay
// stable across training and inference.
package frame

import (
	"fmt"
	"math"
)

// Row is one observation keyed by column name.
type Row map[string]float64

// Dataset is an ordered set of named columns over rows.
type Dataset struct {
	cols []string
	rows []Row
}

// New creates an empty dataset with the given column order.
func New(cols ...string) *Dataset {
	d := &Dataset{cols: make([]string, len(cols))}
	copy(d.cols, cols)
	return d
}

// Append adds a row. Keys not declared as columns are registered at the
// end of the column order, so ad-hoc rows keep a deterministic layout
// as long as they are appended in a deterministic key order via Set.
func (d *Dataset) Append(r Row) {
	d.rows = append(d.rows, r)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Columns returns a copy of the column order.
func (d *Dataset) Columns() []string {
	cols := make([]string, len(d.cols))
	copy(cols, d.cols)
	return cols
}

// Has reports whether the column is present.
func (d *Dataset) Has(col string) bool {
	for _, c := range d.cols {
		if c == col {
			return true
		}
	}
	return false
}

// Row returns the i-th row. The map is shared, not copied.
func (d *Dataset) Row(i int) Row {
	return d.rows[i]
}

// Value returns the value at (i, col); missing cells read as NaN.
func (d *Dataset) Value(i int, col string) float64 {
	if v, ok := d.rows[i][col]; ok {
		return v
	}
	return math.NaN()
}

// Filter returns a new dataset holding only rows the predicate keeps.
// Rows are shared with the receiver; derivations that mutate rows must
// run on a Copy.
func (d *Dataset) Filter(pred func(Row) bool) *Dataset {
	out := New(d.cols...)
	for _, r := range d.rows {
		if pred(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Copy returns a deep copy of the dataset.
func (d *Dataset) Copy() *Dataset {
	out := New(d.cols...)
	out.rows = make([]Row, len(d.rows))
	for i, r := range d.rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		out.rows[i] = nr
	}
	return out
}

// Apply computes a column from each row. A new column name is appended
// to the column order; an existing one is overwritten in place.
func (d *Dataset) Apply(col string, fn func(Row) float64) {
	if !d.Has(col) {
		d.cols = append(d.cols, col)
	}
	for _, r := range d.rows {
		r[col] = fn(r)
	}
}

// Drop removes columns from the order and from every row. Unknown
// names are ignored.
func (d *Dataset) Drop(cols ...string) {
	drop := make(map[string]bool, len(cols))
	for _, c := range cols {
		drop[c] = true
	}

	kept := d.cols[:0]
	for _, c := range d.cols {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	d.cols = kept

	for _, r := range d.rows {
		for c := range drop {
			delete(r, c)
		}
	}
}

// FillNA replaces NaN and missing cells of every known column.
func (d *Dataset) FillNA(v float64) {
	for _, r := range d.rows {
		for _, c := range d.cols {
			if val, ok := r[c]; !ok || math.IsNaN(val) {
				r[c] = v
			}
		}
	}
}

// Column extracts one column; missing cells read as NaN.
func (d *Dataset) Column(col string) []float64 {
	out := make([]float64, len(d.rows))
	for i := range d.rows {
		out[i] = d.Value(i, col)
	}
	return out
}

// Matrix extracts the given columns, in the given order, as a row-major
// matrix. A missing column is an error: the caller is relying on an
// exact feature set.
func (d *Dataset) Matrix(cols []string) ([][]float64, error) {
	for _, c := range cols {
		if !d.Has(c) {
			return nil, fmt.Errorf("column %q not in dataset", c)
		}
	}

	out := make([][]float64, len(d.rows))
	for i, r := range d.rows {
		vec := make([]float64, len(cols))
		for j, c := range cols {
			if v, ok := r[c]; ok {
				vec[j] = v
			} else {
				vec[j] = math.NaN()
			}
		}
		out[i] = vec
	}
	return out, nil
}
