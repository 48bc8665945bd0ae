package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAndColumnOrder(t *testing.T) {
	d := New("a", "b")
	d.Append(Row{"a": 1, "b": 2})
	d.Append(Row{"a": 3, "b": 4})

	d.Apply("sum", func(r Row) float64 { return r["a"] + r["b"] })

	assert.Equal(t, []string{"a", "b", "sum"}, d.Columns())
	assert.Equal(t, []float64{3, 7}, d.Column("sum"))

	// Overwriting keeps the position
	d.Apply("sum", func(r Row) float64 { return 0 })
	assert.Equal(t, []string{"a", "b", "sum"}, d.Columns())
}

func TestFilterSharesRows(t *testing.T) {
	d := New("x")
	d.Append(Row{"x": 1})
	d.Append(Row{"x": 10})
	d.Append(Row{"x": 100})

	kept := d.Filter(func(r Row) bool { return r["x"] >= 10 })
	assert.Equal(t, 2, kept.Len())
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []float64{10, 100}, kept.Column("x"))
}

func TestDrop(t *testing.T) {
	d := New("a", "b", "c")
	d.Append(Row{"a": 1, "b": 2, "c": 3})

	d.Drop("b", "missing")

	assert.Equal(t, []string{"a", "c"}, d.Columns())
	_, ok := d.Row(0)["b"]
	assert.False(t, ok, "dropped column should be removed from rows")
}

func TestFillNA(t *testing.T) {
	d := New("a", "b")
	d.Append(Row{"a": math.NaN(), "b": 2})
	d.Append(Row{"b": 4}) // "a" missing entirely

	d.FillNA(0)

	assert.Equal(t, []float64{0, 0}, d.Column("a"))
	assert.Equal(t, []float64{2, 4}, d.Column("b"))
}

func TestMatrix(t *testing.T) {
	d := New("a", "b", "c")
	d.Append(Row{"a": 1, "b": 2, "c": 3})
	d.Append(Row{"a": 4, "b": 5, "c": 6})

	// Selection reorders
	m, err := d.Matrix([]string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3, 1}, {6, 4}}, m)

	_, err = d.Matrix([]string{"a", "nope"})
	assert.Error(t, err)
}

func TestCopyIsDeep(t *testing.T) {
	d := New("a")
	d.Append(Row{"a": 1})

	c := d.Copy()
	c.Row(0)["a"] = 99

	assert.Equal(t, 1.0, d.Value(0, "a"))
	assert.Equal(t, 99.0, c.Value(0, "a"))
}

func TestValueMissing(t *testing.T) {
	d := New("a")
	d.Append(Row{})
	assert.True(t, math.IsNaN(d.Value(0, "a")))
}
