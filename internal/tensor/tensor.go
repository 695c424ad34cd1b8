package tensor

import (
	"fmt"
	"math/rand"
)

// Dense is a dense float32 matrix with row-major storage.
//
// Throughout the training core matrices follow the columns-as-samples
// convention: an input batch has shape [features, batch] and a target
// batch has shape [outputs, batch].
type Dense struct {
	rows, cols int
	data       []float32
}

// ShapeError reports a dimension mismatch between an operand and the
// shape an operation requires. It is returned (or carried in a panic for
// programmer errors inside the package) before any computation runs.
type ShapeError struct {
	Op   string // Operation that rejected the operand
	Want string // Expected shape, human-readable
	Got  string // Actual shape
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape mismatch: want %s, got %s", e.Op, e.Want, e.Got)
}

// NewDense creates a rows×cols matrix filled with zeros.
//
// Panics if either dimension is not positive.
func NewDense(rows, cols int) *Dense {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("tensor: invalid dimensions %dx%d (must be > 0)", rows, cols))
	}
	return &Dense{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}
}

// Zeros creates a rows×cols matrix filled with zeros.
func Zeros(rows, cols int) *Dense {
	return NewDense(rows, cols)
}

// Randn creates a rows×cols matrix with entries drawn from N(0, 1)
// scaled by scale, using the provided source of randomness.
//
// Weight initialization takes an explicit *rand.Rand so independent
// training rounds can share one seeded stream.
func Randn(rows, cols int, scale float32, rng *rand.Rand) *Dense {
	d := NewDense(rows, cols)
	for i := range d.data {
		d.data[i] = float32(rng.NormFloat64()) * scale
	}
	return d
}

// FromSlice creates a rows×cols matrix backed by a copy of data,
// interpreted in row-major order.
func FromSlice(data []float32, rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, &ShapeError{Op: "tensor.FromSlice", Want: "positive dimensions", Got: fmt.Sprintf("%dx%d", rows, cols)}
	}
	if len(data) != rows*cols {
		return nil, &ShapeError{
			Op:   "tensor.FromSlice",
			Want: fmt.Sprintf("%d elements for %dx%d", rows*cols, rows, cols),
			Got:  fmt.Sprintf("%d elements", len(data)),
		}
	}
	d := NewDense(rows, cols)
	copy(d.data, data)
	return d, nil
}

// Rows returns the number of rows.
func (d *Dense) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Dense) Cols() int { return d.cols }

// Data returns the backing slice in row-major order.
//
// The slice aliases the matrix storage; mutating it mutates the matrix.
func (d *Dense) Data() []float32 { return d.data }

// At returns the element at row i, column j.
func (d *Dense) At(i, j int) float32 {
	return d.data[i*d.cols+j]
}

// Set assigns the element at row i, column j.
func (d *Dense) Set(i, j int, v float32) {
	d.data[i*d.cols+j] = v
}

// ShapeString returns the shape as "rowsxcols", for error reporting.
func (d *Dense) ShapeString() string {
	return fmt.Sprintf("%dx%d", d.rows, d.cols)
}

// SameShape reports whether d and o have identical dimensions.
func (d *Dense) SameShape(o *Dense) bool {
	return d.rows == o.rows && d.cols == o.cols
}

// Clone returns a deep copy of the matrix.
func (d *Dense) Clone() *Dense {
	c := NewDense(d.rows, d.cols)
	copy(c.data, d.data)
	return c
}

// CopyFrom copies the contents of o into d.
//
// Returns a *ShapeError if the dimensions differ.
func (d *Dense) CopyFrom(o *Dense) error {
	if !d.SameShape(o) {
		return &ShapeError{Op: "Dense.CopyFrom", Want: d.ShapeString(), Got: o.ShapeString()}
	}
	copy(d.data, o.data)
	return nil
}

// Equal reports whether d and o have the same shape and bit-identical
// elements. NaN elements are never equal, matching float comparison.
func (d *Dense) Equal(o *Dense) bool {
	if !d.SameShape(o) {
		return false
	}
	for i := range d.data {
		if d.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// ColSlice returns a copy of columns [from, to) as a new matrix.
//
// Batches are carved out of the training set this way: the copy keeps
// the original matrix immutable from the trainer's point of view.
func (d *Dense) ColSlice(from, to int) *Dense {
	if from < 0 || to > d.cols || from >= to {
		panic(fmt.Sprintf("Dense.ColSlice: invalid range [%d, %d) for %d columns", from, to, d.cols))
	}
	out := NewDense(d.rows, to-from)
	for i := 0; i < d.rows; i++ {
		copy(out.data[i*out.cols:(i+1)*out.cols], d.data[i*d.cols+from:i*d.cols+to])
	}
	return out
}
