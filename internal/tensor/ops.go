package tensor

import "math"

// mustMatch panics with a *ShapeError when a precondition inside the
// package is violated. Callers at the package boundary (internal/nn)
// validate shapes first and return errors; by the time an op runs, a
// mismatch is a programming error.
func mustMatch(ok bool, op, want, got string) {
	if !ok {
		panic(&ShapeError{Op: op, Want: want, Got: got})
	}
}

// MatMul computes a·b for a (m×k) and b (k×n), returning a new m×n matrix.
func MatMul(a, b *Dense) *Dense {
	mustMatch(a.cols == b.rows, "tensor.MatMul", a.ShapeString()+" · kxn", b.ShapeString())
	out := NewDense(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		arow := a.data[i*a.cols : (i+1)*a.cols]
		orow := out.data[i*out.cols : (i+1)*out.cols]
		for k, av := range arow {
			brow := b.data[k*b.cols : (k+1)*b.cols]
			for j, bv := range brow {
				orow[j] += av * bv
			}
		}
	}
	return out
}

// MatMulABT computes a·bᵀ for a (m×k) and b (n×k), returning m×n.
//
// Backward uses this for dW2 = dz2·a1ᵀ and dW1 = dz1·xᵀ without
// materializing transposes.
func MatMulABT(a, b *Dense) *Dense {
	mustMatch(a.cols == b.cols, "tensor.MatMulABT", a.ShapeString()+" · (nx"+a.ShapeString()+")ᵀ", b.ShapeString())
	out := NewDense(a.rows, b.rows)
	for i := 0; i < a.rows; i++ {
		arow := a.data[i*a.cols : (i+1)*a.cols]
		for j := 0; j < b.rows; j++ {
			brow := b.data[j*b.cols : (j+1)*b.cols]
			var sum float32
			for k := range arow {
				sum += arow[k] * brow[k]
			}
			out.data[i*out.cols+j] = sum
		}
	}
	return out
}

// MatMulATB computes aᵀ·b for a (k×m) and b (k×n), returning m×n.
//
// Backward uses this for W2ᵀ·dz2.
func MatMulATB(a, b *Dense) *Dense {
	mustMatch(a.rows == b.rows, "tensor.MatMulATB", "kxm with k="+b.ShapeString(), a.ShapeString())
	out := NewDense(a.cols, b.cols)
	for k := 0; k < a.rows; k++ {
		arow := a.data[k*a.cols : (k+1)*a.cols]
		brow := b.data[k*b.cols : (k+1)*b.cols]
		for i, av := range arow {
			orow := out.data[i*out.cols : (i+1)*out.cols]
			for j, bv := range brow {
				orow[j] += av * bv
			}
		}
	}
	return out
}

// Sub returns a − b as a new matrix.
func Sub(a, b *Dense) *Dense {
	mustMatch(a.SameShape(b), "tensor.Sub", a.ShapeString(), b.ShapeString())
	out := NewDense(a.rows, a.cols)
	for i := range out.data {
		out.data[i] = a.data[i] - b.data[i]
	}
	return out
}

// Tanh returns the element-wise hyperbolic tangent as a new matrix.
func Tanh(a *Dense) *Dense {
	out := NewDense(a.rows, a.cols)
	for i, v := range a.data {
		out.data[i] = float32(math.Tanh(float64(v)))
	}
	return out
}

// AddColVec adds the column vector v (rows×1) to every column of d in place.
//
// This is the bias broadcast of the forward pass.
func (d *Dense) AddColVec(v *Dense) {
	mustMatch(v.rows == d.rows && v.cols == 1, "Dense.AddColVec", d.ShapeString()+" + rx1", v.ShapeString())
	for i := 0; i < d.rows; i++ {
		row := d.data[i*d.cols : (i+1)*d.cols]
		bias := v.data[i]
		for j := range row {
			row[j] += bias
		}
	}
}

// MulElem multiplies d by o element-wise, in place.
func (d *Dense) MulElem(o *Dense) {
	mustMatch(d.SameShape(o), "Dense.MulElem", d.ShapeString(), o.ShapeString())
	for i := range d.data {
		d.data[i] *= o.data[i]
	}
}

// Scale multiplies every element of d by alpha, in place.
func (d *Dense) Scale(alpha float32) {
	for i := range d.data {
		d.data[i] *= alpha
	}
}

// OneMinusSquare returns 1 − a² element-wise as a new matrix.
//
// Applied to a tanh activation this is the activation's derivative.
func OneMinusSquare(a *Dense) *Dense {
	out := NewDense(a.rows, a.cols)
	for i, v := range a.data {
		out.data[i] = 1 - v*v
	}
	return out
}

// RowMeans returns the mean of each row as a rows×1 column vector.
//
// Backward uses this to average bias gradients over the batch.
func RowMeans(a *Dense) *Dense {
	out := NewDense(a.rows, 1)
	inv := 1 / float32(a.cols)
	for i := 0; i < a.rows; i++ {
		row := a.data[i*a.cols : (i+1)*a.cols]
		var sum float32
		for _, v := range row {
			sum += v
		}
		out.data[i] = sum * inv
	}
	return out
}

// MSE returns the mean squared error between predictions and targets
// as a float64 scalar, accumulated in float64.
func MSE(pred, target *Dense) float64 {
	mustMatch(pred.SameShape(target), "tensor.MSE", pred.ShapeString(), target.ShapeString())
	var sum float64
	for i := range pred.data {
		diff := float64(pred.data[i]) - float64(target.data[i])
		sum += diff * diff
	}
	return sum / float64(len(pred.data))
}
