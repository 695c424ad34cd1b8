package optim

import (
	"fmt"
	"math"

	"github.com/born-ml/shallow/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)   // Parameter update
//
// One Adam instance serves a fixed ordered parameter list. The timestep
// t is shared across all parameters and incremented once per Step call,
// so bias correction is identical for every tensor updated in that call.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	lr    float32
	beta1 float32
	beta2 float32
	eps   float32
	t     int             // Timestep for bias correction, shared across parameters
	m     []*tensor.Dense // First moment estimates, aligned to the parameter list
	v     []*tensor.Dense // Second moment estimates
}

// AdamConfig holds configuration for the Adam optimizer.
//
// Zero-valued fields fall back to the standard defaults.
type AdamConfig struct {
	LR    float32    // Learning rate (default: 0.001)
	Betas [2]float32 // Coefficients for the running averages (default: [0.9, 0.999])
	Eps   float32    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
//
// Moment accumulators are allocated lazily on the first Step call,
// zero-initialized with the shapes of the parameters they track.
func NewAdam(config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
		t:     0,
	}
}

// Step performs a single optimization step.
//
// params and grads are positionally aligned; every parameter is updated
// in place. The timestep increments exactly once, before any tensor is
// touched, so all parameters in this call see the same bias correction.
func (a *Adam) Step(params, grads []*tensor.Dense) {
	if len(params) != len(grads) {
		panic(fmt.Sprintf("optim.Adam.Step: %d parameters but %d gradients", len(params), len(grads)))
	}

	if a.m == nil {
		a.m = make([]*tensor.Dense, len(params))
		a.v = make([]*tensor.Dense, len(params))
		for i, p := range params {
			a.m[i] = tensor.Zeros(p.Rows(), p.Cols())
			a.v[i] = tensor.Zeros(p.Rows(), p.Cols())
		}
	} else if len(a.m) != len(params) {
		panic(fmt.Sprintf("optim.Adam.Step: optimizer tracks %d parameters, got %d", len(a.m), len(params)))
	}

	a.t++

	biasCorrection1 := float32(1.0 - math.Pow(float64(a.beta1), float64(a.t)))
	biasCorrection2 := float32(1.0 - math.Pow(float64(a.beta2), float64(a.t)))

	for i, p := range params {
		paramData := p.Data()
		gradData := grads[i].Data()
		mData := a.m[i].Data()
		vData := a.v[i].Data()

		for j := range paramData {
			g := gradData[j]

			// m_t = beta1 * m_{t-1} + (1-beta1) * grad
			mData[j] = a.beta1*mData[j] + (1.0-a.beta1)*g

			// v_t = beta2 * v_{t-1} + (1-beta2) * grad²
			vData[j] = a.beta2*vData[j] + (1.0-a.beta2)*g*g

			mHat := mData[j] / biasCorrection1
			vHat := vData[j] / biasCorrection2

			paramData[j] -= a.lr * mHat / (float32(math.Sqrt(float64(vHat))) + a.eps)
		}
	}
}

// Timestep returns the current shared timestep.
func (a *Adam) Timestep() int {
	return a.t
}

// FirstMoment returns the first moment accumulator for parameter i,
// or nil before the first Step call.
func (a *Adam) FirstMoment(i int) *tensor.Dense {
	if a.m == nil {
		return nil
	}
	return a.m[i]
}

// SecondMoment returns the second moment accumulator for parameter i,
// or nil before the first Step call.
func (a *Adam) SecondMoment(i int) *tensor.Dense {
	if a.v == nil {
		return nil
	}
	return a.v[i]
}

// LR returns the current learning rate.
func (a *Adam) LR() float32 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float32) {
	a.lr = lr
}
