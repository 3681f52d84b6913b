package optim

import (
	"math"

	"github.com/LuggiStruggi/DeepRewire/internal/nn"
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// AdamConfig holds Adam hyperparameters. Zero values are replaced by the
// usual defaults (beta1 0.9, beta2 0.999, eps 1e-8).
type AdamConfig struct {
	LR    float64
	Beta1 float64
	Beta2 float64
	Eps   float64
}

func (c AdamConfig) normalized() AdamConfig {
	if c.Beta1 == 0 {
		c.Beta1 = 0.9
	}
	if c.Beta2 == 0 {
		c.Beta2 = 0.999
	}
	if c.Eps == 0 {
		c.Eps = 1e-8
	}
	return c
}

// adamState holds the per-parameter moment estimates.
type adamState struct {
	m []float32
	v []float32
}

// Adam implements the Adam optimizer with bias-corrected moment estimates.
type Adam struct {
	params []*nn.Parameter
	cfg    AdamConfig
	step   int
	states map[*tensor.RawTensor]*adamState
}

// NewAdam creates an Adam optimizer.
func NewAdam(params []*nn.Parameter, cfg AdamConfig) *Adam {
	return &Adam{
		params: params,
		cfg:    cfg.normalized(),
		states: make(map[*tensor.RawTensor]*adamState),
	}
}

// Step applies one Adam update to every parameter that has a gradient in
// the map.
func (a *Adam) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) error {
	a.step++

	beta1 := a.cfg.Beta1
	beta2 := a.cfg.Beta2
	correction1 := 1 - math.Pow(beta1, float64(a.step))
	correction2 := 1 - math.Pow(beta2, float64(a.step))

	for _, p := range a.params {
		grad, err := lookupGradient(p, grads)
		if err != nil {
			return err
		}
		if grad == nil {
			continue
		}

		data := p.Raw().AsFloat32()
		state, ok := a.states[p.Raw()]
		if !ok {
			state = &adamState{
				m: make([]float32, len(data)),
				v: make([]float32, len(data)),
			}
			a.states[p.Raw()] = state
		}

		for i := range data {
			g := float64(grad[i])
			m := beta1*float64(state.m[i]) + (1-beta1)*g
			v := beta2*float64(state.v[i]) + (1-beta2)*g*g
			state.m[i] = float32(m)
			state.v[i] = float32(v)

			mHat := m / correction1
			vHat := v / correction2
			data[i] -= float32(a.cfg.LR * mHat / (math.Sqrt(vHat) + a.cfg.Eps))
		}
	}
	return nil
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 { return a.cfg.LR }

// SetLR changes the learning rate for subsequent steps.
func (a *Adam) SetLR(lr float64) { a.cfg.LR = lr }
