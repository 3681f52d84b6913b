// Package optim implements gradient-based optimizers. Optimizers only ever
// see trainable parameters; fixed tensors such as connection signs are never
// handed to them, which keeps signs constant through training by
// construction.
package optim

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/nn"
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// Optimizer updates trainable parameters from gradients keyed by tensor
// identity, as produced by the gradient tape.
type Optimizer interface {
	// Step applies one update. Parameters without a gradient in the map
	// are skipped.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor) error

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR changes the learning rate for subsequent steps.
	SetLR(lr float64)
}

// lookupGradient fetches and validates the gradient for one parameter.
// Returns nil when the parameter did not participate in the recorded
// computation.
func lookupGradient(p *nn.Parameter, grads map[*tensor.RawTensor]*tensor.RawTensor) ([]float32, error) {
	grad, ok := grads[p.Raw()]
	if !ok {
		return nil, nil
	}
	if !grad.Shape().Equal(p.Raw().Shape()) {
		return nil, fmt.Errorf("parameter %q: gradient shape %v does not match %v",
			p.Name(), grad.Shape(), p.Raw().Shape())
	}
	return grad.AsFloat32(), nil
}
