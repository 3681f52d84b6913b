package optim

import (
	"github.com/LuggiStruggi/DeepRewire/internal/nn"
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
// Updates happen in place, so parameter tensor identity is stable across
// steps.
type SGD struct {
	params     []*nn.Parameter
	lr         float64
	momentum   float64
	velocities map[*tensor.RawTensor][]float32
}

// NewSGD creates a plain SGD optimizer.
func NewSGD(params []*nn.Parameter, lr float64) *SGD {
	return NewSGDWithMomentum(params, lr, 0)
}

// NewSGDWithMomentum creates an SGD optimizer with momentum.
func NewSGDWithMomentum(params []*nn.Parameter, lr, momentum float64) *SGD {
	return &SGD{
		params:     params,
		lr:         lr,
		momentum:   momentum,
		velocities: make(map[*tensor.RawTensor][]float32),
	}
}

// Step applies one gradient descent update to every parameter that has a
// gradient in the map.
func (s *SGD) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) error {
	lr := float32(s.lr)
	momentum := float32(s.momentum)

	for _, p := range s.params {
		grad, err := lookupGradient(p, grads)
		if err != nil {
			return err
		}
		if grad == nil {
			continue
		}

		data := p.Raw().AsFloat32()
		if s.momentum > 0 {
			velocity, ok := s.velocities[p.Raw()]
			if !ok {
				velocity = make([]float32, len(data))
				s.velocities[p.Raw()] = velocity
			}
			for i := range data {
				velocity[i] = momentum*velocity[i] + grad[i]
				data[i] -= lr * velocity[i]
			}
		} else {
			for i := range data {
				data[i] -= lr * grad[i]
			}
		}
	}
	return nil
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 { return s.lr }

// SetLR changes the learning rate for subsequent steps.
func (s *SGD) SetLR(lr float64) { s.lr = lr }
