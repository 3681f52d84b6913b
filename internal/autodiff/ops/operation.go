// Package ops defines the differentiable operations recorded on the
// gradient tape and their backward passes.
package ops

import (
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// Operation is a single recorded computation. Backward receives the gradient
// of the loss with respect to the output and returns one gradient per input,
// in the same order as Inputs.
type Operation interface {
	// Backward computes input gradients from the output gradient.
	Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the operation's input tensors.
	Inputs() []*tensor.RawTensor

	// Output returns the operation's output tensor.
	Output() *tensor.RawTensor
}
