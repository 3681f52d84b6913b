// Package nn implements neural network layers with a dual parameterization:
// every dense layer can run either in its standard form or in a rewireable
// form where each connection is a fixed sign times a trainable non-negative
// magnitude. Connections whose magnitude is driven to zero or below are
// dormant and contribute nothing to the forward pass.
package nn

import (
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// Module is the interface implemented by all network components.
type Module[B tensor.Backend] interface {
	// Forward computes the module's output for the given input.
	Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns the module's trainable parameters. Fixed tensors
	// such as connection signs are never included.
	Parameters() []*Parameter

	// StateDict returns all of the module's tensors, trainable or not,
	// keyed by name.
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict copies the given tensors into the module's slots.
	// The key set must match StateDict exactly.
	LoadStateDict(state map[string]*tensor.RawTensor) error
}

// NamedModule pairs a child module with its name inside the parent.
type NamedModule[B tensor.Backend] struct {
	Name   string
	Module Module[B]
}

// Container is implemented by modules composed of child modules. Tree
// walkers such as Convert and Reconvert recurse through Children.
type Container[B tensor.Backend] interface {
	Module[B]
	Children() []NamedModule[B]
}
