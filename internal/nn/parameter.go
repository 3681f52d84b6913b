package nn

import (
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// Parameter is a named trainable tensor. Optimizers update parameters in
// place, so the underlying RawTensor identity is stable across training
// steps and across parameterization changes.
type Parameter struct {
	name string
	raw  *tensor.RawTensor
}

// NewParameter wraps a raw tensor as a trainable parameter.
func NewParameter(name string, raw *tensor.RawTensor) *Parameter {
	return &Parameter{name: name, raw: raw}
}

// Name returns the parameter's name within its layer.
func (p *Parameter) Name() string {
	return p.name
}

// Raw returns the underlying tensor. Gradients computed by the tape are
// keyed by this pointer.
func (p *Parameter) Raw() *tensor.RawTensor {
	return p.raw
}

// Trainable reports whether optimizers may update this tensor. Always true
// for Parameter.
func (p *Parameter) Trainable() bool {
	return true
}

// FixedTensor is a named tensor that is part of a module's state but must
// never be updated by an optimizer. Connection signs are fixed tensors: they
// are drawn once at conversion time and stay constant until merge.
type FixedTensor struct {
	name string
	raw  *tensor.RawTensor
}

// NewFixedTensor wraps a raw tensor as non-trainable state.
func NewFixedTensor(name string, raw *tensor.RawTensor) *FixedTensor {
	return &FixedTensor{name: name, raw: raw}
}

// Name returns the tensor's name within its layer.
func (f *FixedTensor) Name() string {
	return f.name
}

// Raw returns the underlying tensor.
func (f *FixedTensor) Raw() *tensor.RawTensor {
	return f.raw
}

// Trainable always returns false for FixedTensor.
func (f *FixedTensor) Trainable() bool {
	return false
}
