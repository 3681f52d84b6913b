package nn

import (
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// ReLU is a stateless activation layer applying max(0, x).
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a ReLU activation layer.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

func (r *ReLU[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return x.Relu()
}

func (r *ReLU[B]) Parameters() []*Parameter { return nil }

func (r *ReLU[B]) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{}
}

func (r *ReLU[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	return loadStateDict(r.StateDict(), state)
}

// Flatten collapses every dimension after the batch dimension into one, e.g.
// [N, C, H, W] into [N, C*H*W].
type Flatten[B tensor.Backend] struct{}

// NewFlatten creates a Flatten layer.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return &Flatten[B]{}
}

func (f *Flatten[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	batch := x.Shape()[0]
	return x.Reshape(batch, x.NumElements()/batch)
}

func (f *Flatten[B]) Parameters() []*Parameter { return nil }

func (f *Flatten[B]) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{}
}

func (f *Flatten[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	return loadStateDict(f.StateDict(), state)
}
