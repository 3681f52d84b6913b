package nn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// Sequential chains modules, feeding each one's output into the next.
type Sequential[B tensor.Backend] struct {
	layers []Module[B]
}

// NewSequential creates a sequential container from the given layers.
func NewSequential[B tensor.Backend](layers ...Module[B]) *Sequential[B] {
	return &Sequential[B]{layers: layers}
}

// Add appends a layer and returns the container for chaining.
func (s *Sequential[B]) Add(layer Module[B]) *Sequential[B] {
	s.layers = append(s.layers, layer)
	return s
}

// Len returns the number of layers.
func (s *Sequential[B]) Len() int {
	return len(s.layers)
}

// Layer returns the i-th layer.
func (s *Sequential[B]) Layer(i int) Module[B] {
	return s.layers[i]
}

// Forward runs the input through every layer in order.
func (s *Sequential[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	for _, layer := range s.layers {
		x = layer.Forward(x)
	}
	return x
}

// Parameters returns the trainable parameters of all layers.
func (s *Sequential[B]) Parameters() []*Parameter {
	var params []*Parameter
	for _, layer := range s.layers {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// Children returns the layers with their positional names.
func (s *Sequential[B]) Children() []NamedModule[B] {
	children := make([]NamedModule[B], len(s.layers))
	for i, layer := range s.layers {
		children[i] = NamedModule[B]{Name: strconv.Itoa(i), Module: layer}
	}
	return children
}

// StateDict returns all layer tensors keyed by "<index>.<name>".
func (s *Sequential[B]) StateDict() map[string]*tensor.RawTensor {
	state := make(map[string]*tensor.RawTensor)
	for i, layer := range s.layers {
		prefix := strconv.Itoa(i) + "."
		for name, raw := range layer.StateDict() {
			state[prefix+name] = raw
		}
	}
	return state
}

// LoadStateDict distributes prefixed entries to the layers. The key set must
// match StateDict exactly.
func (s *Sequential[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	split := make([]map[string]*tensor.RawTensor, len(s.layers))
	for i := range split {
		split[i] = make(map[string]*tensor.RawTensor)
	}

	for key, raw := range state {
		idxStr, rest, found := strings.Cut(key, ".")
		if !found {
			return fmt.Errorf("key %q has no layer prefix", key)
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 || idx >= len(s.layers) {
			return fmt.Errorf("key %q: no layer %q", key, idxStr)
		}
		split[idx][rest] = raw
	}

	for i, layer := range s.layers {
		if err := layer.LoadStateDict(split[i]); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}
