package nn

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// loadStateDict copies src values into the module's dst slots. The key sets
// must match exactly, as must shapes and dtypes.
func loadStateDict(dst, src map[string]*tensor.RawTensor) error {
	for key := range src {
		if _, ok := dst[key]; !ok {
			return fmt.Errorf("unexpected key %q", key)
		}
	}
	for key, target := range dst {
		source, ok := src[key]
		if !ok {
			return fmt.Errorf("missing key %q", key)
		}
		if !source.Shape().Equal(target.Shape()) {
			return fmt.Errorf("key %q: shape %v does not match %v", key, source.Shape(), target.Shape())
		}
		if source.DType() != target.DType() {
			return fmt.Errorf("key %q: dtype %s does not match %s", key, source.DType(), target.DType())
		}
		copy(target.Data(), source.Data())
	}
	return nil
}
