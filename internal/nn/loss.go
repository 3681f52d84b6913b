package nn

import (
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// MSELoss computes the mean squared error between prediction and target as a
// scalar of shape [1]. Every step routes through the backend, so the loss is
// differentiable when computed under a recording tape.
func MSELoss[B tensor.Backend](pred, target *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	diff := pred.Sub(target)
	return diff.Mul(diff).Mean()
}
