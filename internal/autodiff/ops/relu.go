package ops

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// ReLUOp records c = max(0, a).
type ReLUOp struct {
	In  *tensor.RawTensor
	Out *tensor.RawTensor
}

func (op *ReLUOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	result := mustRaw(op.In.Shape(), grad.DType(), grad.Device())

	// Gradient passes where the input was strictly positive. Inputs at
	// exactly zero get zero gradient, matching the dormant-connection rule.
	switch grad.DType() {
	case tensor.Float32:
		reluMask(result.AsFloat32(), grad.AsFloat32(), op.In.AsFloat32())
	case tensor.Float64:
		reluMask(result.AsFloat64(), grad.AsFloat64(), op.In.AsFloat64())
	default:
		panic(fmt.Sprintf("relu backward: unsupported dtype %s", grad.DType()))
	}

	return []*tensor.RawTensor{result}
}

func (op *ReLUOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.In} }
func (op *ReLUOp) Output() *tensor.RawTensor   { return op.Out }

func reluMask[F float32 | float64](dst, grad, input []F) {
	for i := range dst {
		if input[i] > 0 {
			dst[i] = grad[i]
		}
	}
}
