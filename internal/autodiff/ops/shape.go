package ops

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// ReshapeOp records c = reshape(a).
type ReshapeOp struct {
	In  *tensor.RawTensor
	Out *tensor.RawTensor
}

func (op *ReshapeOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad.ForceNonUnique()
	return []*tensor.RawTensor{backend.Reshape(grad, op.In.Shape())}
}

func (op *ReshapeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.In} }
func (op *ReshapeOp) Output() *tensor.RawTensor   { return op.Out }

// TransposeOp records c = transpose(a, axes).
type TransposeOp struct {
	In   *tensor.RawTensor
	Axes []int
	Out  *tensor.RawTensor
}

func (op *TransposeOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad.ForceNonUnique()

	// Undo the forward permutation.
	inverse := make([]int, len(op.Axes))
	for i, ax := range op.Axes {
		inverse[ax] = i
	}
	return []*tensor.RawTensor{backend.Transpose(grad, inverse...)}
}

func (op *TransposeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.In} }
func (op *TransposeOp) Output() *tensor.RawTensor   { return op.Out }

// MeanOp records c = mean(a), a scalar of shape [1].
type MeanOp struct {
	In  *tensor.RawTensor
	Out *tensor.RawTensor
}

func (op *MeanOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	n := op.In.Shape().NumElements()
	result := mustRaw(op.In.Shape(), grad.DType(), grad.Device())

	switch grad.DType() {
	case tensor.Float32:
		g := grad.AsFloat32()[0] / float32(n)
		data := result.AsFloat32()
		for i := range data {
			data[i] = g
		}
	case tensor.Float64:
		g := grad.AsFloat64()[0] / float64(n)
		data := result.AsFloat64()
		for i := range data {
			data[i] = g
		}
	default:
		panic(fmt.Sprintf("mean backward: unsupported dtype %s", grad.DType()))
	}

	return []*tensor.RawTensor{result}
}

func (op *MeanOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.In} }
func (op *MeanOp) Output() *tensor.RawTensor   { return op.Out }
