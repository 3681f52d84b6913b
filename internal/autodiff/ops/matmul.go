package ops

import (
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// MatMulOp records c = a @ b.
type MatMulOp struct {
	A, B *tensor.RawTensor
	Out  *tensor.RawTensor
}

func (op *MatMulOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad.ForceNonUnique()

	// dL/da = dL/dc @ b^T, dL/db = a^T @ dL/dc
	gradA := backend.MatMul(grad, backend.Transpose(op.B))
	gradB := backend.MatMul(backend.Transpose(op.A), grad)

	return []*tensor.RawTensor{gradA, gradB}
}

func (op *MatMulOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.A, op.B} }
func (op *MatMulOp) Output() *tensor.RawTensor   { return op.Out }
