package ops

import (
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// AddOp records c = a + b.
type AddOp struct {
	A, B *tensor.RawTensor
	Out  *tensor.RawTensor
}

func (op *AddOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceToShape(grad, op.A.Shape()),
		reduceToShape(grad, op.B.Shape()),
	}
}

func (op *AddOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.A, op.B} }
func (op *AddOp) Output() *tensor.RawTensor   { return op.Out }

// SubOp records c = a - b.
type SubOp struct {
	A, B *tensor.RawTensor
	Out  *tensor.RawTensor
}

func (op *SubOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceToShape(grad, op.A.Shape()),
		reduceToShape(negate(grad, backend), op.B.Shape()),
	}
}

func (op *SubOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.A, op.B} }
func (op *SubOp) Output() *tensor.RawTensor   { return op.Out }

// MulOp records c = a * b.
type MulOp struct {
	A, B *tensor.RawTensor
	Out  *tensor.RawTensor
}

func (op *MulOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad.ForceNonUnique()
	gradA := backend.Mul(grad, op.B)
	gradB := backend.Mul(grad, op.A)
	return []*tensor.RawTensor{
		reduceToShape(gradA, op.A.Shape()),
		reduceToShape(gradB, op.B.Shape()),
	}
}

func (op *MulOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.A, op.B} }
func (op *MulOp) Output() *tensor.RawTensor   { return op.Out }

// DivOp records c = a / b.
type DivOp struct {
	A, B *tensor.RawTensor
	Out  *tensor.RawTensor
}

func (op *DivOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad.ForceNonUnique()

	// d(a/b)/da = 1/b
	gradA := backend.Div(grad, op.B)

	// d(a/b)/db = -a/b^2
	bSquared := backend.Mul(op.B, op.B)
	gradB := backend.MulScalar(backend.Div(backend.Mul(grad, op.A), bSquared), -1.0)

	return []*tensor.RawTensor{
		reduceToShape(gradA, op.A.Shape()),
		reduceToShape(gradB, op.B.Shape()),
	}
}

func (op *DivOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.A, op.B} }
func (op *DivOp) Output() *tensor.RawTensor   { return op.Out }

// MulScalarOp records c = a * scalar.
type MulScalarOp struct {
	In     *tensor.RawTensor
	Scalar float64
	Out    *tensor.RawTensor
}

func (op *MulScalarOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad.ForceNonUnique()
	return []*tensor.RawTensor{backend.MulScalar(grad, op.Scalar)}
}

func (op *MulScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.In} }
func (op *MulScalarOp) Output() *tensor.RawTensor   { return op.Out }
