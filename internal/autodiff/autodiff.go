// Package autodiff implements reverse-mode automatic differentiation as a
// backend decorator. It wraps any compute backend and records operations on
// a gradient tape while recording is enabled.
package autodiff

import (
	"github.com/LuggiStruggi/DeepRewire/internal/autodiff/ops"
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// AutodiffBackend wraps an inner backend and records every operation on its
// gradient tape while the tape is recording. Outside of recording it is a
// transparent pass-through.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates an autodiff decorator around the given backend with a fresh
// gradient tape.
func New[B tensor.Backend](inner B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: inner,
		tape:  NewGradientTape(),
	}
}

// Tape returns the backend's gradient tape.
func (ad *AutodiffBackend[B]) Tape() *GradientTape {
	return ad.tape
}

// Inner returns the wrapped backend.
func (ad *AutodiffBackend[B]) Inner() B {
	return ad.inner
}

// StartRecording begins capturing operations on the tape.
func (ad *AutodiffBackend[B]) StartRecording() {
	ad.tape.StartRecording()
}

// StopRecording stops capturing operations.
func (ad *AutodiffBackend[B]) StopRecording() {
	ad.tape.StopRecording()
}

// Backward computes gradients of loss with respect to all recorded inputs.
func (ad *AutodiffBackend[B]) Backward(loss *tensor.RawTensor) (map[*tensor.RawTensor]*tensor.RawTensor, error) {
	return ad.tape.Backward(loss, ad.inner)
}

// prepare pins recorded tensors so inner operations cannot reuse their
// buffers in place. The tape holds references across the whole forward pass,
// so an in-place update would corrupt earlier recorded operations.
func (ad *AutodiffBackend[B]) prepare(tensors ...*tensor.RawTensor) {
	for _, t := range tensors {
		t.ForceNonUnique()
	}
}

func (ad *AutodiffBackend[B]) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	if ad.tape.IsRecording() {
		ad.prepare(a, b)
		out := ad.inner.Add(a, b)
		ad.tape.Record(&ops.AddOp{A: a, B: b, Out: out})
		return out
	}
	return ad.inner.Add(a, b)
}

func (ad *AutodiffBackend[B]) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	if ad.tape.IsRecording() {
		ad.prepare(a, b)
		out := ad.inner.Sub(a, b)
		ad.tape.Record(&ops.SubOp{A: a, B: b, Out: out})
		return out
	}
	return ad.inner.Sub(a, b)
}

func (ad *AutodiffBackend[B]) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	if ad.tape.IsRecording() {
		ad.prepare(a, b)
		out := ad.inner.Mul(a, b)
		ad.tape.Record(&ops.MulOp{A: a, B: b, Out: out})
		return out
	}
	return ad.inner.Mul(a, b)
}

func (ad *AutodiffBackend[B]) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	if ad.tape.IsRecording() {
		ad.prepare(a, b)
		out := ad.inner.Div(a, b)
		ad.tape.Record(&ops.DivOp{A: a, B: b, Out: out})
		return out
	}
	return ad.inner.Div(a, b)
}

func (ad *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	if ad.tape.IsRecording() {
		ad.prepare(x)
		out := ad.inner.MulScalar(x, scalar)
		ad.tape.Record(&ops.MulScalarOp{In: x, Scalar: scalarToFloat64(scalar), Out: out})
		return out
	}
	return ad.inner.MulScalar(x, scalar)
}

func (ad *AutodiffBackend[B]) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	if ad.tape.IsRecording() {
		ad.prepare(a, b)
		out := ad.inner.MatMul(a, b)
		ad.tape.Record(&ops.MatMulOp{A: a, B: b, Out: out})
		return out
	}
	return ad.inner.MatMul(a, b)
}

func (ad *AutodiffBackend[B]) Conv2D(input, kernel *tensor.RawTensor, stride, padding, dilation [2]int, groups int) *tensor.RawTensor {
	if ad.tape.IsRecording() {
		ad.prepare(input, kernel)
		out := ad.inner.Conv2D(input, kernel, stride, padding, dilation, groups)
		ad.tape.Record(&ops.Conv2DOp{
			Input:    input,
			Kernel:   kernel,
			Stride:   stride,
			Padding:  padding,
			Dilation: dilation,
			Groups:   groups,
			Out:      out,
		})
		return out
	}
	return ad.inner.Conv2D(input, kernel, stride, padding, dilation, groups)
}

func (ad *AutodiffBackend[B]) Pad(x *tensor.RawTensor, padH, padW int, mode tensor.PadMode) *tensor.RawTensor {
	if ad.tape.IsRecording() {
		ad.prepare(x)
		out := ad.inner.Pad(x, padH, padW, mode)
		ad.tape.Record(&ops.PadOp{In: x, PadH: padH, PadW: padW, Mode: mode, Out: out})
		return out
	}
	return ad.inner.Pad(x, padH, padW, mode)
}

func (ad *AutodiffBackend[B]) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	if ad.tape.IsRecording() {
		ad.prepare(x)
		out := ad.inner.ReLU(x)
		ad.tape.Record(&ops.ReLUOp{In: x, Out: out})
		return out
	}
	return ad.inner.ReLU(x)
}

func (ad *AutodiffBackend[B]) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	if ad.tape.IsRecording() {
		ad.prepare(x)
		out := ad.inner.Mean(x)
		ad.tape.Record(&ops.MeanOp{In: x, Out: out})
		return out
	}
	return ad.inner.Mean(x)
}

func (ad *AutodiffBackend[B]) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if ad.tape.IsRecording() {
		ad.prepare(t)
		out := ad.inner.Reshape(t, newShape)
		ad.tape.Record(&ops.ReshapeOp{In: t, Out: out})
		return out
	}
	return ad.inner.Reshape(t, newShape)
}

func (ad *AutodiffBackend[B]) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	if ad.tape.IsRecording() {
		ad.prepare(t)
		out := ad.inner.Transpose(t, axes...)

		// The op needs the concrete permutation for its inverse.
		resolved := axes
		if len(resolved) == 0 {
			rank := len(t.Shape())
			resolved = make([]int, rank)
			for i := range resolved {
				resolved[i] = rank - 1 - i
			}
		}
		ad.tape.Record(&ops.TransposeOp{In: t, Axes: resolved, Out: out})
		return out
	}
	return ad.inner.Transpose(t, axes...)
}

func (ad *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + ad.inner.Name() + ")"
}

func (ad *AutodiffBackend[B]) Device() tensor.Device {
	return ad.inner.Device()
}

func scalarToFloat64(scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		return float64(s)
	case float64:
		return s
	case int:
		return float64(s)
	case int32:
		return float64(s)
	case int64:
		return float64(s)
	default:
		return 0
	}
}

// Compile-time interface check.
var _ tensor.Backend = (*AutodiffBackend[tensor.Backend])(nil)
