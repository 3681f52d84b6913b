package tensor

// PadMode selects how explicit spatial padding fills the border region.
type PadMode int

// Supported padding modes for Backend.Pad.
const (
	// PadZeros fills the border with zeros.
	PadZeros PadMode = iota
	// PadReflect mirrors the input across the border, excluding the edge
	// element (PyTorch "reflect").
	PadReflect
	// PadReplicate repeats the edge element.
	PadReplicate
	// PadCircular wraps around to the opposite edge.
	PadCircular
)

// String returns a human-readable padding mode name.
func (m PadMode) String() string {
	switch m {
	case PadZeros:
		return "zeros"
	case PadReflect:
		return "reflect"
	case PadReplicate:
		return "replicate"
	case PadCircular:
		return "circular"
	default:
		return "unknown"
	}
}

// PadSourceIndex maps a coordinate p in a padded axis of length size+2*pad
// back to its source coordinate in the unpadded axis. The boolean is false
// when the position has no source (PadZeros border), in which case the
// padded value is zero.
//
// Both the forward fill and the autodiff backward scatter use this mapping,
// so the two stay consistent by construction.
func PadSourceIndex(p, size, pad int, mode PadMode) (int, bool) {
	src := p - pad
	if src >= 0 && src < size {
		return src, true
	}

	switch mode {
	case PadZeros:
		return 0, false
	case PadReflect:
		// Mirror across the edge, excluding the edge element.
		if src < 0 {
			src = -src
		}
		if src >= size {
			src = 2*size - 2 - src
		}
		return src, true
	case PadReplicate:
		if src < 0 {
			return 0, true
		}
		return size - 1, true
	case PadCircular:
		src %= size
		if src < 0 {
			src += size
		}
		return src, true
	default:
		panic("pad: unknown padding mode")
	}
}

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - CPU: pure Go (internal/backend/cpu)
//   - Autodiff: decorator recording operations on a gradient tape
//     (internal/autodiff)
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MulScalar multiplies every element by a scalar.
	MulScalar(x *RawTensor, scalar any) *RawTensor

	// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
	MatMul(a, b *RawTensor) *RawTensor

	// Conv2D performs a 2D cross-correlation of input [N, C_in, H, W] with
	// kernel [C_out, C_in/groups, K_h, K_w] using zero padding. Non-zero
	// padding modes are handled by an explicit Pad before the convolution.
	Conv2D(input, kernel *RawTensor, stride, padding, dilation [2]int, groups int) *RawTensor

	// Pad pads the two trailing (spatial) dimensions of a 4D tensor by
	// padH rows on top/bottom and padW columns on left/right.
	Pad(x *RawTensor, padH, padW int, mode PadMode) *RawTensor

	// ReLU applies max(0, x) element-wise.
	ReLU(x *RawTensor) *RawTensor

	// Mean reduces all elements to their arithmetic mean, shape [1].
	Mean(x *RawTensor) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
