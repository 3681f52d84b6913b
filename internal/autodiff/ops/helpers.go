package ops

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// reduceToShape sums a gradient down to the shape of a broadcast input.
// Extra leading dimensions are summed away and size-1 dimensions are summed
// over, undoing NumPy-style broadcasting.
func reduceToShape(grad *tensor.RawTensor, targetShape tensor.Shape) *tensor.RawTensor {
	if grad.Shape().Equal(targetShape) {
		return grad
	}

	result := mustRaw(targetShape, grad.DType(), grad.Device())

	switch grad.DType() {
	case tensor.Float32:
		reduceRun(result.AsFloat32(), grad.AsFloat32(), grad.Shape(), targetShape)
	case tensor.Float64:
		reduceRun(result.AsFloat64(), grad.AsFloat64(), grad.Shape(), targetShape)
	default:
		panic(fmt.Sprintf("reduce gradient: unsupported dtype %s", grad.DType()))
	}

	return result
}

// reduceRun accumulates every gradient element into the target position it
// was broadcast from.
func reduceRun[F float32 | float64](dst, src []F, srcShape, dstShape tensor.Shape) {
	srcStrides := srcShape.ComputeStrides()
	dstStrides := dstShape.ComputeStrides()
	offset := len(srcShape) - len(dstShape)

	coord := make([]int, len(srcShape))
	for i := range src {
		rem := i
		for d := range srcShape {
			coord[d] = rem / srcStrides[d]
			rem %= srcStrides[d]
		}

		di := 0
		for d := range dstShape {
			c := coord[d+offset]
			if dstShape[d] == 1 {
				c = 0
			}
			di += c * dstStrides[d]
		}
		dst[di] += src[i]
	}
}

// negate returns -x without touching x's buffer.
func negate(x *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	x.ForceNonUnique()
	return backend.MulScalar(x, -1.0)
}

// mustRaw allocates a zero-filled tensor or panics. Gradient computation has
// no error channel to the caller.
func mustRaw(shape tensor.Shape, dtype tensor.DataType, device tensor.Device) *tensor.RawTensor {
	raw, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("gradient allocation failed: %v", err))
	}
	return raw
}
