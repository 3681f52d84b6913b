package cpu

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// opKind identifies an element-wise binary operation.
type opKind int

const (
	addKind opKind = iota
	subKind
	mulKind
	divKind
)

// binaryInplace applies op into a's buffer. Shapes must match exactly.
func binaryInplace(a, b *tensor.RawTensor, kind opKind) {
	switch a.DType() {
	case tensor.Float32:
		vecBinary(a.AsFloat32(), a.AsFloat32(), b.AsFloat32(), kind)
	case tensor.Float64:
		vecBinary(a.AsFloat64(), a.AsFloat64(), b.AsFloat64(), kind)
	default:
		panic(fmt.Sprintf("binary op: unsupported dtype %s", a.DType()))
	}
}

// binaryVectorized applies op element-by-element. Shapes must match exactly.
func binaryVectorized(result, a, b *tensor.RawTensor, kind opKind) {
	switch a.DType() {
	case tensor.Float32:
		vecBinary(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), kind)
	case tensor.Float64:
		vecBinary(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), kind)
	default:
		panic(fmt.Sprintf("binary op: unsupported dtype %s", a.DType()))
	}
}

// binaryBroadcast applies op with NumPy-style broadcasting into result,
// whose shape is the broadcast of a's and b's shapes.
func binaryBroadcast(result, a, b *tensor.RawTensor, kind opKind) {
	switch a.DType() {
	case tensor.Float32:
		broadcastBinary(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(),
			result.Shape(), a.Shape(), b.Shape(), kind)
	case tensor.Float64:
		broadcastBinary(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(),
			result.Shape(), a.Shape(), b.Shape(), kind)
	default:
		panic(fmt.Sprintf("binary op: unsupported dtype %s", a.DType()))
	}
}

// vecBinary applies op over equal-length contiguous slices.
func vecBinary[F float32 | float64](dst, a, b []F, kind opKind) {
	switch kind {
	case addKind:
		for i := range dst {
			dst[i] = a[i] + b[i]
		}
	case subKind:
		for i := range dst {
			dst[i] = a[i] - b[i]
		}
	case mulKind:
		for i := range dst {
			dst[i] = a[i] * b[i]
		}
	case divKind:
		for i := range dst {
			dst[i] = a[i] / b[i]
		}
	}
}

// vecScale writes dst = a * s.
func vecScale[F float32 | float64](dst, a []F, s F) {
	for i := range dst {
		dst[i] = a[i] * s
	}
}

// broadcastBinary walks the output coordinates and maps each one back to a
// flat index in the (possibly lower-rank or size-1) operands.
func broadcastBinary[F float32 | float64](dst, a, b []F, outShape, aShape, bShape tensor.Shape, kind opKind) {
	outStrides := outShape.ComputeStrides()
	aStrides := aShape.ComputeStrides()
	bStrides := bShape.ComputeStrides()
	n := outShape.NumElements()

	coord := make([]int, len(outShape))
	for i := 0; i < n; i++ {
		rem := i
		for d := range outShape {
			coord[d] = rem / outStrides[d]
			rem %= outStrides[d]
		}

		ai := broadcastIndex(coord, outShape, aShape, aStrides)
		bi := broadcastIndex(coord, outShape, bShape, bStrides)

		switch kind {
		case addKind:
			dst[i] = a[ai] + b[bi]
		case subKind:
			dst[i] = a[ai] - b[bi]
		case mulKind:
			dst[i] = a[ai] * b[bi]
		case divKind:
			dst[i] = a[ai] / b[bi]
		}
	}
}

// broadcastIndex maps an output coordinate to a flat index in an operand,
// aligning dimensions from the right and clamping size-1 dimensions to 0.
func broadcastIndex(coord []int, outShape, opShape tensor.Shape, opStrides []int) int {
	offset := len(outShape) - len(opShape)
	idx := 0
	for d := range opShape {
		c := coord[d+offset]
		if opShape[d] == 1 {
			c = 0
		}
		idx += c * opStrides[d]
	}
	return idx
}
