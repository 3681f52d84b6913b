package cpu

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// Reshape returns a tensor with the same data and a new shape. The element
// count must be preserved.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if t.Shape().NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.Shape(), t.Shape().NumElements(), newShape, newShape.NumElements()))
	}

	result := mustNewRaw(newShape, t.DType(), cpu.device, "reshape")
	copy(result.Data(), t.Data())
	return result
}

// Transpose permutes the tensor's axes. With no arguments it reverses them.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	rank := len(shape)

	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if len(axes) != rank {
		panic(fmt.Sprintf("transpose: got %d axes for rank-%d tensor", len(axes), rank))
	}

	seen := make([]bool, rank)
	newShape := make(tensor.Shape, rank)
	for i, ax := range axes {
		if ax < 0 || ax >= rank || seen[ax] {
			panic(fmt.Sprintf("transpose: invalid axes permutation %v for rank %d", axes, rank))
		}
		seen[ax] = true
		newShape[i] = shape[ax]
	}

	result := mustNewRaw(newShape, t.DType(), cpu.device, "transpose")

	switch t.DType() {
	case tensor.Float32:
		transposeRun(result.AsFloat32(), t.AsFloat32(), shape, newShape, axes)
	case tensor.Float64:
		transposeRun(result.AsFloat64(), t.AsFloat64(), shape, newShape, axes)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}

	return result
}

// transposeRun walks the output coordinates and gathers from the permuted
// input position.
func transposeRun[F float32 | float64](out, in []F, inShape, outShape tensor.Shape, axes []int) {
	inStrides := inShape.ComputeStrides()
	outStrides := outShape.ComputeStrides()
	n := outShape.NumElements()

	coord := make([]int, len(outShape))
	for i := 0; i < n; i++ {
		rem := i
		for d := range outShape {
			coord[d] = rem / outStrides[d]
			rem %= outStrides[d]
		}

		srcIdx := 0
		for d, ax := range axes {
			srcIdx += coord[d] * inStrides[ax]
		}
		out[i] = in[srcIdx]
	}
}
