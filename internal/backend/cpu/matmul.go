package cpu

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D tensors, got %v and %v", aShape, bShape))
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("matmul: inner dimensions mismatch: %v @ %v", aShape, bShape))
	}

	m, k, n := aShape[0], aShape[1], bShape[1]
	result := mustNewRaw(tensor.Shape{m, n}, a.DType(), cpu.device, "matmul")

	switch a.DType() {
	case tensor.Float32:
		matmulRun(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n)
	case tensor.Float64:
		matmulRun(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}

	return result
}

// matmulRun computes out[i,j] = sum_k a[i,k] * b[k,j] with the inner loop
// over contiguous rows of b for cache-friendly access. Every product is
// accumulated, so NaN and Inf propagate as in a plain dot product.
func matmulRun[F float32 | float64](out, a, b []F, m, k, n int) {
	for i := 0; i < m; i++ {
		outRow := out[i*n : (i+1)*n]
		for kk := 0; kk < k; kk++ {
			av := a[i*k+kk]
			bRow := b[kk*n : (kk+1)*n]
			for j := range outRow {
				outRow[j] += av * bRow[j]
			}
		}
	}
}
