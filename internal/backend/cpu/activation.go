package cpu

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// ReLU applies max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result := mustNewRaw(x.Shape(), x.DType(), cpu.device, "relu")

	switch x.DType() {
	case tensor.Float32:
		vecReLU(result.AsFloat32(), x.AsFloat32())
	case tensor.Float64:
		vecReLU(result.AsFloat64(), x.AsFloat64())
	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s", x.DType()))
	}

	return result
}

func vecReLU[F float32 | float64](dst, src []F) {
	for i, v := range src {
		if v > 0 {
			dst[i] = v
		} else {
			dst[i] = 0
		}
	}
}
