// Package cpu implements the pure-Go CPU backend.
package cpu

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, addKind)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, subKind)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, mulKind)
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, divKind)
}

// binary dispatches an element-wise binary operation, picking the inplace,
// vectorized or broadcasting path.
func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor, kind opKind) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		if a.IsUnique() {
			// Inplace into a: the caller holds the only reference.
			binaryInplace(a, b, kind)
			return a
		}
		result := mustNewRaw(outShape, a.DType(), cpu.device, name)
		binaryVectorized(result, a, b, kind)
		return result
	}

	result := mustNewRaw(outShape, a.DType(), cpu.device, name)
	binaryBroadcast(result, a, b, kind)
	return result
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := mustNewRaw(x.Shape(), x.DType(), cpu.device, "mulscalar")

	s := toFloat64(scalar)
	switch x.DType() {
	case tensor.Float32:
		vecScale(result.AsFloat32(), x.AsFloat32(), float32(s))
	case tensor.Float64:
		vecScale(result.AsFloat64(), x.AsFloat64(), s)
	default:
		panic(fmt.Sprintf("mulscalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// Mean reduces all elements to their arithmetic mean, shape [1].
func (cpu *CPUBackend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	result := mustNewRaw(tensor.Shape{1}, x.DType(), cpu.device, "mean")

	switch x.DType() {
	case tensor.Float32:
		data := x.AsFloat32()
		var sum float32
		for _, v := range data {
			sum += v
		}
		result.AsFloat32()[0] = sum / float32(len(data))
	case tensor.Float64:
		data := x.AsFloat64()
		var sum float64
		for _, v := range data {
			sum += v
		}
		result.AsFloat64()[0] = sum / float64(len(data))
	default:
		panic(fmt.Sprintf("mean: unsupported dtype %s", x.DType()))
	}

	return result
}

// mustNewRaw allocates a result tensor or panics with operation context.
func mustNewRaw(shape tensor.Shape, dtype tensor.DataType, device tensor.Device, op string) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

// toFloat64 converts a numeric scalar of any supported type to float64.
func toFloat64(scalar any) float64 {
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
		panic(fmt.Sprintf("unsupported scalar type %T", scalar))
	}
}
