package ops

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// PadOp records c = pad(a, padH, padW, mode).
type PadOp struct {
	In         *tensor.RawTensor
	PadH, PadW int
	Mode       tensor.PadMode
	Out        *tensor.RawTensor
}

func (op *PadOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inShape := op.In.Shape()
	result := mustRaw(inShape, grad.DType(), grad.Device())

	planes := inShape[0] * inShape[1]
	h, w := inShape[2], inShape[3]

	switch grad.DType() {
	case tensor.Float32:
		padScatter(result.AsFloat32(), grad.AsFloat32(), planes, h, w, op.PadH, op.PadW, op.Mode)
	case tensor.Float64:
		padScatter(result.AsFloat64(), grad.AsFloat64(), planes, h, w, op.PadH, op.PadW, op.Mode)
	default:
		panic(fmt.Sprintf("pad backward: unsupported dtype %s", grad.DType()))
	}

	return []*tensor.RawTensor{result}
}

func (op *PadOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.In} }
func (op *PadOp) Output() *tensor.RawTensor   { return op.Out }

// padScatter accumulates each padded position's gradient back into its
// source element. Positions that replicated a source element in the forward
// pass contribute additively here.
func padScatter[F float32 | float64](dst, grad []F, planes, h, w, padH, padW int, mode tensor.PadMode) {
	hOut := h + 2*padH
	wOut := w + 2*padW

	for p := 0; p < planes; p++ {
		dstBase := p * h * w
		gradBase := p * hOut * wOut
		for oh := 0; oh < hOut; oh++ {
			ih, okH := tensor.PadSourceIndex(oh, h, padH, mode)
			if !okH {
				continue
			}
			for ow := 0; ow < wOut; ow++ {
				iw, okW := tensor.PadSourceIndex(ow, w, padW, mode)
				if !okW {
					continue
				}
				dst[dstBase+ih*w+iw] += grad[gradBase+oh*wOut+ow]
			}
		}
	}
}
