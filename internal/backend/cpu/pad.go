package cpu

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// Pad pads the two trailing dimensions of a 4D tensor by padH rows and padW
// columns on each side, filling the border according to mode.
func (cpu *CPUBackend) Pad(x *tensor.RawTensor, padH, padW int, mode tensor.PadMode) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("pad: expected 4D tensor, got %v", shape))
	}
	if padH < 0 || padW < 0 {
		panic(fmt.Sprintf("pad: negative padding %dx%d", padH, padW))
	}

	batch, channels, h, w := shape[0], shape[1], shape[2], shape[3]
	if mode == tensor.PadReflect && (padH >= h || padW >= w) {
		panic(fmt.Sprintf("pad: reflect padding %dx%d must be smaller than input %dx%d", padH, padW, h, w))
	}

	outShape := tensor.Shape{batch, channels, h + 2*padH, w + 2*padW}
	result := mustNewRaw(outShape, x.DType(), cpu.device, "pad")

	switch x.DType() {
	case tensor.Float32:
		padRun(result.AsFloat32(), x.AsFloat32(), batch*channels, h, w, padH, padW, mode)
	case tensor.Float64:
		padRun(result.AsFloat64(), x.AsFloat64(), batch*channels, h, w, padH, padW, mode)
	default:
		panic(fmt.Sprintf("pad: unsupported dtype %s", x.DType()))
	}

	return result
}

func padRun[F float32 | float64](out, in []F, planes, h, w, padH, padW int, mode tensor.PadMode) {
	hOut := h + 2*padH
	wOut := w + 2*padW

	for p := 0; p < planes; p++ {
		inBase := p * h * w
		outBase := p * hOut * wOut
		for oh := 0; oh < hOut; oh++ {
			ih, okH := tensor.PadSourceIndex(oh, h, padH, mode)
			for ow := 0; ow < wOut; ow++ {
				iw, okW := tensor.PadSourceIndex(ow, w, padW, mode)
				if okH && okW {
					out[outBase+oh*wOut+ow] = in[inBase+ih*w+iw]
				}
			}
		}
	}
}
