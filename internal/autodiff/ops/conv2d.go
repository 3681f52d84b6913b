package ops

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// Conv2DOp records c = conv2d(input, kernel, stride, padding, dilation, groups).
type Conv2DOp struct {
	Input, Kernel *tensor.RawTensor
	Stride        [2]int
	Padding       [2]int
	Dilation      [2]int
	Groups        int
	Out           *tensor.RawTensor
}

func (op *Conv2DOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput := mustRaw(op.Input.Shape(), grad.DType(), grad.Device())
	gradKernel := mustRaw(op.Kernel.Shape(), grad.DType(), grad.Device())

	switch grad.DType() {
	case tensor.Float32:
		conv2dBackward(gradInput.AsFloat32(), gradKernel.AsFloat32(),
			grad.AsFloat32(), op.Input.AsFloat32(), op.Kernel.AsFloat32(), op)
	case tensor.Float64:
		conv2dBackward(gradInput.AsFloat64(), gradKernel.AsFloat64(),
			grad.AsFloat64(), op.Input.AsFloat64(), op.Kernel.AsFloat64(), op)
	default:
		panic(fmt.Sprintf("conv2d backward: unsupported dtype %s", grad.DType()))
	}

	return []*tensor.RawTensor{gradInput, gradKernel}
}

func (op *Conv2DOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.Input, op.Kernel}
}
func (op *Conv2DOp) Output() *tensor.RawTensor { return op.Out }

// conv2dBackward scatters each output gradient through the positions the
// forward pass read, accumulating into both input and kernel gradients.
func conv2dBackward[F float32 | float64](gradIn, gradK, gradOut, in, kernel []F, op *Conv2DOp) {
	inShape := op.Input.Shape()
	kShape := op.Kernel.Shape()
	outShape := op.Out.Shape()

	batch, cin, h, w := inShape[0], inShape[1], inShape[2], inShape[3]
	cout, kh, kw := kShape[0], kShape[2], kShape[3]
	hOut, wOut := outShape[2], outShape[3]

	sh, sw := op.Stride[0], op.Stride[1]
	ph, pw := op.Padding[0], op.Padding[1]
	dh, dw := op.Dilation[0], op.Dilation[1]

	cinPerGroup := cin / op.Groups
	coutPerGroup := cout / op.Groups

	for n := 0; n < batch; n++ {
		for co := 0; co < cout; co++ {
			g := co / coutPerGroup
			outBase := (n*cout + co) * hOut * wOut
			for oh := 0; oh < hOut; oh++ {
				for ow := 0; ow < wOut; ow++ {
					gv := gradOut[outBase+oh*wOut+ow]
					if gv == 0 {
						continue
					}
					for cig := 0; cig < cinPerGroup; cig++ {
						ci := g*cinPerGroup + cig
						inBase := (n*cin + ci) * h * w
						kBase := ((co*cinPerGroup + cig) * kh) * kw
						for i := 0; i < kh; i++ {
							ih := oh*sh - ph + i*dh
							if ih < 0 || ih >= h {
								continue
							}
							for j := 0; j < kw; j++ {
								iw := ow*sw - pw + j*dw
								if iw < 0 || iw >= w {
									continue
								}
								gradIn[inBase+ih*w+iw] += gv * kernel[kBase+i*kw+j]
								gradK[kBase+i*kw+j] += gv * in[inBase+ih*w+iw]
							}
						}
					}
				}
			}
		}
	}
}
