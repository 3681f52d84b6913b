package cpu

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// Conv2D performs 2D cross-correlation of input [N, C_in, H, W] with kernel
// [C_out, C_in/groups, K_h, K_w] using zero padding. Output spatial size is
// (H + 2*p - d*(K-1) - 1)/s + 1 per dimension.
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding, dilation [2]int, groups int) *tensor.RawTensor {
	inShape := input.Shape()
	kShape := kernel.Shape()

	if len(inShape) != 4 || len(kShape) != 4 {
		panic(fmt.Sprintf("conv2d: expected 4D input and kernel, got %v and %v", inShape, kShape))
	}
	if groups < 1 {
		panic(fmt.Sprintf("conv2d: groups must be >= 1, got %d", groups))
	}

	batch, cin, h, w := inShape[0], inShape[1], inShape[2], inShape[3]
	cout, kcin, kh, kw := kShape[0], kShape[1], kShape[2], kShape[3]

	if cin%groups != 0 || cout%groups != 0 {
		panic(fmt.Sprintf("conv2d: channels (%d in, %d out) not divisible by groups %d", cin, cout, groups))
	}
	if kcin != cin/groups {
		panic(fmt.Sprintf("conv2d: kernel expects %d input channels per group, input has %d", kcin, cin/groups))
	}

	sh, sw := stride[0], stride[1]
	ph, pw := padding[0], padding[1]
	dh, dw := dilation[0], dilation[1]

	hOut := (h+2*ph-dh*(kh-1)-1)/sh + 1
	wOut := (w+2*pw-dw*(kw-1)-1)/sw + 1
	if hOut <= 0 || wOut <= 0 {
		panic(fmt.Sprintf("conv2d: kernel %dx%d (dilation %dx%d) does not fit input %dx%d with padding %dx%d",
			kh, kw, dh, dw, h, w, ph, pw))
	}

	result := mustNewRaw(tensor.Shape{batch, cout, hOut, wOut}, input.DType(), cpu.device, "conv2d")

	switch input.DType() {
	case tensor.Float32:
		conv2dRun(result.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(),
			batch, cin, h, w, cout, kh, kw, hOut, wOut, sh, sw, ph, pw, dh, dw, groups)
	case tensor.Float64:
		conv2dRun(result.AsFloat64(), input.AsFloat64(), kernel.AsFloat64(),
			batch, cin, h, w, cout, kh, kw, hOut, wOut, sh, sw, ph, pw, dh, dw, groups)
	default:
		panic(fmt.Sprintf("conv2d: unsupported dtype %s", input.DType()))
	}

	return result
}

// conv2dRun is the direct convolution loop. Output channel co reads input
// channels [g*cinPerGroup, (g+1)*cinPerGroup) where g = co / coutPerGroup.
func conv2dRun[F float32 | float64](out, in, kernel []F,
	batch, cin, h, w, cout, kh, kw, hOut, wOut, sh, sw, ph, pw, dh, dw, groups int,
) {
	cinPerGroup := cin / groups
	coutPerGroup := cout / groups

	for n := 0; n < batch; n++ {
		for co := 0; co < cout; co++ {
			g := co / coutPerGroup
			outBase := (n*cout + co) * hOut * wOut
			for oh := 0; oh < hOut; oh++ {
				for ow := 0; ow < wOut; ow++ {
					var sum F
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
								sum += in[inBase+ih*w+iw] * kernel[kBase+i*kw+j]
							}
						}
					}
					out[outBase+oh*wOut+ow] = sum
				}
			}
		}
	}
}
