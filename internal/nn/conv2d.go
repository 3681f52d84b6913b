package nn

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// Conv2DConfig configures a 2D convolution layer. Zero-valued fields are
// normalized to stride 1, no padding, dilation 1, a single group, zero
// padding mode and a bias.
type Conv2DConfig struct {
	Stride      [2]int
	Padding     [2]int
	Dilation    [2]int
	Groups      int
	PaddingMode tensor.PadMode
	NoBias      bool
}

func (c Conv2DConfig) normalized() Conv2DConfig {
	if c.Stride == [2]int{} {
		c.Stride = [2]int{1, 1}
	}
	if c.Dilation == [2]int{} {
		c.Dilation = [2]int{1, 1}
	}
	if c.Groups == 0 {
		c.Groups = 1
	}
	return c
}

// Conv2D is a 2D convolution layer over [N, C_in, H, W] inputs with kernel
// shape [C_out, C_in/groups, K_h, K_w]. Like Linear it runs in standard or
// rewireable mode, with the same sign and bias machinery applied to the
// kernel and bias tensors.
type Conv2D[B tensor.Backend] struct {
	inChannels  int
	outChannels int
	kernelSize  [2]int
	cfg         Conv2DConfig
	backend     B

	mode Mode
	opts Options

	weight *tensor.Tensor[float32, B]
	bias   *tensor.Tensor[float32, B]

	weightSigns *tensor.Tensor[float32, B]
	biasSigns   *tensor.Tensor[float32, B]
	biasNeg     *tensor.Tensor[float32, B]
}

// NewConv2D creates a convolution layer in standard mode.
func NewConv2D[B tensor.Backend](inChannels, outChannels int, kernelSize [2]int, cfg Conv2DConfig, backend B) (*Conv2D[B], error) {
	cfg = cfg.normalized()

	if inChannels%cfg.Groups != 0 || outChannels%cfg.Groups != 0 {
		return nil, fmt.Errorf("conv2d: channels (%d in, %d out) not divisible by groups %d",
			inChannels, outChannels, cfg.Groups)
	}
	if kernelSize[0] < 1 || kernelSize[1] < 1 {
		return nil, fmt.Errorf("conv2d: invalid kernel size %v", kernelSize)
	}

	c := &Conv2D[B]{
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  kernelSize,
		cfg:         cfg,
		backend:     backend,
	}

	kernelShape := tensor.Shape{outChannels, inChannels / cfg.Groups, kernelSize[0], kernelSize[1]}
	c.weight = tensor.Zeros[float32](kernelShape, backend)
	fanIn := (inChannels / cfg.Groups) * kernelSize[0] * kernelSize[1]
	initKaimingUniform(c.weight.Data(), fanIn)

	if !cfg.NoBias {
		c.bias = tensor.Zeros[float32](tensor.Shape{outChannels}, backend)
		initKaimingUniform(c.bias.Data(), fanIn)
	}
	return c, nil
}

// InChannels returns the number of input channels.
func (c *Conv2D[B]) InChannels() int { return c.inChannels }

// OutChannels returns the number of output channels.
func (c *Conv2D[B]) OutChannels() int { return c.outChannels }

// Config returns the layer's normalized configuration.
func (c *Conv2D[B]) Config() Conv2DConfig { return c.cfg }

// Mode returns the layer's current parameterization.
func (c *Conv2D[B]) Mode() Mode { return c.mode }

// Weight returns the kernel tensor. In rewireable mode it holds connection
// magnitudes.
func (c *Conv2D[B]) Weight() *tensor.Tensor[float32, B] { return c.weight }

// Bias returns the bias tensor, or nil for a bias-free layer.
func (c *Conv2D[B]) Bias() *tensor.Tensor[float32, B] { return c.bias }

// Forward computes the convolution for input of shape [N, C_in, H, W].
func (c *Conv2D[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	kernel := c.weight
	if c.mode == ModeRewireable {
		kernel = c.weight.Relu().Mul(c.weightSigns)
	}

	padding := c.cfg.Padding
	if c.cfg.PaddingMode != tensor.PadZeros && padding != [2]int{} {
		// Non-zero border fills need an explicit pad before the
		// convolution, which itself only knows zero padding.
		x = x.Pad(padding[0], padding[1], c.cfg.PaddingMode)
		padding = [2]int{}
	}

	out := x.Conv2D(kernel, c.cfg.Stride, padding, c.cfg.Dilation, c.cfg.Groups)

	if c.bias == nil {
		return out
	}
	bias := c.bias
	if c.mode == ModeRewireable {
		bias = c.effectiveBias()
	}
	return out.Add(bias.Reshape(1, c.outChannels, 1, 1))
}

func (c *Conv2D[B]) effectiveBias() *tensor.Tensor[float32, B] {
	switch c.opts.BiasPolicy {
	case BiasAsConnections:
		return c.bias.Relu().Mul(c.biasSigns)
	case BiasSecondBias:
		return c.bias.Relu().Sub(c.biasNeg.Relu()).MulScalar(0.5)
	default:
		return c.bias
	}
}

// ToRewireable switches the layer into the rewireable parameterization.
// Must not be called while a gradient tape is recording.
func (c *Conv2D[B]) ToRewireable(opts Options) error {
	if c.mode == ModeRewireable {
		return ErrAlreadyConverted
	}
	if err := opts.validate(); err != nil {
		return err
	}

	c.weightSigns = tensor.Zeros[float32](c.weight.Shape(), c.backend)
	deriveSigns(c.weight.Data(), c.weightSigns.Data(), opts.SignMode)
	applyActiveProbability(c.weight.Data(), opts.ActiveProbability)

	if c.bias != nil {
		switch opts.BiasPolicy {
		case BiasAsConnections:
			c.biasSigns = tensor.Zeros[float32](c.bias.Shape(), c.backend)
			deriveSigns(c.bias.Data(), c.biasSigns.Data(), opts.SignMode)
			applyActiveProbability(c.bias.Data(), opts.ActiveProbability)
		case BiasSecondBias:
			c.biasNeg = tensor.Zeros[float32](c.bias.Shape(), c.backend)
			splitSecondBias(c.bias.Data(), c.biasNeg.Data())
		}
	}

	c.opts = opts
	c.mode = ModeRewireable
	return nil
}

// ToStandard merges the rewireable parameterization back into plain kernel
// weights. Dormant connections become exact zeros.
func (c *Conv2D[B]) ToStandard() error {
	if c.mode != ModeRewireable {
		return ErrNotConverted
	}
	if err := c.checkRewireState(); err != nil {
		return err
	}

	mergeConnections(c.weight.Data(), c.weightSigns.Data())

	if c.bias != nil {
		switch c.opts.BiasPolicy {
		case BiasAsConnections:
			mergeConnections(c.bias.Data(), c.biasSigns.Data())
		case BiasSecondBias:
			mergeSecondBias(c.bias.Data(), c.biasNeg.Data())
		}
	}

	c.weightSigns = nil
	c.biasSigns = nil
	c.biasNeg = nil
	c.opts = Options{}
	c.mode = ModeStandard
	return nil
}

func (c *Conv2D[B]) checkRewireState() error {
	if c.weightSigns == nil || !c.weightSigns.Shape().Equal(c.weight.Shape()) {
		return fmt.Errorf("%w: weight signs missing or misshapen", ErrInconsistentState)
	}
	if c.bias != nil {
		switch c.opts.BiasPolicy {
		case BiasAsConnections:
			if c.biasSigns == nil || !c.biasSigns.Shape().Equal(c.bias.Shape()) {
				return fmt.Errorf("%w: bias signs missing or misshapen", ErrInconsistentState)
			}
		case BiasSecondBias:
			if c.biasNeg == nil || !c.biasNeg.Shape().Equal(c.bias.Shape()) {
				return fmt.Errorf("%w: negative bias half missing or misshapen", ErrInconsistentState)
			}
		}
	}
	return nil
}

// Parameters returns the trainable tensors for the current mode.
func (c *Conv2D[B]) Parameters() []*Parameter {
	params := []*Parameter{NewParameter("weight", c.weight.Raw())}
	if c.bias != nil {
		params = append(params, NewParameter("bias", c.bias.Raw()))
		if c.mode == ModeRewireable && c.opts.BiasPolicy == BiasSecondBias {
			params = append(params, NewParameter("bias_neg", c.biasNeg.Raw()))
		}
	}
	return params
}

// FixedTensors returns the non-trainable auxiliary tensors, empty in
// standard mode.
func (c *Conv2D[B]) FixedTensors() []*FixedTensor {
	var fixed []*FixedTensor
	if c.weightSigns != nil {
		fixed = append(fixed, NewFixedTensor("weight_signs", c.weightSigns.Raw()))
	}
	if c.biasSigns != nil {
		fixed = append(fixed, NewFixedTensor("bias_signs", c.biasSigns.Raw()))
	}
	return fixed
}

// StateDict returns all tensors of the layer keyed by name.
func (c *Conv2D[B]) StateDict() map[string]*tensor.RawTensor {
	state := map[string]*tensor.RawTensor{
		"weight": c.weight.Raw(),
	}
	if c.bias != nil {
		state["bias"] = c.bias.Raw()
	}
	if c.mode == ModeRewireable {
		state["weight_signs"] = c.weightSigns.Raw()
		if c.biasSigns != nil {
			state["bias_signs"] = c.biasSigns.Raw()
		}
		if c.biasNeg != nil {
			state["bias_neg"] = c.biasNeg.Raw()
		}
	}
	return state
}

// LoadStateDict copies values into the layer's tensors.
func (c *Conv2D[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	return loadStateDict(c.StateDict(), state)
}
