package nn

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// Linear is a fully connected layer: y = x @ W^T + b. The weight has shape
// [outFeatures, inFeatures].
//
// A Linear runs in one of two modes. In standard mode the weight is used
// directly. In rewireable mode the stored weight holds connection magnitudes
// and the effective weight is relu(magnitude) * sign, with signs fixed at
// conversion time. ToRewireable and ToStandard switch between the two; the
// weight tensor's identity is preserved across both transitions.
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	backend     B

	mode Mode
	opts Options

	// weight holds plain weights in standard mode and connection
	// magnitudes in rewireable mode.
	weight *tensor.Tensor[float32, B]
	bias   *tensor.Tensor[float32, B] // nil when the layer has no bias

	// Rewireable-mode auxiliary state.
	weightSigns *tensor.Tensor[float32, B]
	biasSigns   *tensor.Tensor[float32, B] // BiasAsConnections only
	biasNeg     *tensor.Tensor[float32, B] // BiasSecondBias only
}

// NewLinear creates a fully connected layer with bias in standard mode.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return newLinear(inFeatures, outFeatures, true, backend)
}

// NewLinearNoBias creates a fully connected layer without bias.
func NewLinearNoBias[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return newLinear(inFeatures, outFeatures, false, backend)
}

func newLinear[B tensor.Backend](inFeatures, outFeatures int, withBias bool, backend B) *Linear[B] {
	l := &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		backend:     backend,
		weight:      tensor.Zeros[float32](tensor.Shape{outFeatures, inFeatures}, backend),
	}
	initKaimingUniform(l.weight.Data(), inFeatures)

	if withBias {
		l.bias = tensor.Zeros[float32](tensor.Shape{outFeatures}, backend)
		initKaimingUniform(l.bias.Data(), inFeatures)
	}
	return l
}

// InFeatures returns the input dimension.
func (l *Linear[B]) InFeatures() int { return l.inFeatures }

// OutFeatures returns the output dimension.
func (l *Linear[B]) OutFeatures() int { return l.outFeatures }

// Mode returns the layer's current parameterization.
func (l *Linear[B]) Mode() Mode { return l.mode }

// Weight returns the weight tensor. In rewireable mode it holds connection
// magnitudes.
func (l *Linear[B]) Weight() *tensor.Tensor[float32, B] { return l.weight }

// Bias returns the bias tensor, or nil for a bias-free layer. In rewireable
// mode its meaning depends on the bias policy.
func (l *Linear[B]) Bias() *tensor.Tensor[float32, B] { return l.bias }

// Forward computes the layer output for input of shape [batch, inFeatures].
func (l *Linear[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if l.mode == ModeRewireable {
		return l.forwardRewireable(x)
	}
	return l.forwardStandard(x)
}

func (l *Linear[B]) forwardStandard(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := x.MatMul(l.weight.T())
	if l.bias != nil {
		out = out.Add(l.bias)
	}
	return out
}

func (l *Linear[B]) forwardRewireable(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	effective := l.weight.Relu().Mul(l.weightSigns)
	out := x.MatMul(effective.T())

	if l.bias == nil {
		return out
	}
	return out.Add(l.effectiveBias())
}

// effectiveBias computes the bias contribution in rewireable mode according
// to the conversion's bias policy.
func (l *Linear[B]) effectiveBias() *tensor.Tensor[float32, B] {
	switch l.opts.BiasPolicy {
	case BiasAsConnections:
		return l.bias.Relu().Mul(l.biasSigns)
	case BiasSecondBias:
		return l.bias.Relu().Sub(l.biasNeg.Relu()).MulScalar(0.5)
	default:
		return l.bias
	}
}

// ToRewireable switches the layer into the rewireable parameterization.
// Must not be called while a gradient tape is recording: the conversion
// rewrites tensors in place.
func (l *Linear[B]) ToRewireable(opts Options) error {
	if l.mode == ModeRewireable {
		return ErrAlreadyConverted
	}
	if err := opts.validate(); err != nil {
		return err
	}

	l.weightSigns = tensor.Zeros[float32](l.weight.Shape(), l.backend)
	deriveSigns(l.weight.Data(), l.weightSigns.Data(), opts.SignMode)
	applyActiveProbability(l.weight.Data(), opts.ActiveProbability)

	if l.bias != nil {
		switch opts.BiasPolicy {
		case BiasAsConnections:
			l.biasSigns = tensor.Zeros[float32](l.bias.Shape(), l.backend)
			deriveSigns(l.bias.Data(), l.biasSigns.Data(), opts.SignMode)
			applyActiveProbability(l.bias.Data(), opts.ActiveProbability)
		case BiasSecondBias:
			l.biasNeg = tensor.Zeros[float32](l.bias.Shape(), l.backend)
			splitSecondBias(l.bias.Data(), l.biasNeg.Data())
		}
	}

	l.opts = opts
	l.mode = ModeRewireable
	return nil
}

// ToStandard merges the rewireable parameterization back into plain weights.
// Dormant connections become exact zeros. Must not be called while a
// gradient tape is recording.
func (l *Linear[B]) ToStandard() error {
	if l.mode != ModeRewireable {
		return ErrNotConverted
	}
	if err := l.checkRewireState(); err != nil {
		return err
	}

	mergeConnections(l.weight.Data(), l.weightSigns.Data())

	if l.bias != nil {
		switch l.opts.BiasPolicy {
		case BiasAsConnections:
			mergeConnections(l.bias.Data(), l.biasSigns.Data())
		case BiasSecondBias:
			mergeSecondBias(l.bias.Data(), l.biasNeg.Data())
		}
	}

	l.weightSigns = nil
	l.biasSigns = nil
	l.biasNeg = nil
	l.opts = Options{}
	l.mode = ModeStandard
	return nil
}

// checkRewireState validates the auxiliary tensors before a merge.
func (l *Linear[B]) checkRewireState() error {
	if l.weightSigns == nil || !l.weightSigns.Shape().Equal(l.weight.Shape()) {
		return fmt.Errorf("%w: weight signs missing or misshapen", ErrInconsistentState)
	}
	if l.bias != nil {
		switch l.opts.BiasPolicy {
		case BiasAsConnections:
			if l.biasSigns == nil || !l.biasSigns.Shape().Equal(l.bias.Shape()) {
				return fmt.Errorf("%w: bias signs missing or misshapen", ErrInconsistentState)
			}
		case BiasSecondBias:
			if l.biasNeg == nil || !l.biasNeg.Shape().Equal(l.bias.Shape()) {
				return fmt.Errorf("%w: negative bias half missing or misshapen", ErrInconsistentState)
			}
		}
	}
	return nil
}

// Parameters returns the trainable tensors for the current mode. Connection
// signs are never trainable.
func (l *Linear[B]) Parameters() []*Parameter {
	params := []*Parameter{NewParameter("weight", l.weight.Raw())}
	if l.bias != nil {
		params = append(params, NewParameter("bias", l.bias.Raw()))
		if l.mode == ModeRewireable && l.opts.BiasPolicy == BiasSecondBias {
			params = append(params, NewParameter("bias_neg", l.biasNeg.Raw()))
		}
	}
	return params
}

// FixedTensors returns the non-trainable auxiliary tensors, empty in
// standard mode.
func (l *Linear[B]) FixedTensors() []*FixedTensor {
	var fixed []*FixedTensor
	if l.weightSigns != nil {
		fixed = append(fixed, NewFixedTensor("weight_signs", l.weightSigns.Raw()))
	}
	if l.biasSigns != nil {
		fixed = append(fixed, NewFixedTensor("bias_signs", l.biasSigns.Raw()))
	}
	return fixed
}

// StateDict returns all tensors of the layer keyed by name. The key set
// depends on the mode and, in rewireable mode, on the bias policy.
func (l *Linear[B]) StateDict() map[string]*tensor.RawTensor {
	state := map[string]*tensor.RawTensor{
		"weight": l.weight.Raw(),
	}
	if l.bias != nil {
		state["bias"] = l.bias.Raw()
	}
	if l.mode == ModeRewireable {
		state["weight_signs"] = l.weightSigns.Raw()
		if l.biasSigns != nil {
			state["bias_signs"] = l.biasSigns.Raw()
		}
		if l.biasNeg != nil {
			state["bias_neg"] = l.biasNeg.Raw()
		}
	}
	return state
}

// LoadStateDict copies values into the layer's tensors. The key set must
// match the layer's current mode exactly.
func (l *Linear[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	return loadStateDict(l.StateDict(), state)
}
