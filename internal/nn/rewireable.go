package nn

import (
	"errors"
	"math/rand"
)

// Mode distinguishes a layer's parameterization.
type Mode int

const (
	// ModeStandard is the usual dense parameterization.
	ModeStandard Mode = iota
	// ModeRewireable decomposes each connection into a fixed sign and a
	// trainable magnitude. The effective weight is relu(magnitude) * sign.
	ModeRewireable
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeRewireable:
		return "rewireable"
	default:
		return "unknown"
	}
}

// BiasPolicy selects how a layer's bias participates in rewiring.
type BiasPolicy int

const (
	// BiasIgnore leaves the bias as a plain trainable parameter.
	BiasIgnore BiasPolicy = iota
	// BiasAsConnections treats bias entries like weight connections: each
	// gets a fixed sign and a trainable magnitude.
	BiasAsConnections
	// BiasSecondBias splits the bias into a positive and a negative half,
	// both trainable with non-negative effect. The effective bias is
	// (relu(pos) - relu(neg)) / 2.
	BiasSecondBias
)

// String returns a human-readable policy name.
func (p BiasPolicy) String() string {
	switch p {
	case BiasIgnore:
		return "ignore"
	case BiasAsConnections:
		return "as-connections"
	case BiasSecondBias:
		return "second-bias"
	default:
		return "unknown"
	}
}

// SignMode selects how connection signs are derived at conversion time.
type SignMode int

const (
	// SignsRandom draws each sign uniformly from {-1, +1} and keeps the
	// stored values as magnitudes. Entries whose value is not positive
	// start out dormant.
	SignsRandom SignMode = iota
	// SignsPreserve takes each entry's sign as the connection sign and its
	// absolute value as the magnitude, so the effective weights initially
	// reproduce the standard layer exactly.
	SignsPreserve
)

// String returns a human-readable sign mode name.
func (m SignMode) String() string {
	switch m {
	case SignsRandom:
		return "random"
	case SignsPreserve:
		return "preserve"
	default:
		return "unknown"
	}
}

// Options configures the conversion to the rewireable parameterization. The
// zero value draws random signs, leaves biases as plain parameters and keeps
// all magnitudes as stored.
type Options struct {
	BiasPolicy BiasPolicy
	SignMode   SignMode

	// ActiveProbability, when in (0, 1], re-initializes connectivity at
	// conversion time: each connection is active with this probability
	// and forced dormant otherwise. Zero disables this.
	ActiveProbability float64
}

// Conversion and merge errors. Tree walkers wrap these with the offending
// layer's path; match with errors.Is.
var (
	ErrAlreadyConverted      = errors.New("layer is already rewireable")
	ErrNotConverted          = errors.New("layer is not rewireable")
	ErrInconsistentState     = errors.New("inconsistent rewireable state")
	ErrUnsupportedBiasPolicy = errors.New("unsupported bias policy")
	ErrUnsupportedSignMode   = errors.New("unsupported sign mode")
)

func (o Options) validate() error {
	switch o.BiasPolicy {
	case BiasIgnore, BiasAsConnections, BiasSecondBias:
	default:
		return ErrUnsupportedBiasPolicy
	}
	switch o.SignMode {
	case SignsRandom, SignsPreserve:
	default:
		return ErrUnsupportedSignMode
	}
	return nil
}

// deriveSigns fills signs and rewrites values in place. Preserve mode moves
// each entry's magnitude into values and its sign into signs, so
// relu(value) * sign reproduces the original entry exactly. Zero entries get
// a positive sign. Random mode leaves values untouched.
func deriveSigns(values, signs []float32, mode SignMode) {
	switch mode {
	case SignsPreserve:
		for i, v := range values {
			if v < 0 {
				signs[i] = -1
				values[i] = -v
			} else {
				signs[i] = 1
			}
		}
	case SignsRandom:
		for i := range signs {
			signs[i] = float32(2*rand.Intn(2) - 1)
		}
	}
}

// applyActiveProbability re-initializes connectivity: each entry becomes
// active (positive magnitude) with probability p and dormant otherwise.
// Entries with magnitude exactly zero stay dormant either way.
func applyActiveProbability(values []float32, p float64) {
	if p <= 0 {
		return
	}
	for i, v := range values {
		mag := v
		if mag < 0 {
			mag = -mag
		}
		if rand.Float64() < p {
			values[i] = mag
		} else {
			values[i] = -mag
		}
	}
}

// mergeConnections collapses magnitudes and signs back into plain weights in
// place: values[i] becomes relu(values[i]) * signs[i]. Dormant connections
// come out exactly zero.
func mergeConnections(values, signs []float32) {
	for i, v := range values {
		if v > 0 {
			values[i] = v * signs[i]
		} else {
			values[i] = 0
		}
	}
}

// splitSecondBias rewrites bias in place into its doubled positive half and
// fills neg with the doubled negative half. The halving in the effective
// bias undoes the doubling, so the initial effective bias is unchanged.
func splitSecondBias(bias, neg []float32) {
	for i, b := range bias {
		if b > 0 {
			bias[i] = 2 * b
			neg[i] = 0
		} else {
			bias[i] = 0
			neg[i] = -2 * b
		}
	}
}

// mergeSecondBias collapses the two halves back into a plain bias in place:
// bias[i] becomes (relu(pos[i]) - relu(neg[i])) / 2.
func mergeSecondBias(pos, neg []float32) {
	for i := range pos {
		p, n := pos[i], neg[i]
		if p < 0 {
			p = 0
		}
		if n < 0 {
			n = 0
		}
		pos[i] = (p - n) / 2
	}
}
