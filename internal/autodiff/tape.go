package autodiff

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/autodiff/ops"
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// GradientTape records operations during the forward pass and replays them
// in reverse to compute gradients. A tape is not safe for concurrent use.
type GradientTape struct {
	operations []ops.Operation
	recording  bool
}

// NewGradientTape creates an empty, non-recording tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{}
}

// StartRecording begins capturing operations.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording stops capturing operations. Already recorded operations are
// kept until Clear.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording reports whether operations are currently being captured.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record appends an operation to the tape.
func (t *GradientTape) Record(op ops.Operation) {
	t.operations = append(t.operations, op)
}

// NumOperations returns the number of recorded operations.
func (t *GradientTape) NumOperations() int {
	return len(t.operations)
}

// Clear discards all recorded operations.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// Backward computes gradients of loss with respect to every tensor that
// participated in its computation, returning a map keyed by tensor identity.
// The loss must be a scalar of shape [1].
func (t *GradientTape) Backward(loss *tensor.RawTensor, backend tensor.Backend) (map[*tensor.RawTensor]*tensor.RawTensor, error) {
	if loss.Shape().NumElements() != 1 {
		return nil, fmt.Errorf("backward: loss must be a scalar, got shape %v", loss.Shape())
	}

	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)

	seed, err := tensor.NewRaw(loss.Shape(), loss.DType(), loss.Device())
	if err != nil {
		return nil, fmt.Errorf("backward: seed allocation failed: %w", err)
	}
	switch loss.DType() {
	case tensor.Float32:
		seed.AsFloat32()[0] = 1
	case tensor.Float64:
		seed.AsFloat64()[0] = 1
	default:
		return nil, fmt.Errorf("backward: unsupported loss dtype %s", loss.DType())
	}
	grads[loss] = seed

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		outGrad, ok := grads[op.Output()]
		if !ok {
			// Operation does not contribute to the loss.
			continue
		}

		// Backward implementations route through backend ops that may
		// mutate unique buffers.
		outGrad.ForceNonUnique()

		inputGrads := op.Backward(outGrad, backend)
		for j, input := range op.Inputs() {
			g := inputGrads[j]
			if g == nil {
				continue
			}
			if existing, ok := grads[input]; ok {
				existing.ForceNonUnique()
				g.ForceNonUnique()
				grads[input] = backend.Add(existing, g)
			} else {
				grads[input] = g
			}
		}
	}

	return grads, nil
}
