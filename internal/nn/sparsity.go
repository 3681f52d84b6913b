package nn

import (
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// Sparsity returns the fraction of entries across the given tensors whose
// absolute value is at or below threshold. With threshold 0 it counts exact
// zeros, the form dormant connections take after a merge.
func Sparsity(tensors []*tensor.RawTensor, threshold float32) float64 {
	var dormant, total int
	for _, t := range tensors {
		for _, v := range t.AsFloat32() {
			if v < 0 {
				v = -v
			}
			if v <= threshold {
				dormant++
			}
		}
		total += t.NumElements()
	}
	if total == 0 {
		return 0
	}
	return float64(dormant) / float64(total)
}

// connectionCounter is implemented by layers whose weight entries are
// connections that can be dormant.
type connectionCounter interface {
	countConnections() (dormant, total int)
}

func (l *Linear[B]) countConnections() (int, int) {
	return countDormant(l.weight.Data(), l.mode)
}

func (c *Conv2D[B]) countConnections() (int, int) {
	return countDormant(c.weight.Data(), c.mode)
}

// countDormant counts dormant weight entries. In rewireable mode an entry is
// dormant when its magnitude is not positive; in standard mode when it is
// exactly zero.
func countDormant(values []float32, mode Mode) (int, int) {
	dormant := 0
	for _, v := range values {
		if mode == ModeRewireable {
			if v <= 0 {
				dormant++
			}
		} else if v == 0 {
			dormant++
		}
	}
	return dormant, len(values)
}

// ModelSparsity returns the fraction of dormant weight connections across
// all dense layers in the module tree. The value is the same before and
// after a merge: a magnitude at or below zero becomes an exact zero. Biases
// are not counted, since their dormancy depends on the bias policy.
func ModelSparsity[B tensor.Backend](m Module[B]) float64 {
	dormant, total := countModelConnections(m)
	if total == 0 {
		return 0
	}
	return float64(dormant) / float64(total)
}

func countModelConnections[B tensor.Backend](m Module[B]) (int, int) {
	if counter, ok := m.(connectionCounter); ok {
		return counter.countConnections()
	}

	container, ok := m.(Container[B])
	if !ok {
		return 0, 0
	}
	var dormant, total int
	for _, child := range container.Children() {
		d, t := countModelConnections(child.Module)
		dormant += d
		total += t
	}
	return dormant, total
}
