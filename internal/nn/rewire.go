package nn

import (
	"fmt"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// rewireable is implemented by leaf layers that support the sign/magnitude
// parameterization. Containers never implement it; the walkers recurse into
// them instead.
type rewireable interface {
	ToRewireable(Options) error
	ToStandard() error
}

// Convert switches every supported layer in the module tree to the
// rewireable parameterization. Layers without a dense weight, such as
// activations, are left untouched. On error the conversion stops at the
// offending layer; layers converted before it keep their new state.
//
// Must not be called while a gradient tape is recording.
func Convert[B tensor.Backend](m Module[B], opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	return walkRewireables(m, "", func(r rewireable) error {
		return r.ToRewireable(opts)
	})
}

// Reconvert merges every rewireable layer in the module tree back into its
// standard parameterization. Dormant connections become exact zeros, so the
// learned connectivity survives the merge.
//
// Must not be called while a gradient tape is recording.
func Reconvert[B tensor.Backend](m Module[B]) error {
	return walkRewireables(m, "", func(r rewireable) error {
		return r.ToStandard()
	})
}

// walkRewireables applies visit to every rewireable leaf, depth-first,
// wrapping errors with the layer's path in the tree.
func walkRewireables[B tensor.Backend](m Module[B], path string, visit func(rewireable) error) error {
	if r, ok := m.(rewireable); ok {
		if err := visit(r); err != nil {
			if path == "" {
				return err
			}
			return fmt.Errorf("layer %s: %w", path, err)
		}
		return nil
	}

	container, ok := m.(Container[B])
	if !ok {
		return nil
	}
	for _, child := range container.Children() {
		childPath := child.Name
		if path != "" {
			childPath = path + "." + child.Name
		}
		if err := walkRewireables(child.Module, childPath, visit); err != nil {
			return err
		}
	}
	return nil
}
