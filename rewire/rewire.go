// Copyright 2025 DeepRewire Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package rewire

import (
	"github.com/LuggiStruggi/DeepRewire/internal/nn"
	"github.com/LuggiStruggi/DeepRewire/tensor"
)

// Mode distinguishes a layer's parameterization.
type Mode = nn.Mode

// Parameterization modes.
const (
	ModeStandard   Mode = nn.ModeStandard
	ModeRewireable Mode = nn.ModeRewireable
)

// BiasPolicy selects how a layer's bias participates in rewiring.
type BiasPolicy = nn.BiasPolicy

// Bias policies.
const (
	// BiasIgnore leaves the bias as a plain trainable parameter.
	BiasIgnore BiasPolicy = nn.BiasIgnore
	// BiasAsConnections treats bias entries like weight connections.
	BiasAsConnections BiasPolicy = nn.BiasAsConnections
	// BiasSecondBias splits the bias into positive and negative halves.
	BiasSecondBias BiasPolicy = nn.BiasSecondBias
)

// SignMode selects how connection signs are derived at conversion time.
type SignMode = nn.SignMode

// Sign modes.
const (
	// SignsRandom draws each sign uniformly from {-1, +1}.
	SignsRandom SignMode = nn.SignsRandom
	// SignsPreserve derives signs from the current weights, so the
	// converted layer initially computes the same function.
	SignsPreserve SignMode = nn.SignsPreserve
)

// Options configures the conversion. The zero value draws random signs,
// leaves biases as plain parameters and keeps all magnitudes as stored.
type Options = nn.Options

// Conversion and merge errors. Match with errors.Is; tree walkers wrap them
// with the offending layer's path.
var (
	ErrAlreadyConverted      = nn.ErrAlreadyConverted
	ErrNotConverted          = nn.ErrNotConverted
	ErrInconsistentState     = nn.ErrInconsistentState
	ErrUnsupportedBiasPolicy = nn.ErrUnsupportedBiasPolicy
	ErrUnsupportedSignMode   = nn.ErrUnsupportedSignMode
)

// Convert switches every supported layer in the module tree to the
// rewireable parameterization: each connection becomes a fixed sign times a
// trainable non-negative magnitude, and the effective weight is
// relu(magnitude) * sign. Layers without dense weights are left untouched.
//
// Must not be called while a gradient tape is recording.
//
// Example:
//
//	err := rewire.Convert(model, rewire.Options{
//	    SignMode:   rewire.SignsPreserve,
//	    BiasPolicy: rewire.BiasSecondBias,
//	})
func Convert[B tensor.Backend](m nn.Module[B], opts Options) error {
	return nn.Convert(m, opts)
}

// Reconvert merges every rewireable layer back into its standard
// parameterization. Connections whose magnitude was driven to zero or below
// become exact zeros, so the learned sparse connectivity survives the merge.
//
// Must not be called while a gradient tape is recording.
func Reconvert[B tensor.Backend](m nn.Module[B]) error {
	return nn.Reconvert(m)
}

// Sparsity returns the fraction of entries across the given tensors whose
// absolute value is at or below threshold. With threshold 0 it counts the
// exact zeros left by a merge.
func Sparsity(tensors []*tensor.RawTensor, threshold float32) float64 {
	return nn.Sparsity(tensors, threshold)
}

// ModelSparsity returns the fraction of dormant weight connections across
// all dense layers in the module tree. The value is invariant under
// Reconvert.
func ModelSparsity[B tensor.Backend](m nn.Module[B]) float64 {
	return nn.ModelSparsity(m)
}
