// Copyright 2025 DeepRewire Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package rewire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuggiStruggi/DeepRewire/autodiff"
	"github.com/LuggiStruggi/DeepRewire/backend/cpu"
	"github.com/LuggiStruggi/DeepRewire/nn"
	"github.com/LuggiStruggi/DeepRewire/optim"
	"github.com/LuggiStruggi/DeepRewire/rewire"
	"github.com/LuggiStruggi/DeepRewire/tensor"
)

type adBackend = *autodiff.Backend[*cpu.Backend]

// Full public API walkthrough: build, convert, train, merge.
func TestConvertTrainReconvert(t *testing.T) {
	backend := autodiff.New(cpu.New())

	model := nn.NewSequential[adBackend](
		nn.NewLinear[adBackend](4, 16, backend),
		nn.NewReLU[adBackend](),
		nn.NewLinear[adBackend](16, 2, backend),
	)

	x := tensor.Randn[float32](tensor.Shape{8, 4}, backend)
	before := append([]float32(nil), model.Forward(x).Data()...)

	require.NoError(t, rewire.Convert[adBackend](model, rewire.Options{
		SignMode:   rewire.SignsPreserve,
		BiasPolicy: rewire.BiasSecondBias,
	}))

	// Preserve mode keeps the function intact.
	assert.InDeltaSlice(t, before, model.Forward(x).Data(), 1e-5)

	target := tensor.Zeros[float32](tensor.Shape{8, 2}, backend)
	optimizer := optim.NewSGD(model.Parameters(), 0.1)

	for step := 0; step < 20; step++ {
		backend.Tape().Clear()
		backend.StartRecording()
		loss := nn.MSELoss(model.Forward(x), target)
		backend.StopRecording()

		grads, err := backend.Backward(loss.Raw())
		require.NoError(t, err)
		require.NoError(t, optimizer.Step(grads))
	}

	trained := append([]float32(nil), model.Forward(x).Data()...)
	require.NoError(t, rewire.Reconvert[adBackend](model))
	assert.InDeltaSlice(t, trained, model.Forward(x).Data(), 1e-5,
		"merge must not change the trained function")
}

func TestSparsityAfterMerge(t *testing.T) {
	backend := cpu.New()
	l := nn.NewLinearNoBias[*cpu.Backend](8, 8, backend)

	require.NoError(t, rewire.Convert[*cpu.Backend](l, rewire.Options{SignMode: rewire.SignsPreserve}))

	// Force half of the magnitudes dormant.
	data := l.Weight().Data()
	for i := 0; i < 32; i++ {
		mag := data[i]
		if mag < 0 {
			mag = -mag
		}
		data[i] = -mag - 1
	}

	sparsity := rewire.ModelSparsity[*cpu.Backend](l)
	require.NoError(t, rewire.Reconvert[*cpu.Backend](l))

	assert.Equal(t, sparsity, rewire.ModelSparsity[*cpu.Backend](l))
	assert.GreaterOrEqual(t, rewire.Sparsity([]*tensor.RawTensor{l.Weight().Raw()}, 0), 0.5)
}

func TestErrorsAreExported(t *testing.T) {
	backend := cpu.New()
	l := nn.NewLinear[*cpu.Backend](2, 2, backend)

	assert.ErrorIs(t, rewire.Reconvert[*cpu.Backend](l), rewire.ErrNotConverted)

	require.NoError(t, rewire.Convert[*cpu.Backend](l, rewire.Options{}))
	assert.ErrorIs(t, rewire.Convert[*cpu.Backend](l, rewire.Options{}), rewire.ErrAlreadyConverted)

	assert.Equal(t, rewire.ModeRewireable, l.Mode())
}
