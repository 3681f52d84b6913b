// Copyright 2025 DeepRewire Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package rewire converts dense layers into a rewireable parameterization
// and back.
//
// # Overview
//
// In the rewireable parameterization every connection is a fixed sign times
// a trainable non-negative magnitude. During training, gradient descent can
// drive magnitudes to zero or below; such connections are dormant and
// contribute nothing to the forward pass. Merging back produces exact zeros
// for dormant connections, so training under this parameterization learns a
// sparse network.
//
// # Basic Usage
//
//	base := cpu.New()
//	backend := autodiff.New(base)
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, backend),
//	    nn.NewReLU[*autodiff.Backend[*cpu.Backend]](),
//	    nn.NewLinear(128, 10, backend),
//	)
//
//	// Switch to the sign/magnitude form.
//	err := rewire.Convert(model, rewire.Options{
//	    SignMode:   rewire.SignsPreserve,
//	    BiasPolicy: rewire.BiasSecondBias,
//	})
//
//	// ... train as usual; signs never reach the optimizer ...
//
//	// Merge back. Dormant connections become exact zeros.
//	err = rewire.Reconvert(model)
//	sparsity := rewire.ModelSparsity(model)
//
// # Bias Policies
//
// Biases can stay plain parameters (BiasIgnore), be treated like weight
// connections with their own signs (BiasAsConnections), or be split into a
// positive and a negative trainable half (BiasSecondBias).
package rewire
