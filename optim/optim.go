// Copyright 2025 DeepRewire Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/LuggiStruggi/DeepRewire/internal/nn"
	"github.com/LuggiStruggi/DeepRewire/internal/optim"
)

// Optimizer updates trainable parameters from gradients keyed by tensor
// identity. Fixed tensors such as connection signs never reach an
// optimizer.
type Optimizer = optim.Optimizer

// SGD is stochastic gradient descent with optional momentum.
type SGD = optim.SGD

// NewSGD creates a plain SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), 0.01)
func NewSGD(params []*nn.Parameter, lr float64) *SGD {
	return optim.NewSGD(params, lr)
}

// NewSGDWithMomentum creates an SGD optimizer with momentum.
func NewSGDWithMomentum(params []*nn.Parameter, lr, momentum float64) *SGD {
	return optim.NewSGDWithMomentum(params, lr, momentum)
}

// Adam is the Adam optimizer with bias-corrected moment estimates.
type Adam = optim.Adam

// AdamConfig holds Adam hyperparameters. Zero values are replaced by the
// usual defaults.
type AdamConfig = optim.AdamConfig

// NewAdam creates an Adam optimizer.
//
// Example:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 1e-3})
func NewAdam(params []*nn.Parameter, cfg AdamConfig) *Adam {
	return optim.NewAdam(params, cfg)
}
