// Copyright 2025 DeepRewire Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// The package implements backpropagation with a gradient tape. It wraps any
// backend and records operations while recording is enabled:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
//
//	backend.StartRecording()
//	loss := nn.MSELoss(model.Forward(x), target)
//	backend.StopRecording()
//
//	grads, err := backend.Backward(loss.Raw())
package autodiff

import (
	"github.com/LuggiStruggi/DeepRewire/internal/autodiff"
	"github.com/LuggiStruggi/DeepRewire/tensor"
)

// Backend is the autodiff-enabled backend decorator.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates an autodiff backend wrapping the given backend.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new, non-recording gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}
