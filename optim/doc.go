// Copyright 2025 DeepRewire Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based optimizers.
//
// Optimizers update parameters in place from the gradient map produced by
// the autodiff backend:
//
//	optimizer := optim.NewSGD(model.Parameters(), 0.01)
//
//	backend.StartRecording()
//	loss := nn.MSELoss(model.Forward(x), target)
//	backend.StopRecording()
//
//	grads, _ := backend.Backward(loss.Raw())
//	_ = optimizer.Step(grads)
package optim
