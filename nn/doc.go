// Copyright 2025 DeepRewire Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and containers.
//
// # Overview
//
// The package implements:
//   - Linear and Conv2D layers, each supporting a standard and a
//     rewireable parameterization (see the rewire package)
//   - Sequential containers and activation layers
//   - Loss functions
//
// # Basic Usage
//
//	backend := autodiff.New(cpu.New())
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, backend),
//	    nn.NewReLU[*autodiff.Backend[*cpu.Backend]](),
//	    nn.NewLinear(128, 10, backend),
//	)
//
//	out := model.Forward(input)
package nn
