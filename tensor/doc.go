// Copyright 2025 DeepRewire Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations.
//
// # Overview
//
// Tensors are the fundamental data structure of the framework. This package
// provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Reference-counted buffers with in-place optimization
//   - Device abstraction through the Backend interface
//
// # Basic Usage
//
//	import (
//	    "github.com/LuggiStruggi/DeepRewire/backend/cpu"
//	    "github.com/LuggiStruggi/DeepRewire/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    z := x.Add(y)
//	}
package tensor
