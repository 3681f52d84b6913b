// Copyright 2025 DeepRewire Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// The backend implements:
//   - Pure Go element-wise and matrix operations (no CGO)
//   - Direct 2D convolution with stride, padding, dilation and groups
//   - Explicit spatial padding with zero, reflect, replicate and circular
//     border fills
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
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
//	    x := tensor.Randn[float32](tensor.Shape{8, 16}, backend)
//	    y := x.Relu()
//	    _ = y
//	}
package cpu
