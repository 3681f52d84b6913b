// Copyright 2025 DeepRewire Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// Backend is the interface all compute backends implement.
//
// Implementations:
//   - backend/cpu: pure Go CPU backend
//   - autodiff: decorator recording operations on a gradient tape
type Backend = tensor.Backend

// PadMode selects how explicit spatial padding fills the border region.
type PadMode = tensor.PadMode

// Padding mode constants.
const (
	PadZeros     PadMode = tensor.PadZeros
	PadReflect   PadMode = tensor.PadReflect
	PadReplicate PadMode = tensor.PadReplicate
	PadCircular  PadMode = tensor.PadCircular
)
