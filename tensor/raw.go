// Copyright 2025 DeepRewire Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

// RawTensor is the low-level tensor representation with reference-counted
// buffers. Most users work with Tensor[T, B] instead; RawTensor appears in
// backend implementations, gradient maps and state dicts.
type RawTensor = tensor.RawTensor

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated zero-initialized.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}
