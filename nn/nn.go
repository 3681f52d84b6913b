// Copyright 2025 DeepRewire Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/LuggiStruggi/DeepRewire/internal/nn"
	"github.com/LuggiStruggi/DeepRewire/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules compose into trees:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, backend),
//	    nn.NewReLU[*cpu.Backend](),
//	    nn.NewLinear(128, 10, backend),
//	)
type Module[B tensor.Backend] = nn.Module[B]

// NamedModule pairs a child module with its name inside the parent.
type NamedModule[B tensor.Backend] = nn.NamedModule[B]

// Container is implemented by modules composed of child modules.
type Container[B tensor.Backend] = nn.Container[B]

// Parameter is a named trainable tensor.
type Parameter = nn.Parameter

// NewParameter wraps a raw tensor as a trainable parameter.
func NewParameter(name string, raw *tensor.RawTensor) *Parameter {
	return nn.NewParameter(name, raw)
}

// FixedTensor is a named tensor excluded from optimization, such as the
// connection signs of a rewireable layer.
type FixedTensor = nn.FixedTensor

// Layers

// Linear is a fully connected (dense) layer. It supports both the standard
// and the rewireable parameterization; see the rewire package.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a fully connected layer with bias.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(784, 128, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// NewLinearNoBias creates a fully connected layer without bias.
func NewLinearNoBias[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinearNoBias(inFeatures, outFeatures, backend)
}

// Conv2D is a 2D convolutional layer. It supports both the standard and the
// rewireable parameterization.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// Conv2DConfig configures a convolution layer. Zero-valued fields are
// normalized to stride 1, no padding, dilation 1, one group, zero padding
// mode and a bias.
type Conv2DConfig = nn.Conv2DConfig

// NewConv2D creates a 2D convolutional layer.
//
// Example:
//
//	backend := cpu.New()
//	conv, err := nn.NewConv2D(1, 32, [2]int{3, 3}, nn.Conv2DConfig{
//	    Padding: [2]int{1, 1},
//	}, backend)
func NewConv2D[B tensor.Backend](inChannels, outChannels int, kernelSize [2]int, cfg Conv2DConfig, backend B) (*Conv2D[B], error) {
	return nn.NewConv2D(inChannels, outChannels, kernelSize, cfg, backend)
}

// Containers

// Sequential chains modules, feeding each one's output into the next.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a sequential container from the given layers.
func NewSequential[B tensor.Backend](layers ...Module[B]) *Sequential[B] {
	return nn.NewSequential(layers...)
}

// Activations

// ReLU is the rectified linear unit activation layer.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU activation layer.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Flatten collapses every dimension after the batch dimension into one.
type Flatten[B tensor.Backend] = nn.Flatten[B]

// NewFlatten creates a Flatten layer.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return nn.NewFlatten[B]()
}

// Losses

// MSELoss computes the mean squared error between prediction and target as
// a scalar of shape [1].
func MSELoss[B tensor.Backend](pred, target *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.MSELoss(pred, target)
}
