package cpu

import (
	"testing"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

func TestConv2DBasic(t *testing.T) {
	backend := New()

	// 1x1x3x3 input, 1x1x2x2 kernel, stride 1, no padding.
	input := rawFrom(t, []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, tensor.Shape{1, 1, 3, 3})
	kernel := rawFrom(t, []float32{
		1, 0,
		0, 1,
	}, tensor.Shape{1, 1, 2, 2})

	result := backend.Conv2D(input, kernel, [2]int{1, 1}, [2]int{0, 0}, [2]int{1, 1}, 1)
	if !result.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("unexpected shape %v", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{6, 8, 12, 14}, 1e-5)
}

func TestConv2DStridePadding(t *testing.T) {
	backend := New()

	input := rawFrom(t, []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}, tensor.Shape{1, 1, 4, 4})
	kernel := rawFrom(t, []float32{
		1, 1,
		1, 1,
	}, tensor.Shape{1, 1, 2, 2})

	result := backend.Conv2D(input, kernel, [2]int{2, 2}, [2]int{1, 1}, [2]int{1, 1}, 1)
	if !result.Shape().Equal(tensor.Shape{1, 1, 3, 3}) {
		t.Fatalf("unexpected shape %v", result.Shape())
	}
	// Padded 6x6 sampled every 2 with a 2x2 sum kernel.
	assertFloats(t, result.AsFloat32(), []float32{
		1, 5, 4,
		14, 34, 20,
		13, 29, 16,
	}, 1e-5)
}

func TestConv2DDilation(t *testing.T) {
	backend := New()

	input := rawFrom(t, []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, tensor.Shape{1, 1, 3, 3})
	kernel := rawFrom(t, []float32{
		1, 1,
		1, 1,
	}, tensor.Shape{1, 1, 2, 2})

	// Dilation 2 makes the effective kernel 3x3 reading the corners.
	result := backend.Conv2D(input, kernel, [2]int{1, 1}, [2]int{0, 0}, [2]int{2, 2}, 1)
	if !result.Shape().Equal(tensor.Shape{1, 1, 1, 1}) {
		t.Fatalf("unexpected shape %v", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{1 + 3 + 7 + 9}, 1e-5)
}

func TestConv2DGroups(t *testing.T) {
	backend := New()

	// 2 input channels, 2 output channels, 2 groups: each output channel
	// sees exactly one input channel.
	input := rawFrom(t, []float32{
		// channel 0
		1, 2,
		3, 4,
		// channel 1
		10, 20,
		30, 40,
	}, tensor.Shape{1, 2, 2, 2})
	kernel := rawFrom(t, []float32{
		1, // out 0 reads channel 0
		2, // out 1 reads channel 1
	}, tensor.Shape{2, 1, 1, 1})

	result := backend.Conv2D(input, kernel, [2]int{1, 1}, [2]int{0, 0}, [2]int{1, 1}, 2)
	if !result.Shape().Equal(tensor.Shape{1, 2, 2, 2}) {
		t.Fatalf("unexpected shape %v", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{
		1, 2, 3, 4,
		20, 40, 60, 80,
	}, 1e-5)
}

func TestConv2DMultiChannel(t *testing.T) {
	backend := New()

	input := rawFrom(t, []float32{
		// channel 0
		1, 2,
		3, 4,
		// channel 1
		5, 6,
		7, 8,
	}, tensor.Shape{1, 2, 2, 2})
	kernel := rawFrom(t, []float32{
		1, 1, // sums both channels at one position
	}, tensor.Shape{1, 2, 1, 1})

	result := backend.Conv2D(input, kernel, [2]int{1, 1}, [2]int{0, 0}, [2]int{1, 1}, 1)
	assertFloats(t, result.AsFloat32(), []float32{6, 8, 10, 12}, 1e-5)
}

func TestConv2DShapeMismatchPanics(t *testing.T) {
	backend := New()
	input := rawFrom(t, make([]float32, 16), tensor.Shape{1, 4, 2, 2})
	kernel := rawFrom(t, make([]float32, 8), tensor.Shape{2, 4, 1, 1})

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for kernel/groups channel mismatch")
		}
	}()
	backend.Conv2D(input, kernel, [2]int{1, 1}, [2]int{0, 0}, [2]int{1, 1}, 2)
}
