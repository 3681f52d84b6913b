package cpu

import (
	"testing"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

func TestPadZeros(t *testing.T) {
	backend := New()
	x := rawFrom(t, []float32{
		1, 2,
		3, 4,
	}, tensor.Shape{1, 1, 2, 2})

	result := backend.Pad(x, 1, 1, tensor.PadZeros)
	if !result.Shape().Equal(tensor.Shape{1, 1, 4, 4}) {
		t.Fatalf("unexpected shape %v", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{
		0, 0, 0, 0,
		0, 1, 2, 0,
		0, 3, 4, 0,
		0, 0, 0, 0,
	}, 0)
}

func TestPadReflect(t *testing.T) {
	backend := New()
	x := rawFrom(t, []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, tensor.Shape{1, 1, 3, 3})

	result := backend.Pad(x, 1, 1, tensor.PadReflect)
	assertFloats(t, result.AsFloat32(), []float32{
		5, 4, 5, 6, 5,
		2, 1, 2, 3, 2,
		5, 4, 5, 6, 5,
		8, 7, 8, 9, 8,
		5, 4, 5, 6, 5,
	}, 0)
}

func TestPadReplicate(t *testing.T) {
	backend := New()
	x := rawFrom(t, []float32{
		1, 2,
		3, 4,
	}, tensor.Shape{1, 1, 2, 2})

	result := backend.Pad(x, 1, 1, tensor.PadReplicate)
	assertFloats(t, result.AsFloat32(), []float32{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	}, 0)
}

func TestPadCircular(t *testing.T) {
	backend := New()
	x := rawFrom(t, []float32{
		1, 2,
		3, 4,
	}, tensor.Shape{1, 1, 2, 2})

	result := backend.Pad(x, 1, 1, tensor.PadCircular)
	assertFloats(t, result.AsFloat32(), []float32{
		4, 3, 4, 3,
		2, 1, 2, 1,
		4, 3, 4, 3,
		2, 1, 2, 1,
	}, 0)
}

func TestPadReflectTooLargePanics(t *testing.T) {
	backend := New()
	x := rawFrom(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for reflect padding >= input size")
		}
	}()
	backend.Pad(x, 2, 2, tensor.PadReflect)
}
