package nn

import (
	"testing"

	"github.com/LuggiStruggi/DeepRewire/internal/backend/cpu"
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

func TestConv2DForward(t *testing.T) {
	backend := cpu.New()
	c, err := NewConv2D[*cpu.CPUBackend](1, 1, [2]int{2, 2}, Conv2DConfig{}, backend)
	if err != nil {
		t.Fatalf("NewConv2D failed: %v", err)
	}
	copy(c.weight.Data(), []float32{1, 0, 0, 1})
	copy(c.bias.Data(), []float32{1})

	x := tensorFrom(t, []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, tensor.Shape{1, 1, 3, 3}, backend)

	y := c.Forward(x)
	if !y.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("unexpected output shape %v", y.Shape())
	}
	assertFloats(t, y.Data(), []float32{7, 9, 13, 15}, 1e-5)
}

func TestConv2DReplicatePadding(t *testing.T) {
	backend := cpu.New()
	c, err := NewConv2D[*cpu.CPUBackend](1, 1, [2]int{1, 1}, Conv2DConfig{
		Padding:     [2]int{1, 1},
		PaddingMode: tensor.PadReplicate,
		NoBias:      true,
	}, backend)
	if err != nil {
		t.Fatalf("NewConv2D failed: %v", err)
	}
	copy(c.weight.Data(), []float32{1})

	x := tensorFrom(t, []float32{
		1, 2,
		3, 4,
	}, tensor.Shape{1, 1, 2, 2}, backend)

	y := c.Forward(x)
	if !y.Shape().Equal(tensor.Shape{1, 1, 4, 4}) {
		t.Fatalf("unexpected output shape %v", y.Shape())
	}
	assertFloats(t, y.Data(), []float32{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	}, 1e-6)
}

func TestConv2DGroupsValidation(t *testing.T) {
	backend := cpu.New()
	if _, err := NewConv2D[*cpu.CPUBackend](3, 2, [2]int{1, 1}, Conv2DConfig{Groups: 2}, backend); err == nil {
		t.Error("expected error for channels not divisible by groups")
	}
}

func TestConv2DConfigDefaults(t *testing.T) {
	cfg := Conv2DConfig{}.normalized()
	if cfg.Stride != [2]int{1, 1} || cfg.Dilation != [2]int{1, 1} || cfg.Groups != 1 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.PaddingMode != tensor.PadZeros {
		t.Errorf("expected zero padding mode, got %v", cfg.PaddingMode)
	}
}
