package cpu

import (
	"math"
	"testing"

	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

func rawFrom(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func assertFloats(t *testing.T, got, want []float32, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > tol {
			t.Errorf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAdd(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFrom(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	result := backend.Add(a, b)
	assertFloats(t, result.AsFloat32(), []float32{11, 22, 33, 44}, 0)
}

func TestAddInplaceWhenUnique(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{1, 2}, tensor.Shape{2})
	b := rawFrom(t, []float32{3, 4}, tensor.Shape{2})

	result := backend.Add(a, b)
	if result != a {
		t.Error("expected inplace result when a is unique")
	}
}

func TestAddNoInplaceWhenShared(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{1, 2}, tensor.Shape{2})
	a.ForceNonUnique()
	b := rawFrom(t, []float32{3, 4}, tensor.Shape{2})

	result := backend.Add(a, b)
	if result == a {
		t.Error("expected fresh result when a is shared")
	}
	assertFloats(t, a.AsFloat32(), []float32{1, 2}, 0)
	assertFloats(t, result.AsFloat32(), []float32{4, 6}, 0)
}

func TestSubMulDiv(t *testing.T) {
	backend := New()

	a := rawFrom(t, []float32{6, 8, 10, 12}, tensor.Shape{4})
	b := rawFrom(t, []float32{2, 4, 5, 3}, tensor.Shape{4})
	assertFloats(t, backend.Sub(a.Clone(), b).AsFloat32(), []float32{4, 4, 5, 9}, 0)
	assertFloats(t, backend.Mul(a.Clone(), b).AsFloat32(), []float32{12, 32, 50, 36}, 0)
	assertFloats(t, backend.Div(a.Clone(), b).AsFloat32(), []float32{3, 2, 2, 4}, 0)
}

func TestAddBroadcast(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := rawFrom(t, []float32{10, 20, 30}, tensor.Shape{3})

	result := backend.Add(a, b)
	if !result.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("unexpected shape %v", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{11, 22, 33, 14, 25, 36}, 0)
}

func TestMulScalar(t *testing.T) {
	backend := New()
	x := rawFrom(t, []float32{1, -2, 3}, tensor.Shape{3})

	result := backend.MulScalar(x, 0.5)
	assertFloats(t, result.AsFloat32(), []float32{0.5, -1, 1.5}, 1e-6)
}

func TestMatMul(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := rawFrom(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	result := backend.MatMul(a, b)
	if !result.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("unexpected shape %v", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{58, 64, 139, 154}, 1e-5)
}

func TestMatMulPropagatesNonFinite(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{0, 1}, tensor.Shape{1, 2})
	b := rawFrom(t, []float32{float32(math.Inf(1)), 2}, tensor.Shape{2, 1})

	// 0 * Inf contributes NaN to the accumulated dot product.
	result := backend.MatMul(a, b)
	if !math.IsNaN(float64(result.AsFloat32()[0])) {
		t.Errorf("expected NaN from 0 * Inf, got %v", result.AsFloat32()[0])
	}
}

func TestReLU(t *testing.T) {
	backend := New()
	x := rawFrom(t, []float32{-1, 0, 2, -3.5}, tensor.Shape{4})

	result := backend.ReLU(x)
	assertFloats(t, result.AsFloat32(), []float32{0, 0, 2, 0}, 0)
}

func TestMean(t *testing.T) {
	backend := New()
	x := rawFrom(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	result := backend.Mean(x)
	if !result.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("unexpected shape %v", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{2.5}, 1e-6)
}

func TestReshape(t *testing.T) {
	backend := New()
	x := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.Reshape(x, tensor.Shape{3, 2})
	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("unexpected shape %v", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{1, 2, 3, 4, 5, 6}, 0)
}

func TestTranspose2D(t *testing.T) {
	backend := New()
	x := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.Transpose(x)
	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("unexpected shape %v", result.Shape())
	}
	assertFloats(t, result.AsFloat32(), []float32{1, 4, 2, 5, 3, 6}, 0)
}

func TestTransposePermutation(t *testing.T) {
	backend := New()
	data := make([]float32, 24)
	for i := range data {
		data[i] = float32(i)
	}
	x := rawFrom(t, data, tensor.Shape{2, 3, 4})

	result := backend.Transpose(x, 1, 0, 2)
	if !result.Shape().Equal(tensor.Shape{3, 2, 4}) {
		t.Fatalf("unexpected shape %v", result.Shape())
	}
	// out[j, i, k] = in[i, j, k]
	got := result.AsFloat32()
	if got[0] != 0 || got[4] != 12 || got[8] != 4 {
		t.Errorf("unexpected permuted values: %v", got[:12])
	}
}
