package autodiff

import (
	"math"
	"testing"

	"github.com/LuggiStruggi/DeepRewire/internal/backend/cpu"
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

func assertClose(t *testing.T, got, want []float32, tol float64) {
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

func TestRecordingOnlyWhenEnabled(t *testing.T) {
	ad := New(cpu.New())
	a := rawFrom(t, []float32{1, 2}, tensor.Shape{2})
	b := rawFrom(t, []float32{3, 4}, tensor.Shape{2})

	ad.Add(a, b)
	if ad.Tape().NumOperations() != 0 {
		t.Error("operation recorded while not recording")
	}

	ad.StartRecording()
	ad.Add(a, b)
	ad.StopRecording()
	if ad.Tape().NumOperations() != 1 {
		t.Errorf("expected 1 recorded operation, got %d", ad.Tape().NumOperations())
	}
}

func TestRecordingPreventsInplaceReuse(t *testing.T) {
	ad := New(cpu.New())
	ad.StartRecording()
	defer ad.StopRecording()

	a := rawFrom(t, []float32{1, 2}, tensor.Shape{2})
	b := rawFrom(t, []float32{3, 4}, tensor.Shape{2})

	out := ad.Add(a, b)
	if out == a || out == b {
		t.Error("recorded operation reused an input buffer")
	}
	assertClose(t, a.AsFloat32(), []float32{1, 2}, 0)
}

func TestBackwardAddMul(t *testing.T) {
	ad := New(cpu.New())
	ad.StartRecording()

	// loss = mean((a + b) * a)
	a := rawFrom(t, []float32{1, 2}, tensor.Shape{2})
	b := rawFrom(t, []float32{3, 4}, tensor.Shape{2})
	sum := ad.Add(a, b)
	prod := ad.Mul(sum, a)
	loss := ad.Mean(prod)

	ad.StopRecording()

	grads, err := ad.Backward(loss)
	if err != nil {
		t.Fatalf("Backward failed: %v", err)
	}

	// d/da mean((a+b)*a) = (2a + b) / n
	assertClose(t, grads[a].AsFloat32(), []float32{(2 + 3) / 2.0, (4 + 4) / 2.0}, 1e-5)
	// d/db = a / n
	assertClose(t, grads[b].AsFloat32(), []float32{0.5, 1}, 1e-5)
}

func TestBackwardMatMul(t *testing.T) {
	ad := New(cpu.New())
	ad.StartRecording()

	a := rawFrom(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFrom(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})
	out := ad.MatMul(a, b)
	loss := ad.Mean(out)

	ad.StopRecording()

	grads, err := ad.Backward(loss)
	if err != nil {
		t.Fatalf("Backward failed: %v", err)
	}

	// dL/dout = 1/4 everywhere; dL/da = dL/dout @ b^T, dL/db = a^T @ dL/dout.
	assertClose(t, grads[a].AsFloat32(), []float32{11 / 4.0, 15 / 4.0, 11 / 4.0, 15 / 4.0}, 1e-5)
	assertClose(t, grads[b].AsFloat32(), []float32{1, 1, 1.5, 1.5}, 1e-5)
}

func TestBackwardReLU(t *testing.T) {
	ad := New(cpu.New())
	ad.StartRecording()

	x := rawFrom(t, []float32{-1, 0, 2, 3}, tensor.Shape{4})
	out := ad.ReLU(x)
	loss := ad.Mean(out)

	ad.StopRecording()

	grads, err := ad.Backward(loss)
	if err != nil {
		t.Fatalf("Backward failed: %v", err)
	}

	// Gradient flows only where x > 0, including nothing at exactly zero.
	assertClose(t, grads[x].AsFloat32(), []float32{0, 0, 0.25, 0.25}, 1e-6)
}

func TestBackwardBroadcastReduces(t *testing.T) {
	ad := New(cpu.New())
	ad.StartRecording()

	a := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := rawFrom(t, []float32{10, 20, 30}, tensor.Shape{3})
	out := ad.Add(a, bias)
	loss := ad.Mean(out)

	ad.StopRecording()

	grads, err := ad.Backward(loss)
	if err != nil {
		t.Fatalf("Backward failed: %v", err)
	}

	if !grads[bias].Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("bias grad shape %v, want [3]", grads[bias].Shape())
	}
	// Each bias element is added twice, each contributing 1/6.
	assertClose(t, grads[bias].AsFloat32(), []float32{2 / 6.0, 2 / 6.0, 2 / 6.0}, 1e-6)
}

func TestBackwardMulScalar(t *testing.T) {
	ad := New(cpu.New())
	ad.StartRecording()

	x := rawFrom(t, []float32{1, 2}, tensor.Shape{2})
	out := ad.MulScalar(x, 0.5)
	loss := ad.Mean(out)

	ad.StopRecording()

	grads, err := ad.Backward(loss)
	if err != nil {
		t.Fatalf("Backward failed: %v", err)
	}
	assertClose(t, grads[x].AsFloat32(), []float32{0.25, 0.25}, 1e-6)
}

func TestBackwardConv2D(t *testing.T) {
	ad := New(cpu.New())
	ad.StartRecording()

	input := rawFrom(t, []float32{
		1, 2,
		3, 4,
	}, tensor.Shape{1, 1, 2, 2})
	kernel := rawFrom(t, []float32{2}, tensor.Shape{1, 1, 1, 1})

	out := ad.Conv2D(input, kernel, [2]int{1, 1}, [2]int{0, 0}, [2]int{1, 1}, 1)
	loss := ad.Mean(out)

	ad.StopRecording()

	grads, err := ad.Backward(loss)
	if err != nil {
		t.Fatalf("Backward failed: %v", err)
	}

	// Each output element is input * 2, so dL/dinput = 2/4 and
	// dL/dkernel = sum(input)/4.
	assertClose(t, grads[input].AsFloat32(), []float32{0.5, 0.5, 0.5, 0.5}, 1e-5)
	assertClose(t, grads[kernel].AsFloat32(), []float32{10 / 4.0}, 1e-5)
}

func TestBackwardPad(t *testing.T) {
	ad := New(cpu.New())
	ad.StartRecording()

	x := rawFrom(t, []float32{
		1, 2,
		3, 4,
	}, tensor.Shape{1, 1, 2, 2})

	out := ad.Pad(x, 1, 1, tensor.PadReplicate)
	loss := ad.Mean(out)

	ad.StopRecording()

	grads, err := ad.Backward(loss)
	if err != nil {
		t.Fatalf("Backward failed: %v", err)
	}

	// Each corner of the 2x2 input appears 4 times in the 4x4 replicated
	// output, so every gradient is 4/16.
	assertClose(t, grads[x].AsFloat32(), []float32{0.25, 0.25, 0.25, 0.25}, 1e-5)
}

func TestBackwardRequiresScalarLoss(t *testing.T) {
	ad := New(cpu.New())
	x := rawFrom(t, []float32{1, 2}, tensor.Shape{2})

	if _, err := ad.Backward(x); err == nil {
		t.Error("expected error for non-scalar loss")
	}
}

func TestTapeClear(t *testing.T) {
	ad := New(cpu.New())
	ad.StartRecording()
	a := rawFrom(t, []float32{1}, tensor.Shape{1})
	b := rawFrom(t, []float32{2}, tensor.Shape{1})
	ad.Add(a, b)
	ad.StopRecording()

	ad.Tape().Clear()
	if ad.Tape().NumOperations() != 0 {
		t.Error("tape not empty after Clear")
	}
}
