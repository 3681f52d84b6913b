package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuggiStruggi/DeepRewire/internal/nn"
	"github.com/LuggiStruggi/DeepRewire/internal/tensor"
)

func rawFrom(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func TestSGDStep(t *testing.T) {
	param := nn.NewParameter("weight", rawFrom(t, []float32{1, 2, 3}, tensor.Shape{3}))
	grad := rawFrom(t, []float32{1, 1, 1}, tensor.Shape{3})

	opt := NewSGD([]*nn.Parameter{param}, 0.1)
	grads := map[*tensor.RawTensor]*tensor.RawTensor{param.Raw(): grad}
	require.NoError(t, opt.Step(grads))

	assert.InDeltaSlice(t, []float32{0.9, 1.9, 2.9}, param.Raw().AsFloat32(), 1e-6)
}

func TestSGDMomentumAccumulates(t *testing.T) {
	param := nn.NewParameter("weight", rawFrom(t, []float32{0}, tensor.Shape{1}))
	grad := rawFrom(t, []float32{1}, tensor.Shape{1})

	opt := NewSGDWithMomentum([]*nn.Parameter{param}, 0.1, 0.9)
	grads := map[*tensor.RawTensor]*tensor.RawTensor{param.Raw(): grad}

	require.NoError(t, opt.Step(grads))
	assert.InDelta(t, -0.1, param.Raw().AsFloat32()[0], 1e-6)

	// Second step: velocity = 0.9*1 + 1 = 1.9.
	require.NoError(t, opt.Step(grads))
	assert.InDelta(t, -0.29, param.Raw().AsFloat32()[0], 1e-6)
}

func TestSGDSkipsParamsWithoutGradient(t *testing.T) {
	param := nn.NewParameter("weight", rawFrom(t, []float32{5}, tensor.Shape{1}))
	opt := NewSGD([]*nn.Parameter{param}, 0.1)

	require.NoError(t, opt.Step(map[*tensor.RawTensor]*tensor.RawTensor{}))
	assert.Equal(t, float32(5), param.Raw().AsFloat32()[0])
}

func TestSGDRejectsShapeMismatch(t *testing.T) {
	param := nn.NewParameter("weight", rawFrom(t, []float32{1, 2}, tensor.Shape{2}))
	grad := rawFrom(t, []float32{1}, tensor.Shape{1})

	opt := NewSGD([]*nn.Parameter{param}, 0.1)
	err := opt.Step(map[*tensor.RawTensor]*tensor.RawTensor{param.Raw(): grad})
	assert.Error(t, err)
}

func TestAdamStepDirection(t *testing.T) {
	param := nn.NewParameter("weight", rawFrom(t, []float32{1}, tensor.Shape{1}))
	grad := rawFrom(t, []float32{2}, tensor.Shape{1})

	opt := NewAdam([]*nn.Parameter{param}, AdamConfig{LR: 0.1})
	require.NoError(t, opt.Step(map[*tensor.RawTensor]*tensor.RawTensor{param.Raw(): grad}))

	// First Adam step moves by roughly lr against the gradient sign.
	assert.InDelta(t, 0.9, param.Raw().AsFloat32()[0], 1e-3)
}

func TestSetLR(t *testing.T) {
	opt := NewSGD(nil, 0.1)
	opt.SetLR(0.01)
	assert.InDelta(t, 0.01, opt.GetLR(), 1e-12)
}
