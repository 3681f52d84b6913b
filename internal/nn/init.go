package nn

import (
	"math"
	"math/rand"
)

// initUniform fills data with values drawn uniformly from [-bound, bound).
func initUniform(data []float32, bound float64) {
	for i := range data {
		data[i] = float32((2*rand.Float64() - 1) * bound)
	}
}

// initKaimingUniform fills data with the standard fan-in scaled uniform
// initialization, bound = 1/sqrt(fanIn).
func initKaimingUniform(data []float32, fanIn int) {
	initUniform(data, 1/math.Sqrt(float64(fanIn)))
}
