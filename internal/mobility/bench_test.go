package mobility

import (
	"fmt"
	"math/rand"
	"testing"
)

func benchInputs(n int) (positions, forces []float64) {
	rng := rand.New(rand.NewSource(42))
	positions = make([]float64, 3*n)
	forces = make([]float64, 3*n)
	for i := 0; i < n; i++ {
		positions[i*3+0] = rng.Float64() * 50
		positions[i*3+1] = rng.Float64() * 50
		positions[i*3+2] = 1.0 + rng.Float64()*10
		for k := 0; k < 3; k++ {
			forces[i*3+k] = rng.NormFloat64()
		}
	}
	return
}

func BenchmarkTransTimesForce(b *testing.B) {
	for _, n := range []int{64, 256, 1024} {
		positions, forces := benchInputs(n)
		b.Run(fmt.Sprintf("N%d", n), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				SingleWallMobilityTransTimesForce(positions, forces, 1e-3, 0.656, [3]float64{})
			}
		})
	}
}

func BenchmarkTransTimesForceSerial(b *testing.B) {
	positions, forces := benchInputs(256)
	m := &SingleWall{Eta: 1e-3, Radius: 0.656, Workers: 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.TransTimesForce(positions, forces)
	}
}
