package examgen

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApportion(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		n       int
		want    []int
	}{
		{"exact split", []float64{0.4, 0.35, 0.25}, 100, []int{40, 35, 25}},
		{"largest remainder gets the extra unit", []float64{0.334, 0.333, 0.333}, 10, []int{4, 3, 3}},
		{"tie goes to earlier area", []float64{0.5, 0.5}, 3, []int{2, 1}},
		{"tie goes to larger weight", []float64{0.25, 0.75}, 2, []int{0, 2}},
		{"float noise", []float64{0.15, 0.2, 0.2, 0.15, 0.15, 0.15}, 100, []int{15, 20, 20, 15, 15, 15}},
		{"single question", []float64{0.2, 0.5, 0.3}, 1, []int{0, 1, 0}},
		{"zero weight area", []float64{0, 1}, 7, []int{0, 7}},
		{"nothing to split", []float64{0.5, 0.5}, 0, []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apportion(tt.weights, tt.n))
		})
	}
}

func TestApportion_SumAndFidelity(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for iter := 0; iter < 500; iter++ {
		k := 1 + r.IntN(8)
		raw := make([]float64, k)
		sum := 0.0
		for i := range raw {
			raw[i] = r.Float64()
			sum += raw[i]
		}
		for i := range raw {
			raw[i] /= sum
		}
		n := 1 + r.IntN(250)

		counts := Apportion(raw, n)
		total := 0
		for i, c := range counts {
			total += c
			if math.Abs(float64(c)-raw[i]*float64(n)) >= 1+1e-9 {
				t.Fatalf("iter %d: area %d count %d too far from quota %.4f", iter, i, c, raw[i]*float64(n))
			}
		}
		if total != n {
			t.Fatalf("iter %d: counts sum to %d, want %d", iter, total, n)
		}
	}
}

func TestApportion_DriftingWeights(t *testing.T) {
	assert.Equal(t, 10, sum(Apportion([]float64{0.3, 0.3, 0.3}, 10)))
	assert.Equal(t, 10, sum(Apportion([]float64{0.4, 0.4, 0.4}, 10)))
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}
