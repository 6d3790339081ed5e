package examgen

import (
	"math"
	"sort"
)

// floorGuard absorbs float error such as 0.29*100 = 28.999999999999996.
const floorGuard = 1e-9

// Apportion splits n units across weights with the largest-remainder
// method. Each share starts at floor(w*n); leftover units go one at a
// time to the largest fractional remainders, ties broken by larger
// weight and then by position. The result always sums to n and every
// share is within one unit of its exact quota.
//
// Weights are expected to sum to 1. When they drift, shares are trimmed
// from the smallest remainders (or topped up cyclically) until the sum
// is n.
func Apportion(weights []float64, n int) []int {
	counts := make([]int, len(weights))
	if len(weights) == 0 || n <= 0 {
		return counts
	}

	rem := make([]float64, len(weights))
	total := 0
	for i, w := range weights {
		quota := w * float64(n)
		f := math.Floor(quota + floorGuard)
		counts[i] = int(f)
		rem[i] = quota - f
		total += counts[i]
	}

	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if rem[i] != rem[j] {
			return rem[i] > rem[j]
		}
		return weights[i] > weights[j]
	})

	for k := 0; total < n; k++ {
		counts[order[k%len(order)]]++
		total++
	}
	for k := len(order) - 1; total > n; k-- {
		i := order[(k%len(order)+len(order))%len(order)]
		if counts[i] > 0 {
			counts[i]--
			total--
		}
	}
	return counts
}
