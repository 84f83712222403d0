// Package recommend scores catalog recipes against user flavor
// preferences and assembles per-category dish recommendations.
package recommend

import (
	"math"

	"github.com/swaadapp/swaad/backend/internal/catalog"
)

// AverageProfile returns the arithmetic mean of the given flavor
// vectors, each component rounded to two decimal places. An empty
// input yields the zero vector.
func AverageProfile(profiles []catalog.FlavorVector) catalog.FlavorVector {
	if len(profiles) == 0 {
		return catalog.FlavorVector{}
	}

	var sum [5]float64
	for _, p := range profiles {
		for i, v := range p.Components() {
			sum[i] += v
		}
	}

	n := float64(len(profiles))
	return catalog.FlavorVector{
		Spicy: round2(sum[0] / n),
		Sweet: round2(sum[1] / n),
		Umami: round2(sum[2] / n),
		Sour:  round2(sum[3] / n),
		Salty: round2(sum[4] / n),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
