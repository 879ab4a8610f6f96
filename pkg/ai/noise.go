package ai

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// SampleMovePriorNoise draws n nonnegative noise weights that sum to total,
// for mixing into the priors of the legal moves during search. The weights
// are log-normal before normalization, so a few moves get most of the noise
// and exploration occasionally commits to an unlikely line instead of
// spreading evenly. A nil src uses the shared global source.
func SampleMovePriorNoise(src rand.Source, n int, total float64) []float64 {
	noise := make([]float64, n)
	if n == 0 || total <= 0 {
		return noise
	}
	dist := distuv.LogNormal{Mu: 0, Sigma: 1, Src: src}
	for i := range noise {
		noise[i] = dist.Rand()
	}
	floats.Scale(total/floats.Sum(noise), noise)
	return noise
}
