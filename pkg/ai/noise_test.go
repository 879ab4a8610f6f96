package ai

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleMovePriorNoiseSumsToTotal(t *testing.T) {
	src := rand.NewSource(1)
	noise := SampleMovePriorNoise(src, 20, 0.25)

	require.Len(t, noise, 20)
	sum := 0.0
	for _, v := range noise {
		assert.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 0.25, sum, 1e-9)
}

func TestSampleMovePriorNoiseZeroBudget(t *testing.T) {
	noise := SampleMovePriorNoise(rand.NewSource(1), 5, 0)
	require.Len(t, noise, 5)
	for _, v := range noise {
		assert.Zero(t, v)
	}
}

func TestSampleMovePriorNoiseEmpty(t *testing.T) {
	assert.Empty(t, SampleMovePriorNoise(rand.NewSource(1), 0, 1.0))
}

func TestSampleMovePriorNoiseDeterministic(t *testing.T) {
	a := SampleMovePriorNoise(rand.NewSource(7), 10, 1.0)
	b := SampleMovePriorNoise(rand.NewSource(7), 10, 1.0)
	assert.Equal(t, a, b)
}
