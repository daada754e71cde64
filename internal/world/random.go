package world

import (
	"hash/fnv"
	"math"
	"math/rand"
)

func DeterministicSeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

func NewDeterministicRNG(rootSeed, label string) *rand.Rand {
	return rand.New(rand.NewSource(DeterministicSeedValue(rootSeed, label)))
}

func RandomFloat(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.New(rand.NewSource(DeterministicSeedValue(DefaultSeed, "fallback"))).Float64()
	}
	return rng.Float64()
}

func RandomAngle(rng *rand.Rand) float64 {
	return RandomFloat(rng) * 2 * math.Pi
}

func RandomDistance(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + RandomFloat(rng)*(max-min)
}

// RandomTicks picks a tick count in [min, max].
func RandomTicks(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + int(RandomFloat(rng)*float64(max-min+1))
}

// RandomPolarOffset returns a block offset at a random angle with a radius
// drawn uniformly from [minRadius, maxRadius].
func RandomPolarOffset(rng *rand.Rand, minRadius, maxRadius float64) (int, int) {
	angle := RandomAngle(rng)
	dist := RandomDistance(rng, minRadius, maxRadius)
	return int(math.Round(math.Cos(angle) * dist)), int(math.Round(math.Sin(angle) * dist))
}
