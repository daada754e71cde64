package world

import (
	"math"
	"math/rand"
)

const posAwayAttempts = 10

// RandomPosAway picks a traversable position roughly opposite the threat,
// sampling within a half-circle facing away. Callers fall back to a manual
// offset when it fails.
func (w *World) RandomPosAway(rng *rand.Rand, from, threat Vec3, minDist, maxDist float64, profile PathProfile) (BlockPos, bool) {
	if w == nil || maxDist <= 0 {
		return BlockPos{}, false
	}
	if minDist < 0 {
		minDist = 0
	}
	if minDist > maxDist {
		minDist = maxDist * 0.5
	}
	away := from.Sub(threat)
	away.Y = 0
	baseAngle := math.Atan2(away.Z, away.X)
	if away.X == 0 && away.Z == 0 {
		baseAngle = RandomAngle(rng)
	}
	for i := 0; i < posAwayAttempts; i++ {
		angle := baseAngle + (RandomFloat(rng)-0.5)*math.Pi
		dist := RandomDistance(rng, minDist, maxDist)
		x := from.X + math.Cos(angle)*dist
		z := from.Z + math.Sin(angle)*dist
		col := BlockPos{X: int(math.Floor(x)), Y: from.Block().Y, Z: int(math.Floor(z))}
		if cell, ok := w.resolveStandWide(col, profile); ok {
			return cell, true
		}
	}
	return BlockPos{}, false
}

// resolveStandWide relaxes resolveStand to a few cells of vertical slack,
// used when the Y of a sampled column is only a guess.
func (w *World) resolveStandWide(p BlockPos, profile PathProfile) (BlockPos, bool) {
	for _, dy := range [...]int{0, -1, 1, -2, 2, -3, 3} {
		cell := BlockPos{X: p.X, Y: p.Y + dy, Z: p.Z}
		if w.traversable(cell, profile) {
			return cell, true
		}
	}
	return BlockPos{}, false
}

// FindStand snaps a sampled column to a traversable standing cell near the
// guessed Y. Searches use it to turn random polar offsets into candidates.
func (w *World) FindStand(p BlockPos, profile PathProfile) (BlockPos, bool) {
	if w == nil {
		return BlockPos{}, false
	}
	return w.resolveStandWide(p, profile)
}
