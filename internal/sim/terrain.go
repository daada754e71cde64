package sim

import (
	"math"

	"catoworld/server/internal/world"
)

// generateTerrain fills the world with a rolling heightfield, a pond, and a
// few roofed groves so every behavior has somewhere to happen: open grass
// for wandering, water for swimming, and covered spots for sleep and
// shelter.
func generateTerrain(w *world.World) {
	sizeX, sizeY, sizeZ := w.Size()
	rng := w.RNG()
	base := sizeY / 4

	phaseX := rng.Float64() * 2 * math.Pi
	phaseZ := rng.Float64() * 2 * math.Pi
	for x := 0; x < sizeX; x++ {
		for z := 0; z < sizeZ; z++ {
			h := base +
				int(2*math.Sin(float64(x)/11+phaseX)) +
				int(2*math.Cos(float64(z)/13+phaseZ))
			if h < 1 {
				h = 1
			}
			for y := 0; y < h && y < sizeY; y++ {
				block := world.BlockStone
				if y == h-1 {
					block = world.BlockGrass
				} else if y >= h-3 {
					block = world.BlockDirt
				}
				w.SetBlock(world.BlockPos{X: x, Y: y, Z: z}, block)
			}
		}
	}

	digPond(w, sizeX/4, sizeZ/4, 5)
	for i := 0; i < 4; i++ {
		gx := rng.Intn(sizeX-16) + 8
		gz := rng.Intn(sizeZ-16) + 8
		plantGrove(w, gx, gz)
	}
}

// digPond carves a shallow bowl and floods it.
func digPond(w *world.World, cx, cz, radius int) {
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz > radius*radius {
				continue
			}
			surface, ok := w.SurfaceAt(cx+dx, cz+dz)
			if !ok {
				continue
			}
			w.SetBlock(surface, world.BlockWater)
			w.SetBlock(surface.Below(1), world.BlockSand)
		}
	}
}

// plantGrove raises a trunk with a leaf canopy, leaving roofed standable
// cells underneath.
func plantGrove(w *world.World, cx, cz int) {
	surface, ok := w.SurfaceAt(cx, cz)
	if !ok {
		return
	}
	trunkTop := surface.Above(4)
	for y := surface.Y; y < trunkTop.Y; y++ {
		w.SetBlock(world.BlockPos{X: cx, Y: y, Z: cz}, world.BlockWood)
	}
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			w.SetBlock(trunkTop.Offset(dx, 0, dz), world.BlockLeaves)
			if dx >= -1 && dx <= 1 && dz >= -1 && dz <= 1 {
				w.SetBlock(trunkTop.Offset(dx, 1, dz), world.BlockLeaves)
			}
		}
	}
}
