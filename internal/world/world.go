package world

import "math/rand"

const (
	// DayLengthTicks is the length of one full day-night cycle.
	DayLengthTicks = 24000
	// NightStartTick marks the switch from day to night inside a cycle.
	NightStartTick = 12000

	// DefaultRoofScanHeight bounds upward roof scans when the caller does
	// not supply its own limit.
	DefaultRoofScanHeight = 12

	DefaultSeed = "catoworld"
)

// World is a bounded voxel terrain with a shared clock and weather state.
// It serves block queries and pathfinding; entity bookkeeping lives with the
// mob population, not here.
type World struct {
	sizeX, sizeY, sizeZ int
	blocks              []Block

	tick        uint64
	timeOfDay   uint64
	raining     bool
	rainCapable bool

	rng *rand.Rand
}

// New creates an empty (all air) world of the given dimensions.
func New(sizeX, sizeY, sizeZ int, rng *rand.Rand) *World {
	if sizeX <= 0 {
		sizeX = 1
	}
	if sizeY <= 0 {
		sizeY = 1
	}
	if sizeZ <= 0 {
		sizeZ = 1
	}
	if rng == nil {
		rng = NewDeterministicRNG(DefaultSeed, "world")
	}
	return &World{
		sizeX:       sizeX,
		sizeY:       sizeY,
		sizeZ:       sizeZ,
		blocks:      make([]Block, sizeX*sizeY*sizeZ),
		rainCapable: true,
		rng:         rng,
	}
}

func (w *World) Size() (int, int, int) {
	if w == nil {
		return 0, 0, 0
	}
	return w.sizeX, w.sizeY, w.sizeZ
}

func (w *World) RNG() *rand.Rand {
	if w == nil {
		return nil
	}
	return w.rng
}

func (w *World) inBounds(p BlockPos) bool {
	return w != nil &&
		p.X >= 0 && p.X < w.sizeX &&
		p.Y >= 0 && p.Y < w.sizeY &&
		p.Z >= 0 && p.Z < w.sizeZ
}

func (w *World) index(p BlockPos) int {
	return (p.Y*w.sizeZ+p.Z)*w.sizeX + p.X
}

// BlockAt returns the block at p. Cells below the floor read as stone and
// everything else out of bounds reads as air, so edge queries stay cheap.
func (w *World) BlockAt(p BlockPos) Block {
	if w == nil {
		return BlockAir
	}
	if !w.inBounds(p) {
		if p.Y < 0 {
			return BlockStone
		}
		return BlockAir
	}
	return w.blocks[w.index(p)]
}

func (w *World) SetBlock(p BlockPos, b Block) {
	if w == nil || !w.inBounds(p) {
		return
	}
	w.blocks[w.index(p)] = b
}

// FillBox sets every block in the inclusive box [min, max].
func (w *World) FillBox(min, max BlockPos, b Block) {
	for y := min.Y; y <= max.Y; y++ {
		for z := min.Z; z <= max.Z; z++ {
			for x := min.X; x <= max.X; x++ {
				w.SetBlock(BlockPos{X: x, Y: y, Z: z}, b)
			}
		}
	}
}

// Tick returns the current world tick.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Step advances the clock by one tick.
func (w *World) Step() {
	if w == nil {
		return
	}
	w.tick++
	w.timeOfDay = (w.timeOfDay + 1) % DayLengthTicks
}

func (w *World) TimeOfDay() uint64 {
	if w == nil {
		return 0
	}
	return w.timeOfDay
}

func (w *World) SetTimeOfDay(t uint64) {
	if w == nil {
		return
	}
	w.timeOfDay = t % DayLengthTicks
}

func (w *World) IsDay() bool {
	return w != nil && w.timeOfDay < NightStartTick
}

func (w *World) IsNight() bool {
	return w != nil && !w.IsDay()
}

func (w *World) Raining() bool {
	return w != nil && w.raining
}

func (w *World) SetRaining(raining bool) {
	if w == nil {
		return
	}
	w.raining = raining
}

// SetRainCapable controls whether the biome admits precipitation at all.
func (w *World) SetRainCapable(capable bool) {
	if w == nil {
		return
	}
	w.rainCapable = capable
}

// CanSeeSky reports whether no solid or fluid block sits anywhere above p.
func (w *World) CanSeeSky(p BlockPos) bool {
	if w == nil {
		return false
	}
	for y := p.Y + 1; y < w.sizeY; y++ {
		b := w.BlockAt(BlockPos{X: p.X, Y: y, Z: p.Z})
		if b.Solid() || b.Fluid() {
			return false
		}
	}
	return true
}

// IsRainedOn reports whether rain currently reaches the cell.
func (w *World) IsRainedOn(p BlockPos) bool {
	if w == nil || !w.raining || !w.rainCapable {
		return false
	}
	return w.CanSeeSky(p)
}

// RoofAbove scans upward from p for the first non-air, non-fluid block
// within maxScan cells and returns its height above p.
func (w *World) RoofAbove(p BlockPos, maxScan int) (int, bool) {
	if w == nil {
		return 0, false
	}
	if maxScan <= 0 {
		maxScan = DefaultRoofScanHeight
	}
	for dy := 1; dy <= maxScan; dy++ {
		b := w.BlockAt(p.Above(dy))
		if b.Fluid() {
			continue
		}
		if b != BlockAir {
			return dy, true
		}
	}
	return 0, false
}

/// Standable reports whether a mob of the given headroom can stand at p:
// solid ground below and headroom passable, non-fluid cells from p upward.
func (w *World) Standable(p BlockPos, headroom int) bool {
	if w == nil {
		return false
	}
	if headroom <= 0 {
		headroom = 1
	}
	if !w.BlockAt(p.Below(1)).Solid() {
		return false
	}
	for dy := 0; dy < headroom; dy++ {
		b := w.BlockAt(p.Above(dy))
		if !b.Passable() || b.Fluid() {
			return false
		}
	}
	return true
}

// SturdyStandable is Standable with the stricter ground requirement that
// rejects leaf-like blocks.
func (w *World) SturdyStandable(p BlockPos, headroom int) bool {
	if !w.Standable(p, headroom) {
		return false
	}
	return w.BlockAt(p.Below(1)).SturdyGround()
}

// InFluid reports whether the cell at p is a fluid.
func (w *World) InFluid(p BlockPos) bool {
	return w != nil && w.BlockAt(p).Fluid()
}

// SurfaceAt returns the standing position on top of the highest solid or
// fluid block in the column, if the column holds one.
func (w *World) SurfaceAt(x, z int) (BlockPos, bool) {
	if w == nil {
		return BlockPos{}, false
	}
	for y := w.sizeY - 1; y >= 0; y-- {
		p := BlockPos{X: x, Y: y, Z: z}
		b := w.BlockAt(p)
		if b.Solid() || b.Fluid() {
			return p.Above(1), true
		}
	}
	return BlockPos{}, false
}
