package world

import "math"

// Vec3 is a continuous world-space position.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) DistSq(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return dx*dx + dy*dy + dz*dz
}

func (v Vec3) HorizontalDistSq(o Vec3) float64 {
	dx := v.X - o.X
	dz := v.Z - o.Z
	return dx*dx + dz*dz
}

func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return v.Scale(1 / length)
}

// Block returns the block cell containing the position.
func (v Vec3) Block() BlockPos {
	return BlockPos{
		X: int(math.Floor(v.X)),
		Y: int(math.Floor(v.Y)),
		Z: int(math.Floor(v.Z)),
	}
}

// BlockPos addresses one voxel cell.
type BlockPos struct {
	X int
	Y int
	Z int
}

func (p BlockPos) Offset(dx, dy, dz int) BlockPos {
	return BlockPos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

func (p BlockPos) Above(n int) BlockPos {
	return BlockPos{X: p.X, Y: p.Y + n, Z: p.Z}
}

func (p BlockPos) Below(n int) BlockPos {
	return BlockPos{X: p.X, Y: p.Y - n, Z: p.Z}
}

// Center is the standing position at the middle of the cell floor.
func (p BlockPos) Center() Vec3 {
	return Vec3{X: float64(p.X) + 0.5, Y: float64(p.Y), Z: float64(p.Z) + 0.5}
}

func (p BlockPos) DistSq(o BlockPos) float64 {
	dx := float64(p.X - o.X)
	dy := float64(p.Y - o.Y)
	dz := float64(p.Z - o.Z)
	return dx*dx + dy*dy + dz*dz
}

func (p BlockPos) HorizontalDistSq(o BlockPos) float64 {
	dx := float64(p.X - o.X)
	dz := float64(p.Z - o.Z)
	return dx*dx + dz*dz
}

const (
	packBitsXZ = 26
	packBitsY  = 12
	packBiasXZ = 1 << (packBitsXZ - 1)
	packBiasY  = 1 << (packBitsY - 1)
)

// Key packs the position into a single uint64 so hot-path sets and maps can
// stay primitive-keyed instead of hashing structs.
func (p BlockPos) Key() uint64 {
	x := uint64(p.X+packBiasXZ) & (1<<packBitsXZ - 1)
	y := uint64(p.Y+packBiasY) & (1<<packBitsY - 1)
	z := uint64(p.Z+packBiasXZ) & (1<<packBitsXZ - 1)
	return x<<(packBitsXZ+packBitsY) | y<<packBitsXZ | z
}

// PosFromKey reverses Key.
func PosFromKey(key uint64) BlockPos {
	z := int(key&(1<<packBitsXZ-1)) - packBiasXZ
	y := int(key>>packBitsXZ&(1<<packBitsY-1)) - packBiasY
	x := int(key>>(packBitsXZ+packBitsY)&(1<<packBitsXZ-1)) - packBiasXZ
	return BlockPos{X: x, Y: y, Z: z}
}

func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
