package world

// Block identifies a voxel material.
type Block uint8

const (
	BlockAir Block = iota
	BlockStone
	BlockDirt
	BlockGrass
	BlockSand
	BlockMud
	BlockWood
	BlockLeaves
	BlockWater
	blockCount
)

type blockTraits struct {
	solid  bool
	fluid  bool
	sturdy bool // solid enough to sleep on; leaves are solid but not sturdy
	soft   bool // soft ground for surface-preference scoring
}

var blockTraitTable = [blockCount]blockTraits{
	BlockAir:    {},
	BlockStone:  {solid: true, sturdy: true},
	BlockDirt:   {solid: true, sturdy: true, soft: true},
	BlockGrass:  {solid: true, sturdy: true, soft: true},
	BlockSand:   {solid: true, sturdy: true, soft: true},
	BlockMud:    {solid: true, sturdy: true, soft: true},
	BlockWood:   {solid: true, sturdy: true},
	BlockLeaves: {solid: true},
	BlockWater:  {fluid: true},
}

func (b Block) traits() blockTraits {
	if b >= blockCount {
		return blockTraits{}
	}
	return blockTraitTable[b]
}

func (b Block) Solid() bool { return b.traits().solid }

func (b Block) Fluid() bool { return b.traits().fluid }

// SturdyGround reports whether a mob may stand or sleep on top of the block.
func (b Block) SturdyGround() bool { return b.traits().sturdy }

// SoftGround reports whether the block counts as soft for wander surface
// preference weighting.
func (b Block) SoftGround() bool { return b.traits().soft }

// Passable reports whether a mob body can occupy the cell.
func (b Block) Passable() bool {
	t := b.traits()
	return !t.solid
}

func (b Block) String() string {
	switch b {
	case BlockAir:
		return "air"
	case BlockStone:
		return "stone"
	case BlockDirt:
		return "dirt"
	case BlockGrass:
		return "grass"
	case BlockSand:
		return "sand"
	case BlockMud:
		return "mud"
	case BlockWood:
		return "wood"
	case BlockLeaves:
		return "leaves"
	case BlockWater:
		return "water"
	default:
		return "unknown"
	}
}
