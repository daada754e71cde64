package world

// FindWaterExit spirals outward from center looking for the nearest dry
// standable cell. Swimming mobs use it to leave the water; the spiral keeps
// the first hit also the closest one ring-wise.
func (w *World) FindWaterExit(center BlockPos, maxRadius int, profile PathProfile) (BlockPos, bool) {
	if w == nil {
		return BlockPos{}, false
	}
	if maxRadius <= 0 {
		maxRadius = 8
	}
	for radius := 1; radius <= maxRadius; radius++ {
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if dx > -radius && dx < radius && dz > -radius && dz < radius {
					continue // interior cells were covered by smaller rings
				}
				cell, ok := w.FindStand(center.Offset(dx, 0, dz), profile)
				if !ok {
					continue
				}
				if w.InFluid(cell) || w.BlockAt(cell.Below(1)).Fluid() {
					continue
				}
				return cell, true
			}
		}
	}
	return BlockPos{}, false
}
