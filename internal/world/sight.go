package world

// LineOfSight walks the segment from a to b in fixed steps and reports
// whether any solid block interrupts it. Good enough for behavior gating;
// it is not a rendering-grade raycast.
func (w *World) LineOfSight(a, b Vec3) bool {
	if w == nil {
		return false
	}
	delta := b.Sub(a)
	length := delta.Length()
	if length < 1e-6 {
		return true
	}
	step := delta.Scale(0.5 / length)
	steps := int(length / 0.5)
	probe := a
	for i := 0; i < steps; i++ {
		probe = probe.Add(step)
		if w.BlockAt(probe.Block()).Solid() {
			return false
		}
	}
	return true
}
