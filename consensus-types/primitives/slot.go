package primitives

// Slot represents a single slot.
type Slot uint64

// SaturateAdd returns a+x, clamped at the maximum uint64 value instead of
// wrapping on overflow.
func (s Slot) SaturateAdd(x uint64) Slot {
	if uint64(s) > ^uint64(0)-x {
		return Slot(^uint64(0))
	}
	return s + Slot(x)
}
