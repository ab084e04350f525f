package domain

// SelectionTracker enforces the pick-N-of-M rule during card picking.
// It is a value type: Pick returns the updated tracker, leaving the receiver
// untouched, so wizard states can share trackers safely.
type SelectionTracker struct {
	capacity int
	picked   []int
}

// NewSelectionTracker returns an empty tracker with the given capacity.
func NewSelectionTracker(capacity int) SelectionTracker {
	return SelectionTracker{capacity: capacity}
}

// Pick records a slot index. A duplicate index, an out-of-range index, or a
// pick beyond capacity is silently rejected: the tracker is returned
// unchanged and ok is false.
func (t SelectionTracker) Pick(index int) (SelectionTracker, bool) {
	if index < 0 || index >= SlotCount {
		return t, false
	}
	if len(t.picked) >= t.capacity {
		return t, false
	}
	for _, p := range t.picked {
		if p == index {
			return t, false
		}
	}
	picked := make([]int, len(t.picked), len(t.picked)+1)
	copy(picked, t.picked)
	picked = append(picked, index)
	return SelectionTracker{capacity: t.capacity, picked: picked}, true
}

// Complete reports whether the selection has reached capacity.
func (t SelectionTracker) Complete() bool {
	return t.capacity > 0 && len(t.picked) == t.capacity
}

// Count returns the number of picks so far.
func (t SelectionTracker) Count() int { return len(t.picked) }

// Capacity returns the required pick count.
func (t SelectionTracker) Capacity() int { return t.capacity }

// Picked returns the picked indices in pick order.
func (t SelectionTracker) Picked() []int {
	out := make([]int, len(t.picked))
	copy(out, t.picked)
	return out
}
