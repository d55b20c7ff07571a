package reorder

// Reorder moves dragging into the slot occupied by over and returns the new
// order. The target index is taken from the original order and the item is
// inserted at that literal index after removal, so a forward move lands just
// after over and a backward move lands just before it.
//
//	Reorder([]string{"a", "b", "c", "d"}, "a", "c") // b, c, a, d
//	Reorder([]string{"a", "b", "c", "d"}, "d", "b") // a, d, b, c
//
// items is never modified. A drop onto the dragged item itself returns an
// equal copy.
func Reorder[T comparable](items []T, dragging, over T) ([]T, error) {
	from := IndexOf(items, dragging)
	if from < 0 {
		return nil, &InvalidDropError{Reason: ReasonDraggingNotMember}
	}
	to := IndexOf(items, over)
	if to < 0 {
		return nil, &InvalidDropError{Reason: ReasonTargetNotMember}
	}
	return Move(items, from, to), nil
}

// Move removes the item at from and inserts it at index to of the shortened
// sequence. Indices are clamped to the valid range. items is never modified.
func Move[T comparable](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	if len(items) == 0 {
		return out
	}
	from = clamp(from, len(items)-1)
	to = clamp(to, len(items)-1)

	moved := items[from]
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)

	out = append(out, moved)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out
}

func clamp(i, hi int) int {
	if i < 0 {
		return 0
	}
	if i > hi {
		return hi
	}
	return i
}
