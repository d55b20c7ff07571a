package reorder

// PreviewClass is the visual state of one item during a drag gesture.
type PreviewClass uint8

const (
	None        PreviewClass = iota // not involved in the gesture
	Dragging                        // the item being dragged
	HoverBefore                     // hovered; the dragged item lands before it
	HoverAfter                      // hovered; the dragged item lands after it
)

// String returns the string representation of the PreviewClass.
func (c PreviewClass) String() string {
	switch c {
	case None:
		return "None"
	case Dragging:
		return "Dragging"
	case HoverBefore:
		return "HoverBefore"
	case HoverAfter:
		return "HoverAfter"
	default:
		return "Unknown"
	}
}

// ClassName returns the CSS class a renderer applies for c.
// None maps to the empty string.
func (c PreviewClass) ClassName() string {
	switch c {
	case Dragging:
		return "dragging"
	case HoverBefore:
		return "dragging-over__before"
	case HoverAfter:
		return "dragging-over__after"
	default:
		return ""
	}
}

// ClassNames lists every non-empty class ClassName can return.
func ClassNames() []string {
	return []string{
		Dragging.ClassName(),
		HoverBefore.ClassName(),
		HoverAfter.ClassName(),
	}
}

// Snapshot is the read side of a drag state, as seen by Classify.
type Snapshot[T comparable] interface {
	Items() []T
	Dragging() (T, bool)
	Over() (T, bool)
}

// Classify returns the PreviewClass of item for the given state.
//
// The dragged item is always Dragging, even while it is hovered. The hovered
// item is HoverAfter when it sits after the dragged item in the current
// order and HoverBefore otherwise. Every other item is None.
func Classify[T comparable](item T, s Snapshot[T]) PreviewClass {
	dragging, hasDragging := s.Dragging()
	if hasDragging && item == dragging {
		return Dragging
	}
	over, hasOver := s.Over()
	if !hasDragging || !hasOver || item != over {
		return None
	}

	items := s.Items()
	if IndexOf(items, over) > IndexOf(items, dragging) {
		return HoverAfter
	}
	return HoverBefore
}

// ClassifyAll returns the PreviewClass of every item, in collection order.
func ClassifyAll[T comparable](s Snapshot[T]) []PreviewClass {
	items := s.Items()
	out := make([]PreviewClass, len(items))
	for i, item := range items {
		out[i] = Classify(item, s)
	}
	return out
}
