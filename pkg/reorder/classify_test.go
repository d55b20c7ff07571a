package reorder

import (
	"reflect"
	"testing"
)

// fixedState is a Snapshot with explicit pointers.
type fixedState[T comparable] struct {
	items       []T
	dragging    T
	hasDragging bool
	over        T
	hasOver     bool
}

func (f fixedState[T]) Items() []T          { return f.items }
func (f fixedState[T]) Dragging() (T, bool) { return f.dragging, f.hasDragging }
func (f fixedState[T]) Over() (T, bool)     { return f.over, f.hasOver }

func TestClassify(t *testing.T) {
	items := []string{"A", "B", "C", "D"}

	tests := []struct {
		name  string
		state fixedState[string]
		want  []PreviewClass
	}{
		{
			name:  "idle",
			state: fixedState[string]{items: items},
			want:  []PreviewClass{None, None, None, None},
		},
		{
			name:  "dragging only",
			state: fixedState[string]{items: items, dragging: "B", hasDragging: true},
			want:  []PreviewClass{None, Dragging, None, None},
		},
		{
			name:  "hover without dragging",
			state: fixedState[string]{items: items, over: "C", hasOver: true},
			want:  []PreviewClass{None, None, None, None},
		},
		{
			name:  "hover after",
			state: fixedState[string]{items: items, dragging: "A", hasDragging: true, over: "C", hasOver: true},
			want:  []PreviewClass{Dragging, None, HoverAfter, None},
		},
		{
			name:  "hover before",
			state: fixedState[string]{items: items, dragging: "D", hasDragging: true, over: "B", hasOver: true},
			want:  []PreviewClass{None, HoverBefore, None, Dragging},
		},
		{
			name:  "hovering the dragged item",
			state: fixedState[string]{items: items, dragging: "B", hasDragging: true, over: "B", hasOver: true},
			want:  []PreviewClass{None, Dragging, None, None},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAll[string](tt.state)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ClassifyAll() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyExclusivity(t *testing.T) {
	items := []int{10, 20, 30, 40, 50}
	for _, d := range items {
		for _, o := range items {
			if d == o {
				continue
			}
			s := fixedState[int]{items: items, dragging: d, hasDragging: true, over: o, hasOver: true}
			var dragging, hover int
			for _, c := range ClassifyAll[int](s) {
				switch c {
				case Dragging:
					dragging++
				case HoverBefore, HoverAfter:
					hover++
				}
			}
			if dragging != 1 || hover != 1 {
				t.Errorf("dragging %d over %d: %d dragging, %d hover; want 1 and 1", d, o, dragging, hover)
			}
		}
	}
}

func TestPreviewClassNames(t *testing.T) {
	tests := []struct {
		class     PreviewClass
		str       string
		className string
	}{
		{None, "None", ""},
		{Dragging, "Dragging", "dragging"},
		{HoverBefore, "HoverBefore", "dragging-over__before"},
		{HoverAfter, "HoverAfter", "dragging-over__after"},
		{PreviewClass(99), "Unknown", ""},
	}

	for _, tt := range tests {
		if got := tt.class.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.class.ClassName(); got != tt.className {
			t.Errorf("%s.ClassName() = %q, want %q", tt.str, got, tt.className)
		}
	}

	if got := ClassNames(); len(got) != 3 {
		t.Errorf("ClassNames() = %v", got)
	}
}
