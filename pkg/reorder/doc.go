// Package reorder implements drag-and-drop reordering of an ordered list.
//
// The package has no knowledge of any UI runtime. It tracks which item is
// being dragged and which item is hovered, derives a before/after insertion
// preview for every item, and computes the new order when a drop completes.
//
// # Core Types
//
// Collection is the host-owned ordered sequence of unique items. List is the
// default implementation. State is the per-list-instance drag state and
// exposes one method per native drag event:
//
//	list, _ := reorder.NewList("a", "b", "c", "d")
//	state := reorder.NewState[string](list,
//	    reorder.WithOnDrop(func(dropped, on string) {
//	        log.Printf("moved %s onto %s", dropped, on)
//	    }),
//	)
//
//	state.DragStart("a")
//	state.DragEnter("c")
//	reorder.Classify("c", state) // HoverAfter
//	state.Drop()                 // list is now b, c, a, d
//
// # Pure Functions
//
// Classify computes the PreviewClass of one item. Reorder and Move compute a
// new order without modifying their input.
//
// # Concurrency
//
// A State belongs to exactly one list instance and is driven by one event
// loop. It is not safe for concurrent use.
package reorder
