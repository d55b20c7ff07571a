// Package draglist binds native drag-and-drop DOM events to a reorder.State
// and renders the list with its insertion preview.
//
// A List is one mounted list instance. It owns its drag state, passes it
// explicitly to every item's handlers and never looks state up from an
// ambient context:
//
//	tasks, _ := reorder.NewList("write", "review", "ship")
//	list := draglist.New[string](tasks,
//	    draglist.WithID[string]("tasks"),
//	    draglist.WithOnDrop(func(dropped, on string) {
//	        slog.Info("reordered", "dropped", dropped, "on", on)
//	    }),
//	)
//	node := list.Render()
//
// Every item element is draggable and listens for dragstart, dragend,
// dragenter and dragleave. The container listens for drop. Both suppress
// the dragover default so the browser accepts the drop.
//
// After each transition the list records class patches for the items whose
// preview changed (TakePatches). After a successful drop the whole list has
// to be re-rendered (TakeReplace).
package draglist
