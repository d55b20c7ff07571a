package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "drop" becomes "ondrop").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// On creates a handler for an arbitrary DOM event name.
func On(name string, handler any) EventHandler { return event(name, handler) }

// Drag events

// OnDragStart handles dragstart events.
func OnDragStart(handler any) EventHandler { return event("dragstart", handler) }

// OnDragEnd handles dragend events.
func OnDragEnd(handler any) EventHandler { return event("dragend", handler) }

// OnDragEnter handles dragenter events.
func OnDragEnter(handler any) EventHandler { return event("dragenter", handler) }

// OnDragOver handles dragover events.
func OnDragOver(handler any) EventHandler { return event("dragover", handler) }

// OnDragLeave handles dragleave events.
func OnDragLeave(handler any) EventHandler { return event("dragleave", handler) }

// OnDrop handles drop events.
func OnDrop(handler any) EventHandler { return event("drop", handler) }
