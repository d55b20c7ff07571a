// Package vdom provides the virtual DOM used to render drag-and-drop lists.
//
// The tree lives on the server. Elements carry attributes and event
// handlers; the renderer assigns every element a hydration ID (HID) and
// registers its handlers so that events forwarded by the browser can be
// routed back to Go functions.
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text,
// fragments, components, and raw HTML. Props holds attributes and event
// handlers. Attr and EventHandler are used to build Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Ul(Class("list"), OnDrop(PreventDefault(drop)),
//	    Li(Key("a"), Draggable(), OnDragStart(start), Text("A")),
//	)
//
// # Modifiers
//
// PreventDefault and StopPropagation wrap a handler with flags the client
// applies to the native event. A PreventDefault(nil) handler never reaches
// the server; it only suppresses the browser default, which is how drop
// targets opt in to receiving drops.
package vdom
