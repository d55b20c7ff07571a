// Package vtest provides testing helpers for server-rendered lists.
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, list.Render(), `data-key="a"`)
//	vtest.ExpectNotContains(t, list.Render(), "dragging")
//
// # Dispatching Events
//
// Mount renders a tree the way a session does and lets tests fire DOM
// events at the registered handlers, addressed by hydration ID, item key or
// element id:
//
//	h := vtest.Mount(t, list.Render)
//	h.DispatchKey("a", "dragstart")
//	h.DispatchKey("c", "dragenter")
//	h.DispatchID("tasks", "drop")
//	h.ExpectContains(`data-preview="None"`)
package vtest
