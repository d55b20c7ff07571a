package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/draglist/pkg/render"
	"github.com/vango-dev/draglist/pkg/vdom"
)

// Harness holds a rendered tree and its handler registry.
// Every dispatch re-renders, so HIDs always match the current tree.
type Harness struct {
	t        testing.TB
	view     func() *vdom.VNode
	renderer *render.Renderer
	root     *vdom.VNode
	html     string
}

// Mount renders view and returns a harness for it.
func Mount(t testing.TB, view func() *vdom.VNode) *Harness {
	t.Helper()
	h := &Harness{
		t:        t,
		view:     view,
		renderer: render.NewRenderer(render.RendererConfig{}),
	}
	h.Rerender()
	return h
}

// Rerender renders the view again with a fresh handler registry.
func (h *Harness) Rerender() {
	h.t.Helper()
	h.renderer.Reset()
	h.root = h.view()
	html, err := h.renderer.RenderToString(h.root)
	if err != nil {
		h.t.Fatalf("render failed: %v", err)
	}
	h.html = html
}

// HTML returns the last rendered output.
func (h *Harness) HTML() string {
	return h.html
}

// Root returns the last rendered tree.
func (h *Harness) Root() *vdom.VNode {
	return h.root
}

// Dispatch invokes the handler registered for hid and event, then
// re-renders. It fails the test if no handler is registered.
func (h *Harness) Dispatch(hid, event string) {
	h.t.Helper()
	handler, ok := h.renderer.Handler(hid, event)
	if !ok {
		h.t.Fatalf("no %s handler registered for %s", event, hid)
	}
	if _, err := vdom.Invoke(handler); err != nil {
		h.t.Fatalf("%s handler on %s returned error: %v", event, hid, err)
	}
	h.Rerender()
}

// DispatchKey dispatches event to the element with the given key.
func (h *Harness) DispatchKey(key, event string) {
	h.t.Helper()
	h.Dispatch(h.hidOf(func(n *vdom.VNode) bool { return n.Key == key }, "key "+key), event)
}

// DispatchID dispatches event to the element with the given id attribute.
func (h *Harness) DispatchID(id, event string) {
	h.t.Helper()
	h.Dispatch(h.hidOf(func(n *vdom.VNode) bool {
		v, _ := n.Props["id"].(string)
		return v == id
	}, "id "+id), event)
}

// HasHandler reports whether the element with hid has a handler for event.
func (h *Harness) HasHandler(hid, event string) bool {
	_, ok := h.renderer.Handler(hid, event)
	return ok
}

// ExpectContains asserts that the last render contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	if !strings.Contains(h.html, expected) {
		h.t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(h.html, 500))
	}
}

// ExpectNotContains asserts that the last render does not contain unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	if strings.Contains(h.html, unexpected) {
		h.t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(h.html, 500))
	}
}

func (h *Harness) hidOf(match func(*vdom.VNode) bool, what string) string {
	h.t.Helper()
	node := h.root.Find(func(n *vdom.VNode) bool {
		return n.Kind == vdom.KindElement && match(n)
	})
	if node == nil {
		h.t.Fatalf("no element with %s", what)
	}
	if node.HID == "" {
		h.t.Fatalf("element with %s has no server handlers", what)
	}
	return node.HID
}
