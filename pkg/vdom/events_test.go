package vdom

import "testing"

func TestEventHandlers(t *testing.T) {
	handler := func() {}

	tests := []struct {
		name     string
		handler  EventHandler
		expected string
	}{
		{"OnDragStart", OnDragStart(handler), "ondragstart"},
		{"OnDragEnd", OnDragEnd(handler), "ondragend"},
		{"OnDragEnter", OnDragEnter(handler), "ondragenter"},
		{"OnDragOver", OnDragOver(handler), "ondragover"},
		{"OnDragLeave", OnDragLeave(handler), "ondragleave"},
		{"OnDrop", OnDrop(handler), "ondrop"},
		{"On", On("custom", handler), "oncustom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.handler.Event != tt.expected {
				t.Errorf("Event = %q, want %q", tt.handler.Event, tt.expected)
			}
			if tt.handler.Handler == nil {
				t.Error("Handler should not be nil")
			}
		})
	}
}

func TestEventHandlerOnElement(t *testing.T) {
	called := false
	node := Div(OnDragStart(func() { called = true }))

	h, ok := node.Props["ondragstart"]
	if !ok {
		t.Fatal("ondragstart not registered in props")
	}
	if handled, err := Invoke(h); !handled || err != nil {
		t.Fatalf("Invoke() = %v, %v", handled, err)
	}
	if !called {
		t.Error("handler was not called")
	}
	if !node.IsInteractive() {
		t.Error("node with handlers should be interactive")
	}
}
