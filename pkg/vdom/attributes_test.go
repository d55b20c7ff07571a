package vdom

import "testing"

func TestAttributes(t *testing.T) {
	tests := []struct {
		name  string
		attr  Attr
		key   string
		value any
	}{
		{"ID", ID("x"), "id", "x"},
		{"Class", Class("a", "b"), "class", "a b"},
		{"StyleAttr", StyleAttr("color: red"), "style", "color: red"},
		{"Data", Data("key", "42"), "data-key", "42"},
		{"Key", Key("k"), "key", "k"},
		{"Role", Role("listbox"), "role", "listbox"},
		{"AriaLabel", AriaLabel("Tasks"), "aria-label", "Tasks"},
		{"AriaGrabbed", AriaGrabbed(true), "aria-grabbed", true},
		{"Draggable", Draggable(), "draggable", "true"},
		{"Lang", Lang("en"), "lang", "en"},
		{"Charset", Charset("utf-8"), "charset", "utf-8"},
		{"Name", Name("viewport"), "name", "viewport"},
		{"Content", Content("width=device-width"), "content", "width=device-width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.attr.Key, tt.key)
			}
			if tt.attr.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.attr.Value, tt.value)
			}
		})
	}
}

func TestAttrIsEmpty(t *testing.T) {
	if !(Attr{}).IsEmpty() {
		t.Error("zero Attr should be empty")
	}
	if ID("x").IsEmpty() {
		t.Error("ID attr should not be empty")
	}
}
