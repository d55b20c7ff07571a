package vdom

import "testing"

func TestTextHelpers(t *testing.T) {
	if n := Text("a"); n.Kind != KindText || n.Text != "a" {
		t.Errorf("Text() = %+v", n)
	}
	if n := Raw("<b>x</b>"); n.Kind != KindRaw {
		t.Errorf("Raw() kind = %v", n.Kind)
	}
}

func TestRange(t *testing.T) {
	nodes := Range([]string{"a", "skip", "b"}, func(s string, _ int) *VNode {
		if s == "skip" {
			return nil
		}
		return Li(Key(s), Text(s))
	})
	if len(nodes) != 2 {
		t.Fatalf("len = %d, want 2", len(nodes))
	}
	if nodes[1].Key != "b" || nodes[1].Children[0].Text != "b" {
		t.Errorf("second node = %+v", nodes[1])
	}
}
