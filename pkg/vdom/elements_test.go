package vdom

import "testing"

func TestCreateElement(t *testing.T) {
	child := Span("inner")
	node := Div(
		ID("list"),
		Class("a", "", "b"),
		Key("k1"),
		nil,
		child,
		[]*VNode{Text("x"), nil, Text("y")},
		"tail",
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("node = %v %q", node.Kind, node.Tag)
	}
	if node.Props["id"] != "list" {
		t.Errorf("id = %v", node.Props["id"])
	}
	if node.Props["class"] != "a b" {
		t.Errorf("class = %q, want %q", node.Props["class"], "a b")
	}
	if node.Key != "k1" {
		t.Errorf("Key = %q, want k1", node.Key)
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key should not be stored as a prop")
	}
	if len(node.Children) != 4 {
		t.Fatalf("children = %d, want 4", len(node.Children))
	}
	if node.Children[3].Kind != KindText || node.Children[3].Text != "tail" {
		t.Errorf("string child = %+v", node.Children[3])
	}
}

func TestClassMerge(t *testing.T) {
	node := Li(Class("item"), Class("dragging"))
	if node.Props["class"] != "item dragging" {
		t.Errorf("class = %q, want %q", node.Props["class"], "item dragging")
	}

	node = Li(Class("item"), Class(""))
	if node.Props["class"] != "item" {
		t.Errorf("class = %q, want %q", node.Props["class"], "item")
	}
}

func TestElementFactories(t *testing.T) {
	tests := []struct {
		node *VNode
		tag  string
	}{
		{Html(), "html"},
		{Head(), "head"},
		{Body(), "body"},
		{Title(), "title"},
		{Meta(), "meta"},
		{Style(), "style"},
		{Script(), "script"},
		{Main(), "main"},
		{Section(), "section"},
		{H1(), "h1"},
		{Div(), "div"},
		{P(), "p"},
		{Span(), "span"},
		{Ul(), "ul"},
		{Ol(), "ol"},
		{Li(), "li"},
		{El("custom-el"), "custom-el"},
	}

	for _, tt := range tests {
		if tt.node.Tag != tt.tag {
			t.Errorf("Tag = %q, want %q", tt.node.Tag, tt.tag)
		}
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("meta") {
		t.Error("meta should be void")
	}
	if IsVoidElement("div") {
		t.Error("div should not be void")
	}
}

type greeting string

func (g greeting) Render() *VNode { return Text(string(g)) }

func TestComponentChild(t *testing.T) {
	comp := greeting("hi")
	node := Div(comp)
	if len(node.Children) != 1 || node.Children[0].Kind != KindComponent {
		t.Fatalf("children = %+v", node.Children)
	}
	if got := node.Children[0].Comp.Render().Text; got != "hi" {
		t.Errorf("Render() text = %q", got)
	}
}
