package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/draglist/pkg/vdom"
)

func render(t *testing.T, r *Renderer, node *vdom.VNode) string {
	t.Helper()
	html, err := r.RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	return html
}

func TestRenderStaticElement(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	got := render(t, r, vdom.Div(
		vdom.ID("main"),
		vdom.Class("list"),
		vdom.Key("ignored"),
		vdom.Text("a < b"),
	))

	want := `<div class="list" id="main">a &lt; b</div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderVoidAndBoolean(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	got := render(t, r, vdom.Div(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.El("button", vdom.Attr{Key: "disabled", Value: true}),
		vdom.El("button", vdom.Attr{Key: "disabled", Value: false}),
	))

	want := `<div><meta charset="utf-8"><button disabled></button><button></button></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

type spanComponent string

func (s spanComponent) Render() *vdom.VNode { return vdom.Span(string(s)) }

func TestRenderComponentAndRaw(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	got := render(t, r, vdom.Div(vdom.Text("a"), spanComponent("c"), vdom.Raw("<hr>")))

	if got != "<div>a<span>c</span><hr></div>" {
		t.Errorf("got %q", got)
	}
}

func TestRenderAssignsHIDs(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	started := ""
	tree := vdom.Ul(
		vdom.OnDrop(vdom.PreventDefault(func() {})),
		vdom.OnDragOver(vdom.PreventDefault(nil)),
		vdom.Li(vdom.Draggable(), vdom.OnDragStart(func() { started = "a" }), vdom.Text("A")),
		vdom.Li(vdom.Text("static")),
	)

	html := render(t, r, tree)

	for _, want := range []string{
		`<ul data-prevent-dragover="true" data-on-drop="true" data-prevent-drop="true" data-hid="h1">`,
		`<li draggable="true" data-on-dragstart="true" data-hid="h2">`,
		`<li>static</li>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in:\n%s", want, html)
		}
	}
	if strings.Contains(html, "data-on-dragover") {
		t.Error("client-only modifier should not be forwarded to the server")
	}

	if tree.HID != "h1" || tree.Children[0].HID != "h2" || tree.Children[1].HID != "" {
		t.Errorf("HIDs = %q %q %q", tree.HID, tree.Children[0].HID, tree.Children[1].HID)
	}

	if _, ok := r.Handler("h1", "dragover"); ok {
		t.Error("dragover should not be registered")
	}
	h, ok := r.Handler("h2", "dragstart")
	if !ok {
		t.Fatalf("h2 dragstart not registered; registry = %v", r.GetHandlers())
	}
	if handled, _ := vdom.Invoke(h); !handled || started != "a" {
		t.Error("registered handler did not run")
	}
	if len(r.GetHandlers()) != 2 {
		t.Errorf("registry size = %d, want 2", len(r.GetHandlers()))
	}
}

func TestRenderReset(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	node := func() *vdom.VNode { return vdom.Div(vdom.OnDragStart(func() {})) }

	render(t, r, node())
	render(t, r, node())
	if _, ok := r.Handler("h2", "dragstart"); !ok {
		t.Fatal("second render without reset should continue numbering")
	}

	r.Reset()
	render(t, r, node())
	if len(r.GetHandlers()) != 1 {
		t.Errorf("registry size after reset = %d, want 1", len(r.GetHandlers()))
	}
	if _, ok := r.Handler("h1", "dragstart"); !ok {
		t.Error("numbering should restart after reset")
	}
}

func TestRenderHIDPrefix(t *testing.T) {
	r := NewRenderer(RendererConfig{HIDPrefix: "t"})
	html := render(t, r, vdom.Div(vdom.OnDrop(func() {})))
	if !strings.Contains(html, `data-hid="t1"`) {
		t.Errorf("got %q", html)
	}
}

func TestRenderPretty(t *testing.T) {
	r := NewRenderer(RendererConfig{Pretty: true})
	html := render(t, r, vdom.Ul(vdom.Li("a")))
	if !strings.HasPrefix(html, "<ul>\n  <li>") || !strings.HasSuffix(html, "</ul>\n") {
		t.Errorf("pretty output = %q", html)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	if _, err := r.RenderToString(&vdom.VNode{Kind: vdom.VKind(99)}); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := r.RenderToString(&vdom.VNode{Kind: vdom.KindElement}); err == nil {
		t.Error("expected error for element without tag")
	}
}
