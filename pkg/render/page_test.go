package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/draglist/pkg/vdom"
)

func TestRenderPage(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	var buf bytes.Buffer
	err := r.RenderPage(&buf, PageData{
		Title:   "Tasks & more",
		Body:    vdom.Main(vdom.Text("hello")),
		Styles:  []string{".dragging{opacity:.5}"},
		Scripts: []string{"console.log(1)"},
	})
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Tasks &amp; more</title>",
		"<style>.dragging{opacity:.5}</style>",
		"<main>hello</main>",
		"<script>console.log(1)</script>",
		"</html>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in page:\n%s", want, html)
		}
	}
}

func TestRenderPageLang(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	var buf bytes.Buffer
	if err := r.RenderPage(&buf, PageData{Lang: "de"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<html lang="de">`) {
		t.Errorf("lang not applied: %s", buf.String())
	}
}
