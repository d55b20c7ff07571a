// Package render provides server-side rendering of VNode trees to HTML.
//
// Besides producing escaped HTML, the renderer wires interactivity:
//
//   - Elements with server-bound handlers receive a data-hid attribute
//   - Each such handler is registered under "hid_onevent"
//   - data-on-<event>, data-prevent-<event> and data-stop-<event> markers
//     tell the thin client which listeners to attach and which native
//     defaults to suppress
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//	handler, ok := renderer.Handler("h2", "dragstart")
//
// # Full Page Rendering
//
//	err := renderer.RenderPage(w, render.PageData{
//	    Title:   "Tasks",
//	    Body:    list.Render(),
//	    Scripts: []string{clientJS},
//	})
//
// Reset must be called before re-rendering a tree whose handlers replace
// the previous registry.
package render
