package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/vango-dev/draglist/pkg/draglist"
	"github.com/vango-dev/draglist/pkg/render"
	"github.com/vango-dev/draglist/pkg/reorder"
	"github.com/vango-dev/draglist/pkg/vdom"

	clientdist "github.com/vango-dev/draglist/client/dist"
)

// orderResponse is the body of GET /api/order.
type orderResponse struct {
	ID    string   `json:"id"`
	Items []string `json:"items"`
}

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// serveIndex renders the page with the committed order. The handlers
// collected here are discarded; the session sends its own render once the
// client connects.
func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	collection, err := reorder.NewList(s.order.Items()...)
	if err != nil {
		s.logger.Error("index render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	list := draglist.New[string](collection, draglist.WithID[string](s.order.ListID()))

	body := vdom.Main(
		vdom.H1(s.config.Title),
		list,
	)

	var buf bytes.Buffer
	renderer := render.NewRenderer(render.RendererConfig{})
	err = renderer.RenderPage(&buf, render.PageData{
		Body:    body,
		Title:   s.config.Title,
		Styles:  []string{draglist.DefaultCSS},
		Scripts: []string{string(clientdist.DraglistJS)},
	})
	if err != nil {
		s.logger.Error("index render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Sessions: s.sessions.Count(),
	})
}

func (s *Server) serveOrder(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orderResponse{
		ID:    s.order.ListID(),
		Items: s.order.Items(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
