// Package server hosts drag-and-drop lists over HTTP and WebSocket.
//
// GET / renders the list server-side and inlines the thin client. The client
// opens /ws, which creates a Session: the session mounts its own list
// instance over the current committed order and sends it as a replace frame,
// so every data-hid the client sees resolves in that session's handler
// registry.
//
// Each session processes frames one at a time in its read loop. A drag event
// frame is answered with exactly one frame: a patch frame carrying the
// preview classes that changed, a replace frame after a committed drop, or an
// error frame.
//
// Other routes: /healthz, /metrics (Prometheus), /api/order (the committed
// order as JSON) and /_draglist/client.js.
package server
