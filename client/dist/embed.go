package clientdist

import _ "embed"

// DraglistJS is the thin client that forwards drag events over the
// WebSocket and applies patch and replace frames.
//
// It is served at "/_draglist/client.js" and inlined into the index page.
//
//go:embed draglist.js
var DraglistJS []byte
