// Package protocol implements the wire protocol between the thin browser
// client and the draglist server.
//
// Frames are JSON text messages over a WebSocket. The client forwards DOM
// drag events addressed by hydration ID; the server answers with class
// patches while a gesture is in progress and with a full replacement of the
// list markup once the order changes.
//
// # Frame Types
//
//   - event (client → server): {"t":"event","hid":"h3","event":"dragstart"}
//   - ping / pong: liveness
//   - patch (server → client): {"t":"patch","patches":[{"key":"b","class":"dragging","preview":"Dragging"}]}
//   - replace (server → client): {"t":"replace","html":"<ul ...>"}
//   - error (server → client): {"t":"error","code":"HandlerNotFound","message":"..."}
//
// Only the native drag event family is accepted from the client.
package protocol
