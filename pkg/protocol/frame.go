package protocol

import (
	"encoding/json"
	"fmt"
)

// MaxFrameSize bounds a single decoded frame.
const MaxFrameSize = 64 << 10

// FrameType identifies the frame kind.
type FrameType string

const (
	FrameEvent   FrameType = "event"
	FramePing    FrameType = "ping"
	FramePong    FrameType = "pong"
	FramePatch   FrameType = "patch"
	FrameReplace FrameType = "replace"
	FrameError   FrameType = "error"
)

// Frame is one protocol message.
type Frame struct {
	Type FrameType `json:"t"`

	// Seq is the server sequence number of patch and replace frames.
	Seq uint64 `json:"seq,omitempty"`

	// Event frames
	HID   string `json:"hid,omitempty"`
	Event string `json:"event,omitempty"`

	// Patch frames
	Patches []Patch `json:"patches,omitempty"`

	// Replace frames
	Target string `json:"target,omitempty"`
	HTML   string `json:"html,omitempty"`

	// Error frames
	Code    ErrorCode `json:"code,omitempty"`
	Message string    `json:"message,omitempty"`
}

// EventType returns the parsed event type of an event frame.
func (f *Frame) EventType() EventType {
	et, _ := ParseEventType(f.Event)
	return et
}

// NewEvent creates a client event frame.
func NewEvent(hid string, et EventType) *Frame {
	return &Frame{Type: FrameEvent, HID: hid, Event: et.DOMName()}
}

// NewPatch creates a patch frame.
func NewPatch(seq uint64, patches []Patch) *Frame {
	return &Frame{Type: FramePatch, Seq: seq, Patches: patches}
}

// NewReplace creates a frame replacing the element with id target.
func NewReplace(seq uint64, target, html string) *Frame {
	return &Frame{Type: FrameReplace, Seq: seq, Target: target, HTML: html}
}

// NewError creates an error frame.
func NewError(code ErrorCode, message string) *Frame {
	return &Frame{Type: FrameError, Code: code, Message: message}
}

// Encode serializes the frame.
func (f *Frame) Encode() ([]byte, error) {
	return json.Marshal(f)
}

// DecodeFrame parses and validates a frame received from the client.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch f.Type {
	case FrameEvent:
		if f.HID == "" {
			return nil, fmt.Errorf("%w: event without hid", ErrMalformedFrame)
		}
		et, err := ParseEventType(f.Event)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, f.Event)
		}
		f.Event = et.DOMName()
	case FramePing, FramePong, FramePatch, FrameReplace, FrameError:
	default:
		return nil, fmt.Errorf("%w: unknown frame type %q", ErrMalformedFrame, f.Type)
	}
	return &f, nil
}
