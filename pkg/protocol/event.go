package protocol

import "strings"

// EventType identifies a client drag event.
type EventType uint8

// Event type constants.
const (
	EventUnknown   EventType = 0x00
	EventDragStart EventType = 0x50
	EventDragEnd   EventType = 0x51
	EventDrop      EventType = 0x52
	EventDragEnter EventType = 0x53
	EventDragLeave EventType = 0x54
	EventDragOver  EventType = 0x55
)

// eventNames maps DOM event names to event types.
var eventNames = map[string]EventType{
	"dragstart": EventDragStart,
	"dragend":   EventDragEnd,
	"drop":      EventDrop,
	"dragenter": EventDragEnter,
	"dragleave": EventDragLeave,
	"dragover":  EventDragOver,
}

// String returns the string representation of the event type.
func (et EventType) String() string {
	switch et {
	case EventDragStart:
		return "DragStart"
	case EventDragEnd:
		return "DragEnd"
	case EventDrop:
		return "Drop"
	case EventDragEnter:
		return "DragEnter"
	case EventDragLeave:
		return "DragLeave"
	case EventDragOver:
		return "DragOver"
	default:
		return "Unknown"
	}
}

// DOMName returns the DOM event name (e.g. "dragstart").
func (et EventType) DOMName() string {
	for name, t := range eventNames {
		if t == et {
			return name
		}
	}
	return ""
}

// ParseEventType resolves a DOM event name, case-insensitively and with or
// without the "on" prefix.
func ParseEventType(name string) (EventType, error) {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "on")
	if et, ok := eventNames[name]; ok {
		return et, nil
	}
	return EventUnknown, ErrUnknownEvent
}
