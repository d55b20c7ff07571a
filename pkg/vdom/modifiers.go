package vdom

// ModifiedHandler wraps a handler with client-side modifier flags.
// The renderer exposes the flags to the thin client, which applies them to
// the native event before the event is forwarded to the server.
type ModifiedHandler struct {
	// The wrapped handler function, or nil for a pure client-side modifier.
	Handler any

	PreventDefault  bool // Prevent default browser behavior
	StopPropagation bool // Stop event bubbling
}

// Unwrap returns the innermost handler, unwrapping any nested ModifiedHandlers.
func (m ModifiedHandler) Unwrap() any {
	if inner, ok := m.Handler.(ModifiedHandler); ok {
		return inner.Unwrap()
	}
	return m.Handler
}

// PreventDefault wraps a handler to prevent the default browser behavior.
// A nil handler only suppresses the default; nothing is sent to the server.
//
// Example:
//
//	OnDragOver(vdom.PreventDefault(nil)) // allow drops on this element
func PreventDefault(handler any) ModifiedHandler {
	if mh, ok := handler.(ModifiedHandler); ok {
		mh.PreventDefault = true
		return mh
	}
	return ModifiedHandler{Handler: handler, PreventDefault: true}
}

// StopPropagation wraps a handler to stop event bubbling.
func StopPropagation(handler any) ModifiedHandler {
	if mh, ok := handler.(ModifiedHandler); ok {
		mh.StopPropagation = true
		return mh
	}
	return ModifiedHandler{Handler: handler, StopPropagation: true}
}

// Invoke calls a registered handler value. It accepts func(), func() error
// and ModifiedHandler wrapping either. Unknown handler types and nil report
// false.
func Invoke(handler any) (handled bool, err error) {
	switch h := handler.(type) {
	case nil:
		return false, nil
	case ModifiedHandler:
		return Invoke(h.Unwrap())
	case func():
		h()
		return true, nil
	case func() error:
		return true, h()
	default:
		return false, nil
	}
}
