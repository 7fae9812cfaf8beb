package dispatch

import "context"

// Args are the argument words of one call, passed to handlers unchanged.
type Args []uint64

// Result is the value a handler returns to the host.
type Result int64

// Handler serves one selector.
type Handler func(ctx context.Context, args Args) (Result, error)

// HandlerSet resolves entry names to handlers at bind time.
type HandlerSet interface {
	Handler(name string) (Handler, bool)
}

// Handlers is a HandlerSet backed by a map.
type Handlers map[string]Handler

// Handler implements HandlerSet.
func (h Handlers) Handler(name string) (Handler, bool) {
	fn, ok := h[name]
	return fn, ok && fn != nil
}

// Forwarder is implemented by base implementations that accept raw
// selectors. It serves selectors the table does not declare when
// Options.Unknown is UnknownDelegate.
type Forwarder interface {
	Forward(ctx context.Context, sel Selector, args Args) (Result, error)
}
