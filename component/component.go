package component

import (
	"context"

	"github.com/wippyai/codec-dispatch/dispatch"
	"github.com/wippyai/codec-dispatch/errors"
)

// Implementation is the pair of handler sets one instance is bound to.
type Implementation struct {
	// Local serves call entries.
	Local dispatch.HandlerSet
	// Base is the wrapped default implementation serving delegate entries.
	Base dispatch.HandlerSet
}

// Definition describes a component type the Manager can open.
type Definition struct {
	// New creates the handlers of a freshly opened instance. The instance
	// can be stored and used by handlers once dispatch begins.
	New         func(inst *Instance) (Implementation, error)
	Description *dispatch.Description
	Name        string
	Options     dispatch.Options
}

// Instance is one open component.
type Instance struct {
	dispatcher *dispatch.Dispatcher
	name       string
	handle     Handle
}

// Name returns the component name the instance was opened from.
func (i *Instance) Name() string {
	return i.name
}

// Handle returns the instance handle.
func (i *Instance) Handle() Handle {
	return i.handle
}

// Dispatcher returns the instance's bound dispatcher, or nil while the
// instance is still being constructed.
func (i *Instance) Dispatcher() *dispatch.Dispatcher {
	return i.dispatcher
}

// Call dispatches the host selector what.
func (i *Instance) Call(ctx context.Context, what int32, args dispatch.Args) (dispatch.Result, error) {
	if i.dispatcher == nil {
		return 0, errors.New(errors.PhaseHost, errors.KindInstantiation).
			Detail("instance of %s is not bound", i.name).
			Code(errors.CodeBadComponentInstance).
			Build()
	}
	sel, ok := i.dispatcher.Layout().Encode(what)
	if !ok {
		return 0, errors.Unsupported(uint32(what))
	}
	return i.dispatcher.Dispatch(ctx, sel, args)
}

// CanDo reports whether the host selector what reaches a handler.
func (i *Instance) CanDo(what int32) bool {
	if i.dispatcher == nil {
		return false
	}
	sel, ok := i.dispatcher.Layout().Encode(what)
	return ok && i.dispatcher.CanDo(sel)
}

// Resolve reports how the host selector what would be served.
func (i *Instance) Resolve(what int32) (dispatch.Outcome, bool) {
	if i.dispatcher == nil {
		return dispatch.Outcome{}, false
	}
	sel, ok := i.dispatcher.Layout().Encode(what)
	if !ok {
		return dispatch.Outcome{}, false
	}
	return i.dispatcher.Resolve(sel), true
}
