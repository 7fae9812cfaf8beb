package dispatch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/codec-dispatch/errors"
)

// Action is the outcome class of resolving a selector.
type Action uint8

const (
	ActionUnsupported Action = iota
	ActionCall
	ActionDelegate
	ActionError
	ActionForward
)

func (a Action) String() string {
	switch a {
	case ActionCall:
		return "call"
	case ActionDelegate:
		return "delegate"
	case ActionError:
		return "error"
	case ActionForward:
		return "forward"
	default:
		return "unsupported"
	}
}

// Outcome describes how a selector resolves.
type Outcome struct {
	Name     string
	Offset   int64
	Range    int
	Selector Selector
	Code     errors.Code
	Action   Action
}

func (o Outcome) String() string {
	switch o.Action {
	case ActionCall, ActionDelegate:
		return fmt.Sprintf("%#x -> range %d offset %d: %s %s", uint32(o.Selector), o.Range, o.Offset, o.Action, o.Name)
	case ActionError:
		return fmt.Sprintf("%#x -> range %d offset %d: error %s (%s)", uint32(o.Selector), o.Range, o.Offset, o.Code, o.Name)
	case ActionForward:
		return fmt.Sprintf("%#x -> range %d: forward", uint32(o.Selector), o.Range)
	default:
		return fmt.Sprintf("%#x -> range %d: unsupported", uint32(o.Selector), o.Range)
	}
}

// Dispatcher resolves selectors against a bound table and invokes the
// outcome. It is immutable and safe for concurrent use.
type Dispatcher struct {
	table   *Table
	forward Forwarder
	options Options
}

// New creates a dispatcher over table.
func New(table *Table, opts Options) (*Dispatcher, error) {
	if table == nil {
		return nil, errors.Configuration(errors.KindInvalidLayout, -1, "nil table")
	}
	d := &Dispatcher{table: table, options: opts}
	if opts.Unknown == UnknownDelegate {
		fw, ok := table.base.(Forwarder)
		if !ok {
			return nil, errors.Configuration(errors.KindMissingHandler, -1,
				"unknown selector policy %s needs a base implementing Forwarder", opts.Unknown)
		}
		d.forward = fw
	}
	return d, nil
}

// Build compiles desc, binds it and returns its dispatcher.
func Build(desc *Description, local, base HandlerSet, opts Options) (*Dispatcher, error) {
	reg, err := Compile(desc)
	if err != nil {
		return nil, err
	}
	table, err := Bind(reg, local, base)
	if err != nil {
		return nil, err
	}
	return New(table, opts)
}

// Table returns the bound table.
func (d *Dispatcher) Table() *Table {
	return d.table
}

// Layout returns the dispatcher's selector arithmetic.
func (d *Dispatcher) Layout() Layout {
	return d.table.registry.layout
}

// Options returns the configuration.
func (d *Dispatcher) Options() Options {
	return d.options
}

// Resolve reports how sel would be served without invoking anything.
func (d *Dispatcher) Resolve(sel Selector) Outcome {
	out, _ := d.resolve(sel)
	return out
}

// CanDo reports whether sel reaches a handler.
func (d *Dispatcher) CanDo(sel Selector) bool {
	switch d.Resolve(sel).Action {
	case ActionCall, ActionDelegate, ActionForward:
		return true
	}
	return false
}

func (d *Dispatcher) resolve(sel Selector) (Outcome, *Entry) {
	reg := d.table.registry
	idx, ok := reg.locate(sel)
	out := Outcome{Selector: sel, Range: idx, Action: ActionUnsupported}
	if !ok {
		// Unused ranges are declared refusals and are never forwarded.
		if !reg.declaredUnused(idx) {
			d.unknown(&out)
		}
		return out, nil
	}

	out.Offset = int64(sel) - int64(reg.ranges[idx].Base)
	e := d.table.entryAt(idx, out.Offset)
	if e == nil {
		d.unknown(&out)
		return out, nil
	}

	out.Name = e.Name
	switch e.Tag {
	case TagCall:
		out.Action = ActionCall
	case TagDelegate:
		out.Action = ActionDelegate
	case TagError:
		out.Action = ActionError
		out.Code = e.Code
	}
	return out, e
}

func (d *Dispatcher) unknown(out *Outcome) {
	if d.forward != nil {
		out.Action = ActionForward
	}
}

// Dispatch serves one call. Handler results and errors are returned
// unmodified; table refusals and unknown selectors fail with *errors.Error.
func (d *Dispatcher) Dispatch(ctx context.Context, sel Selector, args Args) (Result, error) {
	out, e := d.resolve(sel)

	if ce := Logger().Check(zap.DebugLevel, "dispatch"); ce != nil {
		ce.Write(
			zap.String("component", d.options.Name),
			zap.Uint32("selector", uint32(sel)),
			zap.Int("range", out.Range),
			zap.Int64("offset", out.Offset),
			zap.Stringer("action", out.Action),
			zap.String("entry", out.Name),
		)
	}

	switch out.Action {
	case ActionCall, ActionDelegate:
		return e.handler(ctx, args)
	case ActionError:
		return 0, errors.Refused(uint32(sel), e.Name, e.Code)
	case ActionForward:
		return d.forward.Forward(ctx, sel, args)
	default:
		return 0, errors.Unsupported(uint32(sel))
	}
}
