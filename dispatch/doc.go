// Package dispatch routes host selectors to component handlers.
//
// A component declares its selector surface as a Description: an ordered
// list of ranges, each holding entries in the order selectors increase from
// the range's base. Every entry is a local call, a delegate into the wrapped
// default implementation, or a fixed error code.
//
// # Selector Arithmetic
//
// The coarse range of a selector is found by shift and mask, the entry by
// its distance from the range base:
//
//	range  = (selector >> RangeShift) & RangeMask
//	offset = selector - Range.Base
//
// Standard component selectors are negative on the host side. Layout.Encode
// folds them into the top of range 0, so with SelectorOffset 8 and
// RangeShift 8 the eight standard selectors -8..-1 land on 248..255.
//
// # Construction
//
// Tables are built in three steps, each producing an immutable value:
//
//	Compile  Description -> Registry    validates ranges and layout
//	Bind     Registry    -> Table       resolves handler names
//	New      Table       -> Dispatcher  applies Options
//
// Build composes all three. A Registry can be bound many times, once per
// component instance. Failures are configuration errors (see
// errors.IsConfiguration) and are reported together.
//
// # Dispatch
//
// Dispatcher.Dispatch takes no locks; a Dispatcher may be shared by any
// number of goroutines. Handler results and errors are returned verbatim.
// Selectors with no bound entry yield errors.Unsupported unless
// Options.Unknown forwards them to the base implementation. Selectors in
// a range declared unused are always unsupported.
package dispatch
