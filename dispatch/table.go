package dispatch

import (
	"go.uber.org/multierr"

	"github.com/wippyai/codec-dispatch/errors"
)

// Entry is a bound table slot.
type Entry struct {
	handler Handler
	Name    string
	Tag     Tag
	Code    errors.Code
}

// Table holds the bound entries of every active range.
// It is immutable and safe for concurrent use.
type Table struct {
	registry *Registry
	base     HandlerSet
	bindings [][]Entry
}

// Bind resolves each call entry of reg against local and each delegate
// entry against base. Missing handlers are reported together.
func Bind(reg *Registry, local, base HandlerSet) (*Table, error) {
	if reg == nil {
		return nil, errors.Configuration(errors.KindInvalidLayout, -1, "nil registry")
	}

	var errs error
	bindings := make([][]Entry, len(reg.ranges))
	for i, r := range reg.ranges {
		if r.State == RangeUnused {
			continue
		}
		entries := make([]Entry, len(r.entries))
		for off, decl := range r.entries {
			e := Entry{Name: decl.Name, Tag: decl.Tag, Code: decl.Code}
			switch decl.Tag {
			case TagCall:
				e.handler = lookupHandler(local, decl.Name)
			case TagDelegate:
				e.handler = lookupHandler(base, decl.Name)
			}
			if e.Tag != TagError && e.handler == nil {
				errs = multierr.Append(errs, errors.New(errors.PhaseConfigure, errors.KindMissingHandler).
					Range(r.Index).
					Selector(r.Base+uint32(off)).
					Entry(decl.Name).
					Detail("no %s handler at offset %d", decl.Tag, off).
					Build())
			}
			entries[off] = e
		}
		bindings[i] = entries
	}
	if errs != nil {
		return nil, errs
	}

	return &Table{registry: reg, base: base, bindings: bindings}, nil
}

func lookupHandler(set HandlerSet, name string) Handler {
	if set == nil {
		return nil
	}
	fn, ok := set.Handler(name)
	if !ok {
		return nil
	}
	return fn
}

// Registry returns the range registry the table was bound from.
func (t *Table) Registry() *Registry {
	return t.registry
}

// Layout returns the table's selector arithmetic.
func (t *Table) Layout() Layout {
	return t.registry.layout
}

// EntryAt returns the entry at offset within range rangeIndex.
// It returns false for unused or undeclared ranges and for offsets outside
// the declared entries.
func (t *Table) EntryAt(rangeIndex int, offset int64) (Entry, bool) {
	e := t.entryAt(rangeIndex, offset)
	if e == nil {
		return Entry{}, false
	}
	return *e, true
}

func (t *Table) entryAt(rangeIndex int, offset int64) *Entry {
	if rangeIndex < 0 || rangeIndex >= len(t.bindings) {
		return nil
	}
	entries := t.bindings[rangeIndex]
	if offset < 0 || offset >= int64(len(entries)) {
		return nil
	}
	return &entries[offset]
}
