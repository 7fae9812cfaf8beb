package dispatch

import (
	"math"

	"go.uber.org/multierr"

	"github.com/wippyai/codec-dispatch/errors"
)

// RangeState marks whether a range carries entries.
type RangeState uint8

const (
	RangeActive RangeState = iota
	RangeUnused
)

func (s RangeState) String() string {
	if s == RangeUnused {
		return "unused"
	}
	return "active"
}

// Range is one validated partition of selector space.
type Range struct {
	entries []EntryDecl
	Index   int
	Base    uint32
	State   RangeState
}

// Len returns the number of entries declared in the range.
func (r Range) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the range's entry declarations.
func (r Range) Entries() []EntryDecl {
	out := make([]EntryDecl, len(r.entries))
	copy(out, r.entries)
	return out
}

// Registry is the validated range partition of a Description.
// It is immutable and safe for concurrent use.
type Registry struct {
	ranges []Range
	layout Layout
}

// Compile validates desc and returns its range registry.
// All problems found are returned together as one error.
func Compile(desc *Description) (*Registry, error) {
	if desc == nil {
		return nil, errors.Configuration(errors.KindInvalidLayout, -1, "nil description")
	}
	layout := desc.Layout
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	var errs error
	declared := make(map[int]int, len(desc.Ranges))
	for pos, rd := range desc.Ranges {
		if _, dup := declared[rd.Index]; !dup {
			declared[rd.Index] = pos
		}
	}

	seen := make(map[int]bool, len(desc.Ranges))
	ranges := make([]Range, 0, len(desc.Ranges))
	for pos, rd := range desc.Ranges {
		switch {
		case rd.Index < 0 || rd.Index > layout.RangeCount:
			errs = multierr.Append(errs, errors.Configuration(errors.KindRangeCount, rd.Index,
				"index outside 0..%d", layout.RangeCount))
			continue
		case seen[rd.Index]:
			errs = multierr.Append(errs, errors.Configuration(errors.KindDuplicateRange, rd.Index, "declared twice"))
			continue
		case rd.Index != pos:
			if _, later := declared[pos]; later || rd.Index < pos {
				errs = multierr.Append(errs, errors.Configuration(errors.KindRangeOrder, rd.Index,
					"declared at position %d", pos))
			} else {
				errs = multierr.Append(errs, errors.Configuration(errors.KindRangeGap, pos, "missing before range %d", rd.Index))
			}
		}
		seen[rd.Index] = true

		r, err := compileRange(layout, rd)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		ranges = append(ranges, r)
	}

	for idx := 0; idx <= layout.RangeCount; idx++ {
		if _, ok := declared[idx]; !ok && idx >= len(desc.Ranges) {
			errs = multierr.Append(errs, errors.Configuration(errors.KindRangeCount, idx, "not declared"))
		}
	}

	if errs != nil {
		return nil, errs
	}
	return &Registry{ranges: ranges, layout: layout}, nil
}

func compileRange(layout Layout, rd RangeDecl) (Range, error) {
	if rd.Unused {
		if len(rd.Entries) > 0 {
			return Range{}, errors.Configuration(errors.KindInvalidEntry, rd.Index, "unused range declares %d entries", len(rd.Entries))
		}
		return Range{Index: rd.Index, State: RangeUnused}, nil
	}

	var errs error
	if got := layout.RangeIndex(Selector(rd.Base)); got != rd.Index {
		errs = multierr.Append(errs, errors.Configuration(errors.KindRangeBounds, rd.Index,
			"base %#x belongs to range %d", rd.Base, got))
	}
	if n := len(rd.Entries); n > 0 {
		last := uint64(rd.Base) + uint64(n-1)
		if last > math.MaxUint32 || last>>layout.RangeShift != uint64(rd.Base)>>layout.RangeShift {
			errs = multierr.Append(errs, errors.Configuration(errors.KindRangeBounds, rd.Index,
				"%d entries from base %#x overflow the range", n, rd.Base))
		}
	}

	entries := make([]EntryDecl, len(rd.Entries))
	for i, e := range rd.Entries {
		switch e.Tag {
		case TagCall, TagDelegate:
			if e.Name == "" {
				errs = multierr.Append(errs, errors.Configuration(errors.KindInvalidEntry, rd.Index,
					"%s entry at offset %d has no name", e.Tag, i))
			}
		case TagError:
			if e.Code == errors.CodeNoErr {
				e.Code = errors.CodeBadComponentSelector
			}
		default:
			errs = multierr.Append(errs, errors.New(errors.PhaseConfigure, errors.KindInvalidEntry).
				Range(rd.Index).
				Entry(e.Name).
				Detail("invalid tag %d at offset %d", e.Tag, i).
				Build())
		}
		entries[i] = e
	}
	if errs != nil {
		return Range{}, errs
	}

	return Range{
		entries: entries,
		Index:   rd.Index,
		Base:    rd.Base,
		State:   RangeActive,
	}, nil
}

// Layout returns the registry's selector arithmetic.
func (r *Registry) Layout() Layout {
	return r.layout
}

// Ranges returns all ranges in index order.
func (r *Registry) Ranges() []Range {
	out := make([]Range, len(r.ranges))
	copy(out, r.ranges)
	return out
}

// Locate returns the active range owning sel.
// It returns false if the coarse index is undeclared or the range is unused.
func (r *Registry) Locate(sel Selector) (Range, bool) {
	idx, ok := r.locate(sel)
	if !ok {
		return Range{}, false
	}
	return r.ranges[idx], true
}

// declaredUnused reports whether range idx is explicitly declared unused.
func (r *Registry) declaredUnused(idx int) bool {
	return idx >= 0 && idx < len(r.ranges) && r.ranges[idx].State == RangeUnused
}

func (r *Registry) locate(sel Selector) (int, bool) {
	idx := r.layout.RangeIndex(sel)
	if idx < 0 || idx > r.layout.RangeCount || idx >= len(r.ranges) {
		return idx, false
	}
	if r.ranges[idx].State == RangeUnused {
		return idx, false
	}
	return idx, true
}
