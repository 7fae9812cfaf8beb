package dispatch

import (
	"math"

	"github.com/wippyai/codec-dispatch/errors"
)

// Selector identifies one component operation in unsigned selector space.
type Selector uint32

// Layout holds the arithmetic shared by every range of a table.
type Layout struct {
	// SelectorOffset is the number of negative standard selectors folded
	// into the top of range 0. Zero disables folding.
	SelectorOffset uint32
	// RangeCount is the highest declared range index. Range 0 is the
	// standard range and is not counted.
	RangeCount int
	RangeShift uint
	RangeMask  uint32
}

// Validate reports layout parameters that cannot partition selector space.
func (l Layout) Validate() error {
	if l.RangeShift >= 32 {
		return errors.Configuration(errors.KindInvalidLayout, -1, "range shift %d must be below 32", l.RangeShift)
	}
	if l.RangeCount < 0 {
		return errors.Configuration(errors.KindInvalidLayout, -1, "negative range count %d", l.RangeCount)
	}
	if l.RangeMask > math.MaxInt32 {
		return errors.Configuration(errors.KindInvalidLayout, -1, "range mask %#x must fit 31 bits", l.RangeMask)
	}
	if uint64(l.RangeCount) > uint64(l.RangeMask) {
		return errors.Configuration(errors.KindInvalidLayout, -1, "range mask %#x cannot address range %d", l.RangeMask, l.RangeCount)
	}
	if uint64(l.SelectorOffset) > l.span() {
		return errors.Configuration(errors.KindInvalidLayout, -1, "selector offset %d exceeds range size %d", l.SelectorOffset, l.span())
	}
	return nil
}

// RangeIndex extracts the coarse range index of sel.
func (l Layout) RangeIndex(sel Selector) int {
	return int((uint32(sel) >> l.RangeShift) & l.RangeMask)
}

// DefaultBase returns the base of range index when a declaration gives none.
func (l Layout) DefaultBase(index int) uint32 {
	if index == 0 {
		if l.SelectorOffset == 0 {
			return 0
		}
		return uint32(l.span() - uint64(l.SelectorOffset))
	}
	return uint32(uint64(index) << l.RangeShift)
}

// Encode maps a signed host selector into selector space.
// It returns false if what cannot be represented.
func (l Layout) Encode(what int32) (Selector, bool) {
	v := int64(what) + l.bias()
	if v < 0 || v > math.MaxUint32 {
		return 0, false
	}
	return Selector(v), true
}

// Decode is the inverse of Encode.
func (l Layout) Decode(sel Selector) int32 {
	return int32(int64(sel) - l.bias())
}

func (l Layout) span() uint64 {
	return uint64(1) << l.RangeShift
}

func (l Layout) bias() int64 {
	if l.SelectorOffset == 0 {
		return 0
	}
	return int64(l.span())
}
