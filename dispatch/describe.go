package dispatch

import (
	"go.uber.org/multierr"

	"github.com/wippyai/codec-dispatch/errors"
)

// Tag says how a table entry is served.
type Tag uint8

const (
	TagCall     Tag = iota + 1 // local handler
	TagDelegate                // wrapped default implementation
	TagError                   // fixed error code, no handler
)

var tagNames = [...]string{
	TagCall:     "call",
	TagDelegate: "delegate",
	TagError:    "error",
}

func (t Tag) String() string {
	if t >= TagCall && t <= TagError {
		return tagNames[t]
	}
	return "invalid"
}

// ParseTag parses the name of a tag as written in table files.
func ParseTag(s string) (Tag, bool) {
	for t := TagCall; t <= TagError; t++ {
		if tagNames[t] == s {
			return t, true
		}
	}
	return 0, false
}

// EntryDecl declares one selector position of a range.
type EntryDecl struct {
	Name string
	Tag  Tag
	// Code is returned by TagError entries.
	Code errors.Code
}

// RangeDecl declares one range. Unused ranges carry no entries.
type RangeDecl struct {
	Entries []EntryDecl
	Index   int
	Base    uint32
	Unused  bool
}

// Description is the static declaration a table is built from.
type Description struct {
	Ranges []RangeDecl
	Layout Layout
}

// Builder assembles a Description in the order selectors increase.
//
//	desc, err := dispatch.Declare(layout).
//		RangeBegin(0).
//		Call("Open").
//		Error("Register", errors.CodeComponentDontRegister).
//		RangeEnd(0).
//		RangeUnused(1).
//		Build()
type Builder struct {
	errs error
	desc Description
	open int
}

// Declare starts a description for the given layout.
func Declare(layout Layout) *Builder {
	return &Builder{
		desc: Description{Layout: layout},
		open: -1,
	}
}

// RangeBegin opens range index at its default base.
func (b *Builder) RangeBegin(index int) *Builder {
	return b.RangeBeginAt(index, b.desc.Layout.DefaultBase(index))
}

// RangeBeginAt opens range index with an explicit base.
func (b *Builder) RangeBeginAt(index int, base uint32) *Builder {
	if b.open >= 0 {
		b.fail(errors.Configuration(errors.KindInvalidEntry, index, "range begins inside open range %d", b.desc.Ranges[b.open].Index))
		return b
	}
	b.desc.Ranges = append(b.desc.Ranges, RangeDecl{Index: index, Base: base})
	b.open = len(b.desc.Ranges) - 1
	return b
}

// Call appends an entry served by a local handler.
func (b *Builder) Call(name string) *Builder {
	return b.entry(EntryDecl{Tag: TagCall, Name: name})
}

// Delegate appends an entry forwarded to the default implementation.
func (b *Builder) Delegate(name string) *Builder {
	return b.entry(EntryDecl{Tag: TagDelegate, Name: name})
}

// Error appends an entry that always fails with code.
func (b *Builder) Error(name string, code errors.Code) *Builder {
	return b.entry(EntryDecl{Tag: TagError, Name: name, Code: code})
}

// RangeEnd closes range index.
func (b *Builder) RangeEnd(index int) *Builder {
	if b.open < 0 {
		b.fail(errors.Configuration(errors.KindInvalidEntry, index, "range end without begin"))
		return b
	}
	if got := b.desc.Ranges[b.open].Index; got != index {
		b.fail(errors.Configuration(errors.KindInvalidEntry, index, "range end does not match open range %d", got))
	}
	b.open = -1
	return b
}

// RangeUnused declares range index as deliberately empty.
func (b *Builder) RangeUnused(index int) *Builder {
	if b.open >= 0 {
		b.fail(errors.Configuration(errors.KindInvalidEntry, index, "unused range inside open range %d", b.desc.Ranges[b.open].Index))
		return b
	}
	b.desc.Ranges = append(b.desc.Ranges, RangeDecl{Index: index, Unused: true})
	return b
}

// Build returns the description, or every declaration error combined.
// The description is checked structurally only; Compile validates it.
func (b *Builder) Build() (*Description, error) {
	errs := b.errs
	if b.open >= 0 {
		idx := b.desc.Ranges[b.open].Index
		errs = multierr.Append(errs, errors.Configuration(errors.KindInvalidEntry, idx, "range is never ended"))
	}
	if errs != nil {
		return nil, errs
	}
	desc := b.desc
	return &desc, nil
}

func (b *Builder) entry(e EntryDecl) *Builder {
	if b.open < 0 {
		b.fail(errors.New(errors.PhaseConfigure, errors.KindInvalidEntry).
			Entry(e.Name).
			Detail("%s entry outside any range", e.Tag).
			Build())
		return b
	}
	r := &b.desc.Ranges[b.open]
	r.Entries = append(r.Entries, e)
	return b
}

func (b *Builder) fail(err error) {
	b.errs = multierr.Append(b.errs, err)
}
