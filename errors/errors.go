package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConfigure Phase = "configure" // table construction
	PhaseParse     Phase = "parse"     // table file parsing
	PhaseDispatch  Phase = "dispatch"  // selector resolution and invocation
	PhaseHost      Phase = "host"      // component registration and instances
	PhaseBridge    Phase = "bridge"    // wasm host module
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidLayout  Kind = "invalid_layout"
	KindDuplicateRange Kind = "duplicate_range"
	KindRangeOrder     Kind = "range_order"
	KindRangeGap       Kind = "range_gap"
	KindRangeCount     Kind = "range_count"
	KindRangeBounds    Kind = "range_bounds"
	KindMissingHandler Kind = "missing_handler"
	KindInvalidEntry   Kind = "invalid_entry"
	KindUnsupported    Kind = "unsupported"
	KindComponentError Kind = "component_error"
	KindInvalidInput   Kind = "invalid_input"
	KindNotFound       Kind = "not_found"
	KindRegistration   Kind = "registration"
	KindInstantiation  Kind = "instantiation"
	KindClosed         Kind = "closed"
)

// Code is a host result code. Zero means success.
type Code int32

// Result codes used by the component manager and declared tables.
const (
	CodeNoErr                      Code = 0
	CodeUnimplemented              Code = -4
	CodeParam                      Code = -50
	CodeInvalidComponentID         Code = -3000
	CodeValidInstancesExist        Code = -3001
	CodeComponentNotCaptured       Code = -3002
	CodeComponentDontRegister      Code = -3003
	CodeComponentAlreadyRegistered Code = -3004
	CodeCodec                      Code = -8960
	CodeBadComponentInstance       Code = -2147450879 // 0x80008001
	CodeBadComponentSelector       Code = -2147450878 // 0x80008002
)

var codeNames = map[Code]string{
	CodeNoErr:                      "no_err",
	CodeUnimplemented:              "unimplemented",
	CodeParam:                      "param_err",
	CodeInvalidComponentID:         "invalid_component_id",
	CodeValidInstancesExist:        "valid_instances_exist",
	CodeComponentNotCaptured:       "component_not_captured",
	CodeComponentDontRegister:      "component_dont_register",
	CodeComponentAlreadyRegistered: "component_already_registered",
	CodeCodec:                      "codec_err",
	CodeBadComponentInstance:       "bad_component_instance",
	CodeBadComponentSelector:       "bad_component_selector",
}

// String returns the symbolic name of the code, or its decimal value.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return strconv.FormatInt(int64(c), 10)
}

// Codes returns the symbolic name of every known code.
func Codes() map[string]Code {
	out := make(map[string]Code, len(codeNames))
	for c, name := range codeNames {
		out[name] = c
	}
	return out
}

// Error is the structured error type used throughout the library
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Entry    string
	Detail   string
	Range    int
	Selector uint32
	Code     Code
	// HasSelector is set when Selector carries a value.
	HasSelector bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.HasSelector {
		b.WriteString(" selector 0x")
		b.WriteString(strconv.FormatUint(uint64(e.Selector), 16))
	}
	if e.Range >= 0 && e.Phase == PhaseConfigure {
		b.WriteString(" range ")
		b.WriteString(strconv.Itoa(e.Range))
	}
	if e.Entry != "" {
		b.WriteString(" entry ")
		b.WriteString(e.Entry)
	}
	if e.Code != CodeNoErr {
		b.WriteString(" code ")
		b.WriteString(e.Code.String())
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
			Range: -1,
		},
	}
}

// Selector sets the offending selector
func (b *Builder) Selector(sel uint32) *Builder {
	b.err.Selector = sel
	b.err.HasSelector = true
	return b
}

// Range sets the range index
func (b *Builder) Range(index int) *Builder {
	b.err.Range = index
	return b
}

// Entry sets the table entry name
func (b *Builder) Entry(name string) *Builder {
	b.err.Entry = name
	return b
}

// Code sets the host result code
func (b *Builder) Code(c Code) *Builder {
	b.err.Code = c
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Configuration creates a table construction error
func Configuration(kind Kind, rangeIndex int, detail string, args ...any) *Error {
	return New(PhaseConfigure, kind).Range(rangeIndex).Detail(detail, args...).Build()
}

// Unsupported creates the error returned for a selector with no bound entry
func Unsupported(sel uint32) *Error {
	return &Error{
		Phase:       PhaseDispatch,
		Kind:        KindUnsupported,
		Range:       -1,
		Selector:    sel,
		HasSelector: true,
		Code:        CodeBadComponentSelector,
	}
}

// Refused creates the error returned by an explicit error entry
func Refused(sel uint32, entry string, code Code) *Error {
	return &Error{
		Phase:       PhaseDispatch,
		Kind:        KindComponentError,
		Range:       -1,
		Selector:    sel,
		HasSelector: true,
		Entry:       entry,
		Code:        code,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Range:  -1,
		Detail: detail,
		Code:   CodeParam,
	}
}

// NotFound creates a not found error
func NotFound(phase Phase, what string, code Code) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Range:  -1,
		Detail: what + " not found",
		Code:   code,
	}
}

// Parse wraps a table file parsing failure
func Parse(filename string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Range:  -1,
		Detail: filename,
		Cause:  cause,
	}
}

// IsConfiguration reports whether err is, or wraps, a table construction error
func IsConfiguration(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Phase == PhaseConfigure
}

// IsUnsupported reports whether err is, or wraps, an unsupported selector error
func IsUnsupported(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == KindUnsupported
}

// CodeOf returns the host result code carried by err.
// It returns false when err carries no code.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if !stderrors.As(err, &e) || e.Code == CodeNoErr {
		return CodeNoErr, false
	}
	return e.Code, true
}
