package codec

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/codec-dispatch/component"
	"github.com/wippyai/codec-dispatch/dispatch"
	"github.com/wippyai/codec-dispatch/errors"
)

// ComponentVersion is reported by the Version selector: interface revision
// in the high half, build number in the low half.
const ComponentVersion dispatch.Result = 2<<16 | 72

// Capability flags reported by GetCodecInfo.
const (
	FlagCanAsync dispatch.Result = 1 << iota
	FlagCanQueue
	FlagCanBand
	FlagCanScheduled
)

// CodecFlags is the capability set reported by GetCodecInfo.
const CodecFlags = FlagCanAsync | FlagCanQueue | FlagCanBand

type drawState uint8

const (
	stateClosed drawState = iota
	stateOpen
	statePreflighted
	stateBand
	stateDrawn
)

func (s drawState) String() string {
	switch s {
	case stateOpen:
		return "open"
	case statePreflighted:
		return "preflighted"
	case stateBand:
		return "band"
	case stateDrawn:
		return "drawn"
	}
	return "closed"
}

// Codec serves the selectors the decompressor implements itself.
// Bands are drawn in the order Preflight, BeginBand, DrawBand, EndBand;
// calls out of order fail with errors.CodeParam.
type Codec struct {
	inst     *component.Instance
	decoder  Decoder
	handlers dispatch.Handlers

	mu          sync.Mutex
	state       drawState
	self        component.Handle
	target      component.Handle
	width       uint32
	height      uint32
	initialized bool
	queued      bool
	band        Band
	frames      uint64
}

// New creates the local handlers of one codec instance.
func New(inst *component.Instance, dec Decoder) *Codec {
	if dec == nil {
		dec = NopDecoder{}
	}
	c := &Codec{inst: inst, decoder: dec}
	c.handlers = dispatch.Handlers{
		"Open":                   c.open,
		"Close":                  c.close,
		"Version":                c.version,
		"CanDo":                  c.canDo,
		"Target":                 c.setTarget,
		"GetMPWorkFunction":      c.mpWorkFunction,
		"GetCodecInfo":           c.codecInfo,
		"GetCompressedImageSize": c.compressedImageSize,
		"Preflight":              c.preflight,
		"Initialize":             c.initialize,
		"BeginBand":              c.beginBand,
		"DrawBand":               c.drawBand,
		"EndBand":                c.endBand,
		"QueueStarting":          c.queueStarting,
		"QueueStopping":          c.queueStopping,
	}
	return c
}

// Status is a snapshot of a codec's drawing state.
type Status struct {
	State       string
	Handle      component.Handle
	Target      component.Handle
	Width       uint32
	Height      uint32
	Frames      uint64
	Initialized bool
	Queued      bool
}

// Status returns the current drawing state.
func (c *Codec) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:       c.state.String(),
		Handle:      c.self,
		Target:      c.target,
		Width:       c.width,
		Height:      c.height,
		Frames:      c.frames,
		Initialized: c.initialized,
		Queued:      c.queued,
	}
}

// Handler implements dispatch.HandlerSet.
func (c *Codec) Handler(name string) (dispatch.Handler, bool) {
	return c.handlers.Handler(name)
}

func misuse(entry, detail string, args ...any) error {
	return errors.New(errors.PhaseDispatch, errors.KindInvalidInput).
		Entry(entry).
		Code(errors.CodeParam).
		Detail(detail, args...).
		Build()
}

func need(entry string, args dispatch.Args, n int) error {
	if len(args) < n {
		return misuse(entry, "expected %d arguments, got %d", n, len(args))
	}
	return nil
}

func (c *Codec) open(_ context.Context, args dispatch.Args) (dispatch.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case len(args) > 0:
		c.self = component.Handle(args[0])
	case c.inst != nil:
		c.self = c.inst.Handle()
	}
	c.state = stateOpen
	return 0, nil
}

func (c *Codec) close(context.Context, dispatch.Args) (dispatch.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = stateClosed
	c.band = Band{}
	c.queued = false
	return 0, nil
}

func (c *Codec) version(context.Context, dispatch.Args) (dispatch.Result, error) {
	return ComponentVersion, nil
}

func (c *Codec) canDo(_ context.Context, args dispatch.Args) (dispatch.Result, error) {
	if err := need("CanDo", args, 1); err != nil {
		return 0, err
	}
	if c.inst != nil && c.inst.CanDo(int32(args[0])) {
		return 1, nil
	}
	return 0, nil
}

func (c *Codec) setTarget(_ context.Context, args dispatch.Args) (dispatch.Result, error) {
	if err := need("Target", args, 1); err != nil {
		return 0, err
	}
	c.mu.Lock()
	c.target = component.Handle(args[0])
	c.mu.Unlock()
	return 0, nil
}

// The decompressor has no MP work function of its own.
func (c *Codec) mpWorkFunction(context.Context, dispatch.Args) (dispatch.Result, error) {
	return 0, nil
}

func (c *Codec) codecInfo(_ context.Context, args dispatch.Args) (dispatch.Result, error) {
	if err := need("GetCodecInfo", args, 1); err != nil {
		return 0, err
	}
	if args[0] == 0 {
		return 0, misuse("GetCodecInfo", "nil info pointer")
	}
	return CodecFlags, nil
}

func (c *Codec) compressedImageSize(_ context.Context, args dispatch.Args) (dispatch.Result, error) {
	if err := need("GetCompressedImageSize", args, 2); err != nil {
		return 0, err
	}
	if args[0] == 0 {
		return 0, misuse("GetCompressedImageSize", "nil data pointer")
	}
	return dispatch.Result(args[1]), nil
}

func (c *Codec) preflight(_ context.Context, args dispatch.Args) (dispatch.Result, error) {
	if err := need("Preflight", args, 2); err != nil {
		return 0, err
	}
	width, height := uint32(args[0]), uint32(args[1])
	if width == 0 || height == 0 {
		return 0, misuse("Preflight", "empty frame %dx%d", width, height)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateOpen && c.state != statePreflighted {
		return 0, misuse("Preflight", "cannot preflight in state %s", c.state)
	}
	c.width, c.height = width, height
	c.state = statePreflighted
	return 0, nil
}

func (c *Codec) initialize(context.Context, dispatch.Args) (dispatch.Result, error) {
	c.mu.Lock()
	c.initialized = true
	c.mu.Unlock()
	return CodecFlags, nil
}

func (c *Codec) beginBand(_ context.Context, args dispatch.Args) (dispatch.Result, error) {
	if err := need("BeginBand", args, 2); err != nil {
		return 0, err
	}
	if args[0] == 0 || args[1] == 0 {
		return 0, misuse("BeginBand", "empty band")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != statePreflighted {
		return 0, misuse("BeginBand", "cannot begin band in state %s", c.state)
	}
	c.band = Band{
		Data:   args[0],
		Size:   args[1],
		Frame:  c.frames,
		Width:  c.width,
		Height: c.height,
	}
	c.state = stateBand
	return 0, nil
}

func (c *Codec) drawBand(ctx context.Context, _ dispatch.Args) (dispatch.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateBand {
		return 0, misuse("DrawBand", "cannot draw band in state %s", c.state)
	}
	if err := c.decoder.DecodeBand(ctx, c.band); err != nil {
		Logger().Warn("band decode failed",
			zap.Uint32("handle", uint32(c.self)),
			zap.Uint64("frame", c.band.Frame),
			zap.Error(err))
		c.state = statePreflighted
		return 0, errors.New(errors.PhaseDispatch, errors.KindComponentError).
			Entry("DrawBand").
			Code(errors.CodeCodec).
			Cause(err).
			Build()
	}
	c.state = stateDrawn
	return 0, nil
}

// endBand completes the frame and reports how many frames were drawn.
func (c *Codec) endBand(context.Context, dispatch.Args) (dispatch.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateDrawn {
		return 0, misuse("EndBand", "cannot end band in state %s", c.state)
	}
	c.frames++
	c.band = Band{}
	c.state = statePreflighted
	return dispatch.Result(c.frames), nil
}

func (c *Codec) queueStarting(context.Context, dispatch.Args) (dispatch.Result, error) {
	c.mu.Lock()
	c.queued = true
	c.mu.Unlock()
	return 0, nil
}

func (c *Codec) queueStopping(context.Context, dispatch.Args) (dispatch.Result, error) {
	c.mu.Lock()
	c.queued = false
	c.mu.Unlock()
	return 0, nil
}
