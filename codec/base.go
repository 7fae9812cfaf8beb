package codec

import (
	"context"
	"sync"

	"github.com/wippyai/codec-dispatch/dispatch"
	"github.com/wippyai/codec-dispatch/errors"
)

// ImageCodecOperations names every operation of the image codec and image
// decompressor interfaces, in selector order.
var ImageCodecOperations = []string{
	"GetCodecInfo",
	"GetCompressionTime",
	"GetMaxCompressionSize",
	"PreCompress",
	"BandCompress",
	"PreDecompress",
	"BandDecompress",
	"Busy",
	"GetCompressedImageSize",
	"GetSimilarity",
	"TrimImage",
	"RequestSettings",
	"GetSettings",
	"SetSettings",
	"Flush",
	"SetTimeCode",
	"IsImageDescriptionEquivalent",
	"NewMemory",
	"DisposeMemory",
	"HitTestData",
	"NewImageBufferMemory",
	"ExtractAndCombineFields",
	"GetMaxCompressionSizeWithSources",
	"SetTimeBase",
	"SourceChanged",
	"FlushLastFrame",
	"GetSettingsAsText",
	"GetParameterListHandle",
	"GetParameterList",
	"CreateStandardParameterDialog",
	"IsStandardParameterDialogEvent",
	"DismissStandardParameterDialog",
	"StandardParameterDialogDoAction",
	"NewImageGWorld",
	"DisposeImageGWorld",
	"HitTestDataWithFlags",
	"ValidateParameters",
	"GetBaseMPWorkFunction",
	"RequestGammaLevel",
	"GetSourceDataGammaLevel",
	"GetDecompressLatency",
	"Preflight",
	"Initialize",
	"BeginBand",
	"DrawBand",
	"EndBand",
	"QueueStarting",
	"QueueStopping",
	"DroppingFrame",
	"ScheduleFrame",
	"CancelTrigger",
}

// Base is the default image codec a decompressor wraps. It answers every
// image codec operation with a neutral result and counts what it receives.
type Base struct {
	handlers dispatch.Handlers

	mu        sync.Mutex
	calls     map[string]int
	forwarded int
}

// NewBase creates a default image codec.
func NewBase() *Base {
	b := &Base{calls: make(map[string]int)}
	b.handlers = make(dispatch.Handlers, len(ImageCodecOperations))
	for _, name := range ImageCodecOperations {
		b.handlers[name] = b.neutral(name)
	}
	b.handlers["GetMaxCompressionSize"] = b.counted("GetMaxCompressionSize", maxCompressionSize)
	b.handlers["IsImageDescriptionEquivalent"] = b.counted("IsImageDescriptionEquivalent",
		func(context.Context, dispatch.Args) (dispatch.Result, error) { return 1, nil })
	return b
}

// Handler implements dispatch.HandlerSet.
func (b *Base) Handler(name string) (dispatch.Handler, bool) {
	return b.handlers.Handler(name)
}

// Forward implements dispatch.Forwarder. The default codec implements no
// selector beyond its named operations.
func (b *Base) Forward(_ context.Context, sel dispatch.Selector, _ dispatch.Args) (dispatch.Result, error) {
	b.mu.Lock()
	b.forwarded++
	b.mu.Unlock()
	return 0, errors.New(errors.PhaseDispatch, errors.KindUnsupported).
		Selector(uint32(sel)).
		Code(errors.CodeUnimplemented).
		Detail("not implemented by base codec").
		Build()
}

// Calls returns how many times the operation name was invoked.
func (b *Base) Calls(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[name]
}

// Forwarded returns how many unknown selectors reached Forward.
func (b *Base) Forwarded() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.forwarded
}

func (b *Base) neutral(name string) dispatch.Handler {
	return b.counted(name, func(context.Context, dispatch.Args) (dispatch.Result, error) {
		return 0, nil
	})
}

func (b *Base) counted(name string, h dispatch.Handler) dispatch.Handler {
	return func(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
		b.mu.Lock()
		b.calls[name]++
		b.mu.Unlock()
		return h(ctx, args)
	}
}

// maxCompressionSize bounds an uncompressed frame of width x height at
// depth bits per pixel.
func maxCompressionSize(_ context.Context, args dispatch.Args) (dispatch.Result, error) {
	if err := need("GetMaxCompressionSize", args, 3); err != nil {
		return 0, err
	}
	width, height, depth := args[0], args[1], args[2]
	return dispatch.Result((width*height*depth + 7) / 8), nil
}
