package bridge

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/codec-dispatch/component"
	"github.com/wippyai/codec-dispatch/dispatch"
	"github.com/wippyai/codec-dispatch/errors"
)

// MaxArgs is the number of argument words call passes through.
const MaxArgs = 4

// Options configures the host module.
type Options struct {
	// Logger receives failed guest calls at debug level. Defaults to a no-op logger.
	Logger     *zap.Logger
	ModuleName string
}

// DefaultOptions returns the default host module configuration.
func DefaultOptions() Options {
	return Options{
		ModuleName: "component",
	}
}

type host struct {
	manager *component.Manager
	log     *zap.Logger
}

// Instantiate builds the host module into rt. The module stays registered
// until rt or the returned module is closed.
func Instantiate(ctx context.Context, rt wazero.Runtime, m *component.Manager, opts Options) (api.Module, error) {
	if m == nil {
		return nil, errors.InvalidInput(errors.PhaseBridge, "nil manager")
	}
	if opts.ModuleName == "" {
		opts.ModuleName = DefaultOptions().ModuleName
	}
	h := &host{manager: m, log: opts.Logger}
	if h.log == nil {
		h.log = zap.NewNop()
	}

	i32, i64 := api.ValueTypeI32, api.ValueTypeI64
	builder := rt.NewHostModuleBuilder(opts.ModuleName)
	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.call),
			[]api.ValueType{i32, i32, i32, i64, i64, i64, i64},
			[]api.ValueType{i64, i32}).
		Export("call")
	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.canDo), []api.ValueType{i32, i32}, []api.ValueType{i32}).
		Export("can_do")
	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.close), []api.ValueType{i32}, []api.ValueType{i32}).
		Export("close")

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.New(errors.PhaseBridge, errors.KindInstantiation).
			Entry(opts.ModuleName).
			Cause(err).
			Build()
	}
	return mod, nil
}

func (h *host) call(ctx context.Context, _ api.Module, stack []uint64) {
	handle := component.Handle(api.DecodeU32(stack[0]))
	what := api.DecodeI32(stack[1])
	argc := api.DecodeI32(stack[2])

	if argc < 0 || argc > MaxArgs {
		stack[0] = 0
		stack[1] = h.status(handle, what, errors.InvalidInput(errors.PhaseBridge, "argument count out of range"))
		return
	}
	args := make(dispatch.Args, argc)
	copy(args, stack[3:3+argc])

	res, err := h.manager.Call(ctx, handle, what, args)
	stack[0] = api.EncodeI64(int64(res))
	stack[1] = h.status(handle, what, err)
}

func (h *host) canDo(_ context.Context, _ api.Module, stack []uint64) {
	inst, ok := h.manager.Instance(component.Handle(api.DecodeU32(stack[0])))
	if ok && inst.CanDo(api.DecodeI32(stack[1])) {
		stack[0] = api.EncodeI32(1)
		return
	}
	stack[0] = api.EncodeI32(0)
}

func (h *host) close(ctx context.Context, _ api.Module, stack []uint64) {
	handle := component.Handle(api.DecodeU32(stack[0]))
	stack[0] = h.status(handle, component.SelectClose, h.manager.Close(ctx, handle))
}

// status encodes the result code reported for err.
func (h *host) status(handle component.Handle, what int32, err error) uint64 {
	if err == nil {
		return api.EncodeI32(int32(errors.CodeNoErr))
	}
	code, ok := errors.CodeOf(err)
	if !ok {
		code = errors.CodeCodec
	}
	h.log.Debug("guest call failed",
		zap.Uint32("handle", uint32(handle)),
		zap.Int32("what", what),
		zap.Stringer("code", code),
		zap.Error(err))
	return api.EncodeI32(int32(code))
}
