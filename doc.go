// Package codecdispatch routes numeric component selectors to handlers.
//
// A component declares its selectors as a table of contiguous ranges. Each
// position is served locally, delegated to a wrapped base implementation,
// or refused with a fixed result code. The table is compiled once, bound to
// handlers per instance and dispatched without locks.
//
// # Architecture Overview
//
//	codecdispatch/
//	├── dispatch/        Selector layout, table compilation, binding and dispatch
//	├── tablefile/       HCL and JSON table files
//	├── component/       Component manager: registration, instances, standard selectors
//	├── codec/           FFusion image decompressor component
//	├── bridge/          wazero host module exposing dispatch to guests
//	├── errors/          Structured error types and host result codes
//	└── cmd/dispatch/    Table inspection and call CLI
//
// # Quick Start
//
// Declare a table and dispatch through it:
//
//	desc, err := dispatch.Declare(layout).
//	    RangeBegin(0).
//	    Call("Open").
//	    Delegate("Busy").
//	    Error("Register", errors.CodeComponentDontRegister).
//	    RangeEnd(0).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	d, err := dispatch.Build(desc, local, base, dispatch.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := d.Dispatch(ctx, sel, dispatch.Args{w, h})
//
// Or register a component and call it by host selector:
//
//	m := component.NewManager()
//	def, _ := codec.Definition(codec.Config{})
//	_ = m.Register(def)
//	h, _ := m.Open(ctx, codec.Name)
//	res, err := m.Call(ctx, h, codec.SelectPreflight, dispatch.Args{640, 480})
package codecdispatch
