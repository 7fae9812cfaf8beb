// Package component models the host side of component dispatch.
//
// A Manager holds registered component Definitions and the instances opened
// from them. Each definition's table is compiled once at registration; each
// opened instance binds it to its own handlers, so instances never share
// state. Instances are addressed by Handle, and calls carry the host's
// signed selector:
//
//	m := component.NewManager()
//	if err := m.Register(def); err != nil {
//		return err
//	}
//	h, err := m.Open(ctx, def.Name)
//	if err != nil {
//		return err
//	}
//	defer m.Close(ctx, h)
//
//	version, err := m.Call(ctx, h, component.SelectVersion, nil)
//
// Open and Close dispatch the standard Open and Close selectors, passing the
// instance handle as the first argument.
package component
