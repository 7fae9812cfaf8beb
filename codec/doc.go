// Package codec implements the FFusion image decompressor component.
//
// The dispatch table is embedded from ffusion.hcl. Codec serves the
// selectors the decompressor handles itself; everything else is delegated
// to the wrapped base image codec, represented by Base.
//
//	m := component.NewManager()
//	def, err := codec.Definition(codec.Config{Decoder: dec})
//	...
//	err = m.Register(def)
//	h, err := m.Open(ctx, codec.Name)
//	res, err := m.Call(ctx, h, codec.SelectPreflight, dispatch.Args{w, h})
package codec
