package codec

import (
	_ "embed"

	"github.com/wippyai/codec-dispatch/component"
	"github.com/wippyai/codec-dispatch/dispatch"
	"github.com/wippyai/codec-dispatch/tablefile"
)

// Name is the component name the codec registers under.
const Name = "ffusion"

//go:embed ffusion.hcl
var tableSource []byte

// TableSource returns the embedded table file.
func TableSource() []byte {
	return append([]byte(nil), tableSource...)
}

// Description parses the embedded dispatch table.
func Description() (*dispatch.Description, error) {
	return tablefile.Parse(tableSource, "ffusion.hcl")
}

// Config configures the codec definition.
type Config struct {
	// Decoder decodes bands. Defaults to NopDecoder.
	Decoder Decoder
	// Base creates the wrapped image codec of each instance.
	// Defaults to NewBase.
	Base func() dispatch.HandlerSet
	// Created, when set, receives the local handlers of every instance
	// as it is opened.
	Created func(*Codec)
	Options dispatch.Options
}

// Definition returns the component definition of the codec.
func Definition(cfg Config) (component.Definition, error) {
	desc, err := Description()
	if err != nil {
		return component.Definition{}, err
	}

	opts := cfg.Options
	if opts.Name == "" {
		opts.Name = Name
	}
	dec := cfg.Decoder
	if dec == nil {
		dec = NopDecoder{}
	}
	newBase := cfg.Base
	if newBase == nil {
		newBase = func() dispatch.HandlerSet { return NewBase() }
	}

	return component.Definition{
		Name:        Name,
		Description: desc,
		Options:     opts,
		New: func(inst *component.Instance) (component.Implementation, error) {
			c := New(inst, dec)
			if cfg.Created != nil {
				cfg.Created(c)
			}
			return component.Implementation{Local: c, Base: newBase()}, nil
		},
	}, nil
}
