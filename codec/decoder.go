package codec

import "context"

// Band is one band of a frame handed to the decoder.
type Band struct {
	// Data and Size locate the compressed band in host memory.
	Data uint64
	Size uint64
	// Frame is the zero-based index of the frame being drawn.
	Frame  uint64
	Width  uint32
	Height uint32
}

// Decoder decodes compressed bands.
type Decoder interface {
	DecodeBand(ctx context.Context, band Band) error
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(ctx context.Context, band Band) error

// DecodeBand calls f.
func (f DecoderFunc) DecodeBand(ctx context.Context, band Band) error { return f(ctx, band) }

// NopDecoder accepts every band without decoding it.
type NopDecoder struct{}

// DecodeBand returns nil.
func (NopDecoder) DecodeBand(context.Context, Band) error { return nil }
