package dispatch

import (
	"testing"

	"github.com/wippyai/codec-dispatch/errors"
)

var codecLayout = Layout{SelectorOffset: 8, RangeCount: 3, RangeShift: 8, RangeMask: 0xFF}

func TestLayout_Validate(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		wantErr bool
	}{
		{"codec layout", codecLayout, false},
		{"no folding", Layout{RangeCount: 1, RangeShift: 4, RangeMask: 0xF}, false},
		{"shift too large", Layout{RangeCount: 1, RangeShift: 32, RangeMask: 1}, true},
		{"mask too small", Layout{RangeCount: 4, RangeShift: 8, RangeMask: 3}, true},
		{"negative count", Layout{RangeCount: -1, RangeShift: 8, RangeMask: 3}, true},
		{"mask wider than 31 bits", Layout{RangeCount: 1, RangeShift: 0, RangeMask: 0xFFFFFFFF}, true},
		{"31 bit mask", Layout{RangeCount: 1, RangeShift: 0, RangeMask: 0x7FFFFFFF}, false},
		{"offset exceeds range", Layout{SelectorOffset: 17, RangeCount: 1, RangeShift: 4, RangeMask: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.IsConfiguration(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestLayout_RangeIndex(t *testing.T) {
	tests := []struct {
		sel  Selector
		want int
	}{
		{0x00f8, 0},
		{0x00ff, 0},
		{0x0100, 1},
		{0x0128, 1},
		{0x0300, 3},
		{0x1_0100, 1}, // masked
		{0xffff_ff00, 0xff},
	}
	for _, tt := range tests {
		if got := codecLayout.RangeIndex(tt.sel); got != tt.want {
			t.Errorf("RangeIndex(%#x) = %d, want %d", tt.sel, got, tt.want)
		}
	}
}

func TestLayout_DefaultBase(t *testing.T) {
	if got := codecLayout.DefaultBase(0); got != 0xf8 {
		t.Errorf("DefaultBase(0) = %#x, want 0xf8", got)
	}
	if got := codecLayout.DefaultBase(3); got != 0x300 {
		t.Errorf("DefaultBase(3) = %#x, want 0x300", got)
	}
	plain := Layout{RangeCount: 2, RangeShift: 4, RangeMask: 0xF}
	if got := plain.DefaultBase(0); got != 0 {
		t.Errorf("DefaultBase(0) without folding = %d, want 0", got)
	}
	if got := plain.DefaultBase(2); got != 0x20 {
		t.Errorf("DefaultBase(2) = %#x, want 0x20", got)
	}
}

func TestLayout_EncodeDecode(t *testing.T) {
	tests := []struct {
		what int32
		want Selector
		ok   bool
	}{
		{-1, 0xff, true},
		{-8, 0xf8, true},
		{-256, 0, true},
		{-257, 0, false},
		{0x0000, 0x100, true},
		{0x0200, 0x300, true},
	}
	for _, tt := range tests {
		got, ok := codecLayout.Encode(tt.what)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Encode(%d) = %#x, %v; want %#x, %v", tt.what, got, ok, tt.want, tt.ok)
			continue
		}
		if ok {
			if back := codecLayout.Decode(got); back != tt.what {
				t.Errorf("Decode(Encode(%d)) = %d", tt.what, back)
			}
		}
	}

	plain := Layout{RangeCount: 1, RangeShift: 8, RangeMask: 1}
	if _, ok := plain.Encode(-1); ok {
		t.Error("negative selector should not encode without folding")
	}
	if got, _ := plain.Encode(5); got != 5 {
		t.Errorf("Encode(5) without folding = %d", got)
	}
}
