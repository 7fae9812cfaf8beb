package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/codec-dispatch/codec"
	"github.com/wippyai/codec-dispatch/dispatch"
)

const smallTable = "../../tablefile/testdata/small.hcl"

func testConfig() config {
	return config{unknown: "unsupported", logLevel: "error"}
}

func TestEnvConfig(t *testing.T) {
	t.Setenv("CODEC_DISPATCH_TABLE", "custom.hcl")
	t.Setenv("CODEC_DISPATCH_UNKNOWN", "delegate")

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse: %v", err)
	}
	want := envConfig{Table: "custom.hcl", Unknown: "delegate", LogLevel: "warn"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in      string
		want    int32
		wantErr bool
	}{
		{"-3", -3, false},
		{"0x0203", 0x0203, false},
		{" 8 ", 8, false},
		{"-0x8", -8, false},
		{"DrawBand", 0, true},
		{"0x1FFFFFFFF", 0, true},
	}
	for _, tt := range tests {
		got, err := parseSelector(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSelector(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSelector(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		in      string
		want    dispatch.Args
		wantErr bool
	}{
		{"", nil, false},
		{"640, 480", dispatch.Args{640, 480}, false},
		{"0x10,-1", dispatch.Args{0x10, 0xFFFFFFFFFFFFFFFF}, false},
		{"0xFFFFFFFFFFFFFFFF", dispatch.Args{0xFFFFFFFFFFFFFFFF}, false},
		{"1,two", nil, true},
	}
	for _, tt := range tests {
		got, err := parseArgs(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseArgs(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("parseArgs(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestLookupSelector(t *testing.T) {
	ctx := context.Background()
	s, err := openSession(ctx, testConfig())
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	defer s.close(ctx)

	tests := map[string]int32{
		"DrawBand":     codec.SelectDrawBand,
		"Open":         -1,
		"GetCodecInfo": codec.SelectGetCodecInfo,
		"0x0207":       codec.SelectDroppingFrame,
	}
	for in, want := range tests {
		got, err := lookupSelector(s.instance(), in)
		if err != nil || got != want {
			t.Errorf("lookupSelector(%q) = %#x, %v; want %#x", in, got, err, want)
		}
	}
	if _, err := lookupSelector(s.instance(), "NoSuchEntry"); err == nil {
		t.Error("expected error for unknown entry")
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config)
		want    []string
		wantErr bool
	}{
		{
			name:   "list builtin",
			mutate: func(c *config) { c.list = true },
			want:   []string{"ffusion", "range 1 @0x100: 41 entries", "range 2: unused", "call DrawBand"},
		},
		{
			name:   "resolve",
			mutate: func(c *config) { c.resolve = "-5,0x0100,Busy" },
			want:   []string{"error component_dont_register (Register)", "range 2: unsupported", "delegate Busy"},
		},
		{
			name:   "call",
			mutate: func(c *config) { c.call = "Version" },
			want:   []string{"Version = 131144 (0x20048)"},
		},
		{
			name:    "call failure is reported",
			mutate:  func(c *config) { c.call = "DrawBand" },
			want:    []string{"param_err -50"},
			wantErr: true,
		},
		{
			name:   "forward unknown",
			mutate: func(c *config) { c.unknown = "delegate"; c.resolve = "0x0029,0x0100" },
			want:   []string{"0x129 -> range 1: forward", "0x200 -> range 2: unsupported"},
		},
		{
			name: "table file",
			mutate: func(c *config) {
				c.table = smallTable
				c.call = "Open"
				c.resolve = "Legacy"
			},
			want: []string{"range 0 @0: 3 entries", "error -9 (Legacy)", "Open = 0"},
		},
		{
			name:   "format",
			mutate: func(c *config) { c.table = smallTable; c.format = true },
			want:   []string{"range_count = 2", "codes.component_dont_register"},
		},
		{
			name:    "bad policy",
			mutate:  func(c *config) { c.unknown = "sometimes" },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *config) { c.logLevel = "loud" },
			wantErr: true,
		},
		{
			name:    "missing table",
			mutate:  func(c *config) { c.table = "testdata/missing.hcl" },
			wantErr: true,
		},
		{
			name:    "unknown entry",
			mutate:  func(c *config) { c.call = "NoSuchEntry" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			var out bytes.Buffer
			err := run(cfg, &out, false)
			if (err != nil) != tt.wantErr {
				t.Fatalf("run error = %v, wantErr %v\n%s", err, tt.wantErr, out.String())
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		sel, n, height int
		start, end     int
	}{
		{0, 5, 16, 0, 5},
		{0, 67, 16, 0, 16},
		{30, 67, 16, 22, 38},
		{66, 67, 16, 51, 67},
	}
	for _, tt := range tests {
		start, end := window(tt.sel, tt.n, tt.height)
		if start != tt.start || end != tt.end {
			t.Errorf("window(%d, %d, %d) = %d, %d; want %d, %d", tt.sel, tt.n, tt.height, start, end, tt.start, tt.end)
		}
	}
}
