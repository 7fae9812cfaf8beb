package tablefile

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/codec-dispatch/dispatch"
	"github.com/wippyai/codec-dispatch/errors"
)

func smallDescription() *dispatch.Description {
	return &dispatch.Description{
		Layout: dispatch.Layout{RangeCount: 2, RangeShift: 4, RangeMask: 15},
		Ranges: []dispatch.RangeDecl{
			{Index: 0, Base: 0, Entries: []dispatch.EntryDecl{
				{Tag: dispatch.TagCall, Name: "Open"},
				{Tag: dispatch.TagDelegate, Name: "Busy"},
				{Tag: dispatch.TagError, Name: "Register", Code: errors.CodeComponentDontRegister},
			}},
			{Index: 1, Unused: true},
			{Index: 2, Base: 36, Entries: []dispatch.EntryDecl{
				{Tag: dispatch.TagError, Name: "Legacy", Code: -9},
			}},
		},
	}
}

func TestLoad(t *testing.T) {
	for _, path := range []string{"testdata/small.hcl", "testdata/small.json"} {
		t.Run(path, func(t *testing.T) {
			desc, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(smallDescription(), desc); diff != "" {
				t.Errorf("description mismatch (-want +got):\n%s", diff)
			}
			if _, err := dispatch.Compile(desc); err != nil {
				t.Errorf("Compile: %v", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/absent.hcl")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "[parse]") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestParse_DefaultBase(t *testing.T) {
	src := `
selector_offset = 8
range_count = 1
range_shift = 8
range_mask = 255
range "0" {
  entry "call" "Open" {}
}
range "1" {
  entry "call" "GetCodecInfo" {}
}
`
	desc, err := Parse([]byte(src), "codec.hcl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if desc.Ranges[0].Base != 0xf8 || desc.Ranges[1].Base != 0x100 {
		t.Errorf("bases = %#x, %#x", desc.Ranges[0].Base, desc.Ranges[1].Base)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "syntax",
			src:  `range_count = `,
			want: "[parse]",
		},
		{
			name: "missing layout",
			src:  `range "0" {}`,
			want: "range_count",
		},
		{
			name: "bad label",
			src:  "range_count = 0\nrange_shift = 4\nrange_mask = 1\nrange \"first\" {}\n",
			want: "not an index",
		},
		{
			name: "unknown kind",
			src:  "range_count = 0\nrange_shift = 4\nrange_mask = 1\nrange \"0\" {\n entry \"inherit\" \"Open\" {}\n}\n",
			want: "unknown entry kind",
		},
		{
			name: "code on call",
			src:  "range_count = 0\nrange_shift = 4\nrange_mask = 1\nrange \"0\" {\n entry \"call\" \"Open\" { code = 1 }\n}\n",
			want: "only error entries",
		},
		{
			name: "unknown code name",
			src:  "range_count = 0\nrange_shift = 4\nrange_mask = 1\nrange \"0\" {\n entry \"error\" \"Open\" { code = codes.nope }\n}\n",
			want: "[parse]",
		},
		{
			name: "code too large",
			src:  "range_count = 0\nrange_shift = 4\nrange_mask = 1\nrange \"0\" {\n entry \"error\" \"Open\" { code = 4294967296 }\n}\n",
			want: "32 bits",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestFormat_ParsesBack(t *testing.T) {
	want := smallDescription()
	out := Format(want)

	for _, s := range []string{`range "1"`, "unused = true", "codes.component_dont_register", "base = 36", "code = -9"} {
		if !strings.Contains(string(out), s) {
			t.Errorf("formatted output missing %q:\n%s", s, out)
		}
	}

	got, err := Parse(out, "formatted.hcl")
	if err != nil {
		t.Fatalf("Parse formatted: %v\n%s", err, out)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary(t *testing.T) {
	lines := Summary(smallDescription())
	want := []string{
		"range 0 @0x0: 3 entries (1 call, 1 delegate, 1 error)",
		"range 1: unused",
		"range 2 @0x24: 1 entries (1 error)",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}
}
