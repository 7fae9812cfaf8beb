package dispatch

import (
	"context"
	"testing"

	"github.com/wippyai/codec-dispatch/errors"
)

func nopHandler(context.Context, Args) (Result, error) { return 0, nil }

func TestBind_ResolvesHandlers(t *testing.T) {
	reg, err := Compile(&Description{
		Layout: smallLayout(1),
		Ranges: []RangeDecl{
			{Index: 0, Entries: []EntryDecl{
				{Tag: TagCall, Name: "Open"},
				{Tag: TagDelegate, Name: "Busy"},
				{Tag: TagError, Name: "Register", Code: errors.CodeComponentDontRegister},
			}},
			{Index: 1, Unused: true},
		},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	table, err := Bind(reg, Handlers{"Open": nopHandler}, Handlers{"Busy": nopHandler})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if table.Registry() != reg {
		t.Error("Registry() should return the bound registry")
	}

	e, ok := table.EntryAt(0, 2)
	if !ok || e.Tag != TagError || e.Code != errors.CodeComponentDontRegister {
		t.Errorf("EntryAt(0, 2) = %+v, %v", e, ok)
	}
	for _, tc := range []struct {
		rng int
		off int64
	}{{0, -1}, {0, 3}, {1, 0}, {2, 0}, {-1, 0}} {
		if _, ok := table.EntryAt(tc.rng, tc.off); ok {
			t.Errorf("EntryAt(%d, %d) should fail", tc.rng, tc.off)
		}
	}
}

func TestBind_MissingHandlers(t *testing.T) {
	reg, err := Compile(&Description{
		Layout: smallLayout(0),
		Ranges: []RangeDecl{{Index: 0, Entries: []EntryDecl{
			{Tag: TagCall, Name: "Open"},
			{Tag: TagDelegate, Name: "Busy"},
			{Tag: TagDelegate, Name: "Flush"},
		}}},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// Names bound in the wrong set do not count.
	_, err = Bind(reg, Handlers{"Busy": nopHandler, "Flush": nil}, Handlers{"Open": nopHandler})
	if err == nil {
		t.Fatal("expected missing handler error")
	}
	if !errors.IsConfiguration(err) || !hasKind(err, errors.KindMissingHandler) {
		t.Errorf("unexpected error: %v", err)
	}

	_, err = Bind(reg, nil, nil)
	if err == nil {
		t.Fatal("expected error with nil handler sets")
	}

	if _, err := Bind(nil, nil, nil); !errors.IsConfiguration(err) {
		t.Errorf("Bind(nil) = %v", err)
	}
}
