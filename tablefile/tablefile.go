package tablefile

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/wippyai/codec-dispatch/dispatch"
	"github.com/wippyai/codec-dispatch/errors"
)

// hclTable is the top-level structure of a table file for decoding.
type hclTable struct {
	Ranges         []*hclRange `hcl:"range,block"`
	RangeCount     int         `hcl:"range_count"`
	RangeShift     uint        `hcl:"range_shift"`
	RangeMask      uint32      `hcl:"range_mask"`
	SelectorOffset uint32      `hcl:"selector_offset,optional"`
}

type hclRange struct {
	Base    *uint32     `hcl:"base,optional"`
	Index   string      `hcl:"index,label"`
	Entries []*hclEntry `hcl:"entry,block"`
	Unused  bool        `hcl:"unused,optional"`
}

type hclEntry struct {
	Code *int64 `hcl:"code,optional"`
	Tag  string `hcl:"tag,label"`
	Name string `hcl:"name,label"`
}

// Load reads and parses the table file at path.
func Load(path string) (*dispatch.Description, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Parse(path, err)
	}
	return Parse(src, path)
}

// Parse parses a table file held in memory. filename is used for
// diagnostics and to select JSON syntax.
func Parse(src []byte, filename string) (*dispatch.Description, error) {
	parser := hclparse.NewParser()

	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.HasSuffix(filename, ".json") {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, errors.Parse(filename, diags)
	}

	var raw hclTable
	diags = gohcl.DecodeBody(file.Body, EvalContext(), &raw)
	if diags.HasErrors() {
		return nil, errors.Parse(filename, diags)
	}

	return raw.description(filename)
}

// EvalContext exposes named result codes to table expressions.
func EvalContext() *hcl.EvalContext {
	codes := make(map[string]cty.Value)
	for name, c := range errors.Codes() {
		codes[name] = cty.NumberIntVal(int64(c))
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"codes": cty.ObjectVal(codes),
		},
	}
}

func (t *hclTable) description(filename string) (*dispatch.Description, error) {
	desc := &dispatch.Description{
		Layout: dispatch.Layout{
			SelectorOffset: t.SelectorOffset,
			RangeCount:     t.RangeCount,
			RangeShift:     t.RangeShift,
			RangeMask:      t.RangeMask,
		},
	}

	for _, r := range t.Ranges {
		index, err := strconv.Atoi(r.Index)
		if err != nil {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Detail("%s: range label %q is not an index", filename, r.Index).
				Build()
		}

		rd := dispatch.RangeDecl{Index: index, Unused: r.Unused}
		if r.Base != nil {
			rd.Base = *r.Base
		} else if !r.Unused {
			rd.Base = desc.Layout.DefaultBase(index)
		}

		for _, e := range r.Entries {
			decl, err := e.decl(filename, index)
			if err != nil {
				return nil, err
			}
			rd.Entries = append(rd.Entries, decl)
		}
		desc.Ranges = append(desc.Ranges, rd)
	}

	return desc, nil
}

func (e *hclEntry) decl(filename string, rangeIndex int) (dispatch.EntryDecl, error) {
	tag, ok := dispatch.ParseTag(e.Tag)
	if !ok {
		return dispatch.EntryDecl{}, errors.New(errors.PhaseParse, errors.KindInvalidEntry).
			Range(rangeIndex).
			Entry(e.Name).
			Detail("%s: unknown entry kind %q", filename, e.Tag).
			Build()
	}

	decl := dispatch.EntryDecl{Tag: tag, Name: e.Name}
	if e.Code != nil {
		if tag != dispatch.TagError {
			return dispatch.EntryDecl{}, errors.New(errors.PhaseParse, errors.KindInvalidEntry).
				Range(rangeIndex).
				Entry(e.Name).
				Detail("%s: only error entries take a code", filename).
				Build()
		}
		if *e.Code < math.MinInt32 || *e.Code > math.MaxInt32 {
			return dispatch.EntryDecl{}, errors.New(errors.PhaseParse, errors.KindInvalidEntry).
				Range(rangeIndex).
				Entry(e.Name).
				Detail("%s: code %d does not fit 32 bits", filename, *e.Code).
				Build()
		}
		decl.Code = errors.Code(*e.Code)
	}
	return decl, nil
}

// Format renders desc as an HCL table file. Known result codes are written
// by name. Bases equal to the layout default are omitted.
func Format(desc *dispatch.Description) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	l := desc.Layout
	if l.SelectorOffset != 0 {
		body.SetAttributeValue("selector_offset", cty.NumberUIntVal(uint64(l.SelectorOffset)))
	}
	body.SetAttributeValue("range_count", cty.NumberIntVal(int64(l.RangeCount)))
	body.SetAttributeValue("range_shift", cty.NumberUIntVal(uint64(l.RangeShift)))
	body.SetAttributeValue("range_mask", cty.NumberUIntVal(uint64(l.RangeMask)))

	names := make(map[errors.Code]string)
	for name, c := range errors.Codes() {
		names[c] = name
	}

	for _, rd := range desc.Ranges {
		body.AppendNewline()
		block := body.AppendNewBlock("range", []string{strconv.Itoa(rd.Index)})
		rb := block.Body()
		if rd.Unused {
			rb.SetAttributeValue("unused", cty.True)
			continue
		}
		if rd.Base != l.DefaultBase(rd.Index) {
			rb.SetAttributeValue("base", cty.NumberUIntVal(uint64(rd.Base)))
		}
		for _, e := range rd.Entries {
			eb := rb.AppendNewBlock("entry", []string{e.Tag.String(), e.Name}).Body()
			if e.Tag != dispatch.TagError || e.Code == errors.CodeNoErr {
				continue
			}
			if name, ok := names[e.Code]; ok {
				eb.SetAttributeTraversal("code", hcl.Traversal{
					hcl.TraverseRoot{Name: "codes"},
					hcl.TraverseAttr{Name: name},
				})
			} else {
				eb.SetAttributeValue("code", cty.NumberIntVal(int64(e.Code)))
			}
		}
	}

	return f.Bytes()
}

// Summary returns one line per range, for diagnostics.
func Summary(desc *dispatch.Description) []string {
	lines := make([]string, 0, len(desc.Ranges))
	for _, rd := range desc.Ranges {
		if rd.Unused {
			lines = append(lines, fmt.Sprintf("range %d: unused", rd.Index))
			continue
		}
		counts := make(map[dispatch.Tag]int)
		for _, e := range rd.Entries {
			counts[e.Tag]++
		}
		tags := make([]string, 0, len(counts))
		for tag, n := range counts {
			tags = append(tags, fmt.Sprintf("%d %s", n, tag))
		}
		sort.Strings(tags)
		lines = append(lines, fmt.Sprintf("range %d @%#x: %d entries (%s)", rd.Index, rd.Base, len(rd.Entries), strings.Join(tags, ", ")))
	}
	return lines
}
