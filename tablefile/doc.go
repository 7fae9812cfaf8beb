// Package tablefile reads and writes dispatch table descriptions as HCL.
//
// A table file declares the layout and one range block per range index:
//
//	selector_offset = 8
//	range_count     = 3
//	range_shift     = 8
//	range_mask      = 255
//
//	range "0" {
//	  entry "call"  "Open" {}
//	  entry "error" "Register" { code = codes.component_dont_register }
//	}
//
//	range "2" { unused = true }
//
// Entries are listed in the order selectors increase from the range base.
// A range may set base explicitly; otherwise the layout's default is used.
// Result codes are available by name under codes. Files whose name ends in
// .json are read with HCL's JSON syntax.
package tablefile
