// Package bridge exposes component dispatch to WebAssembly guests.
//
// Instantiate registers a wazero host module whose functions forward guest
// calls to instances held by a component.Manager:
//
//	call(handle i32, what i32, argc i32, a0 i64, a1 i64, a2 i64, a3 i64) -> (result i64, status i32)
//	can_do(handle i32, what i32) -> i32
//	close(handle i32) -> status i32
//
// status is 0 on success or the host result code of the failure. Handler
// failures that carry no result code report errors.CodeCodec.
package bridge
