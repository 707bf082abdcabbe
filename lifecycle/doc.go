// Package lifecycle manages ownership of native handles.
//
// Every creation call hands the caller one unit of ownership. A Ref holds
// such a unit and gives it back exactly once through Dispose. Retain adds
// further units (Ref.Clone), each released independently.
//
// Refs that are dropped without Dispose are caught by a runtime cleanup
// (runtime.AddCleanup), which releases the handle and logs a warning. The
// cleanup is a safety net, not a substitute for Dispose: it runs at an
// unspecified time on a runtime goroutine.
//
// A Ledger can be attached to count outstanding units per handle, which makes
// leaks and double releases observable in tests and tooling.
package lifecycle
