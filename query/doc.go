// Package query implements the two-phase attribute query protocol on top of
// a clruntime.Driver.
//
// A variable-length attribute is fetched in two calls:
//
//	size := 0
//	drv.GetInfo(t, p, nil, &size)       // phase 1: size only
//	buf := make([]byte, size)
//	drv.GetInfo(t, p, buf, &size)       // phase 2: fill
//
// A reported size of zero yields an empty result and skips phase 2. Any
// non-success status from either phase is returned as a PhaseQuery error
// whose cause is the clruntime.Status, so callers can recover the code with
// clruntime.StatusOf.
//
// Fixed-size attributes take a single call into a buffer of the known size.
// Enumeration of platforms and devices follows the same count-then-fill
// convention.
package query
