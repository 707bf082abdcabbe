// Package clruntime provides a Go boundary layer for OpenCL-style native
// compute runtimes.
//
// The library does not schedule or execute anything itself. It talks to a
// foreign runtime through a flat Driver interface, queries variable-length
// attributes from opaque handles, decodes the raw buffers into typed values,
// and manages the reference-counted lifecycle of the handles it owns.
//
// # Architecture Overview
//
//	clruntime/           Root package with Handle, Status and the Driver interface
//	├── attr/            Attribute registries, decode kinds, typed decoding
//	├── query/           Two-phase size-then-fetch query protocol
//	├── lifecycle/       Retain/Release, idempotent Dispose, ownership ledger
//	├── cl/              Per-resource facades holding immutable snapshots
//	├── sim/             In-memory simulated driver
//	├── capture/         Record and replay raw attribute buffers
//	├── native/          cgo driver for a real OpenCL ICD (build tag opencl)
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
//	drv, err := sim.NewDefault()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rt := cl.New(drv)
//
//	platforms, err := rt.Platforms()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range platforms {
//	    fmt.Println(p.Info().Name, p.Info().Extensions)
//	}
//
// # Ownership
//
// Creation calls (CreateContext, CreateBuffer, ...) transfer one unit of
// ownership to the caller; the returned facade must be disposed. Enumeration
// calls (Platforms, Devices) transfer none.
//
//	ctx, err := rt.CreateContext(devices)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Dispose()
//
// # Thread Safety
//
// Handles and facades may be shared across goroutines for read-only queries.
// Mutating calls on the same handle (Kernel.SetArg) must be serialized by the
// caller; this layer performs no locking on their behalf.
package clruntime
