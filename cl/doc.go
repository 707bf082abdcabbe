// Package cl exposes native resources as immutable facades.
//
// A facade is built by querying every attribute registered for its kind
// once, at construction. Accessors read that snapshot and never call the
// driver again; Refresh builds a new snapshot. An attribute the driver
// cannot answer leaves its field at the zero value, and the failure stays
// visible through Attributes().Err.
//
// Facades of reference-counted kinds hold one unit of ownership. Dispose
// gives it back and is safe to call more than once; a facade that is
// dropped without Dispose is released by the garbage collector. Retain
// returns an independent facade with a unit of its own.
//
//	rt := cl.New(sim.NewDefault())
//	platforms, _ := rt.Platforms()
//	devices, _ := platforms[0].Devices(clruntime.DeviceTypeAll)
//	ctx, err := rt.CreateContext(devices...)
//	if err != nil {
//		return err
//	}
//	defer ctx.Dispose()
package cl
