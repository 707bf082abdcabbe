// Package capture records what a driver reports for every registered
// platform and device attribute, and persists the recording.
//
// A capture keeps raw buffers, not decoded values, so it can be replayed
// bit-exact through sim.FromCapture on a machine without the original
// hardware. CBOR is the compact format (integer keys, canonical ordering);
// YAML is the readable one, with buffers as hex and a formatted value
// alongside each.
package capture
