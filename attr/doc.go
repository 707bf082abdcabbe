// Package attr describes native attributes and decodes their raw buffers.
//
// Every resource kind has a static Registry of Descriptors. A descriptor
// names the attribute, its identifier, and its decode Kind:
//
//	Kind          Buffer layout                      Go payload
//	────────────────────────────────────────────────────────────────
//	int32         4 bytes, native order              Uint32/Int64
//	int64         8 bytes, native order              Uint64/Int64
//	size          pointer-sized (size_t)             Uint64
//	bool          4 bytes, nonzero is true           Bool
//	struct        fixed-width fields                 Fields
//	string        8-bit code units, trailing NUL     Text
//	string-list   string split on ' ' or ';'         Strings
//	handle        pointer-sized, zero means none     Handle
//	handle-list   consecutive handles                Handles
//	raw           unmodified                         Bytes
//
// Decode never reads past the supplied buffer. Fixed kinds given fewer bytes
// than they need fail with a PhaseDecode/KindBufferTooSmall error, which is
// distinct from the query failures reported by the native runtime.
//
// A Set holds the decoded snapshot of one object, built once and never
// mutated afterwards.
package attr
