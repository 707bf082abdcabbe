// Package native binds the system OpenCL library through cgo.
//
// The binding is compiled only with the opencl build tag and needs the
// OpenCL headers and an ICD loader. Without the tag Open returns a
// not_built error, so binaries that default to the simulator still build
// everywhere.
package native
