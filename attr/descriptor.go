package attr

import (
	"fmt"
	"unsafe"

	clruntime "github.com/wippyai/cl-runtime"
)

// WordSize is the byte width of size_t and of handles on this host.
const WordSize = int(unsafe.Sizeof(uintptr(0)))

// Kind is the semantic interpretation applied to a raw attribute buffer.
type Kind uint8

const (
	KindRaw        Kind = iota // bytes returned unmodified
	KindInt32                  // 4-byte integer (cl_uint, cl_int, cl_bool-free enums)
	KindInt64                  // 8-byte integer (cl_ulong, bitfields)
	KindSize                   // pointer-sized unsigned (size_t)
	KindBool                   // nonzero 4-byte integer
	KindStruct                 // consecutive fixed-width fields
	KindString                 // 8-bit code units, one trailing NUL dropped
	KindStringList             // KindString split on a delimiter
	KindHandle                 // pointer-sized handle, zero means none
	KindHandleList             // consecutive pointer-sized handles
)

var kindNames = [...]string{
	KindRaw:        "raw",
	KindInt32:      "int32",
	KindInt64:      "int64",
	KindSize:       "size",
	KindBool:       "bool",
	KindStruct:     "struct",
	KindString:     "string",
	KindStringList: "string-list",
	KindHandle:     "handle",
	KindHandleList: "handle-list",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Descriptor pairs an attribute identifier with its decode kind.
type Descriptor struct {
	Name  string
	Param ParamName
	Kind  Kind

	// Size is the fixed byte size of the attribute. Zero means the size is
	// discovered with a two-phase query.
	Size int

	// FieldSize and Fields describe KindStruct layouts. Fields == 0 means
	// as many fields as the buffer holds.
	FieldSize int
	Fields    int

	// Sep is the KindStringList delimiter.
	Sep byte

	// Ref is the kind of handle a KindHandle/KindHandleList attribute names.
	Ref clruntime.ObjectKind

	Signed bool // KindInt32/KindInt64 carry a signed value
	Hex    bool // render as a bitfield
}

// Fixed reports whether the attribute uses the fixed-output convention.
func (d Descriptor) Fixed() bool {
	return d.Size > 0
}

func (d Descriptor) String() string {
	return d.Name
}

func u32(p ParamName, name string) Descriptor {
	return Descriptor{Param: p, Name: name, Kind: KindInt32, Size: 4}
}

func i32(p ParamName, name string) Descriptor {
	return Descriptor{Param: p, Name: name, Kind: KindInt32, Size: 4, Signed: true}
}

func hex32(p ParamName, name string) Descriptor {
	return Descriptor{Param: p, Name: name, Kind: KindInt32, Size: 4, Hex: true}
}

func u64(p ParamName, name string) Descriptor {
	return Descriptor{Param: p, Name: name, Kind: KindInt64, Size: 8}
}

func hex64(p ParamName, name string) Descriptor {
	return Descriptor{Param: p, Name: name, Kind: KindInt64, Size: 8, Hex: true}
}

func size(p ParamName, name string) Descriptor {
	return Descriptor{Param: p, Name: name, Kind: KindSize, Size: WordSize}
}

func boolean(p ParamName, name string) Descriptor {
	return Descriptor{Param: p, Name: name, Kind: KindBool, Size: 4}
}

func str(p ParamName, name string) Descriptor {
	return Descriptor{Param: p, Name: name, Kind: KindString}
}

func list(p ParamName, name string, sep byte) Descriptor {
	return Descriptor{Param: p, Name: name, Kind: KindStringList, Sep: sep}
}

func handle(p ParamName, name string, ref clruntime.ObjectKind) Descriptor {
	return Descriptor{Param: p, Name: name, Kind: KindHandle, Size: WordSize, Ref: ref}
}

func handles(p ParamName, name string, ref clruntime.ObjectKind) Descriptor {
	return Descriptor{Param: p, Name: name, Kind: KindHandleList, Ref: ref}
}

// sizes is a size_t vector; n == 0 means variable length.
func sizes(p ParamName, name string, n int) Descriptor {
	return Descriptor{Param: p, Name: name, Kind: KindStruct, Size: n * WordSize, FieldSize: WordSize, Fields: n}
}

func raw(p ParamName, name string) Descriptor {
	return Descriptor{Param: p, Name: name, Kind: KindRaw}
}
