package attr

import (
	"slices"

	clruntime "github.com/wippyai/cl-runtime"
)

// Value is a decoded attribute. The accessor matching Kind returns the
// payload; every other accessor returns its zero value.
type Value struct {
	text    string
	list    []string
	fields  []uint64
	handles []clruntime.Handle
	raw     []byte
	num     uint64
	width   int
	kind    Kind
}

// Kind returns the decode kind that produced v.
func (v Value) Kind() Kind {
	return v.kind
}

// Uint64 returns scalar kinds as unsigned, and KindHandle as its address.
func (v Value) Uint64() uint64 {
	return v.num
}

// Uint32 truncates Uint64.
func (v Value) Uint32() uint32 {
	return uint32(v.num)
}

// Int64 sign-extends integer kinds according to their width.
func (v Value) Int64() int64 {
	switch v.width {
	case 4:
		return int64(int32(uint32(v.num)))
	default:
		return int64(v.num)
	}
}

// Bool returns the KindBool payload.
func (v Value) Bool() bool {
	return v.kind == KindBool && v.num != 0
}

// Text returns the KindString payload, or the joined KindStringList source.
func (v Value) Text() string {
	return v.text
}

// Strings returns the KindStringList entries.
func (v Value) Strings() []string {
	return slices.Clone(v.list)
}

// Fields returns the KindStruct fields.
func (v Value) Fields() []uint64 {
	return slices.Clone(v.fields)
}

// Handle returns the KindHandle payload.
func (v Value) Handle() clruntime.Handle {
	if v.kind != KindHandle {
		return 0
	}
	return clruntime.Handle(v.num)
}

// Handles returns the KindHandleList payload.
func (v Value) Handles() []clruntime.Handle {
	return slices.Clone(v.handles)
}

// Bytes returns the KindRaw payload.
func (v Value) Bytes() []byte {
	return slices.Clone(v.raw)
}

// Equal reports whether two values carry the same kind and payload.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind &&
		v.num == o.num &&
		v.text == o.text &&
		slices.Equal(v.list, o.list) &&
		slices.Equal(v.fields, o.fields) &&
		slices.Equal(v.handles, o.handles) &&
		slices.Equal(v.raw, o.raw)
}
