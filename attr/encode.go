package attr

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"strings"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/errors"
)

// Encode is the inverse of Decode. It accepts plain Go values, including the
// generic shapes a YAML document decodes into ([]any, int, string), and
// produces the buffer a native runtime would return for d.
func Encode(d Descriptor, v any) ([]byte, error) {
	switch d.Kind {
	case KindRaw:
		switch x := v.(type) {
		case []byte:
			return clone(x), nil
		case string:
			return []byte(x), nil
		case nil:
			return []byte{}, nil
		}
		return nil, errors.TypeMismatch(d.Name, v, "raw bytes")

	case KindInt32:
		n, ok := integer(v)
		if !ok || n < math.MinInt32 || n > math.MaxUint32 {
			return nil, errors.TypeMismatch(d.Name, v, "int32")
		}
		return binary.NativeEndian.AppendUint32(nil, uint32(n)), nil

	case KindInt64:
		n, ok := integer(v)
		if !ok {
			return nil, errors.TypeMismatch(d.Name, v, "int64")
		}
		return binary.NativeEndian.AppendUint64(nil, uint64(n)), nil

	case KindSize, KindHandle:
		n, ok := integer(v)
		if !ok || n < 0 {
			return nil, errors.TypeMismatch(d.Name, v, d.Kind.String())
		}
		return appendWord(nil, uint64(n)), nil

	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, errors.TypeMismatch(d.Name, v, "bool")
		}
		var n uint32
		if b {
			n = 1
		}
		return binary.NativeEndian.AppendUint32(nil, n), nil

	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, errors.TypeMismatch(d.Name, v, "string")
		}
		return encodeString(d, s)

	case KindStringList:
		switch x := v.(type) {
		case string:
			return encodeString(d, x)
		case []string:
			return encodeString(d, strings.Join(x, string(listSep(d))))
		case []any:
			parts := make([]string, 0, len(x))
			for _, e := range x {
				s, ok := e.(string)
				if !ok {
					return nil, errors.TypeMismatch(d.Name, e, "string list entry")
				}
				parts = append(parts, s)
			}
			return encodeString(d, strings.Join(parts, string(listSep(d))))
		case nil:
			return encodeString(d, "")
		}
		return nil, errors.TypeMismatch(d.Name, v, "string list")

	case KindHandleList:
		nums, ok := integers(v)
		if !ok {
			return nil, errors.TypeMismatch(d.Name, v, "handle list")
		}
		out := make([]byte, 0, len(nums)*WordSize)
		for _, n := range nums {
			out = appendWord(out, uint64(n))
		}
		return out, nil

	case KindStruct:
		nums, ok := integers(v)
		if !ok {
			return nil, errors.TypeMismatch(d.Name, v, "struct fields")
		}
		if d.Fields > 0 && len(nums) != d.Fields {
			return nil, errors.InvalidData(errors.PhaseEncode, d.Name,
				fmt.Sprintf("want %d fields, got %d", d.Fields, len(nums)))
		}
		fs := d.FieldSize
		if fs == 0 {
			fs = WordSize
		}
		out := make([]byte, 0, len(nums)*fs)
		for _, n := range nums {
			if fs == 8 {
				out = binary.NativeEndian.AppendUint64(out, uint64(n))
			} else {
				out = binary.NativeEndian.AppendUint32(out, uint32(n))
			}
		}
		return out, nil
	}

	return nil, errors.Unsupported(errors.PhaseEncode, fmt.Sprintf("encode kind %s for %s", d.Kind, d.Name))
}

func listSep(d Descriptor) byte {
	if d.Sep == 0 {
		return ' '
	}
	return d.Sep
}

func encodeString(d Descriptor, s string) ([]byte, error) {
	out := make([]byte, 0, len(s)+1)
	for _, r := range s {
		if r > 0xFF {
			return nil, errors.InvalidData(errors.PhaseEncode, d.Name,
				fmt.Sprintf("character %q has no 8-bit code unit", r))
		}
		out = append(out, byte(r))
	}
	return append(out, 0), nil
}

func appendWord(b []byte, n uint64) []byte {
	if WordSize == 8 {
		return binary.NativeEndian.AppendUint64(b, n)
	}
	return binary.NativeEndian.AppendUint32(b, uint32(n))
}

func integer(v any) (int64, bool) {
	if h, ok := v.(clruntime.Handle); ok {
		return int64(h), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint()), true
	}
	return 0, false
}

func integers(v any) ([]int64, bool) {
	if v == nil {
		return nil, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]int64, rv.Len())
	for i := range out {
		n, ok := integer(rv.Index(i).Interface())
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}
