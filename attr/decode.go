package attr

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/errors"
)

// Decode converts a raw attribute buffer into a typed value according to
// d.Kind. It never reads past len(raw); fixed kinds given fewer bytes than
// they need fail with a KindBufferTooSmall decode error.
func Decode(raw []byte, d Descriptor) (Value, error) {
	switch d.Kind {
	case KindRaw:
		return Value{kind: KindRaw, raw: clone(raw)}, nil

	case KindInt32:
		if len(raw) < 4 {
			return Value{}, errors.BufferTooSmall(d.Name, 4, len(raw))
		}
		return Value{kind: KindInt32, num: uint64(binary.NativeEndian.Uint32(raw)), width: 4}, nil

	case KindInt64:
		if len(raw) < 8 {
			return Value{}, errors.BufferTooSmall(d.Name, 8, len(raw))
		}
		return Value{kind: KindInt64, num: binary.NativeEndian.Uint64(raw), width: 8}, nil

	case KindSize:
		n, err := word(raw, d)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindSize, num: n, width: WordSize}, nil

	case KindBool:
		if len(raw) < 4 {
			return Value{}, errors.BufferTooSmall(d.Name, 4, len(raw))
		}
		b := uint64(0)
		if binary.NativeEndian.Uint32(raw) != 0 {
			b = 1
		}
		return Value{kind: KindBool, num: b, width: 4}, nil

	case KindStruct:
		fields, err := decodeFields(raw, d)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindStruct, fields: fields}, nil

	case KindString:
		return Value{kind: KindString, text: decodeString(raw)}, nil

	case KindStringList:
		text := decodeString(raw)
		return Value{kind: KindStringList, text: text, list: splitList(text, d.Sep)}, nil

	case KindHandle:
		n, err := word(raw, d)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindHandle, num: n, width: WordSize}, nil

	case KindHandleList:
		if len(raw)%WordSize != 0 {
			return Value{}, errors.InvalidData(errors.PhaseDecode, d.Name,
				fmt.Sprintf("%d bytes is not a multiple of handle size %d", len(raw), WordSize))
		}
		hs := make([]clruntime.Handle, 0, len(raw)/WordSize)
		for off := 0; off < len(raw); off += WordSize {
			n, _ := word(raw[off:], d)
			hs = append(hs, clruntime.Handle(n))
		}
		return Value{kind: KindHandleList, handles: hs}, nil
	}

	return Value{}, errors.Unsupported(errors.PhaseDecode, fmt.Sprintf("decode kind %s for %s", d.Kind, d.Name))
}

func word(raw []byte, d Descriptor) (uint64, error) {
	if len(raw) < WordSize {
		return 0, errors.BufferTooSmall(d.Name, WordSize, len(raw))
	}
	if WordSize == 8 {
		return binary.NativeEndian.Uint64(raw), nil
	}
	return uint64(binary.NativeEndian.Uint32(raw)), nil
}

func decodeFields(raw []byte, d Descriptor) ([]uint64, error) {
	fs := d.FieldSize
	if fs == 0 {
		fs = WordSize
	}
	if fs != 4 && fs != 8 {
		return nil, errors.Unsupported(errors.PhaseDecode, fmt.Sprintf("field size %d for %s", fs, d.Name))
	}

	n := d.Fields
	if n > 0 {
		if len(raw) < n*fs {
			return nil, errors.BufferTooSmall(d.Name, n*fs, len(raw))
		}
	} else {
		if len(raw)%fs != 0 {
			return nil, errors.InvalidData(errors.PhaseDecode, d.Name,
				fmt.Sprintf("%d bytes is not a multiple of field size %d", len(raw), fs))
		}
		n = len(raw) / fs
	}

	fields := make([]uint64, n)
	for i := range fields {
		off := i * fs
		if fs == 8 {
			fields[i] = binary.NativeEndian.Uint64(raw[off:])
		} else {
			fields[i] = uint64(binary.NativeEndian.Uint32(raw[off:]))
		}
	}
	return fields, nil
}

// decodeString maps every byte to the character with the same code point;
// a single trailing NUL is dropped.
func decodeString(raw []byte) string {
	if n := len(raw); n > 0 && raw[n-1] == 0 {
		raw = raw[:n-1]
	}
	ascii := true
	for _, c := range raw {
		if c >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return string(raw)
	}
	var b strings.Builder
	b.Grow(len(raw) * 2)
	for _, c := range raw {
		b.WriteRune(rune(c))
	}
	return b.String()
}

func splitList(text string, sep byte) []string {
	if sep == 0 {
		sep = ' '
	}
	parts := strings.Split(text, string(sep))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
