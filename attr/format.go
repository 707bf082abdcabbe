package attr

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const maxRawPreview = 32

// Format renders v for display.
func Format(d Descriptor, v Value) string {
	switch v.Kind() {
	case KindInt32, KindInt64:
		if d.Hex {
			return fmt.Sprintf("0x%x", v.Uint64())
		}
		if d.Signed {
			return strconv.FormatInt(v.Int64(), 10)
		}
		return strconv.FormatUint(v.Uint64(), 10)
	case KindSize:
		return strconv.FormatUint(v.Uint64(), 10)
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindString:
		return v.Text()
	case KindStringList:
		return strings.Join(v.Strings(), " ")
	case KindHandle:
		if !v.Handle().IsValid() {
			return "none"
		}
		return v.Handle().String()
	case KindHandleList:
		hs := v.Handles()
		parts := make([]string, len(hs))
		for i, h := range hs {
			parts[i] = h.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case KindStruct:
		fs := v.Fields()
		parts := make([]string, len(fs))
		for i, f := range fs {
			parts[i] = strconv.FormatUint(f, 10)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case KindRaw:
		b := v.Bytes()
		if len(b) == 0 {
			return "(empty)"
		}
		if len(b) > maxRawPreview {
			return hex.EncodeToString(b[:maxRawPreview]) + fmt.Sprintf("... (%d bytes)", len(b))
		}
		return hex.EncodeToString(b)
	}
	return ""
}
