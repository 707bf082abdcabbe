package attr

import (
	"encoding/binary"
	"errors"
	"slices"
	"testing"

	clruntime "github.com/wippyai/cl-runtime"
	clerrors "github.com/wippyai/cl-runtime/errors"
)

func mustLookup(t *testing.T, kind clruntime.ObjectKind, p ParamName) Descriptor {
	t.Helper()
	d, ok := Lookup(kind, p)
	if !ok {
		t.Fatalf("no descriptor for %s %s", kind, p)
	}
	return d
}

func wordBytes(n uint64) []byte {
	return appendWord(nil, n)
}

func TestDecode_String(t *testing.T) {
	d := mustLookup(t, clruntime.KindDevice, DeviceName)

	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"trailing nul stripped", []byte("abc\x00"), "abc"},
		{"no nul", []byte("abc"), "abc"},
		{"only one nul stripped", []byte("ab\x00\x00"), "ab\x00"},
		{"empty", []byte{}, ""},
		{"nul only", []byte{0}, ""},
		{"8-bit code units", []byte{'c', 0xE9, 0}, "cé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode(tt.raw, d)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if v.Text() != tt.want {
				t.Errorf("Text() = %q, want %q", v.Text(), tt.want)
			}
		})
	}
}

func TestDecode_StringList(t *testing.T) {
	tests := []struct {
		name  string
		kind  clruntime.ObjectKind
		param ParamName
		raw   string
		want  []string
	}{
		{
			name:  "device extensions",
			kind:  clruntime.KindDevice,
			param: DeviceExtensions,
			raw:   "cl_khr_fp64 cl_khr_fp16",
			want:  []string{"cl_khr_fp64", "cl_khr_fp16"},
		},
		{
			name:  "platform extensions with nul",
			kind:  clruntime.KindPlatform,
			param: PlatformExtensions,
			raw:   "cl_khr_icd cl_khr_gl_sharing\x00",
			want:  []string{"cl_khr_icd", "cl_khr_gl_sharing"},
		},
		{
			name:  "empty entries discarded",
			kind:  clruntime.KindDevice,
			param: DeviceExtensions,
			raw:   "  cl_khr_fp64   cl_khr_int64_base_atomics \x00",
			want:  []string{"cl_khr_fp64", "cl_khr_int64_base_atomics"},
		},
		{
			name:  "semicolon delimited",
			kind:  clruntime.KindDevice,
			param: DeviceBuiltInKernels,
			raw:   "block_motion_estimate_intel;;advanced_motion_estimate_check_intel;\x00",
			want:  []string{"block_motion_estimate_intel", "advanced_motion_estimate_check_intel"},
		},
		{
			name:  "empty list",
			kind:  clruntime.KindProgram,
			param: ProgramKernelNames,
			raw:   "\x00",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.raw), mustLookup(t, tt.kind, tt.param))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !slices.Equal(v.Strings(), tt.want) {
				t.Errorf("Strings() = %q, want %q", v.Strings(), tt.want)
			}
		})
	}
}

func TestDecode_Scalars(t *testing.T) {
	t.Run("max work group size", func(t *testing.T) {
		if WordSize != 8 {
			t.Skip("size_t is not 8 bytes on this host")
		}
		raw := binary.NativeEndian.AppendUint64(nil, 0x0000000000000100)
		v, err := Decode(raw, mustLookup(t, clruntime.KindDevice, DeviceMaxWorkGroupSize))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if v.Uint64() != 256 {
			t.Errorf("Uint64() = %d, want 256", v.Uint64())
		}
	})

	t.Run("uint32", func(t *testing.T) {
		raw := binary.NativeEndian.AppendUint32(nil, 24)
		v, err := Decode(raw, mustLookup(t, clruntime.KindDevice, DeviceMaxComputeUnits))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if v.Uint32() != 24 || v.Kind() != KindInt32 {
			t.Errorf("got %d (%s), want 24 (int32)", v.Uint32(), v.Kind())
		}
	})

	t.Run("signed int32", func(t *testing.T) {
		raw := binary.NativeEndian.AppendUint32(nil, uint32(0xFFFFFFFE)) // -2
		v, err := Decode(raw, mustLookup(t, clruntime.KindProgramBuild, ProgramBuildStatus))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if v.Int64() != -2 {
			t.Errorf("Int64() = %d, want -2", v.Int64())
		}
	})

	t.Run("uint64", func(t *testing.T) {
		raw := binary.NativeEndian.AppendUint64(nil, 8<<30)
		v, err := Decode(raw, mustLookup(t, clruntime.KindDevice, DeviceGlobalMemSize))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if v.Uint64() != 8<<30 {
			t.Errorf("Uint64() = %d", v.Uint64())
		}
	})

	t.Run("bool nonzero", func(t *testing.T) {
		raw := binary.NativeEndian.AppendUint32(nil, 7)
		v, err := Decode(raw, mustLookup(t, clruntime.KindDevice, DeviceAvailable))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if !v.Bool() {
			t.Error("Bool() = false, want true")
		}
	})

	t.Run("bool zero", func(t *testing.T) {
		v, err := Decode(make([]byte, 4), mustLookup(t, clruntime.KindDevice, DeviceAvailable))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if v.Bool() {
			t.Error("Bool() = true, want false")
		}
	})

	t.Run("extra bytes ignored", func(t *testing.T) {
		raw := binary.NativeEndian.AppendUint32(nil, 3)
		raw = append(raw, 0xAA, 0xBB)
		v, err := Decode(raw, mustLookup(t, clruntime.KindDevice, DeviceMaxWorkItemDimensions))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if v.Uint32() != 3 {
			t.Errorf("Uint32() = %d, want 3", v.Uint32())
		}
	})
}

func TestDecode_BufferTooSmall(t *testing.T) {
	tests := []struct {
		name  string
		kind  clruntime.ObjectKind
		param ParamName
		raw   []byte
	}{
		{"int32", clruntime.KindDevice, DeviceMaxComputeUnits, []byte{1, 2}},
		{"int64", clruntime.KindDevice, DeviceGlobalMemSize, []byte{1, 2, 3, 4}},
		{"bool", clruntime.KindDevice, DeviceAvailable, []byte{1}},
		{"size", clruntime.KindDevice, DeviceMaxWorkGroupSize, []byte{1, 2, 3}},
		{"handle", clruntime.KindDevice, DevicePlatform, nil},
		{"fixed struct", clruntime.KindKernelWorkGroup, KernelCompileWorkGroupSize, make([]byte, 2*WordSize)},
	}

	target := &clerrors.Error{Phase: clerrors.PhaseDecode, Kind: clerrors.KindBufferTooSmall}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw, mustLookup(t, tt.kind, tt.param))
			if err == nil {
				t.Fatal("Expected decode error")
			}
			if !errors.Is(err, target) {
				t.Errorf("error %v is not a buffer_too_small decode error", err)
			}
		})
	}
}

func TestDecode_Handles(t *testing.T) {
	t.Run("nested handle", func(t *testing.T) {
		v, err := Decode(wordBytes(0xBEEF0), mustLookup(t, clruntime.KindDevice, DevicePlatform))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if v.Handle() != clruntime.Handle(0xBEEF0) {
			t.Errorf("Handle() = %s", v.Handle())
		}
	})

	t.Run("zero means none", func(t *testing.T) {
		v, err := Decode(wordBytes(0), mustLookup(t, clruntime.KindDevice, DeviceParentDevice))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if v.Handle().IsValid() {
			t.Errorf("Handle() = %s, want invalid", v.Handle())
		}
	})

	t.Run("handle list", func(t *testing.T) {
		raw := append(wordBytes(0x10), wordBytes(0x20)...)
		v, err := Decode(raw, mustLookup(t, clruntime.KindContext, ContextDevices))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		want := []clruntime.Handle{0x10, 0x20}
		if !slices.Equal(v.Handles(), want) {
			t.Errorf("Handles() = %v, want %v", v.Handles(), want)
		}
	})

	t.Run("partial handle rejected", func(t *testing.T) {
		raw := append(wordBytes(0x10), 1)
		_, err := Decode(raw, mustLookup(t, clruntime.KindContext, ContextDevices))
		if !errors.Is(err, &clerrors.Error{Phase: clerrors.PhaseDecode, Kind: clerrors.KindInvalidData}) {
			t.Errorf("error = %v, want invalid_data", err)
		}
	})
}

func TestDecode_Struct(t *testing.T) {
	t.Run("fixed three component vector", func(t *testing.T) {
		raw := append(append(wordBytes(8), wordBytes(4)...), wordBytes(2)...)
		v, err := Decode(raw, mustLookup(t, clruntime.KindKernelWorkGroup, KernelCompileWorkGroupSize))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if !slices.Equal(v.Fields(), []uint64{8, 4, 2}) {
			t.Errorf("Fields() = %v", v.Fields())
		}
	})

	t.Run("variable vector", func(t *testing.T) {
		raw := append(append(wordBytes(1024), wordBytes(1024)...), append(wordBytes(64), wordBytes(16)...)...)
		v, err := Decode(raw, mustLookup(t, clruntime.KindDevice, DeviceMaxWorkItemSizes))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if !slices.Equal(v.Fields(), []uint64{1024, 1024, 64, 16}) {
			t.Errorf("Fields() = %v", v.Fields())
		}
	})
}

func TestDecode_Raw(t *testing.T) {
	in := []byte{1, 2, 3}
	v, err := Decode(in, mustLookup(t, clruntime.KindContext, ContextProperties))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	in[0] = 9
	if !slices.Equal(v.Bytes(), []byte{1, 2, 3}) {
		t.Errorf("Bytes() = %v, decoded value must not alias the input", v.Bytes())
	}
}

func TestDecode_WrongAccessorReturnsZero(t *testing.T) {
	v, err := Decode([]byte("gpu\x00"), mustLookup(t, clruntime.KindDevice, DeviceName))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v.Uint64() != 0 || v.Bool() || v.Handle() != 0 || len(v.Strings()) != 0 {
		t.Error("accessors of other kinds should return zero values")
	}
}
