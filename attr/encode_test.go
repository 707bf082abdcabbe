package attr

import (
	"errors"
	"slices"
	"testing"

	clruntime "github.com/wippyai/cl-runtime"
	clerrors "github.com/wippyai/cl-runtime/errors"
)

func TestEncode_YAMLShapes(t *testing.T) {
	// Values as gopkg.in/yaml.v3 produces them when decoding into any.
	tests := []struct {
		name  string
		kind  clruntime.ObjectKind
		param ParamName
		in    any
		check func(t *testing.T, v Value)
	}{
		{
			name: "int as uint32", kind: clruntime.KindDevice, param: DeviceMaxComputeUnits, in: 16,
			check: func(t *testing.T, v Value) {
				if v.Uint32() != 16 {
					t.Errorf("Uint32() = %d", v.Uint32())
				}
			},
		},
		{
			name: "negative int32", kind: clruntime.KindEvent, param: EventCommandExecutionStatus, in: -5,
			check: func(t *testing.T, v Value) {
				if v.Int64() != -5 {
					t.Errorf("Int64() = %d", v.Int64())
				}
			},
		},
		{
			name: "list of any", kind: clruntime.KindPlatform, param: PlatformExtensions, in: []any{"cl_khr_icd", "cl_khr_fp64"},
			check: func(t *testing.T, v Value) {
				if !slices.Equal(v.Strings(), []string{"cl_khr_icd", "cl_khr_fp64"}) {
					t.Errorf("Strings() = %q", v.Strings())
				}
			},
		},
		{
			name: "joined list", kind: clruntime.KindDevice, param: DeviceBuiltInKernels, in: "a;b",
			check: func(t *testing.T, v Value) {
				if !slices.Equal(v.Strings(), []string{"a", "b"}) {
					t.Errorf("Strings() = %q", v.Strings())
				}
			},
		},
		{
			name: "size vector", kind: clruntime.KindDevice, param: DeviceMaxWorkItemSizes, in: []any{1024, 1024, 64},
			check: func(t *testing.T, v Value) {
				if !slices.Equal(v.Fields(), []uint64{1024, 1024, 64}) {
					t.Errorf("Fields() = %v", v.Fields())
				}
			},
		},
		{
			name: "bool", kind: clruntime.KindDevice, param: DeviceImageSupport, in: true,
			check: func(t *testing.T, v Value) {
				if !v.Bool() {
					t.Error("Bool() = false")
				}
			},
		},
		{
			name: "handle list", kind: clruntime.KindContext, param: ContextDevices, in: []clruntime.Handle{0x10, 0x20},
			check: func(t *testing.T, v Value) {
				if !slices.Equal(v.Handles(), []clruntime.Handle{0x10, 0x20}) {
					t.Errorf("Handles() = %v", v.Handles())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustLookup(t, tt.kind, tt.param)
			raw, err := Encode(d, tt.in)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if d.Fixed() && len(raw) != d.Size {
				t.Fatalf("len = %d, want fixed size %d", len(raw), d.Size)
			}
			v, err := Decode(raw, d)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			tt.check(t, v)
		})
	}
}

func TestEncode_StringAppendsNUL(t *testing.T) {
	raw, err := Encode(mustLookup(t, clruntime.KindPlatform, PlatformName), "sim")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(raw) != "sim\x00" {
		t.Errorf("raw = %q, want %q", raw, "sim\x00")
	}
}

func TestEncode_Errors(t *testing.T) {
	typeMismatch := &clerrors.Error{Phase: clerrors.PhaseEncode, Kind: clerrors.KindTypeMismatch}

	if _, err := Encode(mustLookup(t, clruntime.KindDevice, DeviceName), 42); !errors.Is(err, typeMismatch) {
		t.Errorf("int as string: error = %v", err)
	}
	if _, err := Encode(mustLookup(t, clruntime.KindDevice, DeviceAvailable), "yes"); !errors.Is(err, typeMismatch) {
		t.Errorf("string as bool: error = %v", err)
	}
	if _, err := Encode(mustLookup(t, clruntime.KindDevice, DeviceMaxComputeUnits), int64(1)<<40); !errors.Is(err, typeMismatch) {
		t.Errorf("overflowing int32: error = %v", err)
	}
	if _, err := Encode(mustLookup(t, clruntime.KindDevice, DeviceName), "世"); err == nil {
		t.Error("character outside 8 bits should fail")
	}
	wg := mustLookup(t, clruntime.KindKernelWorkGroup, KernelCompileWorkGroupSize)
	if _, err := Encode(wg, []int{1, 2}); err == nil {
		t.Error("wrong field count should fail")
	}
}
