package attr

import (
	"errors"
	"testing"

	clruntime "github.com/wippyai/cl-runtime"
)

func TestRegistry_EveryKindHasTable(t *testing.T) {
	for _, kind := range clruntime.ObjectKinds() {
		r := For(kind)
		if r == nil {
			t.Errorf("no registry for %s", kind)
			continue
		}
		if r.Kind() != kind {
			t.Errorf("registry kind = %s, want %s", r.Kind(), kind)
		}
		if r.Len() == 0 {
			t.Errorf("registry for %s is empty", kind)
		}
	}
}

func TestRegistry_FixedSizesMatchKinds(t *testing.T) {
	for _, kind := range clruntime.ObjectKinds() {
		for _, d := range For(kind).Descriptors() {
			switch d.Kind {
			case KindInt32, KindBool:
				if d.Size != 4 {
					t.Errorf("%s: size %d, want 4", d.Name, d.Size)
				}
			case KindInt64:
				if d.Size != 8 {
					t.Errorf("%s: size %d, want 8", d.Name, d.Size)
				}
			case KindSize, KindHandle:
				if d.Size != WordSize {
					t.Errorf("%s: size %d, want %d", d.Name, d.Size, WordSize)
				}
			case KindString, KindStringList, KindHandleList, KindRaw:
				if d.Fixed() {
					t.Errorf("%s: variable-length kind %s marked fixed", d.Name, d.Kind)
				}
			}
		}
	}
}

func TestRegistry_Lookups(t *testing.T) {
	r := For(clruntime.KindDevice)

	d, ok := r.ByName("CL_DEVICE_MAX_WORK_GROUP_SIZE")
	if !ok {
		t.Fatal("ByName failed")
	}
	if d.Param != DeviceMaxWorkGroupSize {
		t.Errorf("Param = %s", d.Param)
	}

	if _, ok := r.ByParam(PlatformName); ok {
		t.Error("platform param should not resolve in the device registry")
	}

	d, kind, ok := Find("CL_KERNEL_COMPILE_WORK_GROUP_SIZE")
	if !ok || kind != clruntime.KindKernelWorkGroup || d.Fields != 3 {
		t.Errorf("Find = %v %s %v", d, kind, ok)
	}

	descs := r.Descriptors()
	descs[0].Name = "mutated"
	if first := r.Descriptors()[0]; first.Name == "mutated" {
		t.Error("Descriptors must return a copy")
	}
}

func TestSet_DefaultsAndValidity(t *testing.T) {
	nameRaw, _ := Encode(mustLookup(t, clruntime.KindDevice, DeviceName), "gpu0")
	name, _ := Decode(nameRaw, mustLookup(t, clruntime.KindDevice, DeviceName))
	cause := errors.New("CL_INVALID_VALUE")

	s := NewBuilder(clruntime.KindDevice).
		Put(DeviceName, name).
		Fail(DeviceBuiltInKernels, cause).
		Build()

	if s.String(DeviceName) != "gpu0" {
		t.Errorf("String() = %q", s.String(DeviceName))
	}
	if !s.Has(DeviceName) || s.Has(DeviceBuiltInKernels) {
		t.Error("Has() mismatch")
	}
	if got := s.Strings(DeviceBuiltInKernels); len(got) != 0 {
		t.Errorf("failed attribute should default to empty, got %q", got)
	}
	if s.Uint32(DeviceMaxComputeUnits) != 0 {
		t.Error("absent attribute should default to 0")
	}
	if !errors.Is(s.Err(DeviceBuiltInKernels), cause) {
		t.Errorf("Err() = %v", s.Err(DeviceBuiltInKernels))
	}
	if failed := s.Failed(); len(failed) != 1 || failed[0] != DeviceBuiltInKernels {
		t.Errorf("Failed() = %v", failed)
	}
	if params := s.Params(); len(params) != 2 || params[0] != DeviceName {
		t.Errorf("Params() = %v", params)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestFormat(t *testing.T) {
	d := mustLookup(t, clruntime.KindDevice, DeviceType)
	raw, _ := Encode(d, uint64(clruntime.DeviceTypeGPU))
	v, _ := Decode(raw, d)
	if got := Format(d, v); got != "0x4" {
		t.Errorf("Format(type) = %q, want 0x4", got)
	}

	d = mustLookup(t, clruntime.KindDevice, DeviceParentDevice)
	v, _ = Decode(wordBytes(0), d)
	if got := Format(d, v); got != "none" {
		t.Errorf("Format(parent) = %q, want none", got)
	}

	d = mustLookup(t, clruntime.KindContext, ContextProperties)
	v, _ = Decode(nil, d)
	if got := Format(d, v); got != "(empty)" {
		t.Errorf("Format(props) = %q", got)
	}
}
