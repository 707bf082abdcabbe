package clruntime

import (
	"errors"
	"fmt"
	"testing"
)

func TestHandle(t *testing.T) {
	var zero Handle
	if zero.IsValid() {
		t.Fatal("Expected zero handle to be invalid")
	}
	h := Handle(0x1010)
	if !h.IsValid() {
		t.Fatal("Expected non-zero handle to be valid")
	}
	if got := h.String(); got != "0x1010" {
		t.Fatalf("Expected 0x1010, got %s", got)
	}
}

func TestObjectKind_RoundTrip(t *testing.T) {
	for _, k := range ObjectKinds() {
		got, ok := ParseObjectKind(k.String())
		if !ok || got != k {
			t.Fatalf("Expected %s to parse back, got %v %v", k, got, ok)
		}
	}
	if _, ok := ParseObjectKind("gizmo"); ok {
		t.Fatal("Expected unknown kind to fail")
	}
	if got := ObjectKind(200).String(); got != "kind(200)" {
		t.Fatalf("Expected kind(200), got %s", got)
	}
}

func TestObjectKind_PerDevice(t *testing.T) {
	tests := []struct {
		kind      ObjectKind
		perDevice bool
		owner     ObjectKind
	}{
		{KindProgramBuild, true, KindProgram},
		{KindKernelWorkGroup, true, KindKernel},
		{KindProgram, false, KindProgram},
		{KindDevice, false, KindDevice},
	}
	for _, tt := range tests {
		if tt.kind.PerDevice() != tt.perDevice {
			t.Fatalf("Expected %s PerDevice %v", tt.kind, tt.perDevice)
		}
		if tt.kind.Owner() != tt.owner {
			t.Fatalf("Expected %s owner %s, got %s", tt.kind, tt.owner, tt.kind.Owner())
		}
	}
}

func TestTarget_String(t *testing.T) {
	if got := (Target{Kind: KindDevice, Handle: 0x10}).String(); got != "device(0x10)" {
		t.Fatalf("Expected device(0x10), got %s", got)
	}
	got := (Target{Kind: KindProgramBuild, Handle: 0x40, Device: 0x10}).String()
	if got != "program-build(0x40@0x10)" {
		t.Fatalf("Expected program-build(0x40@0x10), got %s", got)
	}
}

func TestDeviceType(t *testing.T) {
	tests := []struct {
		typ  DeviceType
		want string
	}{
		{DeviceTypeGPU, "gpu"},
		{DeviceTypeCPU | DeviceTypeGPU, "cpu|gpu"},
		{DeviceTypeAll, "all"},
		{0, "type(0x0)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Fatalf("Expected %s, got %s", tt.want, got)
		}
	}

	for _, name := range []string{"default", "cpu", "gpu", "accelerator", "custom", "all"} {
		typ, ok := ParseDeviceType(name)
		if !ok || typ.String() != name {
			t.Fatalf("Expected %s to round trip, got %s", name, typ)
		}
	}
	if _, ok := ParseDeviceType("fpga"); ok {
		t.Fatal("Expected fpga to be rejected")
	}
}

func TestStatus(t *testing.T) {
	if !Success.OK() || InvalidValue.OK() {
		t.Fatal("Expected only Success to be OK")
	}
	if got := InvalidValue.Error(); got != "CL_INVALID_VALUE" {
		t.Fatalf("Expected CL_INVALID_VALUE, got %s", got)
	}
	if got := Status(-9999).String(); got != "CL_STATUS(-9999)" {
		t.Fatalf("Expected CL_STATUS(-9999), got %s", got)
	}

	wrapped := fmt.Errorf("query: %w", OutOfResources)
	st, ok := StatusOf(wrapped)
	if !ok || st != OutOfResources {
		t.Fatalf("Expected OutOfResources, got %v %v", st, ok)
	}
	if _, ok := StatusOf(errors.New("plain")); ok {
		t.Fatal("Expected no status in a plain error")
	}
}

func TestInvalidStatus(t *testing.T) {
	tests := map[ObjectKind]Status{
		KindPlatform:        InvalidPlatform,
		KindContext:         InvalidContext,
		KindProgramBuild:    InvalidProgram,
		KindKernelWorkGroup: InvalidKernel,
		KindSampler:         InvalidSampler,
	}
	for kind, want := range tests {
		if got := InvalidStatus(kind); got != want {
			t.Fatalf("Expected %s for %s, got %s", want, kind, got)
		}
	}
}

func TestExecAndBuildStatus(t *testing.T) {
	if got := ExecStatus(-5).String(); got != "error(CL_OUT_OF_RESOURCES)" {
		t.Fatalf("Expected error(CL_OUT_OF_RESOURCES), got %s", got)
	}
	if got := ExecSubmitted.String(); got != "submitted" {
		t.Fatalf("Expected submitted, got %s", got)
	}
	if got := BuildInProgress.String(); got != "in-progress" {
		t.Fatalf("Expected in-progress, got %s", got)
	}
}
