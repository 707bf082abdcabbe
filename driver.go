package clruntime

import "fmt"

// Handle is an opaque, pointer-sized reference to a resource owned by the
// foreign runtime. Handle 0 is reserved and always invalid.
type Handle uintptr

// IsValid reports whether h is not the zero sentinel.
func (h Handle) IsValid() bool {
	return h != 0
}

func (h Handle) String() string {
	return fmt.Sprintf("0x%x", uintptr(h))
}

// ObjectKind identifies the resource kind a handle names.
type ObjectKind uint8

const (
	KindPlatform ObjectKind = iota
	KindDevice
	KindContext
	KindCommandQueue
	KindMem
	KindProgram
	KindProgramBuild // program x device
	KindKernel
	KindKernelWorkGroup // kernel x device
	KindEvent
	KindSampler
)

var kindNames = [...]string{
	KindPlatform:        "platform",
	KindDevice:          "device",
	KindContext:         "context",
	KindCommandQueue:    "command-queue",
	KindMem:             "mem",
	KindProgram:         "program",
	KindProgramBuild:    "program-build",
	KindKernel:          "kernel",
	KindKernelWorkGroup: "kernel-work-group",
	KindEvent:           "event",
	KindSampler:         "sampler",
}

func (k ObjectKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ObjectKinds lists every kind in declaration order.
func ObjectKinds() []ObjectKind {
	kinds := make([]ObjectKind, len(kindNames))
	for i := range kindNames {
		kinds[i] = ObjectKind(i)
	}
	return kinds
}

// ParseObjectKind is the inverse of ObjectKind.String.
func ParseObjectKind(s string) (ObjectKind, bool) {
	for i, name := range kindNames {
		if name == s {
			return ObjectKind(i), true
		}
	}
	return 0, false
}

// PerDevice reports whether the kind is queried against a (handle, device) pair.
func (k ObjectKind) PerDevice() bool {
	return k == KindProgramBuild || k == KindKernelWorkGroup
}

// Owner returns the kind whose handle a per-device kind is keyed by.
func (k ObjectKind) Owner() ObjectKind {
	switch k {
	case KindProgramBuild:
		return KindProgram
	case KindKernelWorkGroup:
		return KindKernel
	}
	return k
}

// Target names the object an attribute query runs against.
// Device is only consulted for per-device kinds.
type Target struct {
	Kind   ObjectKind
	Handle Handle
	Device Handle
}

func (t Target) String() string {
	if t.Kind.PerDevice() {
		return fmt.Sprintf("%s(%s@%s)", t.Kind, t.Handle, t.Device)
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Handle)
}

// ParamName is a native attribute identifier.
type ParamName uint32

func (p ParamName) String() string {
	return fmt.Sprintf("0x%04X", uint32(p))
}

// DeviceType is the device classification bitfield.
type DeviceType uint64

const (
	DeviceTypeDefault     DeviceType = 1 << 0
	DeviceTypeCPU         DeviceType = 1 << 1
	DeviceTypeGPU         DeviceType = 1 << 2
	DeviceTypeAccelerator DeviceType = 1 << 3
	DeviceTypeCustom      DeviceType = 1 << 4
	DeviceTypeAll         DeviceType = 0xFFFFFFFF
)

func (t DeviceType) String() string {
	if t == DeviceTypeAll {
		return "all"
	}
	var s string
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if t&DeviceTypeDefault != 0 {
		add("default")
	}
	if t&DeviceTypeCPU != 0 {
		add("cpu")
	}
	if t&DeviceTypeGPU != 0 {
		add("gpu")
	}
	if t&DeviceTypeAccelerator != 0 {
		add("accelerator")
	}
	if t&DeviceTypeCustom != 0 {
		add("custom")
	}
	if s == "" {
		return fmt.Sprintf("type(0x%x)", uint64(t))
	}
	return s
}

// ParseDeviceType accepts the names produced by DeviceType.String.
func ParseDeviceType(s string) (DeviceType, bool) {
	switch s {
	case "default":
		return DeviceTypeDefault, true
	case "cpu":
		return DeviceTypeCPU, true
	case "gpu":
		return DeviceTypeGPU, true
	case "accelerator":
		return DeviceTypeAccelerator, true
	case "custom":
		return DeviceTypeCustom, true
	case "all", "":
		return DeviceTypeAll, true
	}
	return 0, false
}

// Driver is the flat library of foreign entry points.
//
// Query-style entry points follow the two-phase convention: a nil output
// slice asks only for the required size (or count), a non-nil slice must be
// at least that large. Creation entry points return a new handle together
// with an out-of-band status and transfer one unit of ownership to the
// caller. Enumeration entry points transfer none.
type Driver interface {
	// PlatformIDs lists platforms. num receives the number available.
	PlatformIDs(out []Handle, num *uint32) Status

	// DeviceIDs lists devices of a platform matching typ.
	DeviceIDs(platform Handle, typ DeviceType, out []Handle, num *uint32) Status

	// GetInfo writes attribute param of t into value and its size into sizeRet.
	GetInfo(t Target, param ParamName, value []byte, sizeRet *int) Status

	// Retain increments the native reference count.
	Retain(kind ObjectKind, h Handle) Status

	// Release decrements the native reference count.
	Release(kind ObjectKind, h Handle) Status

	CreateContext(devices []Handle) (Handle, Status)
	CreateCommandQueue(context, device Handle, properties uint64) (Handle, Status)
	CreateBuffer(context Handle, flags uint64, size uint64) (Handle, Status)
	CreateProgramWithSource(context Handle, sources []string) (Handle, Status)
	BuildProgram(program Handle, devices []Handle, options string) Status
	CreateKernel(program Handle, name string) (Handle, Status)

	// SetKernelArg mutates the kernel. Not safe for concurrent use on the
	// same kernel handle.
	SetKernelArg(kernel Handle, index uint32, value []byte) Status

	CreateSampler(context Handle, normalized bool, addressing, filter uint32) (Handle, Status)
	CreateUserEvent(context Handle) (Handle, Status)
	SetUserEventStatus(event Handle, status int32) Status
}
