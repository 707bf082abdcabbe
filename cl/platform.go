package cl

import (
	"slices"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/query"
)

// Platform describes one installed platform. Platforms are not reference
// counted.
type Platform struct {
	object
}

// PlatformInfo is the typed view of a platform snapshot.
type PlatformInfo struct {
	Profile             string
	Version             string
	Name                string
	Vendor              string
	Extensions          []string
	HostTimerResolution uint64
	NumericVersion      uint32
}

// Info returns the decoded platform attributes.
func (p *Platform) Info() PlatformInfo {
	s := p.attrs
	return PlatformInfo{
		Profile:             s.String(attr.PlatformProfile),
		Version:             s.String(attr.PlatformVersion),
		Name:                s.String(attr.PlatformName),
		Vendor:              s.String(attr.PlatformVendor),
		Extensions:          s.Strings(attr.PlatformExtensions),
		HostTimerResolution: s.Uint64(attr.PlatformHostTimerResolution),
		NumericVersion:      s.Uint32(attr.PlatformNumericVersion),
	}
}

// HasExtension reports whether the platform lists ext.
func (p *Platform) HasExtension(ext string) bool {
	return slices.Contains(p.attrs.Strings(attr.PlatformExtensions), ext)
}

// Devices lists the platform's devices matching typ.
func (p *Platform) Devices(typ clruntime.DeviceType) ([]*Device, error) {
	hs, err := query.DeviceIDs(p.rt.drv, p.target.Handle, typ)
	if err != nil {
		return nil, err
	}
	out := make([]*Device, len(hs))
	for i, h := range hs {
		out[i] = p.rt.Device(h)
	}
	return out, nil
}

// Device describes a root device. Root devices are not reference counted.
type Device struct {
	object
}

// DeviceInfo is the typed view of a device snapshot.
type DeviceInfo struct {
	Name           string
	Vendor         string
	DriverVersion  string
	Profile        string
	Version        string
	OpenCLCVersion string

	Extensions       []string
	BuiltInKernels   []string
	MaxWorkItemSizes []uint64

	Type                  clruntime.DeviceType
	Platform              clruntime.Handle
	ParentDevice          clruntime.Handle
	VendorID              uint32
	MaxComputeUnits       uint32
	MaxWorkItemDimensions uint32
	MaxClockFrequency     uint32
	AddressBits           uint32
	MaxSamplers           uint32
	ReferenceCount        uint32
	MaxWorkGroupSize      uint64
	MaxParameterSize      uint64
	MaxMemAllocSize       uint64
	GlobalMemSize         uint64
	LocalMemSize          uint64
	MaxConstantBufferSize uint64
	QueueProperties       uint64

	ImageSupport           bool
	ErrorCorrectionSupport bool
	HostUnifiedMemory      bool
	EndianLittle           bool
	Available              bool
	CompilerAvailable      bool
	LinkerAvailable        bool
}

// Info returns the decoded device attributes.
func (d *Device) Info() DeviceInfo {
	s := d.attrs
	return DeviceInfo{
		Name:           s.String(attr.DeviceName),
		Vendor:         s.String(attr.DeviceVendor),
		DriverVersion:  s.String(attr.DeviceDriverVersion),
		Profile:        s.String(attr.DeviceProfile),
		Version:        s.String(attr.DeviceVersion),
		OpenCLCVersion: s.String(attr.DeviceOpenCLCVersion),

		Extensions:       s.Strings(attr.DeviceExtensions),
		BuiltInKernels:   s.Strings(attr.DeviceBuiltInKernels),
		MaxWorkItemSizes: s.Fields(attr.DeviceMaxWorkItemSizes),

		Type:                  clruntime.DeviceType(s.Uint64(attr.DeviceType)),
		Platform:              s.Handle(attr.DevicePlatform),
		ParentDevice:          s.Handle(attr.DeviceParentDevice),
		VendorID:              s.Uint32(attr.DeviceVendorID),
		MaxComputeUnits:       s.Uint32(attr.DeviceMaxComputeUnits),
		MaxWorkItemDimensions: s.Uint32(attr.DeviceMaxWorkItemDimensions),
		MaxClockFrequency:     s.Uint32(attr.DeviceMaxClockFrequency),
		AddressBits:           s.Uint32(attr.DeviceAddressBits),
		MaxSamplers:           s.Uint32(attr.DeviceMaxSamplers),
		ReferenceCount:        s.Uint32(attr.DeviceReferenceCount),
		MaxWorkGroupSize:      s.Uint64(attr.DeviceMaxWorkGroupSize),
		MaxParameterSize:      s.Uint64(attr.DeviceMaxParameterSize),
		MaxMemAllocSize:       s.Uint64(attr.DeviceMaxMemAllocSize),
		GlobalMemSize:         s.Uint64(attr.DeviceGlobalMemSize),
		LocalMemSize:          s.Uint64(attr.DeviceLocalMemSize),
		MaxConstantBufferSize: s.Uint64(attr.DeviceMaxConstantBufferSize),
		QueueProperties:       s.Uint64(attr.DeviceQueueProperties),

		ImageSupport:           s.Bool(attr.DeviceImageSupport),
		ErrorCorrectionSupport: s.Bool(attr.DeviceErrorCorrectionSupport),
		HostUnifiedMemory:      s.Bool(attr.DeviceHostUnifiedMemory),
		EndianLittle:           s.Bool(attr.DeviceEndianLittle),
		Available:              s.Bool(attr.DeviceAvailable),
		CompilerAvailable:      s.Bool(attr.DeviceCompilerAvailable),
		LinkerAvailable:        s.Bool(attr.DeviceLinkerAvailable),
	}
}

// HasExtension reports whether the device lists ext.
func (d *Device) HasExtension(ext string) bool {
	return slices.Contains(d.attrs.Strings(attr.DeviceExtensions), ext)
}

// Platform returns the facade of the platform the device belongs to.
func (d *Device) Platform() *Platform {
	return d.rt.Platform(d.attrs.Handle(attr.DevicePlatform))
}
