package cl

import (
	"encoding/binary"

	"go.uber.org/zap"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/errors"
	"github.com/wippyai/cl-runtime/query"
)

// Program owns one reference to a native program.
type Program struct {
	owned
}

// ProgramInfo is the typed view of a program snapshot. NumKernels and
// KernelNames are zero until the program has been built.
type ProgramInfo struct {
	Source         string
	Devices        []clruntime.Handle
	BinarySizes    []uint64
	KernelNames    []string
	Context        clruntime.Handle
	NumKernels     uint64
	NumDevices     uint32
	ReferenceCount uint32
}

// Info returns the decoded program attributes.
func (p *Program) Info() ProgramInfo {
	s := p.attrs
	return ProgramInfo{
		Source:         s.String(attr.ProgramSource),
		Devices:        s.Handles(attr.ProgramDevices),
		BinarySizes:    s.Fields(attr.ProgramBinarySizes),
		KernelNames:    s.Strings(attr.ProgramKernelNames),
		Context:        s.Handle(attr.ProgramContext),
		NumKernels:     s.Uint64(attr.ProgramNumKernels),
		NumDevices:     s.Uint32(attr.ProgramNumDevices),
		ReferenceCount: s.Uint32(attr.ProgramReferenceCount),
	}
}

// Retain returns a second facade holding its own unit of ownership.
func (p *Program) Retain() (*Program, error) {
	ref, err := p.clone()
	if err != nil {
		return nil, err
	}
	return &Program{owned: owned{object: p.object, ref: ref}}, nil
}

// Refresh re-reads the program attributes, typically after Build. The
// result shares this facade's ownership unit.
func (p *Program) Refresh() (*Program, error) {
	if _, err := p.live(errors.PhaseQuery, "Refresh"); err != nil {
		return nil, err
	}
	return &Program{owned: p.rt.ownedSnapshot(p.ref)}, nil
}

// Build compiles the program for devices, or for every program device when
// none are given. On failure the per-device build logs are still available
// through BuildInfo.
func (p *Program) Build(options string, devices ...*Device) error {
	h, err := p.live(errors.PhaseMutate, "BuildProgram")
	if err != nil {
		return err
	}
	st := p.rt.drv.BuildProgram(h, deviceHandles(devices), options)
	p.rt.log.Debug("build program",
		zap.Stringer("program", h),
		zap.String("options", options),
		zap.Stringer("status", st))
	return mutated(p.target, "BuildProgram", st)
}

// BuildInfo describes the program's build for dev. On a disposed program
// every attribute reports an invalid handle.
func (p *Program) BuildInfo(dev *Device) *ProgramBuild {
	t := clruntime.Target{Kind: clruntime.KindProgramBuild, Handle: p.Handle(), Device: dev.Handle()}
	return &ProgramBuild{object: p.rt.snapshot(t), program: p}
}

// Builds describes the build for every device of the program.
func (p *Program) Builds() []*ProgramBuild {
	hs := p.attrs.Handles(attr.ProgramDevices)
	out := make([]*ProgramBuild, len(hs))
	for i, h := range hs {
		out[i] = p.BuildInfo(p.rt.Device(h))
	}
	return out
}

// CreateKernel creates the kernel named name. The program must be built.
func (p *Program) CreateKernel(name string) (*Kernel, error) {
	h, err := p.live(errors.PhaseCreate, "CreateKernel")
	if err != nil {
		return nil, err
	}
	k, st := p.rt.drv.CreateKernel(h, name)
	if err := created(clruntime.KindKernel, "CreateKernel", k, st); err != nil {
		return nil, err
	}
	return &Kernel{owned: p.rt.ownedSnapshot(p.rt.own(clruntime.KindKernel, k))}, nil
}

// CreateKernels creates one kernel per entry point of the built program.
// Kernels created before a failure are disposed.
func (p *Program) CreateKernels() ([]*Kernel, error) {
	h, err := p.live(errors.PhaseCreate, "CreateKernels")
	if err != nil {
		return nil, err
	}
	v, err := query.Lookup(p.rt.drv, clruntime.Target{Kind: clruntime.KindProgram, Handle: h}, attr.ProgramKernelNames)
	if err != nil {
		return nil, err
	}
	names := v.Strings()
	out := make([]*Kernel, 0, len(names))
	for _, name := range names {
		k, err := p.CreateKernel(name)
		if err != nil {
			for _, made := range out {
				made.Dispose()
			}
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// ProgramBuild describes the build of one program for one device. It holds
// no ownership of its own.
type ProgramBuild struct {
	object
	program *Program
}

// BuildInfo is the typed view of a per-device build snapshot.
type BuildInfo struct {
	Options    string
	Log        string
	Status     clruntime.BuildStatus
	BinaryType uint32
}

// Info returns the decoded build attributes.
func (b *ProgramBuild) Info() BuildInfo {
	s := b.attrs
	return BuildInfo{
		Options:    s.String(attr.ProgramBuildOptions),
		Log:        s.String(attr.ProgramBuildLog),
		Status:     clruntime.BuildStatus(s.Int32(attr.ProgramBuildStatus)),
		BinaryType: s.Uint32(attr.ProgramBuildBinaryType),
	}
}

// Program returns the program the build belongs to.
func (b *ProgramBuild) Program() *Program {
	return b.program
}

// Device returns the device the build targets.
func (b *ProgramBuild) Device() *Device {
	return b.rt.Device(b.target.Device)
}

// Kernel owns one reference to a native kernel.
type Kernel struct {
	owned
}

// KernelInfo is the typed view of a kernel snapshot.
type KernelInfo struct {
	FunctionName   string
	Attributes     string
	Context        clruntime.Handle
	Program        clruntime.Handle
	NumArgs        uint32
	ReferenceCount uint32
}

// Info returns the decoded kernel attributes.
func (k *Kernel) Info() KernelInfo {
	s := k.attrs
	return KernelInfo{
		FunctionName:   s.String(attr.KernelFunctionName),
		Attributes:     s.String(attr.KernelAttributes),
		Context:        s.Handle(attr.KernelContext),
		Program:        s.Handle(attr.KernelProgram),
		NumArgs:        s.Uint32(attr.KernelNumArgs),
		ReferenceCount: s.Uint32(attr.KernelReferenceCount),
	}
}

// Retain returns a second facade holding its own unit of ownership.
func (k *Kernel) Retain() (*Kernel, error) {
	ref, err := k.clone()
	if err != nil {
		return nil, err
	}
	return &Kernel{owned: owned{object: k.object, ref: ref}}, nil
}

// SetArg binds raw bytes to argument index. A kernel must not have
// arguments set from several goroutines at once.
func (k *Kernel) SetArg(index uint32, value []byte) error {
	h, err := k.live(errors.PhaseMutate, "SetKernelArg")
	if err != nil {
		return err
	}
	st := k.rt.drv.SetKernelArg(h, index, value)
	if st.OK() {
		return nil
	}
	e := errors.Status(errors.PhaseMutate, "SetKernelArg", st)
	e.Object = k.target.String()
	e.Value = index
	return e
}

// SetArgMem binds a memory object to argument index.
func (k *Kernel) SetArgMem(index uint32, m *MemObject) error {
	return k.SetArg(index, handleBytes(m.Handle()))
}

// SetArgSampler binds a sampler to argument index.
func (k *Kernel) SetArgSampler(index uint32, s *Sampler) error {
	return k.SetArg(index, handleBytes(s.Handle()))
}

// WorkGroupInfo describes the kernel's work-group limits on dev.
func (k *Kernel) WorkGroupInfo(dev *Device) *KernelWorkGroup {
	t := clruntime.Target{Kind: clruntime.KindKernelWorkGroup, Handle: k.Handle(), Device: dev.Handle()}
	return &KernelWorkGroup{object: k.rt.snapshot(t)}
}

// KernelWorkGroup describes one kernel on one device.
type KernelWorkGroup struct {
	object
}

// WorkGroupInfo is the typed view of a kernel work-group snapshot.
type WorkGroupInfo struct {
	CompileWorkGroupSize       []uint64
	WorkGroupSize              uint64
	LocalMemSize               uint64
	PrivateMemSize             uint64
	PreferredWorkGroupMultiple uint64
}

// Info returns the decoded work-group attributes.
func (w *KernelWorkGroup) Info() WorkGroupInfo {
	s := w.attrs
	return WorkGroupInfo{
		CompileWorkGroupSize:       s.Fields(attr.KernelCompileWorkGroupSize),
		WorkGroupSize:              s.Uint64(attr.KernelWorkGroupSize),
		LocalMemSize:               s.Uint64(attr.KernelLocalMemSize),
		PrivateMemSize:             s.Uint64(attr.KernelPrivateMemSize),
		PreferredWorkGroupMultiple: s.Uint64(attr.KernelPreferredWorkGroupSizeMultiple),
	}
}

func handleBytes(h clruntime.Handle) []byte {
	if attr.WordSize == 4 {
		return binary.NativeEndian.AppendUint32(nil, uint32(h))
	}
	return binary.NativeEndian.AppendUint64(nil, uint64(h))
}
