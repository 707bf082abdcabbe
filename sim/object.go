package sim

import (
	"slices"
	"strings"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
)

type object struct {
	static  map[clruntime.ParamName][]byte
	missing map[clruntime.ParamName]clruntime.Status

	devices []clruntime.Handle // context, program
	builds  map[clruntime.Handle]*build
	kernels []kernelDef
	args    [][]byte
	source  string
	def     kernelDef

	handle   clruntime.Handle
	parent   clruntime.Handle
	device   clruntime.Handle // queue
	devType  clruntime.DeviceType
	props    uint64 // queue properties, mem flags
	size     uint64
	refs     int
	children int

	status     int32 // event execution status
	statusSet  bool
	addressing uint32
	filter     uint32
	normalized bool
	dead       bool

	kind clruntime.ObjectKind
}

type build struct {
	options string
	log     string
	status  clruntime.BuildStatus
}

// info answers GetInfo for o. The caller holds d.mu.
func (d *Driver) info(o *object, t clruntime.Target, param clruntime.ParamName) ([]byte, clruntime.Status) {
	desc, ok := attr.Lookup(t.Kind, param)
	if !ok {
		return nil, clruntime.InvalidValue
	}

	var v any
	st := clruntime.Success
	switch t.Kind {
	case clruntime.KindPlatform:
		return d.staticInfo(o, param)
	case clruntime.KindDevice:
		if param == attr.DeviceReferenceCount {
			v = 1
			break
		}
		return d.staticInfo(o, param)
	case clruntime.KindContext:
		v, st = d.contextInfo(o, param)
	case clruntime.KindCommandQueue:
		v, st = d.queueInfo(o, param)
	case clruntime.KindMem:
		v, st = d.memInfo(o, param)
	case clruntime.KindSampler:
		v, st = d.samplerInfo(o, param)
	case clruntime.KindProgram:
		v, st = d.programInfo(o, param)
	case clruntime.KindProgramBuild:
		v, st = d.buildInfo(o, t.Device, param)
	case clruntime.KindKernel:
		v, st = d.kernelInfo(o, param)
	case clruntime.KindKernelWorkGroup:
		v, st = d.workGroupInfo(o, t.Device, param)
	case clruntime.KindEvent:
		v, st = d.eventInfo(o, param)
	default:
		return nil, clruntime.InvalidValue
	}
	if !st.OK() {
		return nil, st
	}

	raw, err := attr.Encode(desc, v)
	if err != nil {
		d.log.DPanic("cannot encode simulated attribute")
		return nil, clruntime.OutOfHostMemory
	}
	return raw, clruntime.Success
}

func (d *Driver) staticInfo(o *object, param clruntime.ParamName) ([]byte, clruntime.Status) {
	if st, ok := o.missing[param]; ok {
		return nil, st
	}
	raw, ok := o.static[param]
	if !ok {
		return nil, clruntime.InvalidValue
	}
	return raw, clruntime.Success
}

func (d *Driver) contextInfo(o *object, param clruntime.ParamName) (any, clruntime.Status) {
	switch param {
	case attr.ContextReferenceCount:
		return o.refs, clruntime.Success
	case attr.ContextDevices:
		return o.devices, clruntime.Success
	case attr.ContextProperties:
		return nil, clruntime.Success
	case attr.ContextNumDevices:
		return len(o.devices), clruntime.Success
	}
	return nil, clruntime.InvalidValue
}

func (d *Driver) queueInfo(o *object, param clruntime.ParamName) (any, clruntime.Status) {
	switch param {
	case attr.QueueContext:
		return o.parent, clruntime.Success
	case attr.QueueDevice:
		return o.device, clruntime.Success
	case attr.QueueReferenceCount:
		return o.refs, clruntime.Success
	case attr.QueueProperties:
		return o.props, clruntime.Success
	}
	return nil, clruntime.InvalidValue
}

func (d *Driver) memInfo(o *object, param clruntime.ParamName) (any, clruntime.Status) {
	switch param {
	case attr.MemType:
		return clruntime.MemObjectBuffer, clruntime.Success
	case attr.MemFlags:
		return o.props, clruntime.Success
	case attr.MemSize:
		return o.size, clruntime.Success
	case attr.MemHostPtr, attr.MemMapCount, attr.MemOffset:
		return 0, clruntime.Success
	case attr.MemReferenceCount:
		return o.refs, clruntime.Success
	case attr.MemContext:
		return o.parent, clruntime.Success
	case attr.MemAssociatedMemObject:
		return clruntime.Handle(0), clruntime.Success
	}
	return nil, clruntime.InvalidValue
}

func (d *Driver) samplerInfo(o *object, param clruntime.ParamName) (any, clruntime.Status) {
	switch param {
	case attr.SamplerReferenceCount:
		return o.refs, clruntime.Success
	case attr.SamplerContext:
		return o.parent, clruntime.Success
	case attr.SamplerNormalizedCoords:
		return o.normalized, clruntime.Success
	case attr.SamplerAddressingMode:
		return o.addressing, clruntime.Success
	case attr.SamplerFilterMode:
		return o.filter, clruntime.Success
	}
	return nil, clruntime.InvalidValue
}

func (d *Driver) programInfo(o *object, param clruntime.ParamName) (any, clruntime.Status) {
	switch param {
	case attr.ProgramReferenceCount:
		return o.refs, clruntime.Success
	case attr.ProgramContext:
		return o.parent, clruntime.Success
	case attr.ProgramNumDevices:
		return len(o.devices), clruntime.Success
	case attr.ProgramDevices:
		return o.devices, clruntime.Success
	case attr.ProgramSource:
		return o.source, clruntime.Success
	case attr.ProgramBinarySizes:
		sizes := make([]uint64, len(o.devices))
		for i, dev := range o.devices {
			if b := o.builds[dev]; b != nil && b.status == clruntime.BuildSuccess {
				sizes[i] = uint64(len(o.source))
			}
		}
		return sizes, clruntime.Success
	case attr.ProgramNumKernels, attr.ProgramKernelNames:
		if !o.executable() {
			return nil, clruntime.InvalidProgramExecutable
		}
		if param == attr.ProgramNumKernels {
			return len(o.kernels), clruntime.Success
		}
		names := make([]string, len(o.kernels))
		for i, k := range o.kernels {
			names[i] = k.name
		}
		return names, clruntime.Success
	}
	return nil, clruntime.InvalidValue
}

func (o *object) executable() bool {
	for _, b := range o.builds {
		if b.status == clruntime.BuildSuccess {
			return true
		}
	}
	return false
}

func (d *Driver) buildInfo(o *object, dev clruntime.Handle, param clruntime.ParamName) (any, clruntime.Status) {
	if !slices.Contains(o.devices, dev) {
		return nil, clruntime.InvalidDevice
	}
	b := o.builds[dev]
	if b == nil {
		b = &build{status: clruntime.BuildNone}
	}

	switch param {
	case attr.ProgramBuildStatus:
		return int32(b.status), clruntime.Success
	case attr.ProgramBuildOptions:
		return b.options, clruntime.Success
	case attr.ProgramBuildLog:
		return b.log, clruntime.Success
	case attr.ProgramBuildBinaryType:
		if b.status == clruntime.BuildSuccess {
			return clruntime.BinaryTypeExecutable, clruntime.Success
		}
		return clruntime.BinaryTypeNone, clruntime.Success
	}
	return nil, clruntime.InvalidValue
}

func (d *Driver) kernelInfo(o *object, param clruntime.ParamName) (any, clruntime.Status) {
	switch param {
	case attr.KernelFunctionName:
		return o.def.name, clruntime.Success
	case attr.KernelNumArgs:
		return o.def.numArgs, clruntime.Success
	case attr.KernelReferenceCount:
		return o.refs, clruntime.Success
	case attr.KernelContext:
		if p := d.objects[o.parent]; p != nil {
			return p.parent, clruntime.Success
		}
		return clruntime.Handle(0), clruntime.Success
	case attr.KernelProgram:
		return o.parent, clruntime.Success
	case attr.KernelAttributes:
		return o.def.attributes, clruntime.Success
	}
	return nil, clruntime.InvalidValue
}

func (d *Driver) workGroupInfo(o *object, dev clruntime.Handle, param clruntime.ParamName) (any, clruntime.Status) {
	program := d.objects[o.parent]
	if program == nil || !slices.Contains(program.devices, dev) {
		return nil, clruntime.InvalidDevice
	}

	switch param {
	case attr.KernelWorkGroupSize:
		if o.def.reqd != nil {
			return o.def.reqd[0] * o.def.reqd[1] * o.def.reqd[2], clruntime.Success
		}
		if v, ok := d.deviceValue(dev, attr.DeviceMaxWorkGroupSize); ok {
			return v.Uint64(), clruntime.Success
		}
		return 1, clruntime.Success
	case attr.KernelCompileWorkGroupSize:
		if o.def.reqd != nil {
			return o.def.reqd, clruntime.Success
		}
		return []uint64{0, 0, 0}, clruntime.Success
	case attr.KernelLocalMemSize, attr.KernelPrivateMemSize:
		return uint64(0), clruntime.Success
	case attr.KernelPreferredWorkGroupSizeMultiple:
		if dv := d.objects[dev]; dv != nil && dv.devType&clruntime.DeviceTypeGPU != 0 {
			return 32, clruntime.Success
		}
		return 1, clruntime.Success
	}
	return nil, clruntime.InvalidValue
}

func (d *Driver) eventInfo(o *object, param clruntime.ParamName) (any, clruntime.Status) {
	switch param {
	case attr.EventCommandQueue:
		return clruntime.Handle(0), clruntime.Success
	case attr.EventCommandType:
		return clruntime.CommandUser, clruntime.Success
	case attr.EventReferenceCount:
		return o.refs, clruntime.Success
	case attr.EventCommandExecutionStatus:
		return o.status, clruntime.Success
	case attr.EventContext:
		return o.parent, clruntime.Success
	}
	return nil, clruntime.InvalidValue
}

func joinSources(sources []string) string {
	return strings.Join(sources, "")
}
