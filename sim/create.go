package sim

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
)

const knownQueueProperties = clruntime.QueueOutOfOrderExecModeEnable | clruntime.QueueProfilingEnable

// CreateContext implements clruntime.Driver.
func (d *Driver) CreateContext(devices []clruntime.Handle) (clruntime.Handle, clruntime.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(devices) == 0 {
		return 0, clruntime.InvalidValue
	}
	var platform clruntime.Handle
	for _, dev := range devices {
		o, st := d.lookup(clruntime.KindDevice, dev)
		if !st.OK() {
			return 0, st
		}
		if platform.IsValid() && o.parent != platform {
			return 0, clruntime.InvalidDevice
		}
		platform = o.parent
		if v, ok := d.deviceValue(dev, attr.DeviceAvailable); ok && !v.Bool() {
			return 0, clruntime.DeviceNotAvailable
		}
	}
	if st := d.createFault(clruntime.KindContext); !st.OK() {
		return 0, st
	}

	o := &object{kind: clruntime.KindContext, devices: slices.Clone(devices)}
	return d.adopt(o, nil), clruntime.Success
}

// CreateCommandQueue implements clruntime.Driver.
func (d *Driver) CreateCommandQueue(context, device clruntime.Handle, properties uint64) (clruntime.Handle, clruntime.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, st := d.lookup(clruntime.KindContext, context)
	if !st.OK() {
		return 0, st
	}
	if !slices.Contains(ctx.devices, device) {
		return 0, clruntime.InvalidDevice
	}
	if properties&^knownQueueProperties != 0 {
		return 0, clruntime.InvalidValue
	}
	supported := knownQueueProperties
	if v, ok := d.deviceValue(device, attr.DeviceQueueProperties); ok {
		supported = v.Uint64()
	}
	if properties&^supported != 0 {
		return 0, clruntime.InvalidQueueProperties
	}
	if st := d.createFault(clruntime.KindCommandQueue); !st.OK() {
		return 0, st
	}

	o := &object{kind: clruntime.KindCommandQueue, device: device, props: properties}
	return d.adopt(o, ctx), clruntime.Success
}

// CreateBuffer implements clruntime.Driver. No host pointer can be passed,
// so flags that need one are rejected.
func (d *Driver) CreateBuffer(context clruntime.Handle, flags uint64, size uint64) (clruntime.Handle, clruntime.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, st := d.lookup(clruntime.KindContext, context)
	if !st.OK() {
		return 0, st
	}

	access := flags & (clruntime.MemReadWrite | clruntime.MemWriteOnly | clruntime.MemReadOnly)
	if access&(access-1) != 0 {
		return 0, clruntime.InvalidValue
	}
	if flags&(clruntime.MemUseHostPtr|clruntime.MemCopyHostPtr) != 0 {
		return 0, clruntime.InvalidHostPtr
	}
	if flags&^(clruntime.MemReadWrite|clruntime.MemWriteOnly|clruntime.MemReadOnly|clruntime.MemAllocHostPtr) != 0 {
		return 0, clruntime.InvalidValue
	}
	if access == 0 {
		flags |= clruntime.MemReadWrite
	}

	if size == 0 {
		return 0, clruntime.InvalidBufferSize
	}
	for _, dev := range ctx.devices {
		if v, ok := d.deviceValue(dev, attr.DeviceMaxMemAllocSize); ok && size > v.Uint64() {
			return 0, clruntime.InvalidBufferSize
		}
	}
	if st := d.createFault(clruntime.KindMem); !st.OK() {
		return 0, st
	}

	o := &object{kind: clruntime.KindMem, props: flags, size: size}
	return d.adopt(o, ctx), clruntime.Success
}

// CreateProgramWithSource implements clruntime.Driver.
func (d *Driver) CreateProgramWithSource(context clruntime.Handle, sources []string) (clruntime.Handle, clruntime.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, st := d.lookup(clruntime.KindContext, context)
	if !st.OK() {
		return 0, st
	}
	source := joinSources(sources)
	if strings.TrimSpace(source) == "" {
		return 0, clruntime.InvalidValue
	}
	if st := d.createFault(clruntime.KindProgram); !st.OK() {
		return 0, st
	}

	o := &object{
		kind:    clruntime.KindProgram,
		source:  source,
		devices: slices.Clone(ctx.devices),
		builds:  make(map[clruntime.Handle]*build),
	}
	return d.adopt(o, ctx), clruntime.Success
}

// BuildProgram implements clruntime.Driver. A source line starting with
// #error fails the build and becomes the build log.
func (d *Driver) BuildProgram(program clruntime.Handle, devices []clruntime.Handle, options string) clruntime.Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	o, st := d.lookup(clruntime.KindProgram, program)
	if !st.OK() {
		return st
	}
	if o.children > 0 {
		return clruntime.InvalidOperation
	}
	if len(devices) == 0 {
		devices = o.devices
	}
	for _, dev := range devices {
		if !slices.Contains(o.devices, dev) {
			return clruntime.InvalidDevice
		}
		if v, ok := d.deviceValue(dev, attr.DeviceCompilerAvailable); ok && !v.Bool() {
			return clruntime.CompilerNotAvailable
		}
	}
	if !validOptions(options) {
		return clruntime.InvalidBuildOptions
	}

	log, failed := compile(o.source)
	status := clruntime.BuildSuccess
	if failed {
		status = clruntime.BuildError
	}
	for _, dev := range devices {
		o.builds[dev] = &build{options: options, log: log, status: status}
	}

	d.log.Debug("program built",
		zap.Stringer("program", program),
		zap.Int("devices", len(devices)),
		zap.Stringer("status", status))

	if failed {
		return clruntime.BuildProgramFailure
	}
	o.kernels = parseKernels(o.source)
	return clruntime.Success
}

// CreateKernel implements clruntime.Driver.
func (d *Driver) CreateKernel(program clruntime.Handle, name string) (clruntime.Handle, clruntime.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, st := d.lookup(clruntime.KindProgram, program)
	if !st.OK() {
		return 0, st
	}
	if !p.executable() {
		return 0, clruntime.InvalidProgramExecutable
	}
	idx := slices.IndexFunc(p.kernels, func(k kernelDef) bool { return k.name == name })
	if idx < 0 {
		return 0, clruntime.InvalidKernelName
	}
	if st := d.createFault(clruntime.KindKernel); !st.OK() {
		return 0, st
	}

	def := p.kernels[idx]
	o := &object{kind: clruntime.KindKernel, def: def, args: make([][]byte, def.numArgs)}
	return d.adopt(o, p), clruntime.Success
}

// SetKernelArg implements clruntime.Driver.
func (d *Driver) SetKernelArg(kernel clruntime.Handle, index uint32, value []byte) clruntime.Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	o, st := d.lookup(clruntime.KindKernel, kernel)
	if !st.OK() {
		return st
	}
	if int(index) >= len(o.args) {
		return clruntime.InvalidArgIndex
	}
	if len(value) == 0 {
		return clruntime.InvalidArgSize
	}
	o.args[index] = slices.Clone(value)
	return clruntime.Success
}

// KernelArg returns the bytes last bound to argument index of kernel.
func (d *Driver) KernelArg(kernel clruntime.Handle, index uint32) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	o, st := d.lookup(clruntime.KindKernel, kernel)
	if !st.OK() || int(index) >= len(o.args) || o.args[index] == nil {
		return nil, false
	}
	return slices.Clone(o.args[index]), true
}

// CreateSampler implements clruntime.Driver.
func (d *Driver) CreateSampler(context clruntime.Handle, normalized bool, addressing, filter uint32) (clruntime.Handle, clruntime.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, st := d.lookup(clruntime.KindContext, context)
	if !st.OK() {
		return 0, st
	}
	if addressing < clruntime.AddressNone || addressing > clruntime.AddressMirroredRepeat {
		return 0, clruntime.InvalidValue
	}
	if filter != clruntime.FilterNearest && filter != clruntime.FilterLinear {
		return 0, clruntime.InvalidValue
	}
	images := false
	for _, dev := range ctx.devices {
		if v, ok := d.deviceValue(dev, attr.DeviceImageSupport); ok && v.Bool() {
			images = true
		}
	}
	if !images {
		return 0, clruntime.InvalidOperation
	}
	if st := d.createFault(clruntime.KindSampler); !st.OK() {
		return 0, st
	}

	o := &object{kind: clruntime.KindSampler, normalized: normalized, addressing: addressing, filter: filter}
	return d.adopt(o, ctx), clruntime.Success
}

// CreateUserEvent implements clruntime.Driver.
func (d *Driver) CreateUserEvent(context clruntime.Handle) (clruntime.Handle, clruntime.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, st := d.lookup(clruntime.KindContext, context)
	if !st.OK() {
		return 0, st
	}
	if st := d.createFault(clruntime.KindEvent); !st.OK() {
		return 0, st
	}

	o := &object{kind: clruntime.KindEvent, status: int32(clruntime.ExecSubmitted)}
	return d.adopt(o, ctx), clruntime.Success
}

// SetUserEventStatus implements clruntime.Driver. The status can be set
// once, to complete or to a negative error code.
func (d *Driver) SetUserEventStatus(event clruntime.Handle, status int32) clruntime.Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	o, st := d.lookup(clruntime.KindEvent, event)
	if !st.OK() {
		return st
	}
	if status > int32(clruntime.ExecComplete) {
		return clruntime.InvalidValue
	}
	if o.statusSet {
		return clruntime.InvalidOperation
	}
	o.status = status
	o.statusSet = true
	return clruntime.Success
}

func validOptions(options string) bool {
	fields := strings.Fields(options)
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if !strings.HasPrefix(f, "-") || f == "-" {
			return false
		}
		if f == "-D" || f == "-I" {
			if i+1 >= len(fields) {
				return false
			}
			i++
		}
	}
	return true
}
