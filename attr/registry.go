package attr

import (
	"slices"

	clruntime "github.com/wippyai/cl-runtime"
)

// Registry is the static attribute table of one resource kind.
// Adding an attribute is a table entry; decoding is driven by its Kind.
type Registry struct {
	byParam map[ParamName]int
	byName  map[string]int
	descs   []Descriptor
	kind    clruntime.ObjectKind
}

func newRegistry(kind clruntime.ObjectKind, descs ...Descriptor) *Registry {
	r := &Registry{
		kind:    kind,
		descs:   descs,
		byParam: make(map[ParamName]int, len(descs)),
		byName:  make(map[string]int, len(descs)),
	}
	for i, d := range descs {
		if _, dup := r.byParam[d.Param]; dup {
			panic("attr: duplicate param " + d.Name)
		}
		r.byParam[d.Param] = i
		r.byName[d.Name] = i
	}
	return r
}

// Kind returns the resource kind the registry describes.
func (r *Registry) Kind() clruntime.ObjectKind {
	return r.kind
}

// Descriptors returns the entries in registration order.
func (r *Registry) Descriptors() []Descriptor {
	return slices.Clone(r.descs)
}

// Len returns the number of registered attributes.
func (r *Registry) Len() int {
	return len(r.descs)
}

// ByParam looks up a descriptor by attribute identifier.
func (r *Registry) ByParam(p ParamName) (Descriptor, bool) {
	i, ok := r.byParam[p]
	if !ok {
		return Descriptor{}, false
	}
	return r.descs[i], true
}

// ByName looks up a descriptor by symbolic name (e.g. "CL_DEVICE_NAME").
func (r *Registry) ByName(name string) (Descriptor, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.descs[i], true
}

var registries = map[clruntime.ObjectKind]*Registry{
	clruntime.KindPlatform: newRegistry(clruntime.KindPlatform,
		str(PlatformProfile, "CL_PLATFORM_PROFILE"),
		str(PlatformVersion, "CL_PLATFORM_VERSION"),
		str(PlatformName, "CL_PLATFORM_NAME"),
		str(PlatformVendor, "CL_PLATFORM_VENDOR"),
		list(PlatformExtensions, "CL_PLATFORM_EXTENSIONS", ' '),
		u64(PlatformHostTimerResolution, "CL_PLATFORM_HOST_TIMER_RESOLUTION"),
		hex32(PlatformNumericVersion, "CL_PLATFORM_NUMERIC_VERSION"),
		raw(PlatformExtensionsWithVersion, "CL_PLATFORM_EXTENSIONS_WITH_VERSION"),
	),

	clruntime.KindDevice: newRegistry(clruntime.KindDevice,
		hex64(DeviceType, "CL_DEVICE_TYPE"),
		hex32(DeviceVendorID, "CL_DEVICE_VENDOR_ID"),
		u32(DeviceMaxComputeUnits, "CL_DEVICE_MAX_COMPUTE_UNITS"),
		u32(DeviceMaxWorkItemDimensions, "CL_DEVICE_MAX_WORK_ITEM_DIMENSIONS"),
		size(DeviceMaxWorkGroupSize, "CL_DEVICE_MAX_WORK_GROUP_SIZE"),
		sizes(DeviceMaxWorkItemSizes, "CL_DEVICE_MAX_WORK_ITEM_SIZES", 0),
		u32(DevicePreferredVectorWidthChar, "CL_DEVICE_PREFERRED_VECTOR_WIDTH_CHAR"),
		u32(DevicePreferredVectorWidthInt, "CL_DEVICE_PREFERRED_VECTOR_WIDTH_INT"),
		u32(DevicePreferredVectorWidthFlt, "CL_DEVICE_PREFERRED_VECTOR_WIDTH_FLOAT"),
		u32(DeviceMaxClockFrequency, "CL_DEVICE_MAX_CLOCK_FREQUENCY"),
		u32(DeviceAddressBits, "CL_DEVICE_ADDRESS_BITS"),
		u32(DeviceMaxReadImageArgs, "CL_DEVICE_MAX_READ_IMAGE_ARGS"),
		u32(DeviceMaxWriteImageArgs, "CL_DEVICE_MAX_WRITE_IMAGE_ARGS"),
		u64(DeviceMaxMemAllocSize, "CL_DEVICE_MAX_MEM_ALLOC_SIZE"),
		size(DeviceImage2DMaxWidth, "CL_DEVICE_IMAGE2D_MAX_WIDTH"),
		size(DeviceImage2DMaxHeight, "CL_DEVICE_IMAGE2D_MAX_HEIGHT"),
		boolean(DeviceImageSupport, "CL_DEVICE_IMAGE_SUPPORT"),
		size(DeviceMaxParameterSize, "CL_DEVICE_MAX_PARAMETER_SIZE"),
		u32(DeviceMaxSamplers, "CL_DEVICE_MAX_SAMPLERS"),
		u32(DeviceMemBaseAddrAlign, "CL_DEVICE_MEM_BASE_ADDR_ALIGN"),
		hex64(DeviceSingleFPConfig, "CL_DEVICE_SINGLE_FP_CONFIG"),
		u32(DeviceGlobalMemCacheType, "CL_DEVICE_GLOBAL_MEM_CACHE_TYPE"),
		u32(DeviceGlobalMemCachelineSize, "CL_DEVICE_GLOBAL_MEM_CACHELINE_SIZE"),
		u64(DeviceGlobalMemCacheSize, "CL_DEVICE_GLOBAL_MEM_CACHE_SIZE"),
		u64(DeviceGlobalMemSize, "CL_DEVICE_GLOBAL_MEM_SIZE"),
		u64(DeviceMaxConstantBufferSize, "CL_DEVICE_MAX_CONSTANT_BUFFER_SIZE"),
		u32(DeviceMaxConstantArgs, "CL_DEVICE_MAX_CONSTANT_ARGS"),
		u32(DeviceLocalMemType, "CL_DEVICE_LOCAL_MEM_TYPE"),
		u64(DeviceLocalMemSize, "CL_DEVICE_LOCAL_MEM_SIZE"),
		boolean(DeviceErrorCorrectionSupport, "CL_DEVICE_ERROR_CORRECTION_SUPPORT"),
		size(DeviceProfilingTimerResolution, "CL_DEVICE_PROFILING_TIMER_RESOLUTION"),
		boolean(DeviceEndianLittle, "CL_DEVICE_ENDIAN_LITTLE"),
		boolean(DeviceAvailable, "CL_DEVICE_AVAILABLE"),
		boolean(DeviceCompilerAvailable, "CL_DEVICE_COMPILER_AVAILABLE"),
		hex64(DeviceExecutionCapabilities, "CL_DEVICE_EXECUTION_CAPABILITIES"),
		hex64(DeviceQueueProperties, "CL_DEVICE_QUEUE_PROPERTIES"),
		str(DeviceName, "CL_DEVICE_NAME"),
		str(DeviceVendor, "CL_DEVICE_VENDOR"),
		str(DeviceDriverVersion, "CL_DRIVER_VERSION"),
		str(DeviceProfile, "CL_DEVICE_PROFILE"),
		str(DeviceVersion, "CL_DEVICE_VERSION"),
		list(DeviceExtensions, "CL_DEVICE_EXTENSIONS", ' '),
		handle(DevicePlatform, "CL_DEVICE_PLATFORM", clruntime.KindPlatform),
		hex64(DeviceDoubleFPConfig, "CL_DEVICE_DOUBLE_FP_CONFIG"),
		boolean(DeviceHostUnifiedMemory, "CL_DEVICE_HOST_UNIFIED_MEMORY"),
		str(DeviceOpenCLCVersion, "CL_DEVICE_OPENCL_C_VERSION"),
		boolean(DeviceLinkerAvailable, "CL_DEVICE_LINKER_AVAILABLE"),
		list(DeviceBuiltInKernels, "CL_DEVICE_BUILT_IN_KERNELS", ';'),
		handle(DeviceParentDevice, "CL_DEVICE_PARENT_DEVICE", clruntime.KindDevice),
		u32(DeviceReferenceCount, "CL_DEVICE_REFERENCE_COUNT"),
	),

	clruntime.KindContext: newRegistry(clruntime.KindContext,
		u32(ContextReferenceCount, "CL_CONTEXT_REFERENCE_COUNT"),
		handles(ContextDevices, "CL_CONTEXT_DEVICES", clruntime.KindDevice),
		raw(ContextProperties, "CL_CONTEXT_PROPERTIES"),
		u32(ContextNumDevices, "CL_CONTEXT_NUM_DEVICES"),
	),

	clruntime.KindCommandQueue: newRegistry(clruntime.KindCommandQueue,
		handle(QueueContext, "CL_QUEUE_CONTEXT", clruntime.KindContext),
		handle(QueueDevice, "CL_QUEUE_DEVICE", clruntime.KindDevice),
		u32(QueueReferenceCount, "CL_QUEUE_REFERENCE_COUNT"),
		hex64(QueueProperties, "CL_QUEUE_PROPERTIES"),
	),

	clruntime.KindMem: newRegistry(clruntime.KindMem,
		hex32(MemType, "CL_MEM_TYPE"),
		hex64(MemFlags, "CL_MEM_FLAGS"),
		size(MemSize, "CL_MEM_SIZE"),
		size(MemHostPtr, "CL_MEM_HOST_PTR"),
		u32(MemMapCount, "CL_MEM_MAP_COUNT"),
		u32(MemReferenceCount, "CL_MEM_REFERENCE_COUNT"),
		handle(MemContext, "CL_MEM_CONTEXT", clruntime.KindContext),
		handle(MemAssociatedMemObject, "CL_MEM_ASSOCIATED_MEMOBJECT", clruntime.KindMem),
		size(MemOffset, "CL_MEM_OFFSET"),
	),

	clruntime.KindSampler: newRegistry(clruntime.KindSampler,
		u32(SamplerReferenceCount, "CL_SAMPLER_REFERENCE_COUNT"),
		handle(SamplerContext, "CL_SAMPLER_CONTEXT", clruntime.KindContext),
		boolean(SamplerNormalizedCoords, "CL_SAMPLER_NORMALIZED_COORDS"),
		hex32(SamplerAddressingMode, "CL_SAMPLER_ADDRESSING_MODE"),
		hex32(SamplerFilterMode, "CL_SAMPLER_FILTER_MODE"),
	),

	clruntime.KindProgram: newRegistry(clruntime.KindProgram,
		u32(ProgramReferenceCount, "CL_PROGRAM_REFERENCE_COUNT"),
		handle(ProgramContext, "CL_PROGRAM_CONTEXT", clruntime.KindContext),
		u32(ProgramNumDevices, "CL_PROGRAM_NUM_DEVICES"),
		handles(ProgramDevices, "CL_PROGRAM_DEVICES", clruntime.KindDevice),
		str(ProgramSource, "CL_PROGRAM_SOURCE"),
		sizes(ProgramBinarySizes, "CL_PROGRAM_BINARY_SIZES", 0),
		size(ProgramNumKernels, "CL_PROGRAM_NUM_KERNELS"),
		list(ProgramKernelNames, "CL_PROGRAM_KERNEL_NAMES", ';'),
	),

	clruntime.KindProgramBuild: newRegistry(clruntime.KindProgramBuild,
		i32(ProgramBuildStatus, "CL_PROGRAM_BUILD_STATUS"),
		str(ProgramBuildOptions, "CL_PROGRAM_BUILD_OPTIONS"),
		str(ProgramBuildLog, "CL_PROGRAM_BUILD_LOG"),
		hex32(ProgramBuildBinaryType, "CL_PROGRAM_BINARY_TYPE"),
	),

	clruntime.KindKernel: newRegistry(clruntime.KindKernel,
		str(KernelFunctionName, "CL_KERNEL_FUNCTION_NAME"),
		u32(KernelNumArgs, "CL_KERNEL_NUM_ARGS"),
		u32(KernelReferenceCount, "CL_KERNEL_REFERENCE_COUNT"),
		handle(KernelContext, "CL_KERNEL_CONTEXT", clruntime.KindContext),
		handle(KernelProgram, "CL_KERNEL_PROGRAM", clruntime.KindProgram),
		list(KernelAttributes, "CL_KERNEL_ATTRIBUTES", ' '),
	),

	clruntime.KindKernelWorkGroup: newRegistry(clruntime.KindKernelWorkGroup,
		size(KernelWorkGroupSize, "CL_KERNEL_WORK_GROUP_SIZE"),
		sizes(KernelCompileWorkGroupSize, "CL_KERNEL_COMPILE_WORK_GROUP_SIZE", 3),
		u64(KernelLocalMemSize, "CL_KERNEL_LOCAL_MEM_SIZE"),
		size(KernelPreferredWorkGroupSizeMultiple, "CL_KERNEL_PREFERRED_WORK_GROUP_SIZE_MULTIPLE"),
		u64(KernelPrivateMemSize, "CL_KERNEL_PRIVATE_MEM_SIZE"),
	),

	clruntime.KindEvent: newRegistry(clruntime.KindEvent,
		handle(EventCommandQueue, "CL_EVENT_COMMAND_QUEUE", clruntime.KindCommandQueue),
		hex32(EventCommandType, "CL_EVENT_COMMAND_TYPE"),
		u32(EventReferenceCount, "CL_EVENT_REFERENCE_COUNT"),
		i32(EventCommandExecutionStatus, "CL_EVENT_COMMAND_EXECUTION_STATUS"),
		handle(EventContext, "CL_EVENT_CONTEXT", clruntime.KindContext),
	),
}

// For returns the registry of kind, or nil if the kind has none.
func For(kind clruntime.ObjectKind) *Registry {
	return registries[kind]
}

// Lookup finds a descriptor of kind by param.
func Lookup(kind clruntime.ObjectKind, p ParamName) (Descriptor, bool) {
	r := For(kind)
	if r == nil {
		return Descriptor{}, false
	}
	return r.ByParam(p)
}

// Find searches every registry for a symbolic name.
func Find(name string) (Descriptor, clruntime.ObjectKind, bool) {
	for _, kind := range clruntime.ObjectKinds() {
		if r := For(kind); r != nil {
			if d, ok := r.ByName(name); ok {
				return d, kind, true
			}
		}
	}
	return Descriptor{}, 0, false
}
