package attr

import clruntime "github.com/wippyai/cl-runtime"

type ParamName = clruntime.ParamName

// Platform attributes.
const (
	PlatformProfile               ParamName = 0x0900
	PlatformVersion               ParamName = 0x0901
	PlatformName                  ParamName = 0x0902
	PlatformVendor                ParamName = 0x0903
	PlatformExtensions            ParamName = 0x0904
	PlatformHostTimerResolution   ParamName = 0x0905
	PlatformNumericVersion        ParamName = 0x0906
	PlatformExtensionsWithVersion ParamName = 0x0907
)

// Device attributes.
const (
	DeviceType                     ParamName = 0x1000
	DeviceVendorID                 ParamName = 0x1001
	DeviceMaxComputeUnits          ParamName = 0x1002
	DeviceMaxWorkItemDimensions    ParamName = 0x1003
	DeviceMaxWorkGroupSize         ParamName = 0x1004
	DeviceMaxWorkItemSizes         ParamName = 0x1005
	DevicePreferredVectorWidthChar ParamName = 0x1006
	DevicePreferredVectorWidthInt  ParamName = 0x1008
	DevicePreferredVectorWidthFlt  ParamName = 0x100A
	DeviceMaxClockFrequency        ParamName = 0x100C
	DeviceAddressBits              ParamName = 0x100D
	DeviceMaxReadImageArgs         ParamName = 0x100E
	DeviceMaxWriteImageArgs        ParamName = 0x100F
	DeviceMaxMemAllocSize          ParamName = 0x1010
	DeviceImage2DMaxWidth          ParamName = 0x1011
	DeviceImage2DMaxHeight         ParamName = 0x1012
	DeviceImageSupport             ParamName = 0x1016
	DeviceMaxParameterSize         ParamName = 0x1017
	DeviceMaxSamplers              ParamName = 0x1018
	DeviceMemBaseAddrAlign         ParamName = 0x1019
	DeviceSingleFPConfig           ParamName = 0x101B
	DeviceGlobalMemCacheType       ParamName = 0x101C
	DeviceGlobalMemCachelineSize   ParamName = 0x101D
	DeviceGlobalMemCacheSize       ParamName = 0x101E
	DeviceGlobalMemSize            ParamName = 0x101F
	DeviceMaxConstantBufferSize    ParamName = 0x1020
	DeviceMaxConstantArgs          ParamName = 0x1021
	DeviceLocalMemType             ParamName = 0x1022
	DeviceLocalMemSize             ParamName = 0x1023
	DeviceErrorCorrectionSupport   ParamName = 0x1024
	DeviceProfilingTimerResolution ParamName = 0x1025
	DeviceEndianLittle             ParamName = 0x1026
	DeviceAvailable                ParamName = 0x1027
	DeviceCompilerAvailable        ParamName = 0x1028
	DeviceExecutionCapabilities    ParamName = 0x1029
	DeviceQueueProperties          ParamName = 0x102A
	DeviceName                     ParamName = 0x102B
	DeviceVendor                   ParamName = 0x102C
	DeviceDriverVersion            ParamName = 0x102D
	DeviceProfile                  ParamName = 0x102E
	DeviceVersion                  ParamName = 0x102F
	DeviceExtensions               ParamName = 0x1030
	DevicePlatform                 ParamName = 0x1031
	DeviceDoubleFPConfig           ParamName = 0x1032
	DeviceHostUnifiedMemory        ParamName = 0x1035
	DeviceOpenCLCVersion           ParamName = 0x103D
	DeviceLinkerAvailable          ParamName = 0x103E
	DeviceBuiltInKernels           ParamName = 0x103F
	DeviceParentDevice             ParamName = 0x1042
	DeviceReferenceCount           ParamName = 0x1047
)

// Context attributes.
const (
	ContextReferenceCount ParamName = 0x1080
	ContextDevices        ParamName = 0x1081
	ContextProperties     ParamName = 0x1082
	ContextNumDevices     ParamName = 0x1083
)

// Command queue attributes.
const (
	QueueContext        ParamName = 0x1090
	QueueDevice         ParamName = 0x1091
	QueueReferenceCount ParamName = 0x1092
	QueueProperties     ParamName = 0x1093
)

// Memory object attributes.
const (
	MemType                ParamName = 0x1100
	MemFlags               ParamName = 0x1101
	MemSize                ParamName = 0x1102
	MemHostPtr             ParamName = 0x1103
	MemMapCount            ParamName = 0x1104
	MemReferenceCount      ParamName = 0x1105
	MemContext             ParamName = 0x1106
	MemAssociatedMemObject ParamName = 0x1107
	MemOffset              ParamName = 0x1108
)

// Sampler attributes.
const (
	SamplerReferenceCount   ParamName = 0x1150
	SamplerContext          ParamName = 0x1151
	SamplerNormalizedCoords ParamName = 0x1152
	SamplerAddressingMode   ParamName = 0x1153
	SamplerFilterMode       ParamName = 0x1154
)

// Program attributes.
const (
	ProgramReferenceCount ParamName = 0x1160
	ProgramContext        ParamName = 0x1161
	ProgramNumDevices     ParamName = 0x1162
	ProgramDevices        ParamName = 0x1163
	ProgramSource         ParamName = 0x1164
	ProgramBinarySizes    ParamName = 0x1165
	ProgramNumKernels     ParamName = 0x1167
	ProgramKernelNames    ParamName = 0x1168
)

// Program build attributes, queried per device.
const (
	ProgramBuildStatus     ParamName = 0x1181
	ProgramBuildOptions    ParamName = 0x1182
	ProgramBuildLog        ParamName = 0x1183
	ProgramBuildBinaryType ParamName = 0x1184
)

// Kernel attributes.
const (
	KernelFunctionName   ParamName = 0x1190
	KernelNumArgs        ParamName = 0x1191
	KernelReferenceCount ParamName = 0x1192
	KernelContext        ParamName = 0x1193
	KernelProgram        ParamName = 0x1194
	KernelAttributes     ParamName = 0x1195
)

// Kernel work-group attributes, queried per device.
const (
	KernelWorkGroupSize                  ParamName = 0x11B0
	KernelCompileWorkGroupSize           ParamName = 0x11B1
	KernelLocalMemSize                   ParamName = 0x11B2
	KernelPreferredWorkGroupSizeMultiple ParamName = 0x11B3
	KernelPrivateMemSize                 ParamName = 0x11B4
)

// Event attributes.
const (
	EventCommandQueue           ParamName = 0x11D0
	EventCommandType            ParamName = 0x11D1
	EventReferenceCount         ParamName = 0x11D2
	EventCommandExecutionStatus ParamName = 0x11D3
	EventContext                ParamName = 0x11D4
)
