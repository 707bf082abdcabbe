package clruntime

// Command queue properties.
const (
	QueueOutOfOrderExecModeEnable uint64 = 1 << 0
	QueueProfilingEnable          uint64 = 1 << 1
)

// Memory object flags.
const (
	MemReadWrite    uint64 = 1 << 0
	MemWriteOnly    uint64 = 1 << 1
	MemReadOnly     uint64 = 1 << 2
	MemUseHostPtr   uint64 = 1 << 3
	MemAllocHostPtr uint64 = 1 << 4
	MemCopyHostPtr  uint64 = 1 << 5
)

// MemObjectBuffer is the CL_MEM_TYPE of a buffer.
const MemObjectBuffer uint32 = 0x10F0

// Sampler addressing modes.
const (
	AddressNone           uint32 = 0x1130
	AddressClampToEdge    uint32 = 0x1131
	AddressClamp          uint32 = 0x1132
	AddressRepeat         uint32 = 0x1133
	AddressMirroredRepeat uint32 = 0x1134
)

// Sampler filter modes.
const (
	FilterNearest uint32 = 0x1140
	FilterLinear  uint32 = 0x1141
)

// BuildStatus is CL_PROGRAM_BUILD_STATUS.
type BuildStatus int32

const (
	BuildSuccess    BuildStatus = 0
	BuildNone       BuildStatus = -1
	BuildError      BuildStatus = -2
	BuildInProgress BuildStatus = -3
)

func (s BuildStatus) String() string {
	switch s {
	case BuildSuccess:
		return "success"
	case BuildNone:
		return "none"
	case BuildError:
		return "error"
	case BuildInProgress:
		return "in-progress"
	}
	return "unknown"
}

// Program binary types.
const (
	BinaryTypeNone           uint32 = 0x0
	BinaryTypeCompiledObject uint32 = 0x1
	BinaryTypeLibrary        uint32 = 0x2
	BinaryTypeExecutable     uint32 = 0x4
)

// ExecStatus is CL_EVENT_COMMAND_EXECUTION_STATUS. Negative values are
// error codes.
type ExecStatus int32

const (
	ExecComplete  ExecStatus = 0
	ExecRunning   ExecStatus = 1
	ExecSubmitted ExecStatus = 2
	ExecQueued    ExecStatus = 3
)

func (s ExecStatus) String() string {
	switch {
	case s == ExecComplete:
		return "complete"
	case s == ExecRunning:
		return "running"
	case s == ExecSubmitted:
		return "submitted"
	case s == ExecQueued:
		return "queued"
	case s < 0:
		return "error(" + Status(s).String() + ")"
	}
	return "unknown"
}

// CommandUser is the CL_EVENT_COMMAND_TYPE of a user event.
const CommandUser uint32 = 0x1204
