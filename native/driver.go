//go:build opencl

package native

/*
#cgo linux pkg-config: OpenCL
#cgo darwin LDFLAGS: -framework OpenCL
#cgo windows LDFLAGS: -lOpenCL
#cgo CFLAGS: -DCL_TARGET_OPENCL_VERSION=300

#include <stdint.h>
#include <stdlib.h>

#ifdef __APPLE__
#include <OpenCL/opencl.h>
#else
#include <CL/cl.h>
#endif

// Handles cross the boundary as uintptr_t so Go never holds C pointers.

enum {
	kindPlatform,
	kindDevice,
	kindContext,
	kindCommandQueue,
	kindMem,
	kindProgram,
	kindProgramBuild,
	kindKernel,
	kindKernelWorkGroup,
	kindEvent,
	kindSampler,
};

static cl_int getInfo(int kind, uintptr_t h, uintptr_t dev, cl_uint param, size_t size, void *value, size_t *ret) {
	switch (kind) {
	case kindPlatform:
		return clGetPlatformInfo((cl_platform_id)h, param, size, value, ret);
	case kindDevice:
		return clGetDeviceInfo((cl_device_id)h, param, size, value, ret);
	case kindContext:
		return clGetContextInfo((cl_context)h, param, size, value, ret);
	case kindCommandQueue:
		return clGetCommandQueueInfo((cl_command_queue)h, param, size, value, ret);
	case kindMem:
		return clGetMemObjectInfo((cl_mem)h, param, size, value, ret);
	case kindProgram:
		return clGetProgramInfo((cl_program)h, param, size, value, ret);
	case kindProgramBuild:
		return clGetProgramBuildInfo((cl_program)h, (cl_device_id)dev, param, size, value, ret);
	case kindKernel:
		return clGetKernelInfo((cl_kernel)h, param, size, value, ret);
	case kindKernelWorkGroup:
		return clGetKernelWorkGroupInfo((cl_kernel)h, (cl_device_id)dev, param, size, value, ret);
	case kindEvent:
		return clGetEventInfo((cl_event)h, param, size, value, ret);
	case kindSampler:
		return clGetSamplerInfo((cl_sampler)h, param, size, value, ret);
	}
	return CL_INVALID_VALUE;
}

static cl_int retainObject(int kind, uintptr_t h) {
	switch (kind) {
	case kindDevice:
		return clRetainDevice((cl_device_id)h);
	case kindContext:
		return clRetainContext((cl_context)h);
	case kindCommandQueue:
		return clRetainCommandQueue((cl_command_queue)h);
	case kindMem:
		return clRetainMemObject((cl_mem)h);
	case kindProgram:
		return clRetainProgram((cl_program)h);
	case kindKernel:
		return clRetainKernel((cl_kernel)h);
	case kindEvent:
		return clRetainEvent((cl_event)h);
	case kindSampler:
		return clRetainSampler((cl_sampler)h);
	}
	return CL_INVALID_VALUE;
}

static cl_int releaseObject(int kind, uintptr_t h) {
	switch (kind) {
	case kindDevice:
		return clReleaseDevice((cl_device_id)h);
	case kindContext:
		return clReleaseContext((cl_context)h);
	case kindCommandQueue:
		return clReleaseCommandQueue((cl_command_queue)h);
	case kindMem:
		return clReleaseMemObject((cl_mem)h);
	case kindProgram:
		return clReleaseProgram((cl_program)h);
	case kindKernel:
		return clReleaseKernel((cl_kernel)h);
	case kindEvent:
		return clReleaseEvent((cl_event)h);
	case kindSampler:
		return clReleaseSampler((cl_sampler)h);
	}
	return CL_INVALID_VALUE;
}

static cl_int platformIDs(cl_uint n, uintptr_t *out, cl_uint *num) {
	return clGetPlatformIDs(n, (cl_platform_id *)out, num);
}

static cl_int deviceIDs(uintptr_t platform, cl_ulong typ, cl_uint n, uintptr_t *out, cl_uint *num) {
	return clGetDeviceIDs((cl_platform_id)platform, typ, n, (cl_device_id *)out, num);
}

static uintptr_t createContext(cl_uint n, uintptr_t *devices, cl_int *err) {
	return (uintptr_t)clCreateContext(NULL, n, (const cl_device_id *)devices, NULL, NULL, err);
}

static uintptr_t createQueue(uintptr_t ctx, uintptr_t dev, cl_ulong props, cl_int *err) {
	cl_queue_properties p[] = {CL_QUEUE_PROPERTIES, props, 0};
	return (uintptr_t)clCreateCommandQueueWithProperties((cl_context)ctx, (cl_device_id)dev, props ? p : NULL, err);
}

static uintptr_t createBuffer(uintptr_t ctx, cl_ulong flags, size_t size, cl_int *err) {
	return (uintptr_t)clCreateBuffer((cl_context)ctx, flags, size, NULL, err);
}

static uintptr_t createProgram(uintptr_t ctx, cl_uint n, char **sources, cl_int *err) {
	return (uintptr_t)clCreateProgramWithSource((cl_context)ctx, n, (const char **)sources, NULL, err);
}

static cl_int buildProgram(uintptr_t prog, cl_uint n, uintptr_t *devices, const char *options) {
	return clBuildProgram((cl_program)prog, n, (const cl_device_id *)devices, options, NULL, NULL);
}

static uintptr_t createKernel(uintptr_t prog, const char *name, cl_int *err) {
	return (uintptr_t)clCreateKernel((cl_program)prog, name, err);
}

static cl_int setKernelArg(uintptr_t k, cl_uint index, size_t size, const void *value) {
	return clSetKernelArg((cl_kernel)k, index, size, value);
}

static uintptr_t createSampler(uintptr_t ctx, cl_bool normalized, cl_uint addressing, cl_uint filter, cl_int *err) {
	cl_sampler_properties p[] = {
		CL_SAMPLER_NORMALIZED_COORDS, normalized,
		CL_SAMPLER_ADDRESSING_MODE, addressing,
		CL_SAMPLER_FILTER_MODE, filter,
		0,
	};
	return (uintptr_t)clCreateSamplerWithProperties((cl_context)ctx, p, err);
}

static uintptr_t createUserEvent(uintptr_t ctx, cl_int *err) {
	return (uintptr_t)clCreateUserEvent((cl_context)ctx, err);
}

static cl_int setUserEventStatus(uintptr_t ev, cl_int status) {
	return clSetUserEventStatus((cl_event)ev, status);
}
*/
import "C"

import (
	"unsafe"

	"go.uber.org/zap"

	clruntime "github.com/wippyai/cl-runtime"
)

// Available reports whether the package was built against a native runtime.
const Available = true

// Driver calls the installed OpenCL ICD loader.
type Driver struct {
	log *zap.Logger
}

// Open returns a driver bound to the system OpenCL library.
func Open() (*Driver, error) {
	d := &Driver{log: Logger()}
	var num C.cl_uint
	st := clruntime.Status(C.platformIDs(0, nil, &num))
	d.log.Debug("opened native driver", zap.Stringer("status", st), zap.Uint32("platforms", uint32(num)))
	return d, nil
}

func status(c C.cl_int) clruntime.Status {
	return clruntime.Status(c)
}

func handles(in []clruntime.Handle) *C.uintptr_t {
	if len(in) == 0 {
		return nil
	}
	return (*C.uintptr_t)(unsafe.Pointer(&in[0]))
}

func (d *Driver) PlatformIDs(out []clruntime.Handle, num *uint32) clruntime.Status {
	var n C.cl_uint
	st := status(C.platformIDs(C.cl_uint(len(out)), handles(out), &n))
	if num != nil {
		*num = uint32(n)
	}
	return st
}

func (d *Driver) DeviceIDs(platform clruntime.Handle, typ clruntime.DeviceType, out []clruntime.Handle, num *uint32) clruntime.Status {
	var n C.cl_uint
	st := status(C.deviceIDs(C.uintptr_t(platform), C.cl_ulong(typ), C.cl_uint(len(out)), handles(out), &n))
	if num != nil {
		*num = uint32(n)
	}
	return st
}

func (d *Driver) GetInfo(t clruntime.Target, param clruntime.ParamName, value []byte, sizeRet *int) clruntime.Status {
	var (
		ptr unsafe.Pointer
		ret C.size_t
	)
	if len(value) > 0 {
		ptr = unsafe.Pointer(&value[0])
	}
	retp := &ret
	if sizeRet == nil {
		retp = nil
	}
	st := status(C.getInfo(C.int(t.Kind), C.uintptr_t(t.Handle), C.uintptr_t(t.Device),
		C.cl_uint(param), C.size_t(len(value)), ptr, retp))
	if sizeRet != nil {
		*sizeRet = int(ret)
	}
	return st
}

func (d *Driver) Retain(kind clruntime.ObjectKind, h clruntime.Handle) clruntime.Status {
	return status(C.retainObject(C.int(kind), C.uintptr_t(h)))
}

func (d *Driver) Release(kind clruntime.ObjectKind, h clruntime.Handle) clruntime.Status {
	return status(C.releaseObject(C.int(kind), C.uintptr_t(h)))
}

func (d *Driver) CreateContext(devices []clruntime.Handle) (clruntime.Handle, clruntime.Status) {
	var err C.cl_int
	h := C.createContext(C.cl_uint(len(devices)), handles(devices), &err)
	return clruntime.Handle(h), status(err)
}

func (d *Driver) CreateCommandQueue(context, device clruntime.Handle, properties uint64) (clruntime.Handle, clruntime.Status) {
	var err C.cl_int
	h := C.createQueue(C.uintptr_t(context), C.uintptr_t(device), C.cl_ulong(properties), &err)
	return clruntime.Handle(h), status(err)
}

func (d *Driver) CreateBuffer(context clruntime.Handle, flags uint64, size uint64) (clruntime.Handle, clruntime.Status) {
	var err C.cl_int
	h := C.createBuffer(C.uintptr_t(context), C.cl_ulong(flags), C.size_t(size), &err)
	return clruntime.Handle(h), status(err)
}

func (d *Driver) CreateProgramWithSource(context clruntime.Handle, sources []string) (clruntime.Handle, clruntime.Status) {
	if len(sources) == 0 {
		return 0, clruntime.InvalidValue
	}
	cs := make([]*C.char, len(sources))
	for i, s := range sources {
		cs[i] = C.CString(s)
	}
	defer func() {
		for _, c := range cs {
			C.free(unsafe.Pointer(c))
		}
	}()

	var err C.cl_int
	h := C.createProgram(C.uintptr_t(context), C.cl_uint(len(cs)), &cs[0], &err)
	return clruntime.Handle(h), status(err)
}

func (d *Driver) BuildProgram(program clruntime.Handle, devices []clruntime.Handle, options string) clruntime.Status {
	opts := C.CString(options)
	defer C.free(unsafe.Pointer(opts))
	return status(C.buildProgram(C.uintptr_t(program), C.cl_uint(len(devices)), handles(devices), opts))
}

func (d *Driver) CreateKernel(program clruntime.Handle, name string) (clruntime.Handle, clruntime.Status) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var err C.cl_int
	h := C.createKernel(C.uintptr_t(program), cname, &err)
	return clruntime.Handle(h), status(err)
}

func (d *Driver) SetKernelArg(kernel clruntime.Handle, index uint32, value []byte) clruntime.Status {
	var ptr unsafe.Pointer
	if len(value) > 0 {
		ptr = unsafe.Pointer(&value[0])
	}
	return status(C.setKernelArg(C.uintptr_t(kernel), C.cl_uint(index), C.size_t(len(value)), ptr))
}

func (d *Driver) CreateSampler(context clruntime.Handle, normalized bool, addressing, filter uint32) (clruntime.Handle, clruntime.Status) {
	var n C.cl_bool
	if normalized {
		n = C.CL_TRUE
	}
	var err C.cl_int
	h := C.createSampler(C.uintptr_t(context), n, C.cl_uint(addressing), C.cl_uint(filter), &err)
	return clruntime.Handle(h), status(err)
}

func (d *Driver) CreateUserEvent(context clruntime.Handle) (clruntime.Handle, clruntime.Status) {
	var err C.cl_int
	h := C.createUserEvent(C.uintptr_t(context), &err)
	return clruntime.Handle(h), status(err)
}

func (d *Driver) SetUserEventStatus(event clruntime.Handle, status int32) clruntime.Status {
	return clruntime.Status(C.setUserEventStatus(C.uintptr_t(event), C.cl_int(status)))
}

var _ clruntime.Driver = (*Driver)(nil)
