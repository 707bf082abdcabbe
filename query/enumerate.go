package query

import (
	"go.uber.org/zap"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/errors"
)

// PlatformIDs lists every platform the driver exposes. No platforms is an
// empty list, not an error.
func PlatformIDs(drv clruntime.Driver) ([]clruntime.Handle, error) {
	var n uint32
	st := drv.PlatformIDs(nil, &n)
	if st == clruntime.PlatformNotFoundKHR {
		return []clruntime.Handle{}, nil
	}
	if !st.OK() {
		return nil, errors.Status(errors.PhaseEnumerate, "PlatformIDs count", st)
	}
	if n == 0 {
		return []clruntime.Handle{}, nil
	}

	out := make([]clruntime.Handle, n)
	if st := drv.PlatformIDs(out, &n); !st.OK() {
		return nil, errors.Status(errors.PhaseEnumerate, "PlatformIDs", st)
	}
	if int(n) < len(out) {
		out = out[:n]
	}
	Logger().Debug("platforms enumerated", zap.Int("count", len(out)))
	return out, nil
}

// DeviceIDs lists the devices of platform matching typ. A platform without
// matching devices yields an empty list.
func DeviceIDs(drv clruntime.Driver, platform clruntime.Handle, typ clruntime.DeviceType) ([]clruntime.Handle, error) {
	if !platform.IsValid() {
		return nil, errors.InvalidHandle(errors.PhaseEnumerate, clruntime.Target{Kind: clruntime.KindPlatform}.String())
	}
	var n uint32
	st := drv.DeviceIDs(platform, typ, nil, &n)
	if st == clruntime.DeviceNotFound {
		return []clruntime.Handle{}, nil
	}
	if !st.OK() {
		e := errors.Status(errors.PhaseEnumerate, "DeviceIDs count", st)
		e.Object = platform.String()
		return nil, e
	}
	if n == 0 {
		return []clruntime.Handle{}, nil
	}

	out := make([]clruntime.Handle, n)
	if st := drv.DeviceIDs(platform, typ, out, &n); !st.OK() {
		e := errors.Status(errors.PhaseEnumerate, "DeviceIDs", st)
		e.Object = platform.String()
		return nil, e
	}
	if int(n) < len(out) {
		out = out[:n]
	}
	Logger().Debug("devices enumerated",
		zap.Stringer("platform", platform),
		zap.Stringer("type", typ),
		zap.Int("count", len(out)))
	return out, nil
}
