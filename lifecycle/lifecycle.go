package lifecycle

import (
	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/errors"
)

// Retain adds one unit of ownership to h.
func Retain(drv Releaser, kind clruntime.ObjectKind, h clruntime.Handle) error {
	if !h.IsValid() {
		return errors.InvalidHandle(errors.PhaseLifecycle, kind.String())
	}
	if st := drv.Retain(kind, h); !st.OK() {
		e := errors.Status(errors.PhaseLifecycle, "Retain", st)
		e.Object = clruntime.Target{Kind: kind, Handle: h}.String()
		return e
	}
	return nil
}

// Release gives back one unit of ownership of h.
func Release(drv Releaser, kind clruntime.ObjectKind, h clruntime.Handle) error {
	if !h.IsValid() {
		return errors.InvalidHandle(errors.PhaseLifecycle, kind.String())
	}
	if st := drv.Release(kind, h); !st.OK() {
		e := errors.Status(errors.PhaseLifecycle, "Release", st)
		e.Object = clruntime.Target{Kind: kind, Handle: h}.String()
		return e
	}
	return nil
}
