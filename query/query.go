package query

import (
	"go.uber.org/zap"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/errors"
)

// Result is the outcome of one attribute query.
type Result struct {
	// Data holds exactly the bytes the runtime wrote.
	Data []byte
	// Size is the size the runtime reported for Data.
	Size int
}

// Info fetches a variable-length attribute with the two-phase protocol.
func Info(drv clruntime.Driver, t clruntime.Target, param clruntime.ParamName) (Result, error) {
	if err := checkTarget(t); err != nil {
		return Result{}, err
	}
	size := 0
	if st := drv.GetInfo(t, param, nil, &size); !st.OK() {
		return Result{}, statusErr(t, param, "size query", st)
	}
	if size < 0 {
		return Result{}, errors.InvalidData(errors.PhaseQuery, paramName(t.Kind, param),
			"negative size reported")
	}
	if size == 0 {
		Logger().Debug("empty attribute",
			zap.Stringer("target", t),
			zap.Stringer("param", param))
		return Result{Data: []byte{}}, nil
	}

	buf := make([]byte, size)
	written := size
	if st := drv.GetInfo(t, param, buf, &written); !st.OK() {
		return Result{}, statusErr(t, param, "value query", st)
	}
	if written > size {
		return Result{}, errors.SizeMismatch(errors.PhaseQuery, paramName(t.Kind, param), size, written)
	}

	Logger().Debug("attribute fetched",
		zap.Stringer("target", t),
		zap.Stringer("param", param),
		zap.Int("size", size),
		zap.Int("written", written))

	return Result{Data: buf[:written], Size: written}, nil
}

// Fixed fetches an attribute of known size in a single call.
func Fixed(drv clruntime.Driver, t clruntime.Target, param clruntime.ParamName, size int) (Result, error) {
	if err := checkTarget(t); err != nil {
		return Result{}, err
	}
	buf := make([]byte, size)
	written := size
	if st := drv.GetInfo(t, param, buf, &written); !st.OK() {
		return Result{}, statusErr(t, param, "value query", st)
	}
	if written > size {
		return Result{}, errors.SizeMismatch(errors.PhaseQuery, paramName(t.Kind, param), size, written)
	}
	return Result{Data: buf[:written], Size: written}, nil
}

// Fetch reads the raw buffer of the attribute described by d, in one call
// when its size is fixed and with the two-phase protocol otherwise.
func Fetch(drv clruntime.Driver, t clruntime.Target, d attr.Descriptor) (Result, error) {
	if d.Fixed() {
		return Fixed(drv, t, d.Param, d.Size)
	}
	return Info(drv, t, d.Param)
}

// Attribute fetches and decodes the attribute described by d.
func Attribute(drv clruntime.Driver, t clruntime.Target, d attr.Descriptor) (attr.Value, error) {
	res, err := Fetch(drv, t, d)
	if err != nil {
		return attr.Value{}, err
	}

	v, err := attr.Decode(res.Data, d)
	if err != nil {
		if e, ok := err.(*errors.Error); ok && e.Object == "" {
			e.Object = t.String()
		}
		return attr.Value{}, err
	}
	return v, nil
}

// Lookup fetches a registered attribute by id.
func Lookup(drv clruntime.Driver, t clruntime.Target, param clruntime.ParamName) (attr.Value, error) {
	d, ok := attr.Lookup(t.Kind, param)
	if !ok {
		return attr.Value{}, errors.UnknownAttribute(errors.PhaseQuery, t.String(), param.String())
	}
	return Attribute(drv, t, d)
}

// Snapshot queries every registered attribute of t. Failures do not abort
// the snapshot; they are recorded in the set and the attribute keeps its
// default. A target with a zero handle is never queried: every attribute
// records the invalid handle error.
func Snapshot(drv clruntime.Driver, t clruntime.Target) *attr.Set {
	b := attr.NewBuilder(t.Kind)
	reg := attr.For(t.Kind)
	if reg == nil {
		return b.Build()
	}

	if err := checkTarget(t); err != nil {
		Logger().Debug("snapshot of invalid target", zap.Stringer("target", t))
		for _, d := range reg.Descriptors() {
			b.Fail(d.Param, err)
		}
		return b.Build()
	}

	failed := 0
	for _, d := range reg.Descriptors() {
		v, err := Attribute(drv, t, d)
		if err != nil {
			failed++
			Logger().Debug("attribute unavailable",
				zap.Stringer("target", t),
				zap.String("param", d.Name),
				zap.Error(err))
			b.Fail(d.Param, err)
			continue
		}
		b.Put(d.Param, v)
	}

	if failed > 0 {
		Logger().Debug("snapshot degraded",
			zap.Stringer("target", t),
			zap.Int("failed", failed),
			zap.Int("total", reg.Len()))
	}
	return b.Build()
}

// checkTarget rejects targets naming a zero handle, including the device of
// a per-device target.
func checkTarget(t clruntime.Target) error {
	if !t.Handle.IsValid() || (t.Kind.PerDevice() && !t.Device.IsValid()) {
		return errors.InvalidHandle(errors.PhaseQuery, t.String())
	}
	return nil
}

func statusErr(t clruntime.Target, param clruntime.ParamName, op string, st clruntime.Status) *errors.Error {
	e := errors.Status(errors.PhaseQuery, op, st)
	e.Object = t.String()
	e.Param = paramName(t.Kind, param)
	return e
}

func paramName(kind clruntime.ObjectKind, p clruntime.ParamName) string {
	if d, ok := attr.Lookup(kind, p); ok {
		return d.Name
	}
	return p.String()
}
