package cl

import (
	"go.uber.org/zap"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/errors"
	"github.com/wippyai/cl-runtime/lifecycle"
	"github.com/wippyai/cl-runtime/query"
)

// Runtime is the entry point to a driver. It carries no native state of its
// own and is safe for concurrent use.
type Runtime struct {
	drv    clruntime.Driver
	ledger *lifecycle.Ledger
	log    *zap.Logger
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used by this runtime's facades.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runtime) {
		r.log = l
	}
}

// WithLedger records every ownership unit the runtime's facades hold.
func WithLedger(l *lifecycle.Ledger) Option {
	return func(r *Runtime) {
		r.ledger = l
	}
}

// New wraps drv.
func New(drv clruntime.Driver, opts ...Option) *Runtime {
	r := &Runtime{drv: drv}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = Logger()
	}
	return r
}

// Driver returns the wrapped driver.
func (r *Runtime) Driver() clruntime.Driver {
	return r.drv
}

// Ledger returns the ledger set with WithLedger, or nil.
func (r *Runtime) Ledger() *lifecycle.Ledger {
	return r.ledger
}

// Platforms enumerates the available platforms. Enumeration transfers no
// ownership.
func (r *Runtime) Platforms() ([]*Platform, error) {
	hs, err := query.PlatformIDs(r.drv)
	if err != nil {
		return nil, err
	}
	out := make([]*Platform, len(hs))
	for i, h := range hs {
		out[i] = r.Platform(h)
	}
	return out, nil
}

// Platform builds the facade of a known platform handle.
func (r *Runtime) Platform(h clruntime.Handle) *Platform {
	return &Platform{object: r.snapshot(clruntime.Target{Kind: clruntime.KindPlatform, Handle: h})}
}

// Device builds the facade of a known device handle.
func (r *Runtime) Device(h clruntime.Handle) *Device {
	return &Device{object: r.snapshot(clruntime.Target{Kind: clruntime.KindDevice, Handle: h})}
}

// Query runs the two-phase protocol for any attribute, modelled or not.
func (r *Runtime) Query(t clruntime.Target, param clruntime.ParamName) (query.Result, error) {
	return query.Info(r.drv, t, param)
}

// Attribute queries and decodes one registered attribute.
func (r *Runtime) Attribute(t clruntime.Target, param clruntime.ParamName) (attr.Value, error) {
	return query.Lookup(r.drv, t, param)
}

// CreateContext creates a context spanning devices.
func (r *Runtime) CreateContext(devices ...*Device) (*Context, error) {
	if len(devices) == 0 {
		return nil, errors.InvalidInput(errors.PhaseCreate, "context needs at least one device")
	}
	h, st := r.drv.CreateContext(deviceHandles(devices))
	if err := created(clruntime.KindContext, "CreateContext", h, st); err != nil {
		return nil, err
	}
	return r.newContext(r.own(clruntime.KindContext, h)), nil
}

func (r *Runtime) own(kind clruntime.ObjectKind, h clruntime.Handle) *lifecycle.Ref {
	return lifecycle.Own(r.drv, kind, h, r.ledger)
}

func (r *Runtime) snapshot(t clruntime.Target) object {
	set := query.Snapshot(r.drv, t)
	if failed := set.Failed(); len(failed) > 0 {
		r.log.Debug("facade built with defaults",
			zap.Stringer("target", t),
			zap.Int("failed", len(failed)),
			zap.Int("decoded", set.Len()))
	}
	return object{rt: r, target: t, attrs: set}
}

func created(kind clruntime.ObjectKind, op string, h clruntime.Handle, st clruntime.Status) error {
	if !st.OK() {
		e := errors.Status(errors.PhaseCreate, op, st)
		e.Object = kind.String()
		return e
	}
	if !h.IsValid() {
		return errors.InvalidHandle(errors.PhaseCreate, kind.String())
	}
	return nil
}

func mutated(t clruntime.Target, op string, st clruntime.Status) error {
	if st.OK() {
		return nil
	}
	e := errors.Status(errors.PhaseMutate, op, st)
	e.Object = t.String()
	return e
}

func deviceHandles(devices []*Device) []clruntime.Handle {
	hs := make([]clruntime.Handle, len(devices))
	for i, d := range devices {
		hs[i] = d.Handle()
	}
	return hs
}
