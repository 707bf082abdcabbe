package cl

import (
	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/errors"
	"github.com/wippyai/cl-runtime/lifecycle"
)

// object is the immutable snapshot shared by every facade.
type object struct {
	rt     *Runtime
	attrs  *attr.Set
	target clruntime.Target
}

// Handle returns the native handle the facade describes.
func (o *object) Handle() clruntime.Handle {
	return o.target.Handle
}

// Target returns the query target of the facade.
func (o *object) Target() clruntime.Target {
	return o.target
}

// Attributes returns the decoded snapshot. Accessors never call the driver.
func (o *object) Attributes() *attr.Set {
	return o.attrs
}

// Runtime returns the runtime the facade was built by.
func (o *object) Runtime() *Runtime {
	return o.rt
}

// owned is an object holding one unit of ownership.
type owned struct {
	object
	ref *lifecycle.Ref
}

func (r *Runtime) ownedSnapshot(ref *lifecycle.Ref) owned {
	return r.ownedSnapshotOf(ref, clruntime.Target{Kind: ref.Kind(), Handle: ref.Handle()})
}

func (r *Runtime) ownedSnapshotOf(ref *lifecycle.Ref, t clruntime.Target) owned {
	return owned{object: r.snapshot(t), ref: ref}
}

// Handle returns the owned handle, or 0 once disposed.
func (o *owned) Handle() clruntime.Handle {
	return o.ref.Handle()
}

// Dispose releases the facade's unit of ownership. It is idempotent.
func (o *owned) Dispose() {
	o.ref.Dispose()
}

// Disposed reports whether Dispose has run.
func (o *owned) Disposed() bool {
	return o.ref.Disposed()
}

func (o *owned) clone() (*lifecycle.Ref, error) {
	return o.ref.Clone()
}

func (o *owned) live(phase errors.Phase, op string) (clruntime.Handle, error) {
	h := o.ref.Handle()
	if !h.IsValid() {
		return 0, errors.New(phase, errors.KindInvalidHandle).
			Object(o.target).
			Op(op).
			Detail("facade disposed").
			Build()
	}
	return h, nil
}
