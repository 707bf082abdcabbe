package cl

import (
	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/errors"
	"github.com/wippyai/cl-runtime/lifecycle"
)

// Context owns one reference to a native context.
type Context struct {
	owned
}

// ContextInfo is the typed view of a context snapshot.
type ContextInfo struct {
	Devices        []clruntime.Handle
	Properties     []byte
	ReferenceCount uint32
	NumDevices     uint32
}

func (r *Runtime) newContext(ref *lifecycle.Ref) *Context {
	return &Context{owned: r.ownedSnapshot(ref)}
}

// Info returns the decoded context attributes as of creation.
func (c *Context) Info() ContextInfo {
	s := c.attrs
	return ContextInfo{
		Devices:        s.Handles(attr.ContextDevices),
		Properties:     s.Bytes(attr.ContextProperties),
		ReferenceCount: s.Uint32(attr.ContextReferenceCount),
		NumDevices:     s.Uint32(attr.ContextNumDevices),
	}
}

// Devices returns facades for the devices the context spans.
func (c *Context) Devices() []*Device {
	hs := c.attrs.Handles(attr.ContextDevices)
	out := make([]*Device, len(hs))
	for i, h := range hs {
		out[i] = c.rt.Device(h)
	}
	return out
}

// Retain returns a second facade holding its own unit of ownership. Both
// must be disposed.
func (c *Context) Retain() (*Context, error) {
	ref, err := c.clone()
	if err != nil {
		return nil, err
	}
	return &Context{owned: owned{object: c.object, ref: ref}}, nil
}

// Refresh re-reads the context attributes. The result shares this facade's
// ownership unit.
func (c *Context) Refresh() (*Context, error) {
	if _, err := c.live(errors.PhaseQuery, "Refresh"); err != nil {
		return nil, err
	}
	return &Context{owned: c.rt.ownedSnapshot(c.ref)}, nil
}

func (c *Context) create(kind clruntime.ObjectKind, op string, fn func(clruntime.Handle) (clruntime.Handle, clruntime.Status)) (*lifecycle.Ref, error) {
	ctx, err := c.live(errors.PhaseCreate, op)
	if err != nil {
		return nil, err
	}
	h, st := fn(ctx)
	if err := created(kind, op, h, st); err != nil {
		return nil, err
	}
	return c.rt.own(kind, h), nil
}

// CreateCommandQueue creates a queue on dev with the given property bits.
func (c *Context) CreateCommandQueue(dev *Device, properties uint64) (*CommandQueue, error) {
	ref, err := c.create(clruntime.KindCommandQueue, "CreateCommandQueue", func(ctx clruntime.Handle) (clruntime.Handle, clruntime.Status) {
		return c.rt.drv.CreateCommandQueue(ctx, dev.Handle(), properties)
	})
	if err != nil {
		return nil, err
	}
	return &CommandQueue{owned: c.rt.ownedSnapshot(ref)}, nil
}

// CreateBuffer allocates a buffer of size bytes.
func (c *Context) CreateBuffer(flags uint64, size uint64) (*MemObject, error) {
	ref, err := c.create(clruntime.KindMem, "CreateBuffer", func(ctx clruntime.Handle) (clruntime.Handle, clruntime.Status) {
		return c.rt.drv.CreateBuffer(ctx, flags, size)
	})
	if err != nil {
		return nil, err
	}
	return &MemObject{owned: c.rt.ownedSnapshot(ref)}, nil
}

// CreateProgramWithSource creates a program from the concatenation of sources.
func (c *Context) CreateProgramWithSource(sources ...string) (*Program, error) {
	ref, err := c.create(clruntime.KindProgram, "CreateProgramWithSource", func(ctx clruntime.Handle) (clruntime.Handle, clruntime.Status) {
		return c.rt.drv.CreateProgramWithSource(ctx, sources)
	})
	if err != nil {
		return nil, err
	}
	return &Program{owned: c.rt.ownedSnapshot(ref)}, nil
}

// CreateSampler creates a sampler. addressing and filter take the
// Address* and Filter* constants.
func (c *Context) CreateSampler(normalized bool, addressing, filter uint32) (*Sampler, error) {
	ref, err := c.create(clruntime.KindSampler, "CreateSampler", func(ctx clruntime.Handle) (clruntime.Handle, clruntime.Status) {
		return c.rt.drv.CreateSampler(ctx, normalized, addressing, filter)
	})
	if err != nil {
		return nil, err
	}
	return &Sampler{owned: c.rt.ownedSnapshot(ref)}, nil
}

// CreateUserEvent creates an event whose status the host sets.
func (c *Context) CreateUserEvent() (*Event, error) {
	ref, err := c.create(clruntime.KindEvent, "CreateUserEvent", func(ctx clruntime.Handle) (clruntime.Handle, clruntime.Status) {
		return c.rt.drv.CreateUserEvent(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &Event{owned: c.rt.ownedSnapshot(ref)}, nil
}

// CommandQueue owns one reference to a native command queue.
type CommandQueue struct {
	owned
}

// QueueInfo is the typed view of a command queue snapshot.
type QueueInfo struct {
	Context        clruntime.Handle
	Device         clruntime.Handle
	Properties     uint64
	ReferenceCount uint32
}

// Info returns the decoded queue attributes.
func (q *CommandQueue) Info() QueueInfo {
	s := q.attrs
	return QueueInfo{
		Context:        s.Handle(attr.QueueContext),
		Device:         s.Handle(attr.QueueDevice),
		Properties:     s.Uint64(attr.QueueProperties),
		ReferenceCount: s.Uint32(attr.QueueReferenceCount),
	}
}

// OutOfOrder reports whether the queue executes commands out of order.
func (q *CommandQueue) OutOfOrder() bool {
	return q.attrs.Uint64(attr.QueueProperties)&clruntime.QueueOutOfOrderExecModeEnable != 0
}

// Profiling reports whether the queue records profiling information.
func (q *CommandQueue) Profiling() bool {
	return q.attrs.Uint64(attr.QueueProperties)&clruntime.QueueProfilingEnable != 0
}

// Retain returns a second facade holding its own unit of ownership.
func (q *CommandQueue) Retain() (*CommandQueue, error) {
	ref, err := q.clone()
	if err != nil {
		return nil, err
	}
	return &CommandQueue{owned: owned{object: q.object, ref: ref}}, nil
}

// MemObject owns one reference to a native memory object.
type MemObject struct {
	owned
}

// MemInfo is the typed view of a memory object snapshot.
type MemInfo struct {
	Context          clruntime.Handle
	AssociatedObject clruntime.Handle
	Flags            uint64
	Size             uint64
	HostPtr          uint64
	Offset           uint64
	Type             uint32
	MapCount         uint32
	ReferenceCount   uint32
}

// Info returns the decoded memory object attributes.
func (m *MemObject) Info() MemInfo {
	s := m.attrs
	return MemInfo{
		Context:          s.Handle(attr.MemContext),
		AssociatedObject: s.Handle(attr.MemAssociatedMemObject),
		Flags:            s.Uint64(attr.MemFlags),
		Size:             s.Uint64(attr.MemSize),
		HostPtr:          s.Uint64(attr.MemHostPtr),
		Offset:           s.Uint64(attr.MemOffset),
		Type:             s.Uint32(attr.MemType),
		MapCount:         s.Uint32(attr.MemMapCount),
		ReferenceCount:   s.Uint32(attr.MemReferenceCount),
	}
}

// Retain returns a second facade holding its own unit of ownership.
func (m *MemObject) Retain() (*MemObject, error) {
	ref, err := m.clone()
	if err != nil {
		return nil, err
	}
	return &MemObject{owned: owned{object: m.object, ref: ref}}, nil
}

// Sampler owns one reference to a native sampler.
type Sampler struct {
	owned
}

// SamplerInfo is the typed view of a sampler snapshot.
type SamplerInfo struct {
	Context          clruntime.Handle
	AddressingMode   uint32
	FilterMode       uint32
	ReferenceCount   uint32
	NormalizedCoords bool
}

// Info returns the decoded sampler attributes.
func (s *Sampler) Info() SamplerInfo {
	a := s.attrs
	return SamplerInfo{
		Context:          a.Handle(attr.SamplerContext),
		AddressingMode:   a.Uint32(attr.SamplerAddressingMode),
		FilterMode:       a.Uint32(attr.SamplerFilterMode),
		ReferenceCount:   a.Uint32(attr.SamplerReferenceCount),
		NormalizedCoords: a.Bool(attr.SamplerNormalizedCoords),
	}
}

// Retain returns a second facade holding its own unit of ownership.
func (s *Sampler) Retain() (*Sampler, error) {
	ref, err := s.clone()
	if err != nil {
		return nil, err
	}
	return &Sampler{owned: owned{object: s.object, ref: ref}}, nil
}
