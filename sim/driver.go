package sim

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/errors"
)

const (
	handleBase clruntime.Handle = 0x1000
	handleStep clruntime.Handle = 0x10
)

// Stats counts the entry points a Driver served.
type Stats struct {
	SizeQueries  int // GetInfo with a nil value buffer
	ValueQueries int // GetInfo with a value buffer
	Retains      int
	Releases     int
	Creates      int
}

type fault struct {
	kind  clruntime.ObjectKind
	param clruntime.ParamName
}

// Driver is an in-memory clruntime.Driver. It is safe for concurrent use.
type Driver struct {
	objects      map[clruntime.Handle]*object
	faults       map[fault]clruntime.Status
	createFaults map[clruntime.ObjectKind]clruntime.Status
	releases     map[clruntime.Handle]int
	log          *zap.Logger
	platforms    []clruntime.Handle
	stats        Stats
	next         clruntime.Handle
	mu           sync.Mutex
}

var _ clruntime.Driver = (*Driver)(nil)

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger for this driver instead of the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) {
		d.log = l
	}
}

func newDriver(opts ...Option) *Driver {
	d := &Driver{
		objects:      make(map[clruntime.Handle]*object),
		faults:       make(map[fault]clruntime.Status),
		createFaults: make(map[clruntime.ObjectKind]clruntime.Status),
		releases:     make(map[clruntime.Handle]int),
		next:         handleBase,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = Logger()
	}
	return d
}

// New builds a driver exposing the platforms and devices of f.
func New(f *Fixture, opts ...Option) (*Driver, error) {
	d := newDriver(opts...)
	for i, ps := range f.Platforms {
		static, missing, err := encodeAttributes(clruntime.KindPlatform, ps.Attributes, ps.Unsupported)
		if err != nil {
			return nil, withObject(err, "platform", i)
		}
		p := d.addPlatform(static, missing)

		for j, ds := range ps.Devices {
			typ, ok := clruntime.ParseDeviceType(ds.Type)
			if !ok || typ == clruntime.DeviceTypeAll {
				return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
					Detail("platform %d device %d: unknown device type %q", i, j, ds.Type).
					Build()
			}
			static, missing, err := encodeAttributes(clruntime.KindDevice, ds.Attributes, ds.Unsupported)
			if err != nil {
				return nil, withObject(err, "device", j)
			}
			d.addDevice(p, typ, static, missing)
		}
	}

	d.log.Debug("simulated runtime ready",
		zap.Int("platforms", len(d.platforms)),
		zap.Int("objects", len(d.objects)))
	return d, nil
}

// NewDefault builds a driver from DefaultFixture.
func NewDefault(opts ...Option) *Driver {
	d, err := New(DefaultFixture(), opts...)
	if err != nil {
		panic("sim: default fixture: " + err.Error())
	}
	return d
}

func encodeAttributes(kind clruntime.ObjectKind, values map[string]any, unsupported []string) (map[clruntime.ParamName][]byte, map[clruntime.ParamName]clruntime.Status, error) {
	reg := attr.For(kind)
	static := make(map[clruntime.ParamName][]byte, len(values))
	missing := make(map[clruntime.ParamName]clruntime.Status, len(unsupported))

	for name, v := range values {
		desc, ok := reg.ByName(name)
		if !ok {
			return nil, nil, errors.UnknownAttribute(errors.PhaseLoad, kind.String(), name)
		}
		raw, err := attr.Encode(desc, v)
		if err != nil {
			return nil, nil, err
		}
		static[desc.Param] = raw
	}
	for _, name := range unsupported {
		desc, ok := reg.ByName(name)
		if !ok {
			return nil, nil, errors.UnknownAttribute(errors.PhaseLoad, kind.String(), name)
		}
		missing[desc.Param] = clruntime.InvalidValue
	}
	return static, missing, nil
}

func withObject(err error, what string, index int) error {
	if e, ok := err.(*errors.Error); ok && e.Object == "" {
		e.Object = fmt.Sprintf("%s[%d]", what, index)
	}
	return err
}

func (d *Driver) alloc(o *object) clruntime.Handle {
	h := d.next
	d.next += handleStep
	o.handle = h
	d.objects[h] = o
	return h
}

func (d *Driver) addPlatform(static map[clruntime.ParamName][]byte, missing map[clruntime.ParamName]clruntime.Status) clruntime.Handle {
	h := d.alloc(&object{kind: clruntime.KindPlatform, refs: 1, static: static, missing: missing})
	d.platforms = append(d.platforms, h)
	return h
}

func (d *Driver) addDevice(platform clruntime.Handle, typ clruntime.DeviceType, static map[clruntime.ParamName][]byte, missing map[clruntime.ParamName]clruntime.Status) clruntime.Handle {
	o := &object{
		kind:    clruntime.KindDevice,
		refs:    1,
		static:  static,
		missing: missing,
		parent:  platform,
		devType: typ,
	}
	h := d.alloc(o)
	d.setStatic(o, attr.DeviceType, uint64(typ))
	d.setStatic(o, attr.DevicePlatform, platform)
	if _, ok := static[attr.DeviceParentDevice]; !ok {
		d.setStatic(o, attr.DeviceParentDevice, clruntime.Handle(0))
	}
	return h
}

func (d *Driver) setStatic(o *object, p clruntime.ParamName, v any) {
	desc, _ := attr.Lookup(o.kind, p)
	raw, err := attr.Encode(desc, v)
	if err != nil {
		panic("sim: cannot encode derived attribute: " + err.Error())
	}
	o.static[p] = raw
	delete(o.missing, p)
}

// Fail makes every query of param on objects of kind return st until Heal.
func (d *Driver) Fail(kind clruntime.ObjectKind, param clruntime.ParamName, st clruntime.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.faults[fault{kind, param}] = st
}

// Heal removes a fault installed by Fail.
func (d *Driver) Heal(kind clruntime.ObjectKind, param clruntime.ParamName) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.faults, fault{kind, param})
}

// FailCreate makes creation of kind return st. Success clears the fault.
func (d *Driver) FailCreate(kind clruntime.ObjectKind, st clruntime.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st.OK() {
		delete(d.createFaults, kind)
		return
	}
	d.createFaults[kind] = st
}

// Stats returns a copy of the call counters.
func (d *Driver) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// ResetStats zeroes the call counters, including per-handle release counts.
func (d *Driver) ResetStats() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats = Stats{}
	d.releases = make(map[clruntime.Handle]int)
}

// ReleaseCount returns how many Release calls named h, successful or not.
func (d *Driver) ReleaseCount(h clruntime.Handle) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.releases[h]
}

// RefCount returns the application reference count of h. ok is false once
// the count has dropped to zero.
func (d *Driver) RefCount(h clruntime.Handle) (count int, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	o := d.objects[h]
	if o == nil || o.dead {
		return 0, false
	}
	return o.refs, true
}

// Live returns the number of objects created through the driver that still
// exist, including those kept only by dependents.
func (d *Driver) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, o := range d.objects {
		if o.kind != clruntime.KindPlatform && o.kind != clruntime.KindDevice {
			n++
		}
	}
	return n
}

// lookup resolves a live object of kind. The caller holds d.mu.
func (d *Driver) lookup(kind clruntime.ObjectKind, h clruntime.Handle) (*object, clruntime.Status) {
	o := d.objects[h]
	if o == nil || o.kind != kind || o.dead {
		return nil, clruntime.InvalidStatus(kind)
	}
	return o, clruntime.Success
}

// PlatformIDs implements clruntime.Driver.
func (d *Driver) PlatformIDs(out []clruntime.Handle, num *uint32) clruntime.Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	if out == nil && num == nil {
		return clruntime.InvalidValue
	}
	if out != nil && len(out) == 0 {
		return clruntime.InvalidValue
	}
	if len(d.platforms) == 0 {
		return clruntime.PlatformNotFoundKHR
	}
	if num != nil {
		*num = uint32(len(d.platforms))
	}
	copy(out, d.platforms)
	return clruntime.Success
}

// DeviceIDs implements clruntime.Driver.
func (d *Driver) DeviceIDs(platform clruntime.Handle, typ clruntime.DeviceType, out []clruntime.Handle, num *uint32) clruntime.Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, st := d.lookup(clruntime.KindPlatform, platform); !st.OK() {
		return st
	}
	if out == nil && num == nil {
		return clruntime.InvalidValue
	}
	if out != nil && len(out) == 0 {
		return clruntime.InvalidValue
	}
	if typ == 0 || typ&^clruntime.DeviceTypeAll != 0 {
		return clruntime.InvalidDeviceType
	}

	matched := d.devicesOf(platform, typ)
	if len(matched) == 0 {
		return clruntime.DeviceNotFound
	}
	if num != nil {
		*num = uint32(len(matched))
	}
	copy(out, matched)
	return clruntime.Success
}

func (d *Driver) devicesOf(platform clruntime.Handle, typ clruntime.DeviceType) []clruntime.Handle {
	var all []clruntime.Handle
	for h := handleBase; h < d.next; h += handleStep {
		o := d.objects[h]
		if o != nil && o.kind == clruntime.KindDevice && o.parent == platform {
			all = append(all, h)
		}
	}

	switch {
	case typ == clruntime.DeviceTypeAll:
		return all
	case typ == clruntime.DeviceTypeDefault:
		for _, h := range all {
			if d.objects[h].devType&clruntime.DeviceTypeDefault != 0 {
				return []clruntime.Handle{h}
			}
		}
		if len(all) > 0 {
			return all[:1]
		}
		return nil
	}

	var out []clruntime.Handle
	for _, h := range all {
		if d.objects[h].devType&typ != 0 {
			out = append(out, h)
		}
	}
	return out
}

// GetInfo implements clruntime.Driver.
func (d *Driver) GetInfo(t clruntime.Target, param clruntime.ParamName, value []byte, sizeRet *int) clruntime.Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	if value == nil {
		d.stats.SizeQueries++
	} else {
		d.stats.ValueQueries++
	}

	o, st := d.lookup(t.Kind.Owner(), t.Handle)
	if !st.OK() {
		return st
	}
	if st, ok := d.faults[fault{t.Kind, param}]; ok {
		return st
	}

	data, st := d.info(o, t, param)
	if !st.OK() {
		return st
	}

	if value == nil && sizeRet == nil {
		return clruntime.InvalidValue
	}
	if value != nil {
		if len(value) < len(data) {
			return clruntime.InvalidValue
		}
		copy(value, data)
	}
	if sizeRet != nil {
		*sizeRet = len(data)
	}
	return clruntime.Success
}

// Retain implements clruntime.Driver. Root devices accept retain and release
// without effect; platforms are not reference counted.
func (d *Driver) Retain(kind clruntime.ObjectKind, h clruntime.Handle) clruntime.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats.Retains++

	switch {
	case kind == clruntime.KindPlatform || kind.PerDevice():
		return clruntime.InvalidValue
	case kind == clruntime.KindDevice:
		_, st := d.lookup(kind, h)
		return st
	}

	o, st := d.lookup(kind, h)
	if !st.OK() {
		return st
	}
	o.refs++
	return clruntime.Success
}

// Release implements clruntime.Driver.
func (d *Driver) Release(kind clruntime.ObjectKind, h clruntime.Handle) clruntime.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats.Releases++
	d.releases[h]++

	switch {
	case kind == clruntime.KindPlatform || kind.PerDevice():
		return clruntime.InvalidValue
	case kind == clruntime.KindDevice:
		_, st := d.lookup(kind, h)
		return st
	}

	o, st := d.lookup(kind, h)
	if !st.OK() {
		return st
	}
	o.refs--
	if o.refs == 0 {
		o.dead = true
		d.log.Debug("object released",
			zap.Stringer("kind", o.kind),
			zap.Stringer("handle", h),
			zap.Int("dependents", o.children))
		d.collect(o)
	}
	return clruntime.Success
}

// collect drops o once neither the application nor a dependent holds it,
// then gives back the implicit reference o held on its parent.
func (d *Driver) collect(o *object) {
	if !o.dead || o.children > 0 {
		return
	}
	delete(d.objects, o.handle)
	if !o.parent.IsValid() || o.kind == clruntime.KindDevice {
		return
	}
	if p := d.objects[o.parent]; p != nil {
		p.children--
		d.collect(p)
	}
}

// adopt registers a new object owned by the caller, holding an implicit
// reference on parent.
func (d *Driver) adopt(o *object, parent *object) clruntime.Handle {
	o.refs = 1
	if parent != nil {
		o.parent = parent.handle
		parent.children++
	}
	d.stats.Creates++
	h := d.alloc(o)
	d.log.Debug("object created", zap.Stringer("kind", o.kind), zap.Stringer("handle", h))
	return h
}

func (d *Driver) createFault(kind clruntime.ObjectKind) clruntime.Status {
	if st, ok := d.createFaults[kind]; ok {
		return st
	}
	return clruntime.Success
}

// deviceValue decodes a static device attribute.
func (d *Driver) deviceValue(dev clruntime.Handle, p clruntime.ParamName) (attr.Value, bool) {
	o := d.objects[dev]
	if o == nil || o.kind != clruntime.KindDevice {
		return attr.Value{}, false
	}
	raw, ok := o.static[p]
	if !ok {
		return attr.Value{}, false
	}
	desc, _ := attr.Lookup(clruntime.KindDevice, p)
	v, err := attr.Decode(raw, desc)
	if err != nil {
		return attr.Value{}, false
	}
	return v, true
}
