package capture

import (
	"time"

	"github.com/google/uuid"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/query"
)

// Capture is a recording of the raw attribute buffers of every platform and
// device a driver exposed at one point in time.
type Capture struct {
	ID        uuid.UUID  `cbor:"1,keyasint" yaml:"id"`
	Taken     time.Time  `cbor:"2,keyasint" yaml:"taken"`
	Driver    string     `cbor:"3,keyasint,omitempty" yaml:"driver,omitempty"`
	Platforms []Platform `cbor:"4,keyasint" yaml:"platforms"`
}

// Platform is one recorded platform.
type Platform struct {
	Handle     clruntime.Handle `cbor:"1,keyasint" yaml:"handle"`
	Attributes []Attribute      `cbor:"2,keyasint" yaml:"attributes"`
	Devices    []Device         `cbor:"3,keyasint" yaml:"devices"`
}

// Device is one recorded device.
type Device struct {
	Handle     clruntime.Handle `cbor:"1,keyasint" yaml:"handle"`
	Attributes []Attribute      `cbor:"2,keyasint" yaml:"attributes"`
}

// Attribute is the outcome of querying one registered attribute. Data is
// set when Status is Success.
type Attribute struct {
	Param  clruntime.ParamName `cbor:"1,keyasint" yaml:"param"`
	Name   string              `cbor:"2,keyasint" yaml:"name"`
	Status clruntime.Status    `cbor:"3,keyasint,omitempty" yaml:"status,omitempty"`
	Data   Bytes               `cbor:"4,keyasint,omitempty" yaml:"data,omitempty"`
	// Value is the formatted decode of Data, kept for readers of the file.
	Value string `cbor:"5,keyasint,omitempty" yaml:"value,omitempty"`
}

// OK reports whether the attribute was recorded successfully.
func (a Attribute) OK() bool {
	return a.Status.OK()
}

// Lookup finds the recorded attribute p.
func Lookup(attrs []Attribute, p clruntime.ParamName) (Attribute, bool) {
	for _, a := range attrs {
		if a.Param == p {
			return a, true
		}
	}
	return Attribute{}, false
}

// Take records every registered platform and device attribute of drv.
// Attribute failures are recorded, not returned; only enumeration failures
// abort the capture.
func Take(drv clruntime.Driver, driverName string) (*Capture, error) {
	c := &Capture{
		ID:     uuid.New(),
		Taken:  time.Now().UTC(),
		Driver: driverName,
	}

	platforms, err := query.PlatformIDs(drv)
	if err != nil {
		return nil, err
	}
	for _, p := range platforms {
		rec := Platform{
			Handle:     p,
			Attributes: record(drv, clruntime.Target{Kind: clruntime.KindPlatform, Handle: p}),
		}

		devices, err := query.DeviceIDs(drv, p, clruntime.DeviceTypeAll)
		if err != nil {
			return nil, err
		}
		for _, dev := range devices {
			rec.Devices = append(rec.Devices, Device{
				Handle:     dev,
				Attributes: record(drv, clruntime.Target{Kind: clruntime.KindDevice, Handle: dev}),
			})
		}
		c.Platforms = append(c.Platforms, rec)
	}
	return c, nil
}

func record(drv clruntime.Driver, t clruntime.Target) []Attribute {
	descs := attr.For(t.Kind).Descriptors()
	out := make([]Attribute, 0, len(descs))

	for _, d := range descs {
		a := Attribute{Param: d.Param, Name: d.Name}

		res, err := query.Fetch(drv, t, d)
		if err != nil {
			st, ok := clruntime.StatusOf(err)
			if !ok {
				st = clruntime.InvalidValue
			}
			a.Status = st
			out = append(out, a)
			continue
		}

		a.Data = Bytes(res.Data)
		if v, err := attr.Decode(res.Data, d); err == nil {
			a.Value = attr.Format(d, v)
		}
		out = append(out, a)
	}
	return out
}
