package sim

import (
	"go.uber.org/zap"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/capture"
	"github.com/wippyai/cl-runtime/errors"
)

// FromCapture builds a driver that answers attribute queries with the
// buffers and failures recorded in c. Handles are reassigned; attributes
// naming the platform or a parent device are rewritten to the new handles.
// A parent device that was not recorded reads as 0.
func FromCapture(c *capture.Capture, opts ...Option) (*Driver, error) {
	d := newDriver(opts...)
	replayed := make(map[clruntime.Handle]clruntime.Handle)
	var devices []clruntime.Handle

	for i, cp := range c.Platforms {
		static, missing := rawAttributes(cp.Attributes)
		p := d.addPlatform(static, missing)

		for j, cd := range cp.Devices {
			static, missing := rawAttributes(cd.Attributes)
			typ, err := recordedType(static)
			if err != nil {
				return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
					Detail("platform %d device %d: %v", i, j, err).
					Cause(err).
					Build()
			}
			h := d.addDevice(p, typ, static, missing)
			if cd.Handle.IsValid() {
				replayed[cd.Handle] = h
			}
			devices = append(devices, h)
		}
	}

	for _, h := range devices {
		o := d.objects[h]
		raw, ok := o.static[attr.DeviceParentDevice]
		if !ok {
			continue
		}
		desc, _ := attr.Lookup(clruntime.KindDevice, attr.DeviceParentDevice)
		v, err := attr.Decode(raw, desc)
		if err != nil {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
				Object(h).
				Param("CL_DEVICE_PARENT_DEVICE").
				Cause(err).
				Build()
		}
		d.setStatic(o, attr.DeviceParentDevice, replayed[v.Handle()])
	}

	d.log.Debug("replaying capture",
		zap.Stringer("id", c.ID),
		zap.String("driver", c.Driver),
		zap.Int("platforms", len(d.platforms)))
	return d, nil
}

func rawAttributes(attrs []capture.Attribute) (map[clruntime.ParamName][]byte, map[clruntime.ParamName]clruntime.Status) {
	static := make(map[clruntime.ParamName][]byte, len(attrs))
	missing := make(map[clruntime.ParamName]clruntime.Status)
	for _, a := range attrs {
		if !a.OK() {
			missing[a.Param] = a.Status
			continue
		}
		data := []byte(a.Data)
		if data == nil {
			data = []byte{}
		}
		static[a.Param] = data
	}
	return static, missing
}

func recordedType(static map[clruntime.ParamName][]byte) (clruntime.DeviceType, error) {
	raw, ok := static[attr.DeviceType]
	if !ok {
		return 0, errors.InvalidData(errors.PhaseLoad, "CL_DEVICE_TYPE", "not recorded")
	}
	desc, _ := attr.Lookup(clruntime.KindDevice, attr.DeviceType)
	v, err := attr.Decode(raw, desc)
	if err != nil {
		return 0, err
	}
	return clruntime.DeviceType(v.Uint64()), nil
}
