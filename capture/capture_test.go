package capture_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/capture"
	clerrors "github.com/wippyai/cl-runtime/errors"
	"github.com/wippyai/cl-runtime/query"
	"github.com/wippyai/cl-runtime/sim"
)

func take(t *testing.T) *capture.Capture {
	t.Helper()
	c, err := capture.Take(sim.NewDefault(), "sim")
	require.NoError(t, err)
	return c
}

// flatten renders every recorded attribute so captures can be compared
// without caring whether empty buffers survived as nil.
func flatten(c *capture.Capture) map[string]string {
	out := make(map[string]string)
	add := func(prefix string, attrs []capture.Attribute) {
		for _, a := range attrs {
			out[prefix+"/"+a.Name] = fmt.Sprintf("%d:%x:%s", a.Status, []byte(a.Data), a.Value)
		}
	}
	for i, p := range c.Platforms {
		add(fmt.Sprintf("p%d", i), p.Attributes)
		for j, d := range p.Devices {
			add(fmt.Sprintf("p%d/d%d", i, j), d.Attributes)
		}
	}
	return out
}

func TestTake(t *testing.T) {
	c := take(t)

	assert.Equal(t, "sim", c.Driver)
	assert.False(t, c.Taken.IsZero())
	require.Len(t, c.Platforms, 1)
	p := c.Platforms[0]
	require.Len(t, p.Devices, 2)
	assert.Len(t, p.Attributes, attr.For(clruntime.KindPlatform).Len())
	assert.Len(t, p.Devices[0].Attributes, attr.For(clruntime.KindDevice).Len())

	name, ok := capture.Lookup(p.Attributes, attr.PlatformName)
	require.True(t, ok)
	assert.True(t, name.OK())
	assert.Equal(t, "CL_PLATFORM_NAME", name.Name)
	assert.Equal(t, []byte("Simulated Platform\x00"), []byte(name.Data))
	assert.Equal(t, "Simulated Platform", name.Value)

	ext, ok := capture.Lookup(p.Attributes, attr.PlatformExtensionsWithVersion)
	require.True(t, ok)
	assert.False(t, ext.OK())
	assert.Equal(t, clruntime.InvalidValue, ext.Status)
	assert.Empty(t, ext.Data)

	_, ok = capture.Lookup(p.Attributes, attr.DeviceName)
	assert.False(t, ok)
}

func TestTake_DistinctIDs(t *testing.T) {
	assert.NotEqual(t, take(t).ID, take(t).ID)
}

func TestCodec_RoundTrip(t *testing.T) {
	c := take(t)

	tests := []struct {
		name  string
		write func(*capture.Capture, *bytes.Buffer) error
		read  func(*bytes.Buffer) (*capture.Capture, error)
	}{
		{
			name:  "cbor",
			write: func(c *capture.Capture, b *bytes.Buffer) error { return c.WriteCBOR(b) },
			read:  func(b *bytes.Buffer) (*capture.Capture, error) { return capture.ReadCBOR(b) },
		},
		{
			name:  "yaml",
			write: func(c *capture.Capture, b *bytes.Buffer) error { return c.WriteYAML(b) },
			read:  func(b *bytes.Buffer) (*capture.Capture, error) { return capture.ReadYAML(b) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.write(c, &buf))

			got, err := tt.read(&buf)
			require.NoError(t, err)
			assert.Equal(t, c.ID, got.ID)
			assert.Equal(t, c.Driver, got.Driver)
			assert.True(t, c.Taken.Equal(got.Taken), "taken %v != %v", c.Taken, got.Taken)
			assert.Equal(t, flatten(c), flatten(got))
			assert.Equal(t, c.Platforms[0].Devices[1].Handle, got.Platforms[0].Devices[1].Handle)
		})
	}
}

func TestCodec_YAMLIsReadable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, take(t).WriteYAML(&buf))

	out := buf.String()
	assert.Contains(t, out, "name: CL_DEVICE_NAME")
	assert.Contains(t, out, "value: Sim GPU")
	assert.Contains(t, out, "status: -30")
}

func TestCodec_Errors(t *testing.T) {
	loadErr := &clerrors.Error{Phase: clerrors.PhaseLoad, Kind: clerrors.KindInvalidData}

	_, err := capture.ReadCBOR(bytes.NewReader([]byte{0xff, 0x00}))
	assert.ErrorIs(t, err, loadErr)

	_, err = capture.ReadYAML(strings.NewReader("platforms: {"))
	assert.ErrorIs(t, err, loadErr)

	_, err = capture.ReadYAML(strings.NewReader("platforms:\n  - attributes:\n      - data: zz\n"))
	assert.ErrorIs(t, err, loadErr)
}

func TestReplay_MatchesSource(t *testing.T) {
	src := sim.NewDefault()
	c, err := capture.Take(src, "sim")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.WriteCBOR(&buf))
	decoded, err := capture.ReadCBOR(&buf)
	require.NoError(t, err)

	replay, err := sim.FromCapture(decoded)
	require.NoError(t, err)

	srcPlatforms, err := query.PlatformIDs(src)
	require.NoError(t, err)
	platforms, err := query.PlatformIDs(replay)
	require.NoError(t, err)
	require.Len(t, platforms, len(srcPlatforms))

	srcDevices, err := query.DeviceIDs(src, srcPlatforms[0], clruntime.DeviceTypeAll)
	require.NoError(t, err)
	devices, err := query.DeviceIDs(replay, platforms[0], clruntime.DeviceTypeAll)
	require.NoError(t, err)
	require.Len(t, devices, len(srcDevices))

	gpus, err := query.DeviceIDs(replay, platforms[0], clruntime.DeviceTypeGPU)
	require.NoError(t, err)
	assert.Len(t, gpus, 1)

	for i := range devices {
		want := query.Snapshot(src, clruntime.Target{Kind: clruntime.KindDevice, Handle: srcDevices[i]})
		got := query.Snapshot(replay, clruntime.Target{Kind: clruntime.KindDevice, Handle: devices[i]})
		assert.Equal(t, want.Failed(), got.Failed())

		reg := attr.For(clruntime.KindDevice)
		for _, p := range want.Params() {
			d, _ := reg.ByParam(p)
			wv, _ := want.Get(p)
			gv, _ := got.Get(p)
			assert.Equal(t, attr.Format(d, wv), attr.Format(d, gv), d.Name)
		}
	}
}

func TestReplay_MissingDeviceType(t *testing.T) {
	c := take(t)
	dev := &c.Platforms[0].Devices[0]
	for i := range dev.Attributes {
		if dev.Attributes[i].Param == attr.DeviceType {
			dev.Attributes[i].Status = clruntime.InvalidValue
			dev.Attributes[i].Data = nil
		}
	}

	_, err := sim.FromCapture(c)
	assert.ErrorIs(t, err, &clerrors.Error{Phase: clerrors.PhaseLoad, Kind: clerrors.KindInvalidData})
}

func TestReplay_RewritesParentDevice(t *testing.T) {
	c := take(t)
	desc, ok := attr.Lookup(clruntime.KindDevice, attr.DeviceParentDevice)
	require.True(t, ok)
	setParent := func(dev *capture.Device, parent clruntime.Handle) {
		raw, err := attr.Encode(desc, parent)
		require.NoError(t, err)
		for i := range dev.Attributes {
			if dev.Attributes[i].Param == attr.DeviceParentDevice {
				dev.Attributes[i].Data = capture.Bytes(raw)
			}
		}
	}

	// Handles from the recording process never match the replay's.
	recorded := c.Platforms[0].Devices
	recorded[0].Handle = 0xa000
	recorded[1].Handle = 0xb000
	setParent(&recorded[0], 0xdead)
	setParent(&recorded[1], 0xa000)

	replay, err := sim.FromCapture(c)
	require.NoError(t, err)
	platforms, err := query.PlatformIDs(replay)
	require.NoError(t, err)
	devices, err := query.DeviceIDs(replay, platforms[0], clruntime.DeviceTypeAll)
	require.NoError(t, err)
	require.Len(t, devices, 2)

	parent := func(h clruntime.Handle) clruntime.Handle {
		v, err := query.Lookup(replay, clruntime.Target{Kind: clruntime.KindDevice, Handle: h}, attr.DeviceParentDevice)
		require.NoError(t, err)
		return v.Handle()
	}
	assert.Equal(t, clruntime.Handle(0), parent(devices[0]))
	assert.Equal(t, devices[0], parent(devices[1]))
}
