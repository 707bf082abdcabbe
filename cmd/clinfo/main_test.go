package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/cl"
	"github.com/wippyai/cl-runtime/sim"
)

func newRuntime() *cl.Runtime {
	return cl.New(sim.NewDefault())
}

func findRow(t *testing.T, rows []row, name string) row {
	t.Helper()
	for _, r := range rows {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("Expected row %s", name)
	return row{}
}

func TestBuildReport(t *testing.T) {
	rep, err := buildReport(newRuntime())
	require.NoError(t, err)
	require.Len(t, rep.Platforms, 1)

	p := rep.Platforms[0]
	assert.Equal(t, "Simulated Platform", p.Name)
	assert.Len(t, p.Attributes, attr.For(clruntime.KindPlatform).Len())
	assert.Equal(t, "CL_INVALID_VALUE", findRow(t, p.Attributes, "CL_PLATFORM_EXTENSIONS_WITH_VERSION").Error)

	require.Len(t, p.Devices, 2)
	assert.Equal(t, "Sim GPU", p.Devices[0].Name)
	assert.Equal(t, "Sim CPU", p.Devices[1].Name)
	assert.Equal(t, "256", findRow(t, p.Devices[0].Attributes, "CL_DEVICE_MAX_WORK_GROUP_SIZE").Value)
}

func TestWriteText(t *testing.T) {
	rep, err := buildReport(newRuntime())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeText(&buf, rep, plainStyles()))
	out := buf.String()
	assert.Contains(t, out, "Platform Simulated Platform 0x1000")
	assert.Contains(t, out, "Device Sim GPU")
	assert.Contains(t, out, "<CL_INVALID_VALUE>")

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "CL_DEVICE_NAME ") {
			assert.True(t, strings.HasSuffix(line, "Sim GPU") || strings.HasSuffix(line, "Sim CPU"), line)
		}
	}
}

func TestWriteYAML(t *testing.T) {
	rep, err := buildReport(newRuntime())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeYAML(&buf, rep))

	var got report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *rep, got)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"cl_khr_fp64 cl_khr_fp16", 0, "cl_khr_fp64 cl_khr_fp16"},
		{"cl_khr_fp64 cl_khr_fp16", 10, "cl_khr_..."},
		{"short", 10, "short"},
		{"cé", 2, "cé"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.n), tt.in)
	}
}

func TestFilterRows(t *testing.T) {
	rows := []row{
		{Name: "CL_DEVICE_NAME", Value: "Sim GPU"},
		{Name: "CL_DEVICE_VENDOR", Value: "wippy"},
		{Name: "CL_DEVICE_BUILT_IN_KERNELS", Error: "CL_INVALID_VALUE"},
	}
	assert.Equal(t, rows, filterRows(rows, " "))
	assert.Equal(t, rows[:1], filterRows(rows, "gpu"))
	assert.Equal(t, rows[1:2], filterRows(rows, "VENDOR"))
	assert.Empty(t, filterRows(rows, "fp64"))
}

func TestCaptureAndReplay(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"sim.cbor", "sim.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, writeCapture(sim.NewDefault(), "sim", path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())

		drv, err := openDriver("sim", "", path, zap.NewNop())
		require.NoError(t, err)
		rep, err := buildReport(cl.New(drv))
		require.NoError(t, err)
		require.Len(t, rep.Platforms, 1)
		assert.Equal(t, "Sim GPU", rep.Platforms[0].Devices[0].Name)
	}
}

func TestOpenDriver_Errors(t *testing.T) {
	_, err := openDriver("cuda", "", "", zap.NewNop())
	assert.ErrorContains(t, err, "unknown driver")

	_, err = openDriver("sim", filepath.Join(t.TempDir(), "missing.yaml"), "", zap.NewNop())
	assert.Error(t, err)
}

func TestShell(t *testing.T) {
	var buf bytes.Buffer
	s := newShell(newRuntime(), &buf)
	defer s.close()

	run := func(line string) string {
		buf.Reset()
		assert.False(t, s.exec(line), line)
		return buf.String()
	}

	assert.Contains(t, run("platforms"), "0x1000  Simulated Platform")
	out := run("devices 0x1000")
	assert.Contains(t, out, "0x1010  gpu  Sim GPU")
	assert.Contains(t, out, "0x1020  cpu  Sim CPU")

	assert.Contains(t, run("attrs device"), "CL_DEVICE_NAME")
	assert.Equal(t, "CL_DEVICE_NAME = Sim GPU\n", run("get device 0x1010 device_name"))
	assert.Equal(t, "CL_DEVICE_MAX_WORK_GROUP_SIZE = 256\n", run("get device 0x1010 0x1004"))
	assert.Contains(t, run("raw device 0x1010 CL_DEVICE_NAME"), "8 bytes (reported 8)")
	assert.Contains(t, run("get device 0x1010 CL_DEVICE_BUILT_IN_KERNELS"), "CL_INVALID_VALUE")
	assert.Contains(t, run("get program-build 0x1000"), "needs a device handle")
	assert.Contains(t, run("get gizmo 0x1"), "unknown kind")
	assert.Contains(t, run("get device zz name"), "invalid handle")
	assert.Contains(t, run("bogus"), "Unknown command")

	out = run("context 0x1010")
	require.True(t, strings.HasPrefix(out, "context 0x"), out)
	h := strings.TrimSpace(strings.TrimPrefix(out, "context "))
	assert.Contains(t, run("snapshot context "+h), "CL_CONTEXT_NUM_DEVICES")
	assert.Contains(t, run("get context "+h+" CL_CONTEXT_REFERENCE_COUNT"), "= 1")
	assert.Empty(t, run("release "+h))
	assert.Contains(t, run("release "+h), "not created by this shell")

	assert.True(t, s.exec("quit"))
}
