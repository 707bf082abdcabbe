package sim

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/cl-runtime/errors"
)

//go:embed fixtures/default.yaml
var defaultFixture []byte

// Fixture describes the platforms and devices a simulated runtime exposes.
// Attribute maps are keyed by symbolic attribute name (CL_DEVICE_NAME) and
// hold plain YAML values, which are encoded with attr.Encode.
type Fixture struct {
	Platforms []PlatformSpec `yaml:"platforms"`
}

// PlatformSpec describes one platform.
type PlatformSpec struct {
	Attributes  map[string]any `yaml:"attributes"`
	Unsupported []string       `yaml:"unsupported,omitempty"`
	Devices     []DeviceSpec   `yaml:"devices"`
}

// DeviceSpec describes one device. Type is a name accepted by
// clruntime.ParseDeviceType; CL_DEVICE_TYPE, CL_DEVICE_PLATFORM,
// CL_DEVICE_PARENT_DEVICE and CL_DEVICE_REFERENCE_COUNT are derived.
type DeviceSpec struct {
	Type        string         `yaml:"type"`
	Attributes  map[string]any `yaml:"attributes"`
	Unsupported []string       `yaml:"unsupported,omitempty"`
}

// ParseFixture parses a fixture from YAML bytes.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Load("failed to parse fixture YAML", err)
	}
	for i, p := range f.Platforms {
		if len(p.Devices) == 0 {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
				Detail("platform %d has no devices", i).
				Build()
		}
	}
	return &f, nil
}

// LoadFixture loads a fixture from a file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("failed to read fixture "+path, err)
	}
	f, err := ParseFixture(data)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Object = path
		}
		return nil, err
	}
	return f, nil
}

// DefaultFixture returns the built-in fixture: one platform with a GPU and
// a CPU device.
func DefaultFixture() *Fixture {
	f, err := ParseFixture(defaultFixture)
	if err != nil {
		panic("sim: embedded fixture is invalid: " + err.Error())
	}
	return f
}
