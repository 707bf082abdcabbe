package capture

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/cl-runtime/errors"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create capture CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create capture CBOR decoder mode: %v", err))
	}
}

// WriteCBOR encodes c to w.
func (c *Capture) WriteCBOR(w io.Writer) error {
	if err := encMode.NewEncoder(w).Encode(c); err != nil {
		return errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Detail("capture %s", c.ID).
			Cause(err).
			Build()
	}
	return nil
}

// ReadCBOR decodes a capture written by WriteCBOR.
func ReadCBOR(r io.Reader) (*Capture, error) {
	var c Capture
	if err := decMode.NewDecoder(r).Decode(&c); err != nil {
		return nil, errors.Load("failed to decode CBOR capture", err)
	}
	return &c, nil
}

// WriteYAML encodes c to w as YAML.
func (c *Capture) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Detail("capture %s", c.ID).
			Cause(err).
			Build()
	}
	return enc.Close()
}

// ReadYAML decodes a capture written by WriteYAML.
func ReadYAML(r io.Reader) (*Capture, error) {
	var c Capture
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, errors.Load("failed to decode YAML capture", err)
	}
	return &c, nil
}
