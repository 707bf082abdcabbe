package capture

import "encoding/hex"

// Bytes is a raw attribute buffer. It is a CBOR byte string and a hex
// string in text formats.
type Bytes []byte

func (b Bytes) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

func (b *Bytes) UnmarshalText(text []byte) error {
	out := make([]byte, hex.DecodedLen(len(text)))
	n, err := hex.Decode(out, text)
	if err != nil {
		return err
	}
	*b = out[:n]
	return nil
}
