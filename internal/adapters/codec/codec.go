// Package codec provides the serialization formats used for model values.
package codec

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// MsgpackName is the configuration name of the msgpack codec.
	MsgpackName = "msgpack"
	// JSONName is the configuration name of the JSON codec.
	JSONName = "json"
)

var (
	_ ports.Codec = (*Msgpack)(nil)
	_ ports.Codec = (*JSON)(nil)
)

// Msgpack encodes values with MessagePack. It is the default codec.
type Msgpack struct{}

// NewMsgpack creates a msgpack codec.
func NewMsgpack() *Msgpack {
	return &Msgpack{}
}

// Name implements ports.Codec.
func (c *Msgpack) Name() string {
	return MsgpackName
}

// Encode implements ports.Codec.
func (c *Msgpack) Encode(w io.Writer, v any) error {
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)

	enc.Reset(w)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return zerr.Wrap(err, "failed to encode msgpack value")
	}
	return nil
}

// Decode implements ports.Codec.
func (c *Msgpack) Decode(r io.Reader, v any) error {
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)

	dec.Reset(r)
	if err := dec.Decode(v); err != nil {
		return zerr.Wrap(err, "failed to decode msgpack value")
	}
	return nil
}

// JSON encodes values as JSON, which is easier to inspect by hand.
type JSON struct{}

// NewJSON creates a JSON codec.
func NewJSON() *JSON {
	return &JSON{}
}

// Name implements ports.Codec.
func (c *JSON) Name() string {
	return JSONName
}

// Encode implements ports.Codec.
func (c *JSON) Encode(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return zerr.Wrap(err, "failed to encode json value")
	}
	return nil
}

// Decode implements ports.Codec.
func (c *JSON) Decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return zerr.Wrap(err, "failed to decode json value")
	}
	return nil
}

// ByName returns the codec registered under name.
// An empty name selects msgpack.
func ByName(name string) (ports.Codec, error) {
	switch name {
	case "", MsgpackName:
		return NewMsgpack(), nil
	case JSONName:
		return NewJSON(), nil
	default:
		return nil, zerr.With(domain.ErrUnknownCodec, "codec", name)
	}
}
