// Package ports defines the core interfaces for the application.
package ports

import (
	"io"

	"go.trai.ch/modelcache/internal/core/domain"
)

// BlockStore is an append-only, randomly readable store of byte blocks.
//
//go:generate mockgen -source=block_store.go -destination=mocks/mock_block_store.go -package=mocks
type BlockStore interface {
	// Write appends a new block whose content is produced by encode and returns
	// its address. Existing blocks are never overwritten.
	Write(encode func(w io.Writer) error) (domain.BlockAddress, error)

	// Read hands the content of the block at addr to decode.
	// It is valid for any address returned by Write during the lifetime of the
	// store, including addresses written by earlier sessions on the same file.
	Read(addr domain.BlockAddress, decode func(r io.Reader) error) error

	// Close flushes and releases the store.
	Close() error
}

// Codec turns model values into bytes and back.
type Codec interface {
	// Name identifies the codec in configuration.
	Name() string
	// Encode writes v to w.
	Encode(w io.Writer, v any) error
	// Decode reads a value from r into v, which must be a pointer.
	Decode(r io.Reader, v any) error
}
