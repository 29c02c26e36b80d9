package blockstore

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// fileMagic opens every block file.
var fileMagic = [8]byte{'M', 'C', 'B', 'L', 'K', '0', '0', '1'}

const (
	headerSize = int64(len(fileMagic))

	// blockHeaderSize is flags (1) + payload length (4) + xxhash64 (8).
	blockHeaderSize = 13

	// maxPayloadSize bounds a single block payload.
	maxPayloadSize = 1<<31 - 1
)

// flagZstd marks a zstd compressed payload.
const flagZstd byte = 1 << 0

type blockHeader struct {
	flags    byte
	length   uint32
	checksum uint64
}

func (h blockHeader) marshal() []byte {
	buf := make([]byte, blockHeaderSize)
	buf[0] = h.flags
	binary.BigEndian.PutUint32(buf[1:5], h.length)
	binary.BigEndian.PutUint64(buf[5:13], h.checksum)
	return buf
}

func parseBlockHeader(buf []byte) blockHeader {
	return blockHeader{
		flags:    buf[0],
		length:   binary.BigEndian.Uint32(buf[1:5]),
		checksum: binary.BigEndian.Uint64(buf[5:13]),
	}
}

// verify checks the header against the address it was read from and the
// payload it describes.
func (h blockHeader) verify(addr domain.BlockAddress, payload []byte) error {
	if int64(h.length)+blockHeaderSize != addr.Length {
		return zerr.With(zerr.With(domain.ErrBlockCorrupt, "reason", "length mismatch"), "address", addr.String())
	}
	if h.flags&^flagZstd != 0 {
		return zerr.With(zerr.With(domain.ErrBlockCorrupt, "reason", "unknown flags"), "address", addr.String())
	}
	if payload != nil && xxhash.Sum64(payload) != h.checksum {
		return zerr.With(zerr.With(domain.ErrBlockCorrupt, "reason", "checksum mismatch"), "address", addr.String())
	}
	return nil
}
