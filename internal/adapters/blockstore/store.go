// Package blockstore implements an append-only block file with random reads.
package blockstore

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BlockStore = (*Store)(nil)

// Store implements ports.BlockStore on top of a single append-only file.
//
// Blocks are appended under a mutex; reads use ReadAt and may run
// concurrently with each other and with appends.
type Store struct {
	path string

	mu     sync.Mutex
	file   *os.File
	size   int64
	closed bool

	compress bool
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
}

// Option configures a Store.
type Option func(*options)

type options struct {
	compress bool
	level    zstd.EncoderLevel
}

// WithCompression enables zstd compression of new blocks.
// Blocks written without compression stay readable either way.
func WithCompression(enabled bool) Option {
	return func(o *options) {
		o.compress = enabled
	}
}

// WithEncoderLevel sets the zstd encoder level used when compression is enabled.
func WithEncoderLevel(level zstd.EncoderLevel) Option {
	return func(o *options) {
		o.level = level
	}
}

// Open opens the block file at path, creating it if needed.
// Blocks written by earlier sessions remain addressable; new blocks are appended.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := options{level: zstd.SpeedDefault}
	for _, opt := range opts {
		opt(&cfg)
	}

	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheDirCreateFailed.Error()), "path", path)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, domain.FilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", path)
	}

	size, err := prepareFile(file)
	if err != nil {
		_ = file.Close()
		return nil, zerr.With(err, "path", path)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = file.Close()
		return nil, zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
	}

	s := &Store{
		path:     path,
		file:     file,
		size:     size,
		compress: cfg.compress,
		decoder:  decoder,
	}

	if cfg.compress {
		s.encoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(cfg.level))
		if err != nil {
			decoder.Close()
			_ = file.Close()
			return nil, zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
		}
	}

	return s, nil
}

// prepareFile writes the magic header to an empty file or validates the header
// of an existing one, and returns the current file size.
func prepareFile(file *os.File) (int64, error) {
	info, err := file.Stat()
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
	}

	if info.Size() == 0 {
		if _, err := file.WriteAt(fileMagic[:], 0); err != nil {
			return 0, zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
		}
		return headerSize, nil
	}

	var magic [len(fileMagic)]byte
	if _, err := file.ReadAt(magic[:], 0); err != nil || magic != fileMagic {
		return 0, zerr.With(domain.ErrBlockCorrupt, "reason", "bad file header")
	}

	return info.Size(), nil
}

// Path returns the location of the block file.
func (s *Store) Path() string {
	return s.path
}

// Write encodes a value into a new block and appends it to the file.
func (s *Store) Write(encode func(w io.Writer) error) (domain.BlockAddress, error) {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return domain.BlockAddress{}, err
	}

	flags := byte(0)
	payload := buf.Bytes()
	if s.compress {
		payload = s.encoder.EncodeAll(payload, make([]byte, 0, len(payload)))
		flags |= flagZstd
	}
	if len(payload) > maxPayloadSize {
		return domain.BlockAddress{}, zerr.With(zerr.New("block payload too large"), "size", len(payload))
	}

	header := blockHeader{
		flags:    flags,
		length:   uint32(len(payload)), //nolint:gosec // Bounded by maxPayloadSize
		checksum: xxhash.Sum64(payload),
	}
	block := append(header.marshal(), payload...)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.BlockAddress{}, domain.ErrStoreClosed
	}

	offset := s.size
	if _, err := s.file.WriteAt(block, offset); err != nil {
		return domain.BlockAddress{}, zerr.Wrap(err, "failed to append block")
	}
	s.size += int64(len(block))

	return domain.BlockAddress{Offset: offset, Length: int64(len(block))}, nil
}

// Read loads the block at addr, verifies it and passes its content to decode.
func (s *Store) Read(addr domain.BlockAddress, decode func(r io.Reader) error) error {
	s.mu.Lock()
	closed, size := s.closed, s.size
	s.mu.Unlock()

	if closed {
		return domain.ErrStoreClosed
	}
	// Compared without adding, so a huge length cannot overflow past size.
	if addr.Offset < headerSize || addr.Length < blockHeaderSize ||
		addr.Offset > size || addr.Length > size-addr.Offset {
		return zerr.With(domain.ErrBlockOutOfRange, "address", addr.String())
	}

	block := make([]byte, addr.Length)
	if _, err := s.file.ReadAt(block, addr.Offset); err != nil && !errors.Is(err, io.EOF) {
		return zerr.With(zerr.Wrap(err, "failed to read block"), "address", addr.String())
	}

	header := parseBlockHeader(block[:blockHeaderSize])
	payload := block[blockHeaderSize:]
	if err := header.verify(addr, payload); err != nil {
		return err
	}

	if header.flags&flagZstd != 0 {
		inflated, err := s.decoder.DecodeAll(payload, nil)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrBlockCorrupt.Error()), "address", addr.String())
		}
		payload = inflated
	}

	return decode(bytes.NewReader(payload))
}

// Close syncs and closes the block file. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.encoder != nil {
		_ = s.encoder.Close()
	}
	s.decoder.Close()

	syncErr := s.file.Sync()
	closeErr := s.file.Close()
	if err := errors.Join(syncErr, closeErr); err != nil && !errors.Is(err, fs.ErrClosed) {
		return zerr.Wrap(err, "failed to close block store")
	}
	return nil
}
