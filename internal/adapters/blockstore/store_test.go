package blockstore_test

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modelcache/internal/adapters/blockstore"
	"go.trai.ch/modelcache/internal/core/domain"
)

func writeString(t *testing.T, s *blockstore.Store, value string) domain.BlockAddress {
	t.Helper()
	addr, err := s.Write(func(w io.Writer) error {
		_, err := io.WriteString(w, value)
		return err
	})
	require.NoError(t, err)
	return addr
}

func readString(s *blockstore.Store, addr domain.BlockAddress) (string, error) {
	var got string
	err := s.Read(addr, func(r io.Reader) error {
		data, err := io.ReadAll(r)
		got = string(data)
		return err
	})
	return got, err
}

func TestStore_WriteRead(t *testing.T) {
	t.Parallel()

	for _, compress := range []bool{false, true} {
		t.Run(map[bool]string{false: "plain", true: "zstd"}[compress], func(t *testing.T) {
			t.Parallel()

			s, err := blockstore.Open(filepath.Join(t.TempDir(), "models.bin"), blockstore.WithCompression(compress))
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })

			large := strings.Repeat("model ", 4096)
			a := writeString(t, s, "first")
			b := writeString(t, s, large)

			assert.Less(t, a.Offset, b.Offset)
			assert.Equal(t, a.Offset+a.Length, b.Offset)

			got, err := readString(s, b)
			require.NoError(t, err)
			assert.Equal(t, large, got)

			got, err = readString(s, a)
			require.NoError(t, err)
			assert.Equal(t, "first", got)
		})
	}
}

func TestStore_Reopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cache", "models.bin")

	s1, err := blockstore.Open(path, blockstore.WithCompression(true))
	require.NoError(t, err)
	addr := writeString(t, s1, "from session one")
	require.NoError(t, s1.Close())

	s2, err := blockstore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	got, err := readString(s2, addr)
	require.NoError(t, err)
	assert.Equal(t, "from session one", got)

	next := writeString(t, s2, "from session two")
	assert.Equal(t, addr.Offset+addr.Length, next.Offset)
}

func TestStore_EncodeError(t *testing.T) {
	t.Parallel()

	s, err := blockstore.Open(filepath.Join(t.TempDir(), "models.bin"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	boom := errors.New("boom")
	_, err = s.Write(func(io.Writer) error { return boom })
	require.ErrorIs(t, err, boom)

	// A failed encode does not consume space.
	addr := writeString(t, s, "ok")
	assert.Equal(t, int64(8), addr.Offset)
}

func TestStore_ReadValidation(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "models.bin")

	s, err := blockstore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	addr := writeString(t, s, "payload")

	_, err = readString(s, domain.BlockAddress{Offset: addr.Offset, Length: addr.Length + 100})
	require.ErrorContains(t, err, domain.ErrBlockOutOfRange.Error())

	_, err = readString(s, domain.BlockAddress{Offset: 0, Length: addr.Length})
	require.ErrorContains(t, err, domain.ErrBlockOutOfRange.Error())

	_, err = readString(s, domain.BlockAddress{Offset: addr.Offset, Length: math.MaxInt64})
	require.ErrorContains(t, err, domain.ErrBlockOutOfRange.Error())

	_, err = readString(s, domain.BlockAddress{Offset: math.MaxInt64, Length: addr.Length})
	require.ErrorContains(t, err, domain.ErrBlockOutOfRange.Error())

	_, err = readString(s, domain.BlockAddress{Offset: addr.Offset, Length: addr.Length - 1})
	require.ErrorContains(t, err, domain.ErrBlockCorrupt.Error())
}

func TestStore_DetectsCorruption(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "models.bin")

	s, err := blockstore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	addr := writeString(t, s, "payload")

	// Flip the last payload byte behind the store's back.
	f, err := os.OpenFile(path, os.O_RDWR, 0o600)
	require.NoError(t, err)
	_, err = f.WriteAt([]byte{'X'}, addr.Offset+addr.Length-1)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = readString(s, addr)
	require.ErrorContains(t, err, domain.ErrBlockCorrupt.Error())
}

func TestOpen_RejectsForeignFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "models.bin")
	require.NoError(t, os.WriteFile(path, []byte("not a block file"), 0o600))

	_, err := blockstore.Open(path)
	require.ErrorContains(t, err, domain.ErrBlockCorrupt.Error())
}

func TestStore_Close(t *testing.T) {
	t.Parallel()

	s, err := blockstore.Open(filepath.Join(t.TempDir(), "models.bin"))
	require.NoError(t, err)
	addr := writeString(t, s, "payload")

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Write(func(io.Writer) error { return nil })
	require.ErrorIs(t, err, domain.ErrStoreClosed)

	_, err = readString(s, addr)
	require.ErrorIs(t, err, domain.ErrStoreClosed)
}

func TestStore_ConcurrentWrites(t *testing.T) {
	t.Parallel()

	s, err := blockstore.Open(filepath.Join(t.TempDir(), "models.bin"), blockstore.WithCompression(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	const writers = 16
	addrs := make([]domain.BlockAddress, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			addr, err := s.Write(func(w io.Writer) error {
				_, err := io.WriteString(w, strings.Repeat(string(rune('a'+i)), 100+i))
				return err
			})
			assert.NoError(t, err)
			addrs[i] = addr
		}()
	}
	wg.Wait()

	for i, addr := range addrs {
		got, err := readString(s, addr)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat(string(rune('a'+i)), 100+i), got)
	}
}
