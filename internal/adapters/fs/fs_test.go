package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modelcache/internal/adapters/fs"
	"go.trai.ch/modelcache/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles_SkipsMetadata(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, ".git", "config"), "gitconfig")
	writeFile(t, filepath.Join(tmpDir, ".jj", "store"), "jjstore")
	writeFile(t, filepath.Join(tmpDir, domain.CacheDirName, "models.bin"), "blocks")
	writeFile(t, filepath.Join(tmpDir, "src", "main.go"), "package main")
	writeFile(t, filepath.Join(tmpDir, "README.md"), "readme")

	files := make([]string, 0)
	for path := range fs.NewWalker().WalkFiles(tmpDir, nil) {
		files = append(files, path)
	}

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "README.md"),
		filepath.Join(tmpDir, "src", "main.go"),
	}, files)
}

func TestWalker_WalkFiles_Ignores(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, "node_modules", "pkg", "index.js"), "x")
	writeFile(t, filepath.Join(tmpDir, "app.log"), "log")
	writeFile(t, filepath.Join(tmpDir, "app.go"), "package app")

	files := make([]string, 0)
	for path := range fs.NewWalker().WalkFiles(tmpDir, []string{"node_modules", "*.log"}) {
		files = append(files, path)
	}

	assert.Equal(t, []string{filepath.Join(tmpDir, "app.go")}, files)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, "a.txt"), "a")
	writeFile(t, filepath.Join(tmpDir, "b.txt"), "b")

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestResolver_ResolveInputs(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, "a.txt"), "a")
	writeFile(t, filepath.Join(tmpDir, "b.txt"), "b")
	writeFile(t, filepath.Join(tmpDir, "c.log"), "c")
	writeFile(t, filepath.Join(tmpDir, "src", "x.go"), "x")
	writeFile(t, filepath.Join(tmpDir, "src", "nested", "y.go"), "y")

	resolver := fs.NewResolver(fs.NewWalker())

	resolved, err := resolver.ResolveInputs([]string{"*.txt", "src", "a.txt"}, tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, "a.txt"),
		filepath.Join(tmpDir, "b.txt"),
		filepath.Join(tmpDir, "src", "nested", "y.go"),
		filepath.Join(tmpDir, "src", "x.go"),
	}, resolved)
}

func TestResolver_ResolveInputs_Errors(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	resolver := fs.NewResolver(fs.NewWalker())

	_, err := resolver.ResolveInputs([]string{"["}, tmpDir)
	require.ErrorContains(t, err, "failed to glob path")

	_, err = resolver.ResolveInputs([]string{"*.missing"}, tmpDir)
	require.ErrorContains(t, err, domain.ErrInputNotFound.Error())
}

func TestHasher(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file.txt")
	writeFile(t, path, "hello")

	h := fs.NewHasher()

	fileHash, err := h.HashFile(path)
	require.NoError(t, err)
	assert.Len(t, fileHash, 16)
	assert.Equal(t, h.HashBytes([]byte("hello")), fileHash)
	assert.Equal(t, h.HashString("hello"), fileHash)
	assert.NotEqual(t, h.HashString("world"), fileHash)

	_, err = h.HashFile(filepath.Join(tmpDir, "missing"))
	require.ErrorContains(t, err, domain.ErrFileHashFailed.Error())
}
