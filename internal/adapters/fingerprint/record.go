package fingerprint

import (
	"context"
	"errors"
	"io/fs"
	"os"

	fsadapter "go.trai.ch/modelcache/internal/adapters/fs"
	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/zerr"
)

var hasher = fsadapter.NewHasher()

func record(ctx context.Context, in domain.FingerprintInput) {
	if s := scopeFrom(ctx); s != nil {
		s.add(in)
	}
}

// ReadFile reads the file at path and records its content as an input of the
// enclosing project. A missing file is recorded too, so creating it later
// invalidates the project. Paths should be absolute.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	//nolint:gosec // Path is controlled by caller
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			record(ctx, domain.FingerprintInput{Kind: domain.InputFile, Key: path})
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInputReadFailed.Error()), "path", path)
	}
	record(ctx, domain.FingerprintInput{Kind: domain.InputFile, Key: path, Hash: hasher.HashBytes(data)})
	return data, nil
}

// RecordFile records an already hashed file as an input.
func RecordFile(ctx context.Context, path, hash string) {
	record(ctx, domain.FingerprintInput{Kind: domain.InputFile, Key: path, Hash: hash})
}

// RecordEnv reads the environment variable name and records its value.
func RecordEnv(ctx context.Context, name string) string {
	value, ok := os.LookupEnv(name)
	record(ctx, domain.FingerprintInput{Kind: domain.InputEnv, Key: name, Hash: envHash(value, ok)})
	return value
}

// RecordValue records a value supplied by the host under key. The controller
// compares it against the value registered with WithValue.
func RecordValue(ctx context.Context, key, value string) {
	record(ctx, domain.FingerprintInput{Kind: domain.InputValue, Key: key, Hash: hasher.HashString(value)})
}

// DependOnProject records that the enclosing project was computed from the
// models of project. It becomes invalid whenever project does.
func DependOnProject(ctx context.Context, project domain.Path) {
	record(ctx, domain.FingerprintInput{Kind: domain.InputProject, Key: project.String()})
}

func envHash(value string, ok bool) string {
	if !ok {
		return ""
	}
	return hasher.HashString(value)
}
