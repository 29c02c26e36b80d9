package codec_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modelcache/internal/adapters/codec"
	"go.trai.ch/modelcache/internal/core/domain"
)

func sampleModel() domain.ProjectModel {
	return domain.ProjectModel{
		Path:        ":app",
		Dir:         "app",
		Description: "the application",
		DependsOn:   []string{":lib"},
		Env:         map[string]string{"GOOS": "linux"},
		Inputs:      []domain.InputDigest{{Path: "app/main.go", Hash: "0123456789abcdef"}},
		Tasks: []domain.TaskModel{
			{Name: "build", Command: []string{"go", "build"}, DependsOn: []string{"generate"}},
		},
		TaskCount: 3,
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{codec.MsgpackName, codec.JSONName} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, err := codec.ByName(name)
			require.NoError(t, err)
			assert.Equal(t, name, c.Name())

			var buf bytes.Buffer
			require.NoError(t, c.Encode(&buf, sampleModel()))

			var got domain.ProjectModel
			require.NoError(t, c.Decode(&buf, &got))
			assert.Equal(t, sampleModel(), got)
		})
	}
}

func TestMsgpack_Deterministic(t *testing.T) {
	t.Parallel()

	c := codec.NewMsgpack()
	value := map[string]int{"b": 2, "a": 1, "c": 3}

	var first, second bytes.Buffer
	require.NoError(t, c.Encode(&first, value))
	require.NoError(t, c.Encode(&second, value))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	var got domain.ProjectModel
	err := codec.NewMsgpack().Decode(strings.NewReader("\xc1"), &got)
	require.ErrorContains(t, err, "failed to decode msgpack value")

	err = codec.NewJSON().Decode(strings.NewReader("{"), &got)
	require.ErrorContains(t, err, "failed to decode json value")
}

func TestByName(t *testing.T) {
	t.Parallel()

	c, err := codec.ByName("")
	require.NoError(t, err)
	assert.Equal(t, codec.MsgpackName, c.Name())

	_, err = codec.ByName("xml")
	require.ErrorContains(t, err, domain.ErrUnknownCodec.Error())
}
