package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modelcache/internal/core/domain"
)

func TestNewPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
		zero     bool
	}{
		{name: "empty is zero", input: "", expected: "", zero: true},
		{name: "blank is zero", input: " \t ", expected: "", zero: true},
		{name: "blank segments are root", input: " : ", expected: ":"},
		{name: "root", input: ":", expected: ":"},
		{name: "adds leading separator", input: "app", expected: ":app"},
		{name: "nested", input: ":app:lib", expected: ":app:lib"},
		{name: "drops empty segments", input: ":app::lib:", expected: ":app:lib"},
		{name: "only separators is root", input: ":::", expected: ":"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := domain.NewPath(tt.input)
			assert.Equal(t, tt.expected, p.String())
			assert.Equal(t, tt.zero, p.IsZero())
		})
	}
}

func TestPath_Equality(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.NewPath("app:lib"), domain.NewPath(":app:lib"))
	assert.NotEqual(t, domain.NewPath(":app"), domain.NewPath(":lib"))
	assert.Equal(t, domain.RootPath, domain.NewPath(":"))
}

func TestPath_Navigation(t *testing.T) {
	t.Parallel()

	p := domain.NewPath(":app:lib")
	assert.Equal(t, "lib", p.Name())
	assert.Equal(t, []string{"app", "lib"}, p.Segments())
	assert.Equal(t, domain.NewPath(":app"), p.Parent())
	assert.Equal(t, domain.RootPath, p.Parent().Parent())
	assert.True(t, domain.RootPath.Parent().IsZero())
	assert.Equal(t, p, domain.NewPath(":app").Child("lib"))
	assert.Equal(t, domain.NewPath(":app"), domain.RootPath.Child("app"))
	assert.Equal(t, domain.NewPath(":app"), domain.Path{}.Child("app"))
}

func TestPath_JSON(t *testing.T) {
	t.Parallel()

	type wrapper struct {
		Project domain.Path `json:"project,omitzero"`
	}

	data, err := json.Marshal(wrapper{Project: domain.NewPath(":app")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"project":":app"}`, string(data))

	data, err = json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	var got wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"project":"app:lib"}`), &got))
	assert.Equal(t, domain.NewPath(":app:lib"), got.Project)
}
