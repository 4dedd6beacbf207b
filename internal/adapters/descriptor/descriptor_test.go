package descriptor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vpm/internal/adapters/descriptor"
	"go.trai.ch/vpm/internal/core/domain"
)

const avatarsJSON = `{
  "name": "com.vrchat.avatars",
  "displayName": "VRChat SDK - Avatars",
  "version": "3.5.0",
  "unity": "2022.3",
  "url": "https://example.com/avatars-3.5.0.zip",
  "zipSHA256": "abc123",
  "vpmDependencies": {
    "com.vrchat.base": "3.5.0",
    "com.vrchat.core": "^1.0"
  },
  "legacyFolders": {"Assets/VRCSDK": ""}
}`

func TestParse(t *testing.T) {
	desc, err := descriptor.Parse([]byte(avatarsJSON))
	require.NoError(t, err)

	assert.Equal(t, "com.vrchat.avatars", desc.Name)
	assert.Equal(t, "VRChat SDK - Avatars", desc.Title())
	assert.Equal(t, "3.5.0", desc.Version.String())
	assert.Equal(t, "2022.3", desc.Unity)
	assert.Equal(t, "abc123", desc.ZipSHA256)
	assert.False(t, desc.Yanked)
	assert.Equal(t, []string{"com.vrchat.base", "com.vrchat.core"}, desc.Dependencies.Names(), "declaration order kept")
}

func TestParse_Yanked(t *testing.T) {
	tests := []struct {
		name string
		json string
		want bool
	}{
		{name: "bool true", json: `{"name":"a","version":"1.0.0","yanked":true}`, want: true},
		{name: "reason string", json: `{"name":"a","version":"1.0.0","yanked":"broken build"}`, want: true},
		{name: "bool false", json: `{"name":"a","version":"1.0.0","yanked":false}`, want: false},
		{name: "absent", json: `{"name":"a","version":"1.0.0"}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := descriptor.Parse([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, desc.Yanked)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "invalid json", json: `{"name":`},
		{name: "not an object", json: `[1,2]`},
		{name: "missing name", json: `{"version":"1.0.0"}`},
		{name: "missing version", json: `{"name":"a"}`},
		{name: "loose version", json: `{"name":"a","version":"1.0"}`},
		{name: "bad range", json: `{"name":"a","version":"1.0.0","vpmDependencies":{"b":"not a range"}}`},
		{name: "dependencies not object", json: `{"name":"a","version":"1.0.0","vpmDependencies":["b"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := descriptor.Parse([]byte(tt.json))
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrDescriptorParseFailed.Error())
		})
	}
}

func TestReader_Read(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.DescriptorFileName), []byte(avatarsJSON), domain.FilePerm))

	desc, err := descriptor.NewReader().Read(dir)
	require.NoError(t, err)
	assert.Equal(t, "com.vrchat.avatars", desc.Name)
}

func TestReader_Read_Missing(t *testing.T) {
	_, err := descriptor.NewReader().Read(t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrDescriptorReadFailed.Error())
}
