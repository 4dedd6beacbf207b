package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vpm/internal/adapters/cas"
	"go.trai.ch/vpm/internal/core/domain"
)

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	store := cas.NewStore(tmpDir)

	entry := domain.CachedRepository{
		URL:       "https://packages.example.com/index.json",
		ETag:      `"abc"`,
		FetchedAt: time.Now().UTC().Truncate(time.Second),
		Body:      `{"packages":{}}`,
	}

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, store.Put(entry))

		got, err := store.Get(entry.URL)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entry, *got)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		got, err := store.Get("https://missing.example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStore_GetCorrupt(t *testing.T) {
	tmpDir := t.TempDir()
	store := cas.NewStore(tmpDir)

	url := "https://packages.example.com/index.json"
	require.NoError(t, store.Put(domain.CachedRepository{URL: url}))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	//nolint:gosec // 0644 is fine for test
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, entries[0].Name()), []byte("{ invalid json"), 0o600))

	_, err = store.Get(url)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCacheUnmarshalFailed.Error())
}

func TestCleaner_Clean(t *testing.T) {
	cacheDir := t.TempDir()
	require.NoError(t, cas.NewStore(domain.ReposCachePath(cacheDir)).Put(domain.CachedRepository{URL: "u"}))

	removed, err := cas.NewCleaner().Clean(cacheDir)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.ReposCachePath(cacheDir)}, removed)
	assert.NoDirExists(t, domain.ReposCachePath(cacheDir))

	removed, err = cas.NewCleaner().Clean(cacheDir)
	require.NoError(t, err)
	assert.Empty(t, removed)
}
