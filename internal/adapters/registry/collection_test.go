package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vpm/internal/adapters/registry"
	"go.trai.ch/vpm/internal/core/domain"
)

func pkgInfo(name, version, repo string) domain.PackageInfo {
	return domain.NewRemotePackage(domain.PackageDescriptor{
		Name:    name,
		Version: domain.MustParseVersion(version),
	}, repo)
}

func versionsOf(pkgs []domain.PackageInfo) []string {
	out := make([]string, len(pkgs))
	for i, p := range pkgs {
		out[i] = p.Version().String()
	}
	return out
}

func TestCollection_FindPackageByName(t *testing.T) {
	c := registry.NewCollection([]domain.PackageInfo{
		pkgInfo("com.vrchat.base", "3.4.0", "official"),
		pkgInfo("com.vrchat.base", "3.5.0", "official"),
		pkgInfo("com.vrchat.base", "3.6.0-beta.1", "official"),
		pkgInfo("com.vrchat.base", "3.5.0", "mirror"),
	})

	got, ok := c.FindPackageByName("com.vrchat.base", domain.LatestFor(nil, false))
	require.True(t, ok)
	assert.Equal(t, "3.5.0", got.Version().String())
	assert.Equal(t, "official", got.Source.Repository, "first listing wins")

	got, ok = c.FindPackageByName("com.vrchat.base", domain.LatestFor(nil, true))
	require.True(t, ok)
	assert.Equal(t, "3.6.0-beta.1", got.Version().String())

	got, ok = c.FindPackageByName("com.vrchat.base", domain.RangesFor(nil, []domain.VersionRange{
		domain.MustParseVersionRange("<3.5.0"),
	}, false))
	require.True(t, ok)
	assert.Equal(t, "3.4.0", got.Version().String())

	_, ok = c.FindPackageByName("com.vrchat.base", domain.ExactVersion(domain.MustParseVersion("9.9.9")))
	assert.False(t, ok)

	_, ok = c.FindPackageByName("missing", domain.LatestFor(nil, true))
	assert.False(t, ok)
}

func TestCollection_VersionsAndNames(t *testing.T) {
	c := registry.NewCollection([]domain.PackageInfo{
		pkgInfo("b.pkg", "1.0.0", "r"),
		pkgInfo("a.pkg", "1.0.0", "r"),
		pkgInfo("a.pkg", "2.0.0", "r"),
	})

	assert.Equal(t, []string{"a.pkg", "b.pkg"}, c.Names())
	assert.Equal(t, []string{"2.0.0", "1.0.0"}, versionsOf(c.Versions("a.pkg")))
	assert.Empty(t, c.Versions("missing"))
}

func TestCollection_Search(t *testing.T) {
	avatars := pkgInfo("com.vrchat.avatars", "3.5.0", "official")
	avatars.Descriptor.DisplayName = "VRChat SDK - Avatars"
	worlds := pkgInfo("com.vrchat.worlds", "3.5.0", "official")
	worlds.Descriptor.DisplayName = "VRChat SDK - Worlds"

	c := registry.NewCollection([]domain.PackageInfo{
		avatars,
		pkgInfo("com.vrchat.avatars", "3.4.0", "official"),
		worlds,
		pkgInfo("dev.other.tool", "0.1.0", "curated"),
	})

	got := c.Search("avatars")
	require.Len(t, got, 1)
	assert.Equal(t, "com.vrchat.avatars", got[0].Name())
	assert.Equal(t, "3.5.0", got[0].Version().String())

	assert.Len(t, c.Search("vrchat"), 2)
	assert.Empty(t, c.Search("zzzz"))
}

func TestParseRepository(t *testing.T) {
	body := []byte(`{
  "name": "Test Repo",
  "packages": {
    "com.example.a": {
      "versions": {
        "1.0.0": {"name": "com.example.a", "version": "1.0.0", "url": "https://x/a-1.0.0.zip"},
        "bad": {"name": "com.example.a", "version": "bad"}
      }
    },
    "com.example.b": {
      "versions": {
        "0.2.0": {"name": "com.example.b", "version": "0.2.0", "vpmDependencies": {"com.example.a": "^1.0"}}
      }
    }
  }
}`)
	repo := domain.Repository{Name: "test", Headers: map[string]string{"X-Key": "k"}}

	pkgs, skipped, err := registry.ParseRepository(body, repo)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, pkgs, 2)
	assert.Equal(t, "com.example.a@1.0.0", pkgs[0].Key())
	assert.Equal(t, "test", pkgs[0].Source.Repository)
	assert.Equal(t, "k", pkgs[0].Source.Headers["X-Key"])
	assert.Equal(t, []string{"com.example.a"}, pkgs[1].Descriptor.Dependencies.Names())

	_, _, err = registry.ParseRepository([]byte(`{"name": "x"}`), repo)
	assert.ErrorContains(t, err, domain.ErrRepositoryParseFailed.Error())

	_, _, err = registry.ParseRepository([]byte(`not json`), repo)
	assert.ErrorContains(t, err, domain.ErrRepositoryParseFailed.Error())
}
