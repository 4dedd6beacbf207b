package registry

import (
	"github.com/tidwall/gjson"
	"go.trai.ch/vpm/internal/adapters/descriptor"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/zerr"
)

// ParseRepository reads a repository document and returns every valid package version it
// lists, in document order. Invalid versions are skipped and counted.
func ParseRepository(body []byte, repo domain.Repository) ([]domain.PackageInfo, int, error) {
	if !gjson.ValidBytes(body) {
		return nil, 0, zerr.With(domain.ErrRepositoryParseFailed, "repository", repo.Name)
	}
	doc := gjson.ParseBytes(body)
	packages := doc.Get("packages")
	if !packages.IsObject() {
		return nil, 0, zerr.With(zerr.With(domain.ErrRepositoryParseFailed, "repository", repo.Name), "reason", "missing packages")
	}

	var (
		out     []domain.PackageInfo
		skipped int
	)
	packages.ForEach(func(_, pkg gjson.Result) bool {
		pkg.Get("versions").ForEach(func(_, version gjson.Result) bool {
			desc, err := descriptor.FromResult(version)
			if err != nil {
				skipped++
				return true
			}
			info := domain.NewRemotePackage(*desc, repo.Name)
			info.Source.Headers = repo.Headers
			out = append(out, info)
			return true
		})
		return true
	})
	return out, skipped, nil
}
