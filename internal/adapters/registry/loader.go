// Package registry loads remote repositories and user packages into a package collection.
package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"

	"go.trai.ch/vpm/internal/adapters/cas"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const httpClientTimeout = 30 * time.Second

// Loader implements ports.CollectionLoader.
type Loader struct {
	logger      ports.Logger
	descriptors ports.DescriptorReader
	httpClient  *http.Client
	now         func() time.Time
}

// NewLoader creates a Loader fetching repositories over HTTP.
func NewLoader(logger ports.Logger, descriptors ports.DescriptorReader) *Loader {
	return newLoaderWithClient(logger, descriptors, &http.Client{Timeout: httpClientTimeout})
}

// newLoaderWithClient creates a Loader with a custom http client (used for testing).
func newLoaderWithClient(logger ports.Logger, descriptors ports.DescriptorReader, client *http.Client) *Loader {
	return &Loader{
		logger:      logger,
		descriptors: descriptors,
		httpClient:  client,
		now:         time.Now,
	}
}

// Load fetches every configured repository concurrently and adds the user packages.
// Unreachable repositories fall back to the cache; a repository with neither is skipped
// with a warning. User packages take precedence over repository packages of the same version.
func (l *Loader) Load(ctx context.Context, settings domain.Settings) (ports.PackageCollection, error) {
	cache := cas.NewStore(domain.ReposCachePath(settings.CacheDir))

	results := make([][]domain.PackageInfo, len(settings.Repositories))
	g, gctx := errgroup.WithContext(ctx)
	limit := settings.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	g.SetLimit(limit)

	for i, repo := range settings.Repositories {
		g.Go(func() error {
			body, ok := l.repositoryBody(gctx, cache, repo, settings.Offline)
			if !ok {
				return nil
			}
			pkgs, skipped, err := ParseRepository(body, repo)
			if err != nil {
				l.logger.Warn(fmt.Sprintf("repository %s is malformed, skipping", repo.Name))
				return nil
			}
			if skipped > 0 {
				l.logger.Debug(fmt.Sprintf("repository %s: skipped %d invalid versions", repo.Name, skipped))
			}
			results[i] = pkgs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := l.userPackages(settings.UserPackages)
	for _, pkgs := range results {
		all = append(all, pkgs...)
	}
	return NewCollection(all), nil
}

func (l *Loader) userPackages(paths []string) []domain.PackageInfo {
	var out []domain.PackageInfo
	for _, path := range paths {
		desc, err := l.descriptors.Read(path)
		if err != nil {
			l.logger.Warn(fmt.Sprintf("user package %s has no valid package.json, skipping", path))
			continue
		}
		out = append(out, domain.NewLocalPackage(*desc, path))
	}
	return out
}

// repositoryBody returns the freshest document available for repo.
func (l *Loader) repositoryBody(
	ctx context.Context,
	cache ports.RepositoryCache,
	repo domain.Repository,
	offline bool,
) ([]byte, bool) {
	cached, err := cache.Get(repo.URL)
	if err != nil {
		l.logger.Debug(fmt.Sprintf("ignoring unreadable cache for %s: %v", repo.Name, err))
		cached = nil
	}

	if offline {
		if cached == nil {
			l.logger.Warn(fmt.Sprintf("repository %s is not cached, skipping (offline)", repo.Name))
			return nil, false
		}
		return []byte(cached.Body), true
	}

	l.logger.Debug("fetching " + repo.URL)
	entry, err := l.fetch(ctx, repo, cached)
	if err != nil {
		if cached == nil {
			l.logger.Warn(fmt.Sprintf("repository %s is unreachable, skipping", repo.Name))
			return nil, false
		}
		l.logger.Warn(fmt.Sprintf("repository %s is unreachable, using cache", repo.Name))
		return []byte(cached.Body), true
	}

	if entry != cached {
		if err := cache.Put(*entry); err != nil {
			l.logger.Debug(fmt.Sprintf("could not cache %s: %v", repo.Name, err))
		}
	}
	return []byte(entry.Body), true
}

// fetch downloads repo, sending the cached ETag. A 304 answer returns cached itself.
func (l *Loader) fetch(
	ctx context.Context,
	repo domain.Repository,
	cached *domain.CachedRepository,
) (*domain.CachedRepository, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, repo.URL, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRepositoryFetchFailed.Error())
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range repo.Headers {
		req.Header.Set(k, v)
	}
	if cached != nil && cached.ETag != "" {
		req.Header.Set("If-None-Match", cached.ETag)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRepositoryFetchFailed.Error()), "url", repo.URL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotModified && cached != nil {
		return cached, nil
	}
	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.With(domain.ErrRepositoryFetchFailed, "url", repo.URL)
		return nil, zerr.With(statusErr, "status_code", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRepositoryFetchFailed.Error()), "url", repo.URL)
	}

	return &domain.CachedRepository{
		URL:       repo.URL,
		ETag:      resp.Header.Get("ETag"),
		FetchedAt: l.now().UTC(),
		Body:      string(body),
	}, nil
}
