package app

import (
	"context"
)

// Clean removes the repository cache and the downloaded package archives.
func (a *App) Clean(_ context.Context, opts Options) error {
	settings, err := a.loadSettings(opts)
	if err != nil {
		return err
	}

	removed, err := a.cleaner.Clean(settings.CacheDir)
	for _, dir := range removed {
		a.logger.Info("removed " + dir)
	}
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		a.logger.Info("cache is already empty")
	}
	return nil
}
