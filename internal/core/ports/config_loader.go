package ports

import "go.trai.ch/vpm/internal/core/domain"

// SettingsLoader defines the interface for loading user settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type SettingsLoader interface {
	// Load reads the settings file at path. A missing file yields domain.DefaultSettings.
	Load(path string) (domain.Settings, error)
}
