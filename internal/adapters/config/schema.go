package config

// SettingsFile represents the structure of settings.yaml.
// Pointer fields distinguish "absent" from the zero value so defaults can apply.
type SettingsFile struct {
	Repositories           []RepositoryDTO `yaml:"repositories"`
	UserPackages           []string        `yaml:"userPackages"`
	CacheDir               string          `yaml:"cacheDir"`
	ShowPrereleasePackages bool            `yaml:"showPrereleasePackages"`
	Parallelism            *int            `yaml:"parallelism"`
	LogFormat              string          `yaml:"logFormat"`
	Offline                bool            `yaml:"offline"`
}

// RepositoryDTO represents one repository entry in the settings file.
type RepositoryDTO struct {
	Name    string            `yaml:"name"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
}
