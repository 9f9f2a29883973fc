package config

// Watchfile represents the structure of the vfswatch.yaml configuration file.
type Watchfile struct {
	Roots     []string    `yaml:"roots"`
	MustWatch []string    `yaml:"mustWatch"`
	Ignore    []string    `yaml:"ignore"`
	Platform  string      `yaml:"platform"`
	Debounce  string      `yaml:"debounce"`
	Timeouts  TimeoutsDTO `yaml:"timeouts"`
}

// TimeoutsDTO holds the synchronous operation bounds as duration strings.
type TimeoutsDTO struct {
	Update  string `yaml:"update"`
	Changed string `yaml:"changed"`
	Close   string `yaml:"close"`
}
