package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Build.Threads == 0 {
		cfg.Build.Threads = 5
	}
	if cfg.Build.Threads < 1 {
		cfg.Build.Threads = 1
	}
	if cfg.Crawl.Total == 0 {
		cfg.Crawl.Total = 1
	}
	if cfg.Output.CountsPath == "" {
		cfg.Output.CountsPath = "counts.json"
	}
	if cfg.Output.IndexPath == "" {
		cfg.Output.IndexPath = "index.json"
	}
	if cfg.Output.ResultsPath == "" {
		cfg.Output.ResultsPath = "results.json"
	}
}
