package config

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	PollInterval   Duration
	ListLimit      int
	Provider       string
	AllowedOrigins []string
	LoginURL       string
	Playbud        PlaybudConfig
	Map            MapConfig
	Metrics        MetricsConfig
	Log            LogConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:           envOrDefault(envPort, defaultPort),
		PollInterval:   durationEnvOrDefault(envPollInterval, defaultPollInterval),
		ListLimit:      intEnvOrDefault(envListLimit, defaultListLimit),
		Provider:       envOrDefault(envProvider, defaultProvider),
		AllowedOrigins: listEnvOrDefault(envAllowedOrigins, defaultAllowedOrigins),
		LoginURL:       envOrDefault(envLoginURL, defaultLoginURL),
		Playbud:        loadPlaybud(),
		Map:            loadMap(),
		Metrics:        loadMetrics(),
		Log:            loadLog(),
	}
}

// LogConfig controls structured log output.
type LogConfig struct {
	Level  string
	Format string
}

func loadLog() LogConfig {
	return LogConfig{
		Level:  envOrDefault(envLogLevel, defaultLogLevel),
		Format: envOrDefault(envLogFormat, defaultLogFormat),
	}
}
