package config

import "time"

const (
	envPort           = "PORT"
	envPollInterval   = "POLL_INTERVAL"
	envListLimit      = "GAME_LIST_LIMIT"
	envProvider       = "PROVIDER"
	envAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	envLoginURL       = "LOGIN_URL"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort = "4000"
	// Listings change slowly; one refresh a minute keeps slots-left counts
	// fresh without hammering the upstream API.
	defaultPollInterval = Duration(time.Minute)
	defaultListLimit    = 50
	defaultProvider     = "playbud"
	defaultLoginURL     = "/login"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultMetricsPort  = "9090"
)

var defaultAllowedOrigins = []string{"http://localhost:3000"}
