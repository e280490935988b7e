package config

const (
	envMapToken     = "MAPBOX_ACCESS_TOKEN"
	envMapCenterLat = "MAP_DEFAULT_CENTER_LAT"
	envMapCenterLng = "MAP_DEFAULT_CENTER_LNG"

	defaultMapCenterLat = 51.509865
	defaultMapCenterLng = -0.118092
)

// MapConfig controls the map integration. An empty AccessToken puts the map
// layer into its degraded placeholder mode.
type MapConfig struct {
	AccessToken      string
	DefaultCenterLat float64
	DefaultCenterLng float64
}

func loadMap() MapConfig {
	return MapConfig{
		AccessToken:      envOrDefault(envMapToken, ""),
		DefaultCenterLat: floatEnvOrDefault(envMapCenterLat, defaultMapCenterLat),
		DefaultCenterLng: floatEnvOrDefault(envMapCenterLng, defaultMapCenterLng),
	}
}
