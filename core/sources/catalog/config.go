package catalog

// Config defines the storefront search endpoint.
type Config struct {
	// SearchURL is queried as SearchURL?q=<key>.
	SearchURL      string `mapstructure:"search_url" default:""`
	ApiKey         string `mapstructure:"api_key" default:""`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"15"`
}
