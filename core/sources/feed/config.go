package feed

// Config defines the availability feed endpoint.
type Config struct {
	URL            string `mapstructure:"url" default:""`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"30"`
}
