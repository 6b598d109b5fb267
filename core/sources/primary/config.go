package primary

// Config defines the primary warehouse endpoints and credentials.
type Config struct {
	// GraphQLURL receives every inventory query.
	GraphQLURL string `mapstructure:"graphql_url" default:""`
	// TokenURL performs the password-grant token exchange.
	TokenURL     string `mapstructure:"token_url" default:""`
	Username     string `mapstructure:"username" default:""`
	Password     string `mapstructure:"password" default:""`
	ClientID     string `mapstructure:"client_id" default:""`
	ClientSecret string `mapstructure:"client_secret" default:""`
	Scope        string `mapstructure:"scope" default:"api"`

	// PageSize is the "first" argument of each bulk page.
	PageSize int `mapstructure:"page_size" default:"500"`
	// MaxPages bounds a bulk scan regardless of hasNextPage.
	MaxPages int `mapstructure:"max_pages" default:"40"`

	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Complete reports whether every value needed to authenticate is set.
func (c Config) Complete() bool {
	return c.GraphQLURL != "" && c.TokenURL != "" && c.Username != "" && c.Password != "" && c.ClientID != ""
}

func (c Config) pageSize() int {
	if c.PageSize <= 0 {
		return 500
	}
	return c.PageSize
}

func (c Config) maxPages() int {
	if c.MaxPages <= 0 {
		return 1
	}
	return c.MaxPages
}
