package secondary

// Source kinds selectable through Config.Source.
const (
	KindAPI    = "api"
	KindSQL    = "sql"
	KindImport = "import"
)

// Config selects and configures the secondary warehouse source.
type Config struct {
	// Source is one of api, sql or import. With import, full runs require a
	// stored import to be named per request.
	Source string `mapstructure:"source" default:"import"`

	// URL is the batched lookup endpoint of the warehouse API.
	URL   string `mapstructure:"url" default:""`
	Token string `mapstructure:"token" default:""`

	// Table is the reporting table read by the sql source.
	Table string `mapstructure:"table" default:"stock_balances"`

	// BatchSize bounds the keys per API request or IN clause.
	BatchSize int `mapstructure:"batch_size" default:"200"`

	// ImportPrefix is the object storage prefix for uploaded imports.
	ImportPrefix string `mapstructure:"import_prefix" default:"imports/"`

	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

func (c Config) batchSize() int {
	if c.BatchSize <= 0 {
		return 200
	}
	return c.BatchSize
}

// chunk splits keys into slices of at most size elements.
func chunk(keys []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(keys); start += size {
		end := start + size
		if end > len(keys) {
			end = len(keys)
		}
		out = append(out, keys[start:end])
	}
	return out
}
