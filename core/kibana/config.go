package kibana

// Config holds connection settings for the detection-engine API.
// Endpoint, APIKey and Space are usually supplied per request and override
// whatever the environment provides.
type Config struct {
	// Endpoint is the base URL of the Kibana instance.
	Endpoint string `mapstructure:"endpoint" default:""`
	// APIKey is the API key used for authentication.
	APIKey string `mapstructure:"api_key" default:""`
	// Space is the Kibana space to operate in. "default" maps to the root path.
	Space string `mapstructure:"space" default:"default"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// PageSize is the page size used when listing rules and exception data.
	PageSize int `mapstructure:"page_size" default:"10000"`
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" default:"false"`
}
