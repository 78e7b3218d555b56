package configs

// Config holds all configuration for the application.
type Config struct {
	ReportSize            int     `mapstructure:"report_size" validate:"required,min=1"`
	ReportDir             string  `mapstructure:"report_dir" validate:"required"`
	LogDir                string  `mapstructure:"log_dir" validate:"required"`
	AcceptableParsedShare float64 `mapstructure:"acceptable_parsed_share" validate:"min=0,max=1"`

	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
	File  string `mapstructure:"file"` // empty means stdout
}

// ServerConfig holds configuration of the optional HTTP surface (--serve).
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response, includes a full run)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// MetricsConfig holds Pushgateway settings for batch runs.
type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url" validate:"omitempty,url"`
	Job            string `mapstructure:"job" validate:"required_with=PushgatewayURL"`
}
