package configs

import (
	"fmt"
	"strings"

	"log-analyzer/internal/shared/validators"

	"github.com/spf13/viper"
)

const envPrefix = "LOG_ANALYZER"

// defaults mirror the analyzer's historical hardcoded configuration.
var defaults = map[string]any{
	"report_size":             1000,
	"report_dir":              "./reports",
	"log_dir":                 "./log",
	"acceptable_parsed_share": 0.333,

	"log.level": "info",
	"log.file":  "",

	"server.port":                8080,
	"server.read_header_timeout": 5,
	"server.read_timeout":        10,
	"server.write_timeout":       300,
	"server.idle_timeout":        60,

	"metrics.pushgateway_url": "",
	"metrics.job":             "log_analyzer",
}

// LoadConfig builds the configuration from defaults, the optional YAML file at configPath and
// LOG_ANALYZER_* environment variables, in increasing priority, and validates the result.
// An empty configPath means no file is read.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from file
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build key path (e.g., "Config.server.port" -> "server.port")
	if ns := e.Namespace(); ns != "" {
		if parts := strings.Split(ns, "."); len(parts) >= 2 {
			field = strings.Join(parts[1:], ".")
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
