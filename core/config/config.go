package config

import (
	"reflect"
	"strings"

	"blockcheck/core/database"
	"blockcheck/core/generator"
	"blockcheck/core/histogram"
	"blockcheck/core/logger"
	"blockcheck/core/metrics"
	"blockcheck/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the optional history database.
	Database database.Config `mapstructure:"database"`
	// Generate holds configuration for fingerprint generation.
	Generate generator.Config `mapstructure:"generate"`
	// Compare holds configuration for drift reports.
	Compare CompareConfig `mapstructure:"compare"`
	// Sync holds configuration for sync lists.
	Sync SyncConfig `mapstructure:"sync"`
	// Metrics holds configuration for the metrics textfile.
	Metrics metrics.Config `mapstructure:"metrics"`
}

// CompareConfig holds configuration for the compare command.
type CompareConfig struct {
	// ThresholdBlocks is the trailing window in which drift is non-critical.
	ThresholdBlocks int `mapstructure:"threshold_blocks" default:"20000"`
	// Format is the detailed report format (text, json, yaml).
	Format string `mapstructure:"format" default:"text"`
	// Histogram holds configuration for the positional histogram.
	Histogram histogram.Config `mapstructure:"histogram"`
}

// SyncConfig holds configuration for the sync-list command.
type SyncConfig struct {
	// Output is the default worklist file.
	Output string `mapstructure:"output" default:"to_sync.txt"`
}

// LoadConfig loads configuration from environment variables and .env file.
// Keys map to variables by upper-casing and replacing dots, e.g.
// compare.histogram.bins -> COMPARE_HISTOGRAM_BINS.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
