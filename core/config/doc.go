// Package config provides configuration management for blockcheck.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Every key has a default taken from the `default`
// struct tag; command-line flags override configuration when set explicitly.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: Logging level and format
//   - Storage: S3/MinIO credentials for s3:// fingerprint locations
//   - Database: optional history database (mysql or sqlite)
//   - Generate: worker count, block suffix, side-car suffixes, digest algorithm
//   - Compare: trailing-block threshold, report format, histogram bins and width
//   - Sync: default worklist file
//   - Metrics: node_exporter textfile target
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Compare.ThresholdBlocks)
package config
