package histogram

// Config holds configuration for positional histograms.
type Config struct {
	// Bins is the requested number of buckets.
	Bins int `mapstructure:"bins" default:"50"`
	// Width is the length in cells of the longest bar.
	Width int `mapstructure:"width" default:"40"`
}
