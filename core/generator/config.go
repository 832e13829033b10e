package generator

// Config holds configuration for fingerprint generation.
type Config struct {
	// Workers is the number of concurrent hashing workers; 0 uses all CPUs.
	Workers int `mapstructure:"workers" default:"0"`
	// Suffix selects the block files to hash.
	Suffix string `mapstructure:"suffix" default:".dat"`
	// Excluded lists side-car suffixes that are never hashed.
	Excluded []string `mapstructure:"excluded" default:".dat-shm,.dat-wal"`
	// Algorithm is the digest algorithm (sha256, sha512, sha1, md5).
	Algorithm string `mapstructure:"algorithm" default:"sha256"`
	// ChunkSize is the read buffer size in bytes.
	ChunkSize int `mapstructure:"chunk_size" default:"8192"`
}
