package generator

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"blockcheck/core/fingerprint"

	"github.com/sourcegraph/conc/pool"
)

// ErrNoEligibleFiles is returned when the tree holds no file to hash.
var ErrNoEligibleFiles = errors.New("no eligible files found")

const defaultChunkSize = 8192

// Options controls a generation run.
type Options struct {
	// Root is the directory to walk.
	Root string
	// Suffix selects block files, e.g. ".dat".
	Suffix string
	// Excluded lists side-car suffixes, e.g. ".dat-wal".
	Excluded []string
	// Workers bounds hashing concurrency; <= 0 uses runtime.NumCPU().
	Workers int
	// Algorithm names the digest algorithm; empty means sha256.
	Algorithm string
	// ChunkSize is the read buffer size; <= 0 uses 8192.
	ChunkSize int
}

// OptionsFromConfig builds Options for root from cfg.
func OptionsFromConfig(root string, cfg Config) Options {
	return Options{
		Root:      root,
		Suffix:    cfg.Suffix,
		Excluded:  cfg.Excluded,
		Workers:   cfg.Workers,
		Algorithm: cfg.Algorithm,
		ChunkSize: cfg.ChunkSize,
	}
}

// Stats summarizes a generation run.
type Stats struct {
	Files    int
	Bytes    int64
	Duration time.Duration
}

// Result is the outcome of hashing one file, delivered to the sink.
type Result struct {
	fingerprint.Entry
	Size int64
}

// NewHash returns a constructor for the named digest algorithm.
func NewHash(algorithm string) (func() hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case "", "sha256":
		return sha256.New, nil
	case "sha512":
		return sha512.New, nil
	case "sha1":
		return sha1.New, nil
	case "md5":
		return md5.New, nil
	default:
		return nil, fmt.Errorf("unsupported digest algorithm %q", algorithm)
	}
}

// Eligible reports whether a file name is a block to hash: it ends with
// suffix and with none of the excluded side-car suffixes.
func Eligible(name, suffix string, excluded []string) bool {
	if !strings.HasSuffix(name, suffix) {
		return false
	}
	for _, ex := range excluded {
		if ex != "" && strings.HasSuffix(name, ex) {
			return false
		}
	}
	return true
}

// Discover walks root sequentially and returns every eligible file path.
// Any walk error aborts discovery.
func Discover(root, suffix string, excluded []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if Eligible(d.Name(), suffix, excluded) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// HashFile streams the file at path through newHash in chunkSize reads and
// returns the lowercase hex digest and the number of bytes read.
func HashFile(path string, newHash func() hash.Hash, chunkSize int) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := newHash()
	buf := make([]byte, chunkSize)
	var size int64
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
			size += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", 0, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), size, nil
}

// Generate hashes every eligible file under opts.Root on a bounded worker
// pool and hands each result to sink in completion order.
//
// sink is only ever called from the calling goroutine. The first hashing or
// sink error aborts the run; results already passed to sink stay delivered.
func Generate(ctx context.Context, opts Options, sink func(Result) error) (Stats, error) {
	start := time.Now()

	newHash, err := NewHash(opts.Algorithm)
	if err != nil {
		return Stats{}, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = defaultChunkSize
	}

	files, err := Discover(opts.Root, opts.Suffix, opts.Excluded)
	if err != nil {
		return Stats{}, err
	}
	if len(files) == 0 {
		return Stats{}, fmt.Errorf("%w in %s", ErrNoEligibleFiles, opts.Root)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan Result, workers)
	var poolErr error

	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx).WithCancelOnError().WithFirstError()
	go func() {
		defer close(results)
		for _, path := range files {
			p.Go(func(ctx context.Context) error {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := hashOne(opts.Root, path, newHash, chunk)
				if err != nil {
					return err
				}
				select {
				case results <- res:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})
		}
		poolErr = p.Wait()
	}()

	var (
		stats   Stats
		sinkErr error
	)
	for res := range results {
		if sinkErr != nil {
			continue
		}
		if err := sink(res); err != nil {
			sinkErr = err
			cancel()
			continue
		}
		stats.Files++
		stats.Bytes += res.Size
	}
	stats.Duration = time.Since(start)

	if sinkErr != nil {
		return stats, sinkErr
	}
	if poolErr != nil {
		return stats, poolErr
	}
	return stats, nil
}

func hashOne(root, path string, newHash func() hash.Hash, chunk int) (Result, error) {
	digest, size, err := HashFile(path, newHash, chunk)
	if err != nil {
		return Result{}, err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to relativize %s: %w", path, err)
	}

	return Result{
		Entry: fingerprint.Entry{Digest: digest, Path: filepath.ToSlash(rel)},
		Size:  size,
	}, nil
}
