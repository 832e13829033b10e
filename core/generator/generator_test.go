package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func sha(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func defaultOptions(root string) Options {
	return Options{
		Root:     root,
		Suffix:   ".dat",
		Excluded: []string{".dat-shm", ".dat-wal"},
		Workers:  4,
	}
}

func collect(t *testing.T, opts Options) (map[string]string, Stats, error) {
	t.Helper()
	got := map[string]string{}
	stats, err := Generate(context.Background(), opts, func(r Result) error {
		got[r.Path] = r.Digest
		return nil
	})
	return got, stats, err
}

func TestEligible(t *testing.T) {
	excluded := []string{".dat-shm", ".dat-wal"}
	tests := []struct {
		name string
		want bool
	}{
		{"1.dat", true},
		{"2.dat-wal", false},
		{"2.dat-shm", false},
		{"notdat.txt", false},
		{"archive.dat.bak", false},
		{".dat", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Eligible(tt.name, ".dat", excluded))
		})
	}

	// a side-car pattern matching the suffix itself excludes everything
	assert.False(t, Eligible("1.dat", ".dat", []string{".dat"}))
}

func TestGenerate_Eligibility(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "1.dat"), "one")
	writeFile(t, filepath.Join(root, "2.dat"), "two")
	writeFile(t, filepath.Join(root, "2.dat-wal"), "wal")
	writeFile(t, filepath.Join(root, "2.dat-shm"), "shm")
	writeFile(t, filepath.Join(root, "notdat.txt"), "txt")

	got, stats, err := collect(t, defaultOptions(root))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"1.dat": sha("one"),
		"2.dat": sha("two"),
	}, got)
	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, int64(6), stats.Bytes)
}

func TestGenerate_NestedRelativePaths(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 50; i++ {
		writeFile(t, filepath.Join(root, fmt.Sprintf("shard-%d", i%5), "sub", fmt.Sprintf("%d.dat", i)), fmt.Sprintf("block %d", i))
	}

	got, stats, err := collect(t, defaultOptions(root))
	require.NoError(t, err)
	assert.Equal(t, 50, stats.Files)
	assert.Len(t, got, 50)
	assert.Equal(t, sha("block 7"), got["shard-2/sub/7.dat"])
}

func TestGenerate_SmallChunks(t *testing.T) {
	root := t.TempDir()
	content := "this content spans several tiny chunks"
	writeFile(t, filepath.Join(root, "1.dat"), content)

	opts := defaultOptions(root)
	opts.ChunkSize = 3
	got, _, err := collect(t, opts)
	require.NoError(t, err)
	assert.Equal(t, sha(content), got["1.dat"])
}

func TestGenerate_NoEligibleFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "1.dat-wal"), "wal")

	_, _, err := collect(t, defaultOptions(root))
	assert.ErrorIs(t, err, ErrNoEligibleFiles)
}

func TestGenerate_MissingRoot(t *testing.T) {
	_, _, err := collect(t, defaultOptions(filepath.Join(t.TempDir(), "absent")))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoEligibleFiles)
}

func TestGenerate_UnreadableFileIsFatal(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, filepath.Join(root, fmt.Sprintf("%d.dat", i)), "ok")
	}
	// dangling symlink: listed by the walk, fails on open
	require.NoError(t, os.Symlink(filepath.Join(root, "vanished"), filepath.Join(root, "99.dat")))

	_, _, err := collect(t, defaultOptions(root))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "99.dat")
}

func TestGenerate_SinkErrorAborts(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 30; i++ {
		writeFile(t, filepath.Join(root, fmt.Sprintf("%d.dat", i)), "x")
	}

	boom := errors.New("disk full")
	calls := 0
	_, err := Generate(context.Background(), defaultOptions(root), func(Result) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestGenerate_UnknownAlgorithm(t *testing.T) {
	opts := defaultOptions(t.TempDir())
	opts.Algorithm = "crc32"
	_, _, err := collect(t, opts)
	assert.ErrorContains(t, err, "unsupported digest algorithm")
}

func TestGenerate_Algorithms(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "1.dat"), "abc")

	lengths := map[string]int{"sha256": 64, "sha512": 128, "sha1": 40, "md5": 32}
	for algo, n := range lengths {
		opts := defaultOptions(root)
		opts.Algorithm = algo
		got, _, err := collect(t, opts)
		require.NoError(t, err, algo)
		assert.Len(t, got["1.dat"], n, algo)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "1.dat"), "")
	writeFile(t, filepath.Join(root, "b", "2.dat"), "")
	writeFile(t, filepath.Join(root, "b", "2.dat-wal"), "")

	files, err := Discover(root, ".dat", []string{".dat-wal"})
	require.NoError(t, err)
	sort.Strings(files)
	assert.Equal(t, []string{filepath.Join(root, "a", "1.dat"), filepath.Join(root, "b", "2.dat")}, files)
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig("/data", Config{Workers: 3, Suffix: ".blk", Excluded: []string{".blk-wal"}, Algorithm: "sha1", ChunkSize: 10})
	assert.Equal(t, Options{Root: "/data", Suffix: ".blk", Excluded: []string{".blk-wal"}, Workers: 3, Algorithm: "sha1", ChunkSize: 10}, opts)
}
