package fingerprint

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
)

// Entry is a single digest/path pair of a fingerprint file.
type Entry struct {
	Digest string `json:"digest" yaml:"digest"`
	Path   string `json:"path" yaml:"path"`
}

// Store maps relative file paths to content digests.
// A Store is immutable once constructed.
type Store struct {
	digests map[string]string
}

// New builds a Store from a path -> digest map. The map is copied.
func New(digests map[string]string) *Store {
	s := &Store{digests: make(map[string]string, len(digests))}
	for path, digest := range digests {
		s.digests[path] = digest
	}
	return s
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.digests)
}

// Digest returns the digest recorded for path.
func (s *Store) Digest(path string) (string, bool) {
	d, ok := s.digests[path]
	return d, ok
}

// Has reports whether path is present.
func (s *Store) Has(path string) bool {
	_, ok := s.digests[path]
	return ok
}

// Paths returns all paths in lexicographic order.
func (s *Store) Paths() []string {
	paths := make([]string, 0, len(s.digests))
	for path := range s.digests {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Entries returns all entries ordered by path.
func (s *Store) Entries() []Entry {
	paths := s.Paths()
	entries := make([]Entry, 0, len(paths))
	for _, path := range paths {
		entries = append(entries, Entry{Digest: s.digests[path], Path: path})
	}
	return entries
}

// ParseLine splits a fingerprint line into digest and path.
// The line is split on the first run of whitespace; ok is false unless both
// tokens are non-empty.
func ParseLine(line string) (entry Entry, ok bool) {
	line = strings.TrimSpace(line)
	cut := strings.IndexFunc(line, unicode.IsSpace)
	if cut <= 0 {
		return Entry{}, false
	}

	path := strings.TrimLeftFunc(line[cut:], unicode.IsSpace)
	if path == "" {
		return Entry{}, false
	}

	return Entry{Digest: line[:cut], Path: path}, true
}

// Load parses a fingerprint file. Malformed lines are skipped and a path that
// appears more than once keeps its last digest. Only read errors are returned.
func Load(r io.Reader) (*Store, error) {
	s := &Store{digests: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		entry, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		s.digests[entry.Path] = entry.Digest
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fingerprints: %w", err)
	}

	return s, nil
}

// LoadFile parses the fingerprint file at path.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fingerprint file %s: %w", path, err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Write serializes the store, one entry per line, ordered by path.
func Write(s *Store, w io.Writer) error {
	bw := bufio.NewWriter(w)
	ew := NewWriter(bw)
	for _, entry := range s.Entries() {
		if err := ew.WriteEntry(entry); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Writer emits fingerprint lines one entry at a time.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer on top of w. Every entry is issued as a single
// Write call, so an unbuffered file never holds a torn line.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteEntry writes "<digest>  <path>\n".
func (w *Writer) WriteEntry(e Entry) error {
	if _, err := io.WriteString(w.w, e.Digest+"  "+e.Path+"\n"); err != nil {
		return fmt.Errorf("failed to write fingerprint for %s: %w", e.Path, err)
	}
	return nil
}
