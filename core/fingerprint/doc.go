// Package fingerprint implements the fingerprint store: the mapping from a
// relative file path to the digest of its content.
//
// # File Format
//
// A fingerprint file is UTF-8 text with one entry per line:
//
//	<hex-digest><whitespace><relative-path>
//
// There is no header, footer or escaping. Lines are split on the first run of
// whitespace, so a path may contain inner spaces but cannot start with one.
// Lines that do not yield both a digest and a path are skipped, which keeps
// the parser tolerant of blank lines and stray output from other producers.
// When a path repeats, the last line wins.
//
// # Locations
//
// Loader accepts local paths and s3://bucket/key objects, fetching the latter
// through a storage.Client.
//
//	loader := fingerprint.NewLoader(client)
//	donor, local, err := loader.LoadPair(ctx, "s3://hashes/donor.txt", "local.txt")
package fingerprint
