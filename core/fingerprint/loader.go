package fingerprint

import (
	"context"
	"errors"
	"fmt"

	"blockcheck/core/storage"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrNoStorage is returned when an s3:// location is requested but the
// Loader has no storage client.
var ErrNoStorage = errors.New("object storage is not configured")

// Loader resolves fingerprint locations into Stores.
// A location is either a local file path or an s3://bucket/key object.
type Loader struct {
	client storage.Client
	sf     singleflight.Group
}

// NewLoader creates a Loader. client may be nil when only local files are used.
func NewLoader(client storage.Client) *Loader {
	return &Loader{client: client}
}

// Load reads the store at location. Concurrent loads of the same location
// share a single read.
func (l *Loader) Load(ctx context.Context, location string) (*Store, error) {
	result, err, _ := l.sf.Do(location, func() (interface{}, error) {
		if !storage.IsRemote(location) {
			return LoadFile(location)
		}
		return l.loadRemote(ctx, location)
	})
	if err != nil {
		return nil, err
	}

	return result.(*Store), nil
}

// LoadPair loads two stores concurrently.
func (l *Loader) LoadPair(ctx context.Context, first, second string) (*Store, *Store, error) {
	var a, b *Store

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = l.Load(gctx, first)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = l.Load(gctx, second)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func (l *Loader) loadRemote(ctx context.Context, location string) (*Store, error) {
	if l.client == nil {
		return nil, fmt.Errorf("%s: %w", location, ErrNoStorage)
	}

	loc, err := storage.ParseLocation(location)
	if err != nil {
		return nil, err
	}

	obj, err := l.client.GetObject(ctx, loc.Bucket, loc.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fingerprint object %s: %w", location, err)
	}
	defer obj.Close()

	s, err := Load(obj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return s, nil
}
