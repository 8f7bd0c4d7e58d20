package discovery

import (
	"context"
	"fmt"
	"os"
	"slices"

	"zhi-theme/core/dependency"
	"zhi-theme/core/storage"
)

// Source produces the dependency list of a bootstrap pass.
type Source interface {
	Discover(ctx context.Context) ([]dependency.Item, error)
}

// FileSource reads a manifest from the local filesystem.
type FileSource struct {
	Path string
}

// Discover implements Source.
func (s FileSource) Discover(_ context.Context) ([]dependency.Item, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(s.Path, data)
}

// StorageSource reads a manifest object from the bucket.
type StorageSource struct {
	Client storage.Client
	Bucket string
	Object string
}

// Discover implements Source.
func (s StorageSource) Discover(ctx context.Context) ([]dependency.Item, error) {
	data, err := storage.ReadObject(ctx, s.Client, s.Bucket, s.Object)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(s.Object, data)
}

// Static returns a fixed list.
type Static []dependency.Item

// Discover implements Source.
func (s Static) Discover(context.Context) ([]dependency.Item, error) {
	return slices.Clone(s), nil
}
