package storage

import (
	"context"
	"io"
)

type PutInput struct {
	Filename    string
	ContentType string
}

type PutResult struct {
	Key string
	URL string
}

// Storage holds product and option images. The catalog only persists
// keys; URL resolves a key to something a browser can fetch.
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
