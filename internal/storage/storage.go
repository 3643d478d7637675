package storage

import (
	"context"
	"io"
)

// ObjectStore is the blob storage collaborator: Upload returns the
// public URL the stored object is reachable at, Delete removes it.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (url string, err error)
	Delete(ctx context.Context, objectName string) error

	// Resolve maps a URL previously returned by Upload back to its
	// object name; ok is false for foreign URLs.
	Resolve(url string) (objectName string, ok bool)
}
