package ports

import "context"

// Document is the raw content of a remote file plus the version the store
// assigned to it.
type Document struct {
	Content []byte
	Version string
}

// DocumentStore is the remote tier: one JSON document per path, each write
// recorded as a commit with a message.
type DocumentStore interface {
	// Read returns domain.ErrDocumentNotFound when path does not exist.
	Read(ctx context.Context, path string) (*Document, error)
	// Write stores content at path and returns the new version. An empty
	// version creates the document; a stale one yields a *domain.ConflictError.
	Write(ctx context.Context, path string, content []byte, message, version string) (string, error)
	Delete(ctx context.Context, path, message, version string) error
	Ping(ctx context.Context) error
}
