package drivestore

import "context"

// Backend is the remote hierarchical object store the Store is layered over.
// All methods block until the remote call completes.
type Backend interface {
	// Root returns the root folder addressed by scheme.
	Root(ctx context.Context, scheme Scheme) (Resource, error)

	// List returns one page of the children of parentID matching filter, and the
	// token of the next page, which is empty on the last page.
	List(ctx context.Context, parentID string, filter Filter, pageToken string) (items []Resource, nextPageToken string, err error)

	// Create creates a child of parentID. The backend does not enforce name uniqueness.
	Create(ctx context.Context, parentID, name string, kind Kind) (Resource, error)

	// Content downloads the bytes of a file.
	// It fails with errors.ErrNotDownloadable while the content is not available yet.
	Content(ctx context.Context, id string) ([]byte, error)

	// Update replaces the bytes of a file.
	Update(ctx context.Context, id, mediaType string, data []byte) error

	// Delete removes a file or folder, including the children of a folder.
	Delete(ctx context.Context, id string) error
}

// Codec converts values to and from file content.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	MediaType() string
}
