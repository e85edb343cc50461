// Package gdrive implements drivestore.Backend on top of the Google Drive API v3.
package gdrive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/Jumpaku/go-drivestore"
	dserrors "github.com/Jumpaku/go-drivestore/errors"
)

const (
	mimeTypeGoogleAppFolder = "application/vnd.google-apps.folder"

	spaceAppDataFolder = "appDataFolder"
	spaceDrive         = "drive"

	idAppDataFolder = "appDataFolder"
	idRoot          = "root"
)

const (
	driveFileFields  = "parents,id,name,mimeType,size,modifiedTime"
	driveFilesFields = "nextPageToken,files(parents,id,name,mimeType,size,modifiedTime)"
)

// Backend stores resources in Google Drive.
type Backend struct {
	service  *drive.Service
	spaces   string
	pageSize int64
	trash    bool
}

var _ drivestore.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithSpaces sets the spaces searched by List. Defaults to appDataFolder and drive.
func WithSpaces(spaces ...string) Option {
	return func(b *Backend) {
		if len(spaces) > 0 {
			b.spaces = strings.Join(spaces, ",")
		}
	}
}

// WithPageSize sets the maximum number of files per List page.
func WithPageSize(n int64) Option {
	return func(b *Backend) {
		if n > 0 {
			b.pageSize = n
		}
	}
}

// WithTrash makes Delete move resources to the trash instead of deleting them permanently.
func WithTrash(trash bool) Option {
	return func(b *Backend) { b.trash = trash }
}

// New creates a Backend with the given drive.Service.
// The service should be authenticated with a scope covering the spaces in use,
// e.g. drive.DriveAppdataScope for the application-data folder.
func New(service *drive.Service, opts ...Option) *Backend {
	b := &Backend{
		service:  service,
		spaces:   spaceAppDataFolder + "," + spaceDrive,
		pageSize: 1000,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) Root(ctx context.Context, scheme drivestore.Scheme) (drivestore.Resource, error) {
	var id string
	switch scheme {
	case drivestore.SchemeApp:
		id = idAppDataFolder
	case drivestore.SchemeRoot:
		id = idRoot
	default:
		return drivestore.Resource{}, fmt.Errorf("unsupported scheme '%s': %w", scheme, dserrors.ErrConfiguration)
	}
	f, err := b.service.Files.Get(id).
		Fields(driveFileFields).
		Context(ctx).
		Do()
	if err != nil {
		return drivestore.Resource{}, dserrors.NewBackendError("failed to get root", err)
	}
	return newResource(f), nil
}

func (b *Backend) List(ctx context.Context, parentID string, filter drivestore.Filter, pageToken string) ([]drivestore.Resource, string, error) {
	call := b.service.Files.List().
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Spaces(b.spaces).
		Q(buildQuery(parentID, filter)).
		Fields(driveFilesFields).
		PageSize(b.pageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	list, err := call.Do()
	if err != nil {
		return nil, "", dserrors.NewBackendError("failed to list files", err)
	}
	items := make([]drivestore.Resource, 0, len(list.Files))
	for _, f := range list.Files {
		items = append(items, newResource(f))
	}
	return items, list.NextPageToken, nil
}

func (b *Backend) Create(ctx context.Context, parentID, name string, kind drivestore.Kind) (drivestore.Resource, error) {
	file := &drive.File{
		Name:    name,
		Parents: []string{parentID},
	}
	if kind == drivestore.KindFolder {
		file.MimeType = mimeTypeGoogleAppFolder
	}
	f, err := b.service.Files.Create(file).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Context(ctx).
		Do()
	if err != nil {
		return drivestore.Resource{}, dserrors.NewBackendError(fmt.Sprintf("failed to create %s", kind), err)
	}
	return newResource(f), nil
}

func (b *Backend) Content(ctx context.Context, id string) (data []byte, err error) {
	resp, err := b.service.Files.Get(id).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			if gErr.Code == http.StatusRequestedRangeNotSatisfiable {
				// Returned for files that have no content at all.
				return []byte{}, nil
			}
			if isNotDownloadable(gErr) {
				return nil, fmt.Errorf("file '%s': %w: %w", id, dserrors.ErrNotDownloadable, err)
			}
		}
		return nil, dserrors.NewBackendError("failed to download file", err)
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			closeErr = dserrors.NewIOError("failed to close file body", closeErr)
		}
		err = errors.Join(err, closeErr)
	}()

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, dserrors.NewIOError("failed to read file body", err)
	}
	return data, nil
}

func (b *Backend) Update(ctx context.Context, id, mediaType string, data []byte) error {
	var opts []googleapi.MediaOption
	if mediaType != "" {
		opts = append(opts, googleapi.ContentType(mediaType))
	}
	_, err := b.service.Files.Update(id, &drive.File{}).
		SupportsAllDrives(true).
		Media(bytes.NewReader(data), opts...).
		Fields(driveFileFields).
		Context(ctx).
		Do()
	if err != nil {
		return dserrors.NewBackendError("failed to upload file", err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, id string) error {
	if b.trash {
		_, err := b.service.Files.Update(id, &drive.File{Trashed: true}).
			SupportsAllDrives(true).
			Fields(driveFileFields).
			Context(ctx).
			Do()
		if err != nil {
			return dserrors.NewBackendError("failed to move file to trash", err)
		}
		return nil
	}
	err := b.service.Files.Delete(id).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return dserrors.NewBackendError("failed to delete file", err)
	}
	return nil
}

// isNotDownloadable reports whether the error says the content cannot be downloaded
// yet, as happens right after creation while Drive processes the file.
func isNotDownloadable(gErr *googleapi.Error) bool {
	if gErr.Code != http.StatusForbidden && gErr.Code != http.StatusConflict {
		return false
	}
	for _, e := range gErr.Errors {
		if e.Reason == reasonFileNotDownloadable {
			return true
		}
	}
	// Media downloads do not parse the error body.
	return strings.Contains(gErr.Body, reasonFileNotDownloadable) || strings.Contains(gErr.Message, reasonFileNotDownloadable)
}

const reasonFileNotDownloadable = "fileNotDownloadable"

func buildQuery(parentID string, filter drivestore.Filter) string {
	q := fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(parentID))
	if filter.Name != "" {
		q += fmt.Sprintf(" and name = '%s'", escapeQuery(filter.Name))
	}
	if filter.Query != "" {
		q += " and (" + filter.Query + ")"
	}
	return q
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return s
}

func newResource(f *drive.File) drivestore.Resource {
	modTime, _ := time.Parse(time.RFC3339, f.ModifiedTime)
	kind := drivestore.KindFile
	if f.MimeType == mimeTypeGoogleAppFolder {
		kind = drivestore.KindFolder
	}
	var parentID string
	if len(f.Parents) > 0 {
		parentID = f.Parents[0]
	}
	return drivestore.Resource{
		ID:        f.Id,
		Name:      f.Name,
		Kind:      kind,
		ParentID:  parentID,
		MediaType: f.MimeType,
		Size:      f.Size,
		ModTime:   modTime,
	}
}
