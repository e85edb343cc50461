package drivestore

import (
	"time"
)

// Kind is the structural type of a backend resource.
type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Resource is a backend object identified by an opaque ID.
type Resource struct {
	ID        string
	Name      string
	Kind      Kind
	ParentID  string
	MediaType string
	Size      int64
	ModTime   time.Time
}

func (r Resource) IsFolder() bool {
	return r.Kind == KindFolder
}

// Filter restricts the children returned by Backend.List.
// Name, if not empty, matches the child name exactly.
// Query, if not empty, is a backend-specific expression combined with Name.
type Filter struct {
	Name  string
	Query string
}
