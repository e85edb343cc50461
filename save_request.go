package drivestore

const mediaTypeText = "text/plain; charset=utf-8"

// SaveRequest describes the content carried by a save.
// This is a sealed interface - use RawBytes, Text, Document, or MetadataOnly.
//
// The title of a request is appended to the folder path passed to Save and names the
// terminal file. Saving a title that already exists overwrites its content.
type SaveRequest interface {
	RequestTitle() string
	doNotImplement(SaveRequest)
}

// RawBytes saves Data verbatim with the given media type.
type RawBytes struct {
	Title     string
	MediaType string
	Data      []byte
}

func (r RawBytes) RequestTitle() string { return r.Title }

func (RawBytes) doNotImplement(SaveRequest) {}

// Text saves Content as UTF-8 text.
type Text struct {
	Title   string
	Content string
}

func (r Text) RequestTitle() string { return r.Title }

func (Text) doNotImplement(SaveRequest) {}

// Document saves Value encoded with Codec, or with the store codec when Codec is nil.
type Document struct {
	Title string
	Value any
	Codec Codec
}

func (r Document) RequestTitle() string { return r.Title }

func (Document) doNotImplement(SaveRequest) {}

// MetadataOnly creates the terminal file if needed and leaves its content untouched.
// It is useful for placeholder documents.
type MetadataOnly struct {
	Title string
}

func (r MetadataOnly) RequestTitle() string { return r.Title }

func (MetadataOnly) doNotImplement(SaveRequest) {}
