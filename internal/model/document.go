package model

import "time"

// DocumentKind selects the document category (and therefore the storage bucket).
type DocumentKind string

const (
	KindWord  DocumentKind = "word"
	KindExcel DocumentKind = "excel"
)

// Valid reports whether the kind is one of the known document categories.
func (k DocumentKind) Valid() bool {
	return k == KindWord || k == KindExcel
}

// FileType returns the office file extension for the kind.
func (k DocumentKind) FileType() string {
	if k == KindExcel {
		return "xlsx"
	}
	return "docx"
}

// EditorType returns the embedded editor's document type string for the kind.
func (k DocumentKind) EditorType() string {
	if k == KindExcel {
		return "cell"
	}
	return "word"
}

// Document describes a stored file. The blob store owns the bytes and the
// metadata; this struct is only a caller-facing projection of it.
type Document struct {
	StorageID   string       `json:"storage_id"`
	Filename    string       `json:"filename"`
	Kind        DocumentKind `json:"kind"`
	Size        int64        `json:"size"`
	ContentType string       `json:"content_type"`
	UploadedAt  time.Time    `json:"uploaded_at"`
}
