package models

import "time"

// AttachmentKind tells phasing files from timing files.
type AttachmentKind string

const (
	AttachmentPhasing AttachmentKind = "phasing"
	AttachmentTiming  AttachmentKind = "timing"
)

// Attachment describes one file submitted with an installation. The name
// is always kept; StorageKey is set only when the bytes were written to
// object storage.
type Attachment struct {
	ID             string         `json:"id"`
	InstallationID string         `json:"installation_id"`
	Kind           AttachmentKind `json:"kind"`
	FileName       string         `json:"file_name"`
	StorageKey     string         `json:"storage_key,omitempty"`
	ContentType    string         `json:"content_type,omitempty"`
	Size           int64          `json:"size"`
	CreatedAt      time.Time      `json:"created_at"`

	// DownloadURL is a short-lived presigned link, filled on read.
	DownloadURL string `json:"download_url,omitempty"`
}
