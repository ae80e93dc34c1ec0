package model

import "time"

// FileType is the upload category chosen by the client.
type FileType string

const (
	FileTypeAvatar   FileType = "avatar"
	FileTypeCV       FileType = "cv"
	FileTypeDocument FileType = "document"
	FileTypeHeadshot FileType = "headshot"
)

// UploadedFile is the metadata record of a blob held in object storage.
// Field names follow the files table so clients see the same shape the store returns.
type UploadedFile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	FileType    FileType  `json:"file_type"`
	FileName    string    `json:"file_name"`
	FileURL     string    `json:"file_url"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
	// DownloadURL is a short-lived signed link; it is never persisted.
	DownloadURL string `json:"download_url,omitempty"`
}
