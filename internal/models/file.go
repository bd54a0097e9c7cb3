package models

// UploadResult is what POST /upload/image returns.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// EventFile is one stored attachment of an event.
type EventFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size,omitempty"`
}
