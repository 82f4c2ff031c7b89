package domain

import "time"

// MaxPhotosPerEntry caps the number of photos attachable to one entry.
const MaxPhotosPerEntry = 5

// Photo is an image attached to an entry. Data holds the raw image bytes
// inline (base64 in JSON), mirroring the snapshot format — photos live inside
// the entry record, not in a separate blob store.
type Photo struct {
	ID       string    `json:"id"`
	Data     []byte    `json:"data"`
	Name     string    `json:"name"`
	MIMEType string    `json:"mimeType"`
	Size     int64     `json:"size"`
	AddedAt  time.Time `json:"addedAt"`
}
