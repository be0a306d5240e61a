package entity

import (
	"time"
)

// FileMetadata records an image uploaded for a place so it can be removed
// together with an abandoned placeholder.
type FileMetadata struct {
	ID          string    `json:"id" firestore:"id"`
	PlaceID     string    `json:"placeId" firestore:"placeId"`
	URL         string    `json:"url" firestore:"url"`
	UploadedBy  string    `json:"uploadedBy" firestore:"uploadedBy"`
	Filename    string    `json:"filename" firestore:"filename"`
	ContentType string    `json:"contentType" firestore:"contentType"`
	Size        int64     `json:"size" firestore:"size"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}
