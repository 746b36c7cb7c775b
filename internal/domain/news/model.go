package news

import (
	"strings"
	"time"
)

// Announcement is one shop-wide message. Clients show the latest only.
type Announcement struct {
	ID        string    `firestore:"id" json:"id"`
	Message   string    `firestore:"message" json:"message"`
	PostedBy  string    `firestore:"postedBy,omitempty" json:"postedBy,omitempty"`
	Timestamp time.Time `firestore:"timestamp,serverTimestamp" json:"timestamp"`
}

// PostInput is the announcement publish request body.
type PostInput struct {
	Message string `json:"message"`
}

func (in *PostInput) Trim() {
	in.Message = strings.TrimSpace(in.Message)
}
