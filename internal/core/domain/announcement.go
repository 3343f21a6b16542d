package domain

import "time"

// Announcement is immutable after creation.
type Announcement struct {
	ID        int64     `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Important bool      `json:"important" bson:"important"`
	CreatedBy int64     `json:"createdBy" bson:"created_by"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
