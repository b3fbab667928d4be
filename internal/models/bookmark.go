package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Bookmark struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JobSeeker primitive.ObjectID `bson:"job_seeker" json:"job_seeker"`
	Job       primitive.ObjectID `bson:"job" json:"job"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// BookmarkView is a bookmark with its job and company resolved.
type BookmarkView struct {
	Bookmark `bson:",inline"`
	JobInfo  JobSummary      `bson:"job_info" json:"job_info"`
	Company  *CompanySummary `bson:"company,omitempty" json:"company,omitempty"`
}
