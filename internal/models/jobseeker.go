package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobSeeker struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User primitive.ObjectID `bson:"user" json:"user"`

	Bio          string   `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfileImage *FileRef `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	Resume       *FileRef `bson:"resume,omitempty" json:"resume,omitempty"`

	Skills     []string     `bson:"skills" json:"skills"` // lowercase
	Education  []Education  `bson:"education" json:"education"`
	Experience []Experience `bson:"experience" json:"experience"`

	// nil on profiles created before credits existed
	AIUsage *AIUsage `bson:"ai_usage,omitempty" json:"ai_usage,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Education struct {
	Institution  string `bson:"institution" json:"institution"`
	Degree       string `bson:"degree" json:"degree"`
	FieldOfStudy string `bson:"field_of_study,omitempty" json:"field_of_study,omitempty"`
	StartYear    int    `bson:"start_year,omitempty" json:"start_year,omitempty"`
	EndYear      int    `bson:"end_year,omitempty" json:"end_year,omitempty"`
	IsCurrent    bool   `bson:"is_current" json:"is_current"`
}

type Experience struct {
	Company     string     `bson:"company" json:"company"`
	Position    string     `bson:"position" json:"position"`
	StartDate   *time.Time `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate     *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	IsCurrent   bool       `bson:"is_current" json:"is_current"`
}

// SeekerSummary is the jobseeker slice shown to employers on applications.
type SeekerSummary struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Skills       []string           `bson:"skills" json:"skills"`
	ProfileImage *FileRef           `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
}
