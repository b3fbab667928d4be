package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employer struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User primitive.ObjectID `bson:"user" json:"user"`

	CompanyName        string   `bson:"company_name" json:"company_name"`
	CompanyLogo        *FileRef `bson:"company_logo,omitempty" json:"company_logo,omitempty"`
	CompanyWebsite     string   `bson:"company_website,omitempty" json:"company_website,omitempty"`
	CompanyDescription string   `bson:"company_description,omitempty" json:"company_description,omitempty"`
	Location           string   `bson:"location,omitempty" json:"location,omitempty"`
	Industry           string   `bson:"industry,omitempty" json:"industry,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CompanySummary is the employer slice embedded in job and application views.
type CompanySummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	CompanyName string             `bson:"company_name" json:"company_name"`
	CompanyLogo *FileRef           `bson:"company_logo,omitempty" json:"company_logo,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Industry    string             `bson:"industry,omitempty" json:"industry,omitempty"`
}

// PublicCompany is the public company page.
type PublicCompany struct {
	Employer *Employer `json:"employer"`
	Jobs     []Job     `json:"jobs"`
}
