package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "Applied"
	StatusShortlisted ApplicationStatus = "Shortlisted"
	StatusRejected    ApplicationStatus = "Rejected"
	StatusHired       ApplicationStatus = "Hired"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusShortlisted, StatusRejected, StatusHired:
		return true
	}
	return false
}

type Applicant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Job       primitive.ObjectID `bson:"job" json:"job"`
	JobSeeker primitive.ObjectID `bson:"job_seeker" json:"job_seeker"`

	Status      ApplicationStatus `bson:"status" json:"status"`
	CoverLetter string            `bson:"cover_letter,omitempty" json:"cover_letter,omitempty"`
	Resume      FileRef           `bson:"resume" json:"resume"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// JobSummary is the job slice embedded in application views.
type JobSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Title    string             `bson:"title" json:"title"`
	JobType  JobType            `bson:"job_type" json:"job_type"`
	Location string             `bson:"location" json:"location"`
	IsActive bool               `bson:"is_active" json:"is_active"`
}

// SeekerApplication is one row of a jobseeker's "my applications".
type SeekerApplication struct {
	Applicant `bson:",inline"`
	JobInfo   JobSummary      `bson:"job_info" json:"job_info"`
	Company   *CompanySummary `bson:"company,omitempty" json:"company,omitempty"`
}

// EmployerApplication is one row of an employer's applicant list.
type EmployerApplication struct {
	Applicant  `bson:",inline"`
	JobInfo    JobSummary    `bson:"job_info" json:"job_info"`
	SeekerInfo SeekerSummary `bson:"seeker_info" json:"seeker_info"`
}
