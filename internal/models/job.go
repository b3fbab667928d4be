package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobType string

const (
	JobTypeFullTime   JobType = "Full-Time"
	JobTypePartTime   JobType = "Part-Time"
	JobTypeInternship JobType = "Internship"
	JobTypeContract   JobType = "Contract"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeContract:
		return true
	}
	return false
}

type Job struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Employer primitive.ObjectID `bson:"employer" json:"employer"`

	Title            string   `bson:"title" json:"title"`
	Description      string   `bson:"description" json:"description"`
	Requirements     []string `bson:"requirements" json:"requirements"`
	Responsibilities []string `bson:"responsibilities" json:"responsibilities"`
	Skills           []string `bson:"skills" json:"skills"` // lowercase
	JobType          JobType  `bson:"job_type" json:"job_type"`
	Location         string   `bson:"location" json:"location"`
	Salary           string   `bson:"salary,omitempty" json:"salary,omitempty"`
	Experience       string   `bson:"experience,omitempty" json:"experience,omitempty"`
	IsActive         bool     `bson:"is_active" json:"is_active"`
	Openings         int      `bson:"openings" json:"openings"`

	PostedOn  time.Time `bson:"posted_on" json:"posted_on"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// JobDetail is a job with its company embedded.
type JobDetail struct {
	Job     `bson:",inline"`
	Company *CompanySummary `bson:"company,omitempty" json:"company,omitempty"`
}

// EmployerJob is a job row on the employer dashboard.
type EmployerJob struct {
	Job            `bson:",inline"`
	ApplicantCount int64 `bson:"applicant_count" json:"applicant_count"`
}

type JobFilter struct {
	Search   string
	Location string
	JobType  JobType
	Skills   []string
	Page     int
	Limit    int
}

type JobPage struct {
	Jobs  []JobDetail `json:"jobs"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}
