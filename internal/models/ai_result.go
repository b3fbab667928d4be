package models

import "time"

type ResumeAnalysis struct {
	Score       int      `json:"score"`
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

type JobMatch struct {
	MatchScore     int      `json:"matchScore"`
	MatchedSkills  []string `json:"matchedSkills"`
	MissingSkills  []string `json:"missingSkills"`
	Recommendation string   `json:"recommendation"`
}

type JobDescriptionDraft struct {
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
}

// CreditStatus is the remaining credit snapshot returned to clients.
type CreditStatus struct {
	Feature   AIFeature `json:"feature,omitempty"`
	Remaining int       `json:"remaining"`
	Usage     AIUsage   `json:"usage"`
	ResetsAt  time.Time `json:"resets_at"`
}
