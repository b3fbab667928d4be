package services

import (
	"fmt"
	"strings"

	"github.com/yoockh/jobportal/internal/models"
)

const resumeAnalysisPrompt = `You are an experienced technical recruiter reviewing a candidate's resume.
The resume is attached as a PDF. Candidate profile:
%s
Return ONLY a JSON object with this shape:
{"score": <integer 0-100>, "summary": "<2-3 sentences>", "strengths": ["..."], "weaknesses": ["..."], "suggestions": ["..."]}`

const jobMatchPrompt = `You compare a candidate against a job opening.
Candidate profile:
%s
Job:
%s
Return ONLY a JSON object with this shape:
{"matchScore": <integer 0-100>, "matchedSkills": ["..."], "missingSkills": ["..."], "recommendation": "<short advice for the candidate>"}`

const jobDescriptionPrompt = `You write clear, inclusive job postings.
Title: %s
Job type: %s
Location: %s
Experience: %s
Key skills: %s
Return ONLY a JSON object with this shape:
{"description": "<2 short paragraphs>", "requirements": ["..."], "responsibilities": ["..."]}`

func seekerContext(s *models.JobSeeker) string {
	var b strings.Builder
	if s.Bio != "" {
		fmt.Fprintf(&b, "Bio: %s\n", s.Bio)
	}
	fmt.Fprintf(&b, "Skills: %s\n", orNone(strings.Join(s.Skills, ", ")))
	for _, e := range s.Experience {
		fmt.Fprintf(&b, "Experience: %s at %s", e.Position, e.Company)
		if e.IsCurrent {
			b.WriteString(" (current)")
		}
		b.WriteString("\n")
	}
	for _, e := range s.Education {
		fmt.Fprintf(&b, "Education: %s, %s\n", e.Degree, e.Institution)
	}
	return b.String()
}

func jobContext(j *models.Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\nType: %s\nLocation: %s\n", j.Title, j.JobType, j.Location)
	if j.Experience != "" {
		fmt.Fprintf(&b, "Experience: %s\n", j.Experience)
	}
	fmt.Fprintf(&b, "Skills: %s\n", orNone(strings.Join(j.Skills, ", ")))
	fmt.Fprintf(&b, "Description: %s\n", j.Description)
	for _, r := range j.Requirements {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "none listed"
	}
	return s
}
