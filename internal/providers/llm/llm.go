package llm

import "context"

// File is a stored object handed to the model alongside the prompt.
type File struct {
	MIMEType string
	URI      string // ex: gs://bucket/resumes/...
}

type Provider interface {
	// Complete returns the full text answer for prompt.
	Complete(ctx context.Context, prompt string, files ...File) (string, error)
	Close() error
}
