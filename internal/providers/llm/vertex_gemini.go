package llm

import (
	"context"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/iterator"
)

type VertexGemini struct {
	client *vertexgenai.Client
	model  *vertexgenai.GenerativeModel
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	m := c.GenerativeModel(modelName)
	m.SetTemperature(0.2)
	m.ResponseMIMEType = "application/json"
	return &VertexGemini{client: c, model: m}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) Complete(ctx context.Context, prompt string, files ...File) (string, error) {
	parts := []vertexgenai.Part{vertexgenai.Text(prompt)}
	for _, f := range files {
		parts = append(parts, vertexgenai.FileData{MIMEType: f.MIMEType, FileURI: f.URI})
	}

	var out strings.Builder
	it := v.model.GenerateContentStream(ctx, parts...)
	for {
		resp, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", err
		}

		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if t, ok := part.(vertexgenai.Text); ok {
					out.WriteString(string(t))
				}
			}
		}
	}
	return out.String(), nil
}
