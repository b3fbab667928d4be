package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAI talks to the chat completions API. It cannot read stored objects,
// so the model relies on the prompt's structured context.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, model, baseURL string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable is not set")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (o *OpenAI) Close() error { return nil }

func (o *OpenAI) Complete(ctx context.Context, prompt string, files ...File) (string, error) {
	// stored objects stay private; only their kind is mentioned
	if len(files) > 0 {
		kinds := make([]string, 0, len(files))
		for _, f := range files {
			kinds = append(kinds, f.MIMEType)
		}
		prompt += "\n\nThe user also uploaded " + strings.Join(kinds, ", ") +
			" document(s) that cannot be shown here. Base the answer on the profile above."
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
