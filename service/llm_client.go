package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const (
	defaultLLMModel   = "gpt-4o-mini"
	defaultLLMTimeout = 30 * time.Second
)

// CompletionRequest is a single chat-style exchange with the provider.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Completer sends one chat request and returns the assistant's text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// LLMConfig configures the OpenAI-compatible chat client.
type LLMConfig struct {
	APIKey  string
	Model   string
	BaseURL string // empty means the provider default
	Timeout time.Duration
}

type openAICompleter struct {
	llm   *openai.LLM
	model string
}

// NewOpenAICompleter builds a Completer backed by langchaingo's OpenAI client.
// BaseURL may point at any OpenAI-compatible endpoint (Groq, a local proxy).
func NewOpenAICompleter(cfg LLMConfig) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, &ConfigurationError{Component: "llm", Missing: []string{"OPENAI_API_KEY"}}
	}
	model := cfg.Model
	if model == "" {
		model = defaultLLMModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(model),
		openai.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return &openAICompleter{llm: llm, model: model}, nil
}

func (o *openAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]llms.MessageContent, 0, 2)
	if req.System != "" {
		messages = append(messages, llms.MessageContent{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextContent{Text: req.System}},
		})
	}
	messages = append(messages, llms.MessageContent{
		Role:  schema.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextContent{Text: req.User}},
	})

	callOpts := []llms.CallOption{llms.WithTemperature(req.Temperature)}
	if req.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := o.llm.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", o.model)
	}
	return resp.Choices[0].Content, nil
}
