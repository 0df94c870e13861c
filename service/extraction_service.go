package services

import (
	"context"
	"strings"

	model "github.com/Itish41/InsightBoard/models"

	"go.uber.org/zap"
)

const extractionSystemPrompt = `You are an AI assistant that extracts actionable tasks from meeting transcripts.
Your job is to identify clear, specific action items that need to be completed.

Rules:
- Extract only concrete, actionable tasks (things people need to do)
- Make each action item clear and specific
- Include who is responsible if mentioned
- Include deadlines if mentioned
- Don't include general discussion points or observations
- Return ONLY a JSON array of strings, nothing else
- Each string should be a complete action item
- If no action items are found, return an empty array []

Example output format:
["John will prepare the Q4 report by Friday", "Sarah to review marketing strategy", "Schedule follow-up meeting with client next week"]`

const (
	extractionUserPrefix  = "Extract action items from this meeting transcript:\n\n"
	extractionTemperature = 0.3
	extractionMaxTokens   = 500

	probePrompt    = "Say 'API working'"
	probeMaxTokens = 10
)

// quotaIndicators mark provider errors that still prove the credential authenticated.
var quotaIndicators = []string{
	"429",
	"quota",
	"insufficient_quota",
	"rate limit",
	"too many requests",
	"resource_exhausted",
}

// ExtractionEngine turns transcripts into action items through an LLM.
type ExtractionEngine struct {
	llm    Completer
	logger *zap.Logger
}

func NewExtractionEngine(llm Completer, logger *zap.Logger) *ExtractionEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractionEngine{llm: llm, logger: logger.Named("extraction")}
}

// Extract asks the provider for action items and parses its reply.
// It makes exactly one provider call and never retries.
func (e *ExtractionEngine) Extract(ctx context.Context, transcript string) ([]model.ActionItem, error) {
	e.logger.Info("sending transcript to llm", zap.Int("transcript_chars", len(transcript)))

	reply, err := e.llm.Complete(ctx, CompletionRequest{
		System:      extractionSystemPrompt,
		User:        extractionUserPrefix + transcript,
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	})
	if err != nil {
		extractionsTotal.WithLabelValues("provider_error").Inc()
		e.logger.Error("llm request failed", zap.Error(err))
		return nil, &GenerationFailure{Err: err}
	}

	reply = strings.TrimSpace(reply)
	e.logger.Debug("received llm reply", zap.String("reply", reply))

	texts, err := parseActionItemTexts(reply)
	if err != nil {
		extractionsTotal.WithLabelValues("parse_error").Inc()
		e.logger.Warn("llm reply is not a JSON array", zap.Error(err), zap.String("reply", reply))
		return nil, &GenerationFailure{Raw: reply, Err: err}
	}

	items := make([]model.ActionItem, 0, len(texts))
	for _, text := range texts {
		item, err := model.NewActionItem(text)
		if err != nil {
			continue
		}
		items = append(items, item)
	}

	extractionsTotal.WithLabelValues("success").Inc()
	extractedItemsTotal.Add(float64(len(items)))
	e.logger.Info("extracted action items", zap.Int("count", len(items)))
	return items, nil
}

// TestConnection reports whether the provider accepts the credential.
// A quota-exhausted reply counts as connected: the key authenticated, capacity is a separate matter.
func (e *ExtractionEngine) TestConnection(ctx context.Context) bool {
	_, err := e.llm.Complete(ctx, CompletionRequest{User: probePrompt, MaxTokens: probeMaxTokens})
	if err == nil {
		return true
	}
	if isQuotaError(err) {
		e.logger.Info("llm credential is valid but quota is exhausted", zap.Error(err))
		return true
	}
	e.logger.Warn("llm connection test failed", zap.Error(err))
	return false
}

func isQuotaError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, indicator := range quotaIndicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
