package services

import (
	"context"

	model "github.com/Itish41/InsightBoard/models"

	"go.uber.org/zap"
)

const (
	serviceName = "InsightBoard AI API"

	statusConnected     = "connected"
	statusDisconnected  = "disconnected"
	statusNotConfigured = "not_configured"
)

// Extractor produces action items from a transcript.
type Extractor interface {
	Extract(ctx context.Context, transcript string) ([]model.ActionItem, error)
	TestConnection(ctx context.Context) bool
}

// TranscriptDeps holds the components built at startup. Any of them may be disabled.
type TranscriptDeps struct {
	Engine      Component[Extractor]
	Store       Component[ActionItemStore]
	Index       Component[ActionItemIndex]
	Archive     Component[TranscriptArchiver]
	Environment string
	Logger      *zap.Logger
}

// TranscriptService coordinates extraction, persistence and the optional side stores.
type TranscriptService struct {
	engine      Component[Extractor]
	store       Component[ActionItemStore]
	index       Component[ActionItemIndex]
	archive     Component[TranscriptArchiver]
	environment string
	logger      *zap.Logger
}

func NewTranscriptService(deps TranscriptDeps) *TranscriptService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptService{
		engine:      deps.Engine,
		store:       deps.Store,
		index:       deps.Index,
		archive:     deps.Archive,
		environment: deps.Environment,
		logger:      logger.Named("transcripts"),
	}
}

// AnalyzeTranscript extracts action items and saves them.
//
// Extraction failures are returned. Saving is best-effort: when it fails the
// freshly extracted items are still returned, otherwise the stored copies are.
func (s *TranscriptService) AnalyzeTranscript(ctx context.Context, transcript string) ([]model.ActionItem, error) {
	engine, err := s.engine.Get()
	if err != nil {
		return nil, err
	}
	store, err := s.store.Get()
	if err != nil {
		return nil, err
	}

	s.logger.Info("received transcript analysis request", zap.Int("transcript_chars", len(transcript)))
	s.archiveTranscript(ctx, transcript)

	items, err := engine.Extract(ctx, transcript)
	if err != nil {
		return nil, err
	}

	saved, err := store.CreateMany(ctx, items)
	if err != nil {
		bestEffortFailuresTotal.WithLabelValues("persist").Inc()
		s.logger.Warn("failed to save extracted action items, returning unsaved items",
			zap.Int("count", len(items)), zap.Error(err))
		return items, nil
	}

	s.indexItems(ctx, saved)
	s.logger.Info("generated action items", zap.Int("count", len(saved)))
	return saved, nil
}

// Health probes the LLM, the store and the search index.
func (s *TranscriptService) Health(ctx context.Context) model.HealthResponse {
	resp := model.HealthResponse{
		Status:         "healthy",
		Service:        serviceName,
		OpenAIStatus:   statusDisconnected,
		DatabaseStatus: statusDisconnected,
		SearchStatus:   statusNotConfigured,
		Environment:    s.environment,
	}
	if engine, err := s.engine.Get(); err == nil && engine.TestConnection(ctx) {
		resp.OpenAIStatus = statusConnected
	}
	if store, err := s.store.Get(); err == nil && store.TestConnection(ctx) {
		resp.DatabaseStatus = statusConnected
	}
	if s.index.IsReady() {
		resp.SearchStatus = statusConnected
	}
	return resp
}

func (s *TranscriptService) archiveTranscript(ctx context.Context, transcript string) {
	archive, err := s.archive.Get()
	if err != nil {
		return
	}
	if _, err := archive.Archive(ctx, transcript); err != nil {
		bestEffortFailuresTotal.WithLabelValues("archive").Inc()
		s.logger.Warn("failed to archive transcript", zap.Error(err))
	}
}

func (s *TranscriptService) indexItems(ctx context.Context, items []model.ActionItem) {
	index, err := s.index.Get()
	if err != nil || len(items) == 0 {
		return
	}
	if err := index.IndexItems(ctx, items); err != nil {
		bestEffortFailuresTotal.WithLabelValues("index").Inc()
		s.logger.Warn("failed to index action items", zap.Int("count", len(items)), zap.Error(err))
	}
}

func (s *TranscriptService) unindexItem(ctx context.Context, id string) {
	index, err := s.index.Get()
	if err != nil {
		return
	}
	if err := index.DeleteItem(ctx, id); err != nil {
		bestEffortFailuresTotal.WithLabelValues("index").Inc()
		s.logger.Warn("failed to remove action item from index", zap.String("id", id), zap.Error(err))
	}
}
