package initializers

import (
	"fmt"

	service "github.com/Itish41/InsightBoard/service"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildEngine wires the extraction engine. A missing key disables it instead of failing startup.
func BuildEngine(cfg *Config, logger *zap.Logger) service.Component[service.Extractor] {
	llm, err := service.NewOpenAICompleter(service.LLMConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.LLMTimeout,
	})
	if err != nil {
		logger.Error("failed to initialize LLM service", zap.Error(err))
		return service.Disabled[service.Extractor](err)
	}
	logger.Info("LLM service initialized", zap.String("model", cfg.OpenAIModel))
	return service.Ready[service.Extractor](service.NewExtractionEngine(llm, logger))
}

// BuildStore wires the configured persistence backend. db and connectErr come from
// ConnectDB and are only used by the postgres backend.
func BuildStore(cfg *Config, db *gorm.DB, connectErr error, logger *zap.Logger) service.Component[service.ActionItemStore] {
	var (
		store service.ActionItemStore
		err   error
	)
	switch {
	case cfg.StoreBackend == BackendPostgres && connectErr != nil:
		err = fmt.Errorf("connect postgres: %w", connectErr)
	case cfg.StoreBackend == BackendPostgres:
		store, err = service.NewPostgresStore(db, logger)
	default:
		store, err = service.NewSupabaseStore(service.SupabaseConfig{
			URL:     cfg.SupabaseURL,
			Key:     cfg.SupabaseKey,
			Timeout: cfg.StoreTimeout,
		}, logger)
	}
	if err != nil {
		logger.Error("failed to initialize database service", zap.String("backend", cfg.StoreBackend), zap.Error(err))
		return service.Disabled[service.ActionItemStore](err)
	}
	logger.Info("database service initialized", zap.String("backend", cfg.StoreBackend))
	return service.Ready(store)
}

// BuildSearchIndex wires Elasticsearch when ELASTICSEARCH_URL is set.
func BuildSearchIndex(cfg *Config, logger *zap.Logger) service.Component[service.ActionItemIndex] {
	index, err := service.NewSearchIndex(service.SearchConfig{
		URL:   cfg.ElasticsearchURL,
		Index: cfg.ElasticsearchIndex,
	}, logger)
	if err != nil {
		logger.Info("search index disabled", zap.Error(err))
		return service.Disabled[service.ActionItemIndex](err)
	}
	return service.Ready[service.ActionItemIndex](index)
}

// BuildArchive wires transcript archival when the S3 settings are complete.
func BuildArchive(cfg *Config, logger *zap.Logger) service.Component[service.TranscriptArchiver] {
	archive, err := service.NewTranscriptArchive(service.ArchiveConfig{
		Region:    cfg.SupabaseRegion,
		Endpoint:  cfg.SupabaseS3Endpoint,
		AccessKey: cfg.SupabaseAccessKey,
		SecretKey: cfg.SupabaseSecretKey,
		Bucket:    cfg.SupabaseBucket,
	}, logger)
	if err != nil {
		logger.Info("transcript archive disabled", zap.Error(err))
		return service.Disabled[service.TranscriptArchiver](err)
	}
	return service.Ready[service.TranscriptArchiver](archive)
}
