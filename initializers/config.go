package initializers

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
)

// DefaultAllowedOrigins are the browser origins always accepted by CORS.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:3000",
	"https://autonomix-insight-ai-dashboard.vercel.app",
}

// Config is the process configuration, read from the environment.
type Config struct {
	Port        string `koanf:"port"`
	Environment string `koanf:"environment"`
	FrontendURL string `koanf:"frontend_url"`
	LogLevel    string `koanf:"log_level"`

	OpenAIAPIKey  string        `koanf:"openai_api_key"`
	OpenAIModel   string        `koanf:"openai_model"`
	OpenAIBaseURL string        `koanf:"openai_base_url"`
	LLMTimeout    time.Duration `koanf:"llm_timeout"`

	StoreBackend    string        `koanf:"store_backend"`
	SupabaseURL     string        `koanf:"supabase_url"`
	SupabaseKey     string        `koanf:"supabase_key"`
	SupabaseAnonKey string        `koanf:"supabase_anon_key"`
	DirectURL       string        `koanf:"direct_url"`
	RunMigrations   bool          `koanf:"run_migrations"`
	StoreTimeout    time.Duration `koanf:"store_timeout"`

	ElasticsearchURL   string `koanf:"elasticsearch_url"`
	ElasticsearchIndex string `koanf:"elasticsearch_index"`

	SupabaseRegion     string `koanf:"supabase_region"`
	SupabaseS3Endpoint string `koanf:"supabase_s3_endpoint"`
	SupabaseAccessKey  string `koanf:"supabase_access_key"`
	SupabaseSecretKey  string `koanf:"supabase_secret_key"`
	SupabaseBucket     string `koanf:"supabase_bucket"`

	RateLimitPerMinute        int `koanf:"rate_limit_per_minute"`
	AnalyzeRateLimitPerMinute int `koanf:"analyze_rate_limit_per_minute"`
}

// LoadConfig reads the environment into a Config and fills in defaults.
// Keys are the lower-cased variable names, e.g. OPENAI_API_KEY -> openai_api_key.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if cfg.StoreBackend != BackendSupabase && cfg.StoreBackend != BackendPostgres {
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: must be %s or %s", cfg.StoreBackend, BackendSupabase, BackendPostgres)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 30 * time.Second
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = BackendSupabase
	}
	if cfg.SupabaseKey == "" {
		cfg.SupabaseKey = cfg.SupabaseAnonKey
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 10 * time.Second
	}
	if cfg.ElasticsearchIndex == "" {
		cfg.ElasticsearchIndex = "action_items"
	}
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 100
	}
	if cfg.AnalyzeRateLimitPerMinute <= 0 {
		cfg.AnalyzeRateLimitPerMinute = 10
	}
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// AllowedOrigins is the CORS allowlist: the fixed origins, FRONTEND_URL when
// set, and "*" in development.
func (c *Config) AllowedOrigins() []string {
	origins := append([]string(nil), DefaultAllowedOrigins...)
	if c.FrontendURL != "" {
		origins = append(origins, strings.TrimRight(c.FrontendURL, "/"))
	}
	if c.IsDevelopment() {
		origins = append(origins, "*")
	}
	return origins
}
