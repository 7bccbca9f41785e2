package model

import "time"

// Config is the complete runtime configuration.
// Populated from defaults, then config file, then VERIDICT_* environment
// variables, then CLI flags (highest priority).
type Config struct {
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Providers ProviderConfig  `yaml:"providers" mapstructure:"providers"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	History   HistoryConfig   `yaml:"history" mapstructure:"history"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls outbound HTTP behavior for all provider calls.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`     // Per external call; never unbounded
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
	RateLimit float64       `yaml:"rate_limit" mapstructure:"rate_limit"` // Requests/second per provider host
	RateBurst int           `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// ProviderConfig holds external provider credentials and endpoints.
// An empty credential disables the corresponding checker; the pipeline
// degrades to heuristic verdicts and labels the degradation in the report.
type ProviderConfig struct {
	GoogleFactCheckAPIKey string   `yaml:"google_factcheck_api_key" mapstructure:"google_factcheck_api_key"`
	FREDAPIKey            string   `yaml:"fred_api_key" mapstructure:"fred_api_key"`
	NewsAPIKey            string   `yaml:"news_api_key" mapstructure:"news_api_key"`
	NewsFeeds             []string `yaml:"news_feeds" mapstructure:"news_feeds"` // RSS fallback when no news API key
}

// LLMConfig configures the optional LLM provider used for claim extraction,
// the AI checker, and summary polishing.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// PipelineConfig bounds the verification pipeline.
type PipelineConfig struct {
	MaxClaims        int           `yaml:"max_claims" mapstructure:"max_claims"`
	BatchSize        int           `yaml:"batch_size" mapstructure:"batch_size"`
	ClaimConcurrency int           `yaml:"claim_concurrency" mapstructure:"claim_concurrency"` // Concurrent claims within a batch
	ClaimTimeout     time.Duration `yaml:"claim_timeout" mapstructure:"claim_timeout"`          // Per-claim checker fan-out
	JobTimeout       time.Duration `yaml:"job_timeout" mapstructure:"job_timeout"`              // Whole pipeline
}

// CacheConfig controls the claim-result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir     string        `yaml:"dir" mapstructure:"dir"` // Disk layer location; empty disables the disk layer
}

// HistoryConfig bounds the speaker history tracker.
type HistoryConfig struct {
	MaxSpeakers       int `yaml:"max_speakers" mapstructure:"max_speakers"`
	MaxChecksPerClaim int `yaml:"max_checks_per_claim" mapstructure:"max_checks_per_claim"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "Veridict/0.1 (+https://github.com/veridict/veridict)",
			RateLimit: 2.0,
			RateBurst: 5,
		},
		Providers: ProviderConfig{},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
		Pipeline: PipelineConfig{
			MaxClaims:        30,
			BatchSize:        5,
			ClaimConcurrency: 10,
			ClaimTimeout:     12 * time.Second,
			JobTimeout:       15 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		History: HistoryConfig{
			MaxSpeakers:       1000,
			MaxChecksPerClaim: 20,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
