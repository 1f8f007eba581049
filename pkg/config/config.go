package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Provider    ProviderConfig    `mapstructure:"provider"`
	Embedding   EmbeddingConfig   `mapstructure:"embedding"`
	Retrieval   RetrievalConfig   `mapstructure:"retrieval"`
	Transform   TransformConfig   `mapstructure:"transform"`
	Transcripts TranscriptsConfig `mapstructure:"transcripts"`
	LogLevel    string            `mapstructure:"log_level"`
}

type ProviderConfig struct {
	Model                 string  `mapstructure:"model"`
	Organization          string  `mapstructure:"organization"`
	APIKey                string  `mapstructure:"api_key"`
	MaxTokens             int     `mapstructure:"max_tokens"`
	Temperature           float64 `mapstructure:"temperature"`
	Retries               int     `mapstructure:"retries"`
	BackoffSeconds        int     `mapstructure:"backoff_seconds"`
	AttemptTimeoutSeconds int     `mapstructure:"attempt_timeout_seconds"`
}

type EmbeddingConfig struct {
	Model     string `mapstructure:"model"`
	Dimension int    `mapstructure:"dimension"`
	APIKey    string `mapstructure:"api_key"`
}

type RetrievalConfig struct {
	TopK int `mapstructure:"top_k"`
}

type TransformConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	GrammarModel string `mapstructure:"grammar_model"`
	SummaryModel string `mapstructure:"summary_model"`
}

type TranscriptsConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads config.yaml from the given path (plus ./config and .) with
// environment overrides, and returns an immutable snapshot. Configuration is
// resolved exactly once at startup; components receive the value explicitly.
func Load(configPath string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvAliases(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		// No file is fine: defaults plus environment still form a full config.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = cfg.Provider.APIKey
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.model", "gpt-3.5-turbo")
	v.SetDefault("provider.retries", 3)
	v.SetDefault("provider.backoff_seconds", 1)
	v.SetDefault("provider.attempt_timeout_seconds", 30)
	v.SetDefault("embedding.model", "text-embedding-3-small")
	v.SetDefault("embedding.dimension", 1536)
	v.SetDefault("retrieval.top_k", 2)
	v.SetDefault("transform.base_url", "http://localhost:11434")
	v.SetDefault("transform.grammar_model", "grammar-corrector")
	v.SetDefault("transform.summary_model", "summarizer")
	v.SetDefault("transcripts.dir", "responses")
	v.SetDefault("log_level", "info")
}

// bindEnvAliases keeps the conventional OpenAI variable names working next to
// the PROVIDER_*/EMBEDDING_* scheme produced by the key replacer.
func bindEnvAliases(v *viper.Viper) {
	_ = v.BindEnv("provider.api_key", "OPENAI_API_KEY", "PROVIDER_API_KEY")
	_ = v.BindEnv("provider.organization", "OPENAI_ORG_ID", "PROVIDER_ORGANIZATION")
	_ = v.BindEnv("provider.model", "OPENAI_MODEL", "PROVIDER_MODEL")
	_ = v.BindEnv("provider.retries", "API_CALL_RETRIES", "PROVIDER_RETRIES")
	_ = v.BindEnv("transcripts.dir", "LOG_DIR", "TRANSCRIPTS_DIR")
}
