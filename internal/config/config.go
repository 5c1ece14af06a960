// Package config loads runtime configuration from a YAML file with
// environment variable overrides for credentials and deployment knobs.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults applied when a field is absent from both file and environment.
const (
	DefaultModel            = "gpt-4o-mini"
	DefaultDocsDir          = "docs"
	DefaultScoreThreshold   = 0.5
	DefaultTopK             = 5
	DefaultMinQuizAnswerLen = 3
	DefaultListenAddr       = ":8080"
	DefaultLogLevel         = "info"
)

// Model holds language-model settings.
type Model struct {
	Name    string `yaml:"name"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// Retrieval holds document-index and relevance-gate settings.
type Retrieval struct {
	DocsDir        string  `yaml:"docs_dir"`
	ScoreThreshold float64 `yaml:"score_threshold"`
	TopK           int     `yaml:"top_k"`
}

// WebSearch holds the optional web-search fallback settings. The
// feature is enabled when an API key is present.
type WebSearch struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// Redis holds checkpoint persistence settings. Addr empty means
// in-memory checkpoints.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Session holds dialogue-controller settings.
type Session struct {
	MinQuizAnswerLen int `yaml:"min_quiz_answer_len"`
}

// Config is the full runtime configuration.
type Config struct {
	Model      Model     `yaml:"model"`
	Retrieval  Retrieval `yaml:"retrieval"`
	WebSearch  WebSearch `yaml:"web_search"`
	Redis      Redis     `yaml:"redis"`
	Session    Session   `yaml:"session"`
	ListenAddr string    `yaml:"listen_addr"`
	LogLevel   string    `yaml:"log_level"`
}

// Default returns a configuration with every default applied.
func Default() Config {
	return Config{
		Model:      Model{Name: DefaultModel},
		Retrieval:  Retrieval{DocsDir: DefaultDocsDir, ScoreThreshold: DefaultScoreThreshold, TopK: DefaultTopK},
		Session:    Session{MinQuizAnswerLen: DefaultMinQuizAnswerLen},
		ListenAddr: DefaultListenAddr,
		LogLevel:   DefaultLogLevel,
	}
}

// Load reads path (which may be empty or missing, both meaning "use
// defaults"), then applies environment overrides and validates.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Missing file is fine; env and defaults still apply.
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Model.Name, "RESEARCHBOT_MODEL")
	setString(&cfg.Model.APIKey, "OPENAI_API_KEY")
	setString(&cfg.Model.BaseURL, "OPENAI_BASE_URL")
	setString(&cfg.Retrieval.DocsDir, "RESEARCHBOT_DOCS_DIR")
	setFloat(&cfg.Retrieval.ScoreThreshold, "RESEARCHBOT_SCORE_THRESHOLD")
	setInt(&cfg.Retrieval.TopK, "RESEARCHBOT_TOP_K")
	setString(&cfg.WebSearch.APIKey, "TAVILY_API_KEY")
	setString(&cfg.WebSearch.BaseURL, "TAVILY_BASE_URL")
	setString(&cfg.Redis.Addr, "RESEARCHBOT_REDIS_ADDR")
	setString(&cfg.Redis.Password, "RESEARCHBOT_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "RESEARCHBOT_REDIS_DB")
	setInt(&cfg.Session.MinQuizAnswerLen, "RESEARCHBOT_MIN_QUIZ_ANSWER_LEN")
	setString(&cfg.ListenAddr, "RESEARCHBOT_LISTEN_ADDR")
	setString(&cfg.LogLevel, "RESEARCHBOT_LOG_LEVEL")
}

func (c Config) validate() error {
	if c.Retrieval.ScoreThreshold < 0 || c.Retrieval.ScoreThreshold > 1 {
		return fmt.Errorf("config: score_threshold %v out of range [0,1]", c.Retrieval.ScoreThreshold)
	}
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("config: top_k must be at least 1, got %d", c.Retrieval.TopK)
	}
	if c.Session.MinQuizAnswerLen < 1 {
		return fmt.Errorf("config: min_quiz_answer_len must be at least 1, got %d", c.Session.MinQuizAnswerLen)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
