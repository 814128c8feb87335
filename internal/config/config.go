// Package config provides centralized configuration for recast.
// Values come from an optional YAML file named by RECAST_CONFIG, with
// environment variables overriding file values, and sensible defaults
// underneath both.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "RECAST_CONFIG"

// Config holds all runtime configuration values.
type Config struct {
	// LLMProvider selects the generation backend: "gemini" or "openai".
	LLMProvider string `yaml:"llmProvider"`

	// GeminiKey is the API key for the Google Generative AI service.
	GeminiKey string `yaml:"geminiKey"`

	// GeminiModel is the model identifier for Gemini completions.
	GeminiModel string `yaml:"geminiModel"`

	// OpenAIKey is the API key for an OpenAI-compatible service.
	OpenAIKey string `yaml:"openaiKey"`

	// OpenAIModel is the model identifier for OpenAI completions.
	OpenAIModel string `yaml:"openaiModel"`

	// SocialBaseURL is the base URL of the social-source JSON API.
	SocialBaseURL string `yaml:"socialBaseUrl"`

	// WikiBaseURL is the endpoint of the encyclopedic query API.
	WikiBaseURL string `yaml:"wikiBaseUrl"`

	// UserAgent is sent on social-source requests.
	UserAgent string `yaml:"userAgent"`

	// HTTPTimeout is the timeout for outgoing HTTP requests.
	// Set via HTTP_TIMEOUT (Go duration string).
	HTTPTimeout time.Duration `yaml:"-"`

	// PacingDelay separates sequential calls to the encyclopedic source.
	// Set via PACING_DELAY (Go duration string).
	PacingDelay time.Duration `yaml:"-"`

	// FetchLinkedContent enables readable-text extraction for link posts.
	FetchLinkedContent bool `yaml:"fetchLinkedContent"`

	// DBPath is the path to the SQLite run-history database.
	DBPath string `yaml:"dbPath"`

	// OutputDir is where generated results are written.
	OutputDir string `yaml:"outputDir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
}

// Load reads configuration from the optional YAML file and the environment.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			cfg = defaultConfig()
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// UseStubs returns true when no API key is configured for the selected
// generation provider.
func (c Config) UseStubs() bool {
	switch c.LLMProvider {
	case "openai":
		return c.OpenAIKey == ""
	default:
		return c.GeminiKey == ""
	}
}

func (c *Config) applyEnvOverrides() {
	c.LLMProvider = envOr("LLM_PROVIDER", c.LLMProvider)
	c.GeminiKey = envOr("GEMINI_API_KEY", c.GeminiKey)
	c.GeminiModel = envOr("GEMINI_MODEL", c.GeminiModel)
	c.OpenAIKey = envOr("OPENAI_API_KEY", c.OpenAIKey)
	c.OpenAIModel = envOr("OPENAI_MODEL", c.OpenAIModel)
	c.SocialBaseURL = envOr("SOCIAL_BASE_URL", c.SocialBaseURL)
	c.WikiBaseURL = envOr("WIKI_BASE_URL", c.WikiBaseURL)
	c.UserAgent = envOr("USER_AGENT", c.UserAgent)
	c.HTTPTimeout = envDuration("HTTP_TIMEOUT", c.HTTPTimeout)
	c.PacingDelay = envDuration("PACING_DELAY", c.PacingDelay)
	c.FetchLinkedContent = envBool("FETCH_LINKED_CONTENT", c.FetchLinkedContent)
	c.DBPath = envOr("DB_PATH", c.DBPath)
	c.OutputDir = envOr("OUTPUT_DIR", c.OutputDir)
	c.LogLevel = envOr("LOG_LEVEL", c.LogLevel)
}

func defaultConfig() Config {
	return Config{
		LLMProvider:   "gemini",
		GeminiModel:   "gemini-2.0-flash-001",
		OpenAIModel:   "gpt-4o-mini",
		SocialBaseURL: "https://www.reddit.com",
		WikiBaseURL:   "https://en.wikipedia.org/w/api.php",
		UserAgent:     "recast/1.0",
		HTTPTimeout:   30 * time.Second,
		PacingDelay:   500 * time.Millisecond,
		DBPath:        "recast.db",
		OutputDir:     "output",
		LogLevel:      "info",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
