package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// ProviderConfig is the per-provider connection setting.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Config selects and configures a provider.
type Config struct {
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	Gemini     ProviderConfig
	OpenRouter ProviderConfig

	Retry RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// RetryConfig is the backoff policy for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults: small, cheap models and three
// attempts per call.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 60 * time.Second,
	}
}

// Section returns the settings of the named provider, or nil.
func (c *Config) Section(name string) *ProviderConfig {
	switch name {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// EnvPrefix namespaces the variables read by FromEnv.
const EnvPrefix = "MASTERLY_"

// discoveryOrder lists the vendor key variables probed by Discover.
var discoveryOrder = []struct {
	provider string
	env      string
}{
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// FromEnv overlays MASTERLY_* variables on the defaults. It reports
// false when MASTERLY_LLM_PROVIDER is unset.
func FromEnv(getenv func(string) string) (Config, bool) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := DefaultConfig()
	for _, d := range discoveryOrder {
		sec := cfg.Section(d.provider)
		overlay(&sec.APIKey, getenv(EnvPrefix+d.env))
		overlay(&sec.Model, getenv(EnvPrefix+strings.ToUpper(d.provider)+"_MODEL"))
		overlay(&sec.BaseURL, getenv(EnvPrefix+strings.ToUpper(d.provider)+"_BASE_URL"))
	}
	if d, err := time.ParseDuration(getenv(EnvPrefix + "LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	p := getenv(EnvPrefix + "LLM_PROVIDER")
	if p == "" {
		return cfg, false
	}
	cfg.Provider = p
	return cfg, true
}

// Discover picks the first provider whose vendor key variable is set
// and fills in its key. Explicit MASTERLY_ settings still apply.
func Discover(getenv func(string) string) (Config, bool) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg, _ := FromEnv(getenv)
	for _, d := range discoveryOrder {
		if k := getenv(d.env); k != "" {
			cfg.Provider = d.provider
			sec := cfg.Section(d.provider)
			if sec.APIKey == "" {
				sec.APIKey = k
			}
			return cfg, true
		}
	}
	return cfg, false
}

// Validate reports whether the selected provider can be built.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	sec := c.Section(c.Provider)
	if sec == nil {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if sec.APIKey == "" {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider", EnvPrefix, strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
