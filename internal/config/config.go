package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"eeg-insight/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultPort           = 5000
	DefaultTimeoutSeconds = 30
	DefaultMaxConcurrent  = 8
	DefaultCacheTTL       = 600
)

// ProviderKind selects the external LLM completion API.
type ProviderKind string

const (
	ProviderNone      ProviderKind = "none"
	ProviderAnthropic ProviderKind = "anthropic"
	ProviderOpenAI    ProviderKind = "openai"
	ProviderGroq      ProviderKind = "groq"
)

// AIConfig is the provider configuration, read once at startup.
type AIConfig struct {
	Provider      ProviderKind  `json:"provider"`
	APIKey        string        `json:"-"`
	Enabled       bool          `json:"enabled"`
	EndpointURL   string        `json:"endpointUrl,omitempty"`
	Model         string        `json:"model,omitempty"`
	Timeout       time.Duration `json:"timeout"`
	MaxConcurrent int           `json:"maxConcurrent"`
}

// IsConfigured returns true if AI calls should be attempted.
func (c AIConfig) IsConfigured() bool {
	return c.Enabled && c.Provider != ProviderNone && c.APIKey != ""
}

// ProviderLabel is the human readable provider name.
func (c AIConfig) ProviderLabel() string {
	switch c.Provider {
	case ProviderAnthropic:
		return "Anthropic Claude"
	case ProviderOpenAI:
		return "OpenAI GPT"
	case ProviderGroq:
		return "Groq"
	default:
		return "Offline"
	}
}

// MaskedKey returns the API key with everything but the ends hidden.
func (c AIConfig) MaskedKey() string {
	if len(c.APIKey) <= 8 {
		return strings.Repeat("*", len(c.APIKey))
	}
	return c.APIKey[:4] + "..." + c.APIKey[len(c.APIKey)-4:]
}

// Config is the immutable process configuration.
type Config struct {
	Port               int
	Debug              bool
	LogToFile          bool
	LogDir             string
	AI                 AIConfig
	RedisAddr          string
	CacheTTL           time.Duration
	CORSAllowedOrigins string
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Option configures Load.
type Option func(*options)

type options struct {
	configPath string
	dotEnv     []string
	flags      *pflag.FlagSet
}

// WithConfigFile reads an explicit YAML/TOML/JSON file.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithDotEnv loads the given .env files into the environment first.
// Missing files are ignored; existing variables are never overridden.
func WithDotEnv(paths ...string) Option {
	return func(o *options) {
		o.dotEnv = append(o.dotEnv, paths...)
	}
}

// WithFlags binds flags registered by RegisterFlags.
func WithFlags(fs *pflag.FlagSet) Option {
	return func(o *options) {
		o.flags = fs
	}
}

// RegisterFlags adds the command-line flags understood by Load.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("port", DefaultPort, "HTTP listen port")
	fs.String("config", "", "Path to an optional config file")
	fs.Bool("debug", false, "Enable debug logging")
}

// Load reads configuration from flags, environment, .env and an optional file.
func Load(opts ...Option) (*Config, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	for _, path := range o.dotEnv {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if o.flags != nil {
		for _, name := range []string{"port", "debug"} {
			if f := o.flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, errors.Wrap(errors.ErrInvalidConfig, err)
				}
			}
		}
		if f := o.flags.Lookup("config"); f != nil && f.Value.String() != "" && o.configPath == "" {
			o.configPath = f.Value.String()
		}
	}

	if o.configPath == "" {
		o.configPath = v.GetString("config_file")
	}
	if o.configPath != "" {
		v.SetConfigFile(o.configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	provider, apiKey, err := resolveProvider(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:      v.GetInt("port"),
		Debug:     v.GetBool("debug"),
		LogToFile: v.GetBool("log_to_file"),
		LogDir:    v.GetString("log_dir"),
		AI: AIConfig{
			Provider:      provider,
			APIKey:        apiKey,
			Enabled:       v.GetBool("ai_enabled"),
			EndpointURL:   v.GetString("ai_endpoint_url"),
			Model:         v.GetString("ai_model"),
			Timeout:       time.Duration(v.GetInt("ai_timeout_seconds")) * time.Second,
			MaxConcurrent: v.GetInt("ai_max_concurrent"),
		},
		RedisAddr:          v.GetString("redis_addr"),
		CacheTTL:           time.Duration(v.GetInt("cache_ttl_seconds")) * time.Second,
		CORSAllowedOrigins: v.GetString("cors_allowed_origins"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", DefaultPort)
	v.SetDefault("debug", false)
	v.SetDefault("log_to_file", false)
	v.SetDefault("log_dir", "logs")
	v.SetDefault("config_file", "")
	v.SetDefault("ai_provider", "")
	v.SetDefault("ai_enabled", true)
	v.SetDefault("use_anthropic", true)
	v.SetDefault("anthropic_api_key", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("groq_api_key", "")
	v.SetDefault("ai_endpoint_url", "")
	v.SetDefault("ai_model", "")
	v.SetDefault("ai_timeout_seconds", DefaultTimeoutSeconds)
	v.SetDefault("ai_max_concurrent", DefaultMaxConcurrent)
	v.SetDefault("redis_addr", "")
	v.SetDefault("cache_ttl_seconds", DefaultCacheTTL)
	v.SetDefault("cors_allowed_origins", "*")
}

// resolveProvider honours AI_PROVIDER, or infers the provider from the
// configured keys: Anthropic (when USE_ANTHROPIC), then OpenAI, then Groq.
func resolveProvider(v *viper.Viper) (ProviderKind, string, error) {
	keys := map[ProviderKind]string{
		ProviderAnthropic: v.GetString("anthropic_api_key"),
		ProviderOpenAI:    v.GetString("openai_api_key"),
		ProviderGroq:      v.GetString("groq_api_key"),
	}

	switch kind := ProviderKind(strings.ToLower(strings.TrimSpace(v.GetString("ai_provider")))); kind {
	case "":
		if v.GetBool("use_anthropic") && keys[ProviderAnthropic] != "" {
			return ProviderAnthropic, keys[ProviderAnthropic], nil
		}
		for _, k := range []ProviderKind{ProviderOpenAI, ProviderGroq} {
			if keys[k] != "" {
				return k, keys[k], nil
			}
		}
		return ProviderNone, "", nil
	case ProviderNone:
		return ProviderNone, "", nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGroq:
		return kind, keys[kind], nil
	default:
		return "", "", errors.WithMessage(errors.ErrInvalidConfig, "unknown AI provider %q", kind)
	}
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.WithMessage(errors.ErrInvalidConfig, "port %d out of range", c.Port)
	}
	if c.AI.Timeout <= 0 {
		return errors.WithMessage(errors.ErrInvalidConfig, "AI timeout must be positive")
	}
	if c.AI.MaxConcurrent <= 0 {
		return errors.WithMessage(errors.ErrInvalidConfig, "AI max concurrency must be positive")
	}
	if c.CacheTTL < 0 {
		return errors.WithMessage(errors.ErrInvalidConfig, "cache TTL must not be negative")
	}
	return nil
}
