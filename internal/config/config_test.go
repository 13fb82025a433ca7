package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"eeg-insight/internal/config"
	"eeg-insight/internal/errors"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into a test. Empty variables count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DEBUG", "LOG_TO_FILE", "LOG_DIR", "CONFIG_FILE",
		"AI_PROVIDER", "AI_ENABLED", "USE_ANTHROPIC",
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GROQ_API_KEY",
		"AI_ENDPOINT_URL", "AI_MODEL", "AI_TIMEOUT_SECONDS", "AI_MAX_CONCURRENT",
		"REDIS_ADDR", "CACHE_TTL_SECONDS", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultPort, cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.False(t, cfg.Debug)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, config.ProviderNone, cfg.AI.Provider)
	assert.True(t, cfg.AI.Enabled)
	assert.False(t, cfg.AI.IsConfigured())
	assert.Equal(t, "Offline", cfg.AI.ProviderLabel())
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, config.DefaultMaxConcurrent, cfg.AI.MaxConcurrent)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "*", cfg.CORSAllowedOrigins)
}

func TestProviderInference(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantKind  config.ProviderKind
		wantKey   string
		wantLabel string
	}{
		{
			name:      "anthropic preferred",
			env:       map[string]string{"ANTHROPIC_API_KEY": "sk-ant-1", "OPENAI_API_KEY": "sk-oai-1"},
			wantKind:  config.ProviderAnthropic,
			wantKey:   "sk-ant-1",
			wantLabel: "Anthropic Claude",
		},
		{
			name:      "use anthropic disabled",
			env:       map[string]string{"USE_ANTHROPIC": "false", "ANTHROPIC_API_KEY": "sk-ant-1", "OPENAI_API_KEY": "sk-oai-1"},
			wantKind:  config.ProviderOpenAI,
			wantKey:   "sk-oai-1",
			wantLabel: "OpenAI GPT",
		},
		{
			name:      "groq only",
			env:       map[string]string{"GROQ_API_KEY": "gsk-1"},
			wantKind:  config.ProviderGroq,
			wantKey:   "gsk-1",
			wantLabel: "Groq",
		},
		{
			name:      "explicit provider",
			env:       map[string]string{"AI_PROVIDER": "Groq", "GROQ_API_KEY": "gsk-1", "ANTHROPIC_API_KEY": "sk-ant-1"},
			wantKind:  config.ProviderGroq,
			wantKey:   "gsk-1",
			wantLabel: "Groq",
		},
		{
			name:      "explicit none",
			env:       map[string]string{"AI_PROVIDER": "none", "OPENAI_API_KEY": "sk-oai-1"},
			wantKind:  config.ProviderNone,
			wantLabel: "Offline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()
			require.NoError(t, err)

			assert.Equal(t, tt.wantKind, cfg.AI.Provider)
			assert.Equal(t, tt.wantKey, cfg.AI.APIKey)
			assert.Equal(t, tt.wantLabel, cfg.AI.ProviderLabel())
			assert.Equal(t, tt.wantKey != "", cfg.AI.IsConfigured())
		})
	}
}

func TestExplicitProviderWithoutKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "openai")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.ProviderOpenAI, cfg.AI.Provider)
	assert.False(t, cfg.AI.IsConfigured())
}

func TestAIDisabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-oai-1")
	t.Setenv("AI_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.ProviderOpenAI, cfg.AI.Provider)
	assert.False(t, cfg.AI.Enabled)
	assert.False(t, cfg.AI.IsConfigured())
}

func TestOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_MODEL", "gpt-4o-mini")
	t.Setenv("AI_ENDPOINT_URL", "http://localhost:9999/v1/chat/completions")
	t.Setenv("AI_TIMEOUT_SECONDS", "5")
	t.Setenv("AI_MAX_CONCURRENT", "2")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, "http://localhost:9999/v1/chat/completions", cfg.AI.EndpointURL)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 2, cfg.AI.MaxConcurrent)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestInvalidProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "gemini")

	_, err := config.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidConfig, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "gemini")
}

func TestInvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_TIMEOUT_SECONDS", "0")

	_, err := config.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidConfig, errors.CodeOf(err))
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "eeg-insight.yaml")
	content := []byte("port: 8081\nai_provider: openai\nopenai_api_key: sk-file-key\nai_max_concurrent: 3\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := config.Load(config.WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, config.ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, "sk-file-key", cfg.AI.APIKey)
	assert.Equal(t, 3, cfg.AI.MaxConcurrent)
}

func TestLoadConfigFileMissing(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(config.WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidConfig, errors.CodeOf(err))
}

func TestEnvOverridesConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7070")

	path := filepath.Join(t.TempDir(), "eeg-insight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8081\n"), 0o600))

	cfg, err := config.Load(config.WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GROQ_API_KEY=gsk-dotenv\n"), 0o600))
	// godotenv writes through os.Setenv; register cleanup via t.Setenv first.
	t.Setenv("GROQ_API_KEY", "")
	require.NoError(t, os.Unsetenv("GROQ_API_KEY"))

	cfg, err := config.Load(config.WithDotEnv(path, filepath.Join(t.TempDir(), "absent.env")))
	require.NoError(t, err)

	assert.Equal(t, config.ProviderGroq, cfg.AI.Provider)
	assert.Equal(t, "gsk-dotenv", cfg.AI.APIKey)
}

func TestFlags(t *testing.T) {
	clearEnv(t)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--port", "9090", "--debug"}))

	cfg, err := config.Load(config.WithFlags(fs))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Debug)
}

func TestMaskedKey(t *testing.T) {
	assert.Equal(t, "sk-a...wxyz", config.AIConfig{APIKey: "sk-abcdefghijklmnopqrstuvwxyz"}.MaskedKey())
	assert.Equal(t, "****", config.AIConfig{APIKey: "abcd"}.MaskedKey())
	assert.Equal(t, "", config.AIConfig{}.MaskedKey())
}
