package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"api_key": "key-123",
		"port": 8081,
		"scraper_mode": "api",
		"scraper_api_url": "https://scraper.example.com/run",
		"cors_origins": ["https://app.example.com"],
		"scrape_timeout": "20s",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "key-123", cfg.APIKey)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, ScraperModeAPI, cfg.ScraperMode)
	assert.Equal(t, "https://scraper.example.com/run", cfg.ScraperAPIURL)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 20*time.Second, cfg.ScrapeTimeoutDuration())
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv_OverlaysSetValues(t *testing.T) {
	base := Config{APIKey: "file-key", Port: 3000, ScraperMode: ScraperModeHTML}

	cfg, err := base.FromEnv(envMap(map[string]string{
		"GEMINI_API_KEY":     "env-key",
		"DATABASE_URL":       "postgres://localhost/redflag",
		"PORT":               "9090",
		"USE_BROWSER":        "true",
		"CORS_ORIGINS":       " https://a.example.com , ,https://b.example.com",
		"GENERATION_TIMEOUT": "45",
	}))
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://localhost/redflag", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 45*time.Second, cfg.GenerationTimeoutDuration())
	assert.Equal(t, ScraperModeHTML, cfg.ScraperMode)

	// The receiver is left untouched
	assert.Equal(t, "file-key", base.APIKey)
}

func TestFromEnv_Empty(t *testing.T) {
	base := Defaults()
	cfg, err := base.FromEnv(envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, base, cfg)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	base := Config{}

	_, err := base.FromEnv(envMap(map[string]string{"PORT": "abc"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")

	_, err = base.FromEnv(envMap(map[string]string{"USE_BROWSER": "maybe"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "USE_BROWSER")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"negative port", Config{Port: -1}, "port"},
		{"port too large", Config{Port: 70000}, "port"},
		{"unknown mode", Config{ScraperMode: "ftp"}, "scraper_mode"},
		{"api mode without url", Config{ScraperMode: ScraperModeAPI}, "scraper_api_url"},
		{"bad scrape timeout", Config{ScrapeTimeout: "soon"}, "scrape_timeout"},
		{"negative generation timeout", Config{GenerationTimeout: "-5s"}, "generation_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTimeoutDurations(t *testing.T) {
	cfg := Config{ScrapeTimeout: "1m30s", GenerationTimeout: "10"}
	assert.Equal(t, 90*time.Second, cfg.ScrapeTimeoutDuration())
	assert.Equal(t, 10*time.Second, cfg.GenerationTimeoutDuration())

	empty := Config{}
	assert.Zero(t, empty.ScrapeTimeoutDuration())
	assert.Zero(t, empty.GenerationTimeoutDuration())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Defaults()
	defaults.APIKey = "default-key"

	partial := Config{
		Port:        8080,
		ScraperMode: ScraperModeAPI,
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, ScraperModeAPI, merged.ScraperMode)

	// Default values should fill in empty fields
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, DefaultCORSOrigins, merged.CORSOrigins)
	assert.Equal(t, "15s", merged.ScrapeTimeout)
	assert.Equal(t, "30s", merged.GenerationTimeout)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		APIKey: "test",
		Port:   1234,
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "test", merged.APIKey)
	assert.Equal(t, 1234, merged.Port)
	assert.Empty(t, merged.CORSOrigins)
}
