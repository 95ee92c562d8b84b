package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

const defaultMinInterval = 500 * time.Millisecond

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Restore     RestoreConfig     `toml:"restore"`
	Extract     ExtractConfig     `toml:"extract"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	YouTube YouTubeConfig `toml:"youtube"`
	Gemini  GeminiConfig  `toml:"gemini"`
}

// YouTubeConfig contains the Google OAuth2 client used to authorize YouTube Data API calls.
type YouTubeConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	TokenPath    string `toml:"token_path"`
}

// GeminiConfig contains the optional text generation credentials.
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// RestoreConfig controls how playlists are recreated.
type RestoreConfig struct {
	Privacy              string `toml:"privacy"`
	MinInterval          string `toml:"min_interval"`
	Burst                int    `toml:"burst"`
	GenerateDescriptions bool   `toml:"generate_descriptions"`
}

// ExtractConfig controls where extracted records are written.
type ExtractConfig struct {
	Subfolder string `toml:"subfolder"`
}

// Interval parses MinInterval, falling back to 500ms when unset or malformed.
func (r RestoreConfig) Interval() time.Duration {
	if r.MinInterval == "" {
		return defaultMinInterval
	}
	d, err := time.ParseDuration(r.MinInterval)
	if err != nil || d < 0 {
		return defaultMinInterval
	}
	return d
}

// TokenFile returns the configured token path or ~/.tubesync/token.json.
func (y YouTubeConfig) TokenFile() string {
	if y.TokenPath != "" {
		return y.TokenPath
	}
	return HomePath("token.json")
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv loads the given dotenv files (".env" when none are given) into the process environment.
//
// Missing files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides credentials and paths from environment variables.
//
// GEMINI_API_KEY takes precedence over API_KEY.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TUBESYNC_CLIENT_ID"); v != "" {
		c.Credentials.YouTube.ClientID = v
	}
	if v := os.Getenv("TUBESYNC_CLIENT_SECRET"); v != "" {
		c.Credentials.YouTube.ClientSecret = v
	}
	if v := os.Getenv("API_KEY"); v != "" {
		c.Credentials.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Credentials.Gemini.APIKey = v
	}
	if v := os.Getenv("TUBESYNC_DB_PATH"); v != "" {
		c.Database.Path = v
	}
}

// Validate checks that the YouTube client credentials are present.
func (c *Config) Validate() error {
	yt := c.Credentials.YouTube
	if yt.ClientID == "" || yt.ClientID == "your_google_client_id.apps.googleusercontent.com" {
		return fmt.Errorf("%w: credentials.youtube.client_id", ErrMissingCredentials)
	}
	if yt.RedirectURI == "" {
		return fmt.Errorf("%w: credentials.youtube.redirect_uri", ErrInvalidConfig)
	}
	return nil
}
