package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Auth     AuthConfig     `toml:"auth"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Sources  SourcesConfig  `toml:"sources"`
	Webhooks WebhooksConfig `toml:"webhooks"`
	Preview  PreviewConfig  `toml:"preview"`
}

// AuthConfig contains the passcode the login endpoint compares against.
type AuthConfig struct {
	Passcode string `toml:"passcode"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// SourcesConfig contains the spreadsheet-backed JSON endpoints feeding the inbox.
type SourcesConfig struct {
	TracksURL       string `toml:"tracks_url"`
	AlbumsURL       string `toml:"albums_url"`
	CacheTTLMinutes int    `toml:"cache_ttl_minutes"`
}

// WebhooksConfig contains the automation endpoints actions are relayed to.
type WebhooksConfig struct {
	AddToPlaylist string  `toml:"add_to_playlist"`
	TrackChecked  string  `toml:"track_checked"`
	AlbumAction   string  `toml:"album_action"`
	AddAlbum      string  `toml:"add_album"`
	AddSong       string  `toml:"add_song"`
	Download      string  `toml:"download"`
	LibrarySearch string  `toml:"library_search"`
	RatePerSecond float64 `toml:"rate_per_second"`
}

// PreviewConfig contains the audio preview resolution settings.
type PreviewConfig struct {
	Enabled            bool     `toml:"enabled"`
	TrackURLWebhook    string   `toml:"track_url_webhook"`
	AlbumTracksWebhook string   `toml:"album_tracks_webhook"`
	SearchHosts        []string `toml:"search_hosts"`
	SearchPageBase     string   `toml:"search_page_base"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
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
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
