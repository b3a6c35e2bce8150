package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Data          DataConfig          `toml:"data"`
	Web           WebConfig           `toml:"web"`
	Lawgo         LawgoConfig         `toml:"lawgo"`
	Check         CheckConfig         `toml:"check"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// DataConfig locates the JSON resources shared between the checker and the
// dashboard.
type DataConfig struct {
	Dir           string `toml:"dir"`
	RunLog        string `toml:"run_log"`
	Snapshot      string `toml:"snapshot"`
	StandardsNFPC string `toml:"standards_nfpc"`
	StandardsNFTC string `toml:"standards_nftc"`
}

// WebConfig holds dashboard server settings. BaseURL overrides where the
// dashboard fetches its resources from; empty means the server's own /data/.
type WebConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	BaseURL string `toml:"base_url"`
}

// LawgoConfig holds law.go.kr API settings. The OC credential and mock switch
// can also come from the LAWGO_OC / LAWGO_MOCK environment, which wins over
// the file so CI schedulers can inject secrets.
type LawgoConfig struct {
	OC             string `toml:"oc"`
	Mock           bool   `toml:"mock"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxRetries     int    `toml:"max_retries"`
}

// CheckConfig holds monitoring job settings
type CheckConfig struct {
	Cron        string `toml:"cron"`
	Concurrency int    `toml:"concurrency"`
}

// NotificationsConfig holds notification settings
type NotificationsConfig struct {
	SlackWebhook string `toml:"slack_webhook"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:           "data",
			RunLog:        "data.json",
			Snapshot:      "snapshot.json",
			StandardsNFPC: "standards_nfpc.json",
			StandardsNFTC: "standards_nftc.json",
		},
		Web: WebConfig{
			Host: "127.0.0.1",
			Port: 8710,
		},
		Lawgo: LawgoConfig{
			TimeoutSeconds: 30,
			MaxRetries:     4,
		},
		Check: CheckConfig{
			Cron:        "",
			Concurrency: 4,
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults, then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.Data.Dir = ExpandPath(cfg.Data.Dir)
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	if oc := strings.TrimSpace(os.Getenv("LAWGO_OC")); oc != "" {
		c.Lawgo.OC = oc
	}
	if strings.TrimSpace(os.Getenv("LAWGO_MOCK")) == "1" {
		c.Lawgo.Mock = true
	}
}

// RunLogPath returns the run log's location on disk.
func (c *Config) RunLogPath() string { return c.dataPath(c.Data.RunLog) }

// SnapshotPath returns the snapshot's location on disk.
func (c *Config) SnapshotPath() string { return c.dataPath(c.Data.Snapshot) }

// NFPCPath returns the NFPC inventory's location on disk.
func (c *Config) NFPCPath() string { return c.dataPath(c.Data.StandardsNFPC) }

// NFTCPath returns the NFTC inventory's location on disk.
func (c *Config) NFTCPath() string { return c.dataPath(c.Data.StandardsNFTC) }

func (c *Config) dataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Data.Dir, name)
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "firecode-watch", "config.toml")
}
