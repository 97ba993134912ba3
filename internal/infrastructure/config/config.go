// Package config loads gong-mcp configuration from an optional YAML file,
// a local .env file and environment variables, in increasing precedence.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Gong       GongConfig       `yaml:"gong"`
	Cache      CacheConfig      `yaml:"cache"`
	Directory  DirectoryConfig  `yaml:"directory"`
	Resilience ResilienceConfig `yaml:"resilience"`
	MCP        MCPConfig        `yaml:"mcp"`
	Log        LogConfig        `yaml:"log"`
}

type GongConfig struct {
	BaseURL      string `yaml:"base_url"`
	AccessKey    string `yaml:"access_key"`
	AccessSecret string `yaml:"access_secret"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

type DirectoryConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

type ResilienceConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	MaxRetries    int           `yaml:"max_retries"`
	RetryDelay    time.Duration `yaml:"retry_delay"`
	RetryMaxDelay time.Duration `yaml:"retry_max_delay"`
}

type MCPConfig struct {
	ServerName string `yaml:"server_name"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load builds the configuration: defaults, then the YAML file (if any),
// then .env, then environment variables. It never fails; a broken file
// simply leaves the defaults in place.
func Load() *Config {
	cfg := defaults()

	if path := configPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	// A .env in the working directory feeds the env overrides below.
	_ = godotenv.Load()

	applyEnv(cfg)
	return cfg
}

func defaults() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Gong: GongConfig{
			BaseURL: "https://api.gong.io",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     filepath.Join(homeDir, ".gong-mcp"),
			TTL:     15 * time.Minute,
		},
		Directory: DirectoryConfig{
			TTL: time.Hour,
		},
		Resilience: ResilienceConfig{
			Timeout:       30 * time.Second,
			MaxRetries:    3,
			RetryDelay:    500 * time.Millisecond,
			RetryMaxDelay: 5 * time.Second,
		},
		MCP: MCPConfig{
			ServerName: "gong-mcp",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func configPath() string {
	if path := os.Getenv("GONG_MCP_CONFIG"); path != "" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".gong-mcp", "config.yaml")
}

func applyEnv(cfg *Config) {
	setString(&cfg.Gong.BaseURL, "GONG_BASE_URL")
	setString(&cfg.Gong.AccessKey, "GONG_ACCESS_KEY")
	setString(&cfg.Gong.AccessSecret, "GONG_ACCESS_SECRET")
	setString(&cfg.Cache.Dir, "GONG_MCP_CACHE_DIR")
	setBool(&cfg.Cache.Enabled, "GONG_MCP_CACHE_ENABLED")
	setDuration(&cfg.Cache.TTL, "GONG_MCP_CACHE_TTL")
	setDuration(&cfg.Directory.TTL, "GONG_MCP_DIRECTORY_TTL")
	setDuration(&cfg.Resilience.Timeout, "GONG_MCP_TIMEOUT")
	setString(&cfg.MCP.ServerName, "GONG_MCP_SERVER_NAME")
	setString(&cfg.Log.Level, "GONG_MCP_LOG_LEVEL")
}

func setString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func setBool(target *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			*target = parsed
		}
	}
}

func setDuration(target *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*target = parsed
		}
	}
}
