package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned by Validate when no API key is configured.
var ErrMissingAPIKey = errors.New("alpha vantage api key is not set (ALPHAVANTAGE_API_KEY)")

type AlphaVantage struct {
	APIKey                string `json:"api_key" yaml:"api_key"`
	BaseURL               string `json:"base_url" yaml:"base_url"`
	RequestTimeoutSec     int    `json:"request_timeout_sec" yaml:"request_timeout_sec"`
	MaxRequestsPerMinute  int    `json:"max_requests_per_minute" yaml:"max_requests_per_minute"`
	Burst                 int    `json:"burst" yaml:"burst"`
	MinRequestIntervalSec int    `json:"min_request_interval_sec" yaml:"min_request_interval_sec"`
}

type Cache struct {
	TTLSeconds int `json:"ttl_sec" yaml:"ttl_sec"`
}

type Search struct {
	DebounceMillis int `json:"debounce_ms" yaml:"debounce_ms"`
}

type Recent struct {
	// DBPath is the SQLite file; empty keeps the list in memory.
	DBPath     string `json:"db_path" yaml:"db_path"`
	MaxEntries int    `json:"max_entries" yaml:"max_entries"`
}

type Log struct {
	Level  string `json:"level" yaml:"level"`
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

type Config struct {
	AlphaVantage AlphaVantage `json:"alphavantage" yaml:"alphavantage"`
	Cache        Cache        `json:"cache" yaml:"cache"`
	Search       Search       `json:"search" yaml:"search"`
	Recent       Recent       `json:"recent" yaml:"recent"`
	Log          Log          `json:"log" yaml:"log"`
}

func Default() Config {
	return Config{
		AlphaVantage: AlphaVantage{
			BaseURL:              "https://www.alphavantage.co",
			RequestTimeoutSec:    10,
			MaxRequestsPerMinute: 5,
			Burst:                1,
		},
		Cache:  Cache{TTLSeconds: 15 * 60},
		Search: Search{DebounceMillis: 300},
		Recent: Recent{DBPath: "data/quotedesk.db", MaxEntries: 20},
		Log:    Log{Level: "info"},
	}
}

// Load reads config from path, JSON or YAML by extension. If path is empty
// it tries config.json, config.yaml and config.yml in turn; a missing file
// yields defaults. A .env file in the working directory is loaded next and
// environment variables override file values.
func Load(path string) (Config, error) {
	return LoadWithEnvFile(path, ".env")
}

// LoadWithEnvFile is Load with an explicit dotenv file. Variables already
// present in the environment win over the file.
func LoadWithEnvFile(path, envFile string) (Config, error) {
	cfg := Default()
	if path == "" {
		for _, candidate := range []string{"config.json", "config.yaml", "config.yml"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := decode(path, b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	default:
		return json.Unmarshal(b, cfg)
	}
}

// Validate reports settings the CLI cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.AlphaVantage.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.AlphaVantage.RequestTimeoutSec) * time.Second
}

func (c Config) MinRequestInterval() time.Duration {
	return time.Duration(c.AlphaVantage.MinRequestIntervalSec) * time.Second
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c Config) SearchDebounce() time.Duration {
	return time.Duration(c.Search.DebounceMillis) * time.Millisecond
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("ALPHAVANTAGE_BASE_URL"); v != "" {
		cfg.AlphaVantage.BaseURL = strings.TrimRight(v, "/")
	}
	envInt("REQUEST_TIMEOUT_SEC", 1, &cfg.AlphaVantage.RequestTimeoutSec)
	envInt("ALPHAVANTAGE_MAX_RPM", 0, &cfg.AlphaVantage.MaxRequestsPerMinute)
	envInt("ALPHAVANTAGE_BURST", 1, &cfg.AlphaVantage.Burst)
	envInt("ALPHAVANTAGE_MIN_INTERVAL_SEC", 0, &cfg.AlphaVantage.MinRequestIntervalSec)
	envInt("CACHE_TTL_SEC", 1, &cfg.Cache.TTLSeconds)
	envInt("SEARCH_DEBOUNCE_MS", 1, &cfg.Search.DebounceMillis)
	if v, ok := os.LookupEnv("RECENT_DB_PATH"); ok {
		cfg.Recent.DBPath = strings.TrimSpace(v)
	}
	envInt("RECENT_MAX_ENTRIES", 1, &cfg.Recent.MaxEntries)
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y":
			cfg.Log.Pretty = true
		case "0", "false", "no", "n":
			cfg.Log.Pretty = false
		}
	}
}

// envInt overwrites dst with the integer in key when it parses and is at
// least lowest.
func envInt(key string, lowest int, dst *int) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	x, err := strconv.Atoi(v)
	if err != nil || x < lowest {
		return
	}
	*dst = x
}
