package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Archive struct {
		URL       string        `yaml:"url" json:"url"`
		UserAgent string        `yaml:"userAgent" json:"userAgent"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"archive" json:"archive"`

	Telegram struct {
		Token  string `yaml:"token" json:"token"`
		ChatID string `yaml:"chatID" json:"chatID"`
		API    string `yaml:"api" json:"api"`
	} `yaml:"telegram" json:"telegram"`

	Tracker struct {
		Path     string `yaml:"path" json:"path"`
		RedisURL string `yaml:"redisURL" json:"redisURL"`
		RedisKey string `yaml:"redisKey" json:"redisKey"`
	} `yaml:"tracker" json:"tracker"`

	Pushgateway string `yaml:"pushgateway" json:"pushgateway"`
	DigestDir   string `yaml:"digestDir" json:"digestDir"`
	DryRun      bool   `yaml:"dryRun" json:"dryRun"`
	Verbose     bool   `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are still unset, so flags and env keep precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
		}
	}
	setString(&cfg.ArchiveURL, fc.Archive.URL)
	setString(&cfg.UserAgent, fc.Archive.UserAgent)
	setString(&cfg.BotToken, fc.Telegram.Token)
	setString(&cfg.ChatID, fc.Telegram.ChatID)
	setString(&cfg.TelegramAPI, fc.Telegram.API)
	setString(&cfg.TrackerPath, fc.Tracker.Path)
	setString(&cfg.TrackerRedisURL, fc.Tracker.RedisURL)
	setString(&cfg.TrackerRedisKey, fc.Tracker.RedisKey)
	setString(&cfg.PushgatewayURL, fc.Pushgateway)
	setString(&cfg.DigestDir, fc.DigestDir)
	if cfg.HTTPTimeout == 0 && fc.Archive.Timeout > 0 {
		cfg.HTTPTimeout = fc.Archive.Timeout
	}
	if !cfg.DryRun && fc.DryRun {
		cfg.DryRun = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ErrMissingCredentials is returned by ValidateConfig when the bot cannot
// send messages.
var ErrMissingCredentials = errors.New("config: TELEGRAM_BOT_TOKEN and TARGET_CHAT_ID are required")

// ValidateConfig reports settings the run cannot work without. Missing bot
// credentials are tolerated in dry-run mode.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.ArchiveURL) == "" {
		return errors.New("config: archive url is required")
	}
	if !cfg.DryRun && (strings.TrimSpace(cfg.BotToken) == "" || strings.TrimSpace(cfg.ChatID) == "") {
		return ErrMissingCredentials
	}
	if cfg.HTTPTimeout < 0 {
		return errors.New("config: negative http timeout is not allowed")
	}
	return nil
}
