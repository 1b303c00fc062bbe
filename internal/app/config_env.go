package app

import (
	"os"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	setString := func(dst *string, keys ...string) {
		if *dst != "" {
			return
		}
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}
	setString(&cfg.ArchiveURL, "ARCHIVE_URL")
	setString(&cfg.UserAgent, "USER_AGENT")
	setString(&cfg.BotToken, "TELEGRAM_BOT_TOKEN")
	// Both names are in use across deployments; prefer TARGET_CHAT_ID.
	setString(&cfg.ChatID, "TARGET_CHAT_ID", "TELEGRAM_CHAT_ID")
	setString(&cfg.TelegramAPI, "TELEGRAM_API_URL")
	setString(&cfg.TrackerPath, "TRACKER_PATH")
	setString(&cfg.TrackerRedisURL, "TRACKER_REDIS_URL")
	setString(&cfg.TrackerRedisKey, "TRACKER_REDIS_KEY")
	setString(&cfg.PushgatewayURL, "PUSHGATEWAY_URL")
	setString(&cfg.DigestDir, "DIGEST_DIR")

	if cfg.HTTPTimeout == 0 {
		if s := os.Getenv("HTTP_TIMEOUT"); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.HTTPTimeout = d
			}
		}
	}

	// Booleans
	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			if s == "1" || s == "true" || s == "yes" || s == "on" {
				*dst = true
			}
		}
	}
	setBool(&cfg.DryRun, "DRY_RUN")
	setBool(&cfg.Verbose, "VERBOSE")
}
