package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEnvFiles_LoadsKeyValues(t *testing.T) {
	t.Setenv("FOO", "")
	os.Unsetenv("FOO")
	t.Setenv("BAR", "")
	os.Unsetenv("BAR")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.test")
	content := "\n# sample dotenv file\nFOO=alpha\nexport BAR=\"beta gamma\"\nmalformed\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := LoadEnvFiles(envPath, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}

	if got := os.Getenv("FOO"); got != "alpha" {
		t.Fatalf("FOO=%q, want alpha", got)
	}
	if got := os.Getenv("BAR"); got != "beta gamma" {
		t.Fatalf("BAR=%q, want beta gamma", got)
	}
}

// Values already present in the environment are never replaced.
func TestLoadEnvFiles_KeepsExistingEnv(t *testing.T) {
	t.Setenv("K", "from-env")
	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	if err := os.WriteFile(p, []byte("K=from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := LoadEnvFiles(p); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("K"); got != "from-env" {
		t.Fatalf("K=%q, want from-env", got)
	}
}

func TestApplyEnvToConfig_FromEnv(t *testing.T) {
	t.Setenv("ARCHIVE_URL", "http://archive.example")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TARGET_CHAT_ID", "")
	t.Setenv("TELEGRAM_CHAT_ID", "-42")
	t.Setenv("TRACKER_PATH", "/tmp/last.txt")
	t.Setenv("HTTP_TIMEOUT", "30s")
	t.Setenv("DRY_RUN", "yes")

	cfg := Config{BotToken: "explicit"}
	ApplyEnvToConfig(&cfg)
	if cfg.ArchiveURL != "http://archive.example" {
		t.Fatalf("ArchiveURL=%q", cfg.ArchiveURL)
	}
	if cfg.BotToken != "explicit" {
		t.Fatalf("explicit BotToken was overridden: %q", cfg.BotToken)
	}
	if cfg.ChatID != "-42" {
		t.Fatalf("ChatID=%q, want fallback from TELEGRAM_CHAT_ID", cfg.ChatID)
	}
	if cfg.TrackerPath != "/tmp/last.txt" {
		t.Fatalf("TrackerPath=%q", cfg.TrackerPath)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("HTTPTimeout=%v", cfg.HTTPTimeout)
	}
	if !cfg.DryRun {
		t.Fatalf("DRY_RUN=yes should enable dry run")
	}
}

func TestApplyFileConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "parlvotes.yaml")
	content := "archive:\n  url: http://file.example\n  timeout: 10s\ntelegram:\n  token: file-token\n  chatID: \"-7\"\ntracker:\n  path: /data/last.txt\ndigestDir: /data/digests\n"
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	cfg := Config{ArchiveURL: "http://flag.example"}
	ApplyFileConfig(&cfg, fc)
	if cfg.ArchiveURL != "http://flag.example" {
		t.Fatalf("file config must not override explicit value, got %q", cfg.ArchiveURL)
	}
	if cfg.BotToken != "file-token" || cfg.ChatID != "-7" {
		t.Fatalf("telegram settings not applied: %+v", cfg)
	}
	if cfg.TrackerPath != "/data/last.txt" || cfg.DigestDir != "/data/digests" {
		t.Fatalf("paths not applied: %+v", cfg)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("HTTPTimeout=%v", cfg.HTTPTimeout)
	}
}

func TestValidateConfig(t *testing.T) {
	cfg := Config{}.WithDefaults()
	if err := ValidateConfig(cfg); err != ErrMissingCredentials {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	cfg.DryRun = true
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("dry run should not need credentials: %v", err)
	}
	cfg = Config{BotToken: "t", ChatID: "c"}.WithDefaults()
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
