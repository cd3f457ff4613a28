package dungeonbot

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	// keep godotenv away from any .env in the package directory
	t.Chdir(dir)
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[bot]
token = "from-file"

[db]
driver = "postgres"
host = "localhost"
port = 5432
user = "dungeon"
database = "dungeon"

[dungeon]
cooldown = "90m"
cache_size = 32
`)
	t.Setenv(EnvBotToken, "from-env")
	t.Setenv(EnvDBPassword, "secret")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Log.Level != slog.LevelDebug {
		t.Errorf("Log.Level = %v, want debug", cfg.Log.Level)
	}
	if cfg.Bot.Token != "from-env" {
		t.Errorf("Bot.Token = %q, want env override", cfg.Bot.Token)
	}
	if cfg.DB.Driver != database.DriverPostgres || cfg.DB.Password != "secret" {
		t.Errorf("DB = %+v", cfg.DB)
	}
	if cfg.Dungeon.Cooldown.Duration != 90*time.Minute {
		t.Errorf("Dungeon.Cooldown = %v, want 90m", cfg.Dungeon.Cooldown)
	}
	if cfg.Dungeon.CacheSize != 32 {
		t.Errorf("Dungeon.CacheSize = %d, want 32", cfg.Dungeon.CacheSize)
	}
	if err := cfg.ValidateBot(); err != nil {
		t.Errorf("ValidateBot() error = %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv(EnvBotToken, "")
	t.Setenv(EnvDBPath, "/tmp/override.db")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DB.Driver != database.DriverSQLite || cfg.DB.Path != "/tmp/override.db" {
		t.Errorf("DB = %+v", cfg.DB)
	}
	if cfg.Dungeon.Cooldown.Duration != time.Hour {
		t.Errorf("Dungeon.Cooldown = %v, want 1h", cfg.Dungeon.Cooldown)
	}
	if err := cfg.ValidateBot(); err == nil {
		t.Error("ValidateBot() without token returned nil error")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad duration", content: "[dungeon]\ncooldown = \"soon\"\n"},
		{name: "zero cooldown", content: "[dungeon]\ncooldown = \"0s\"\n"},
		{name: "unknown driver", content: "[db]\ndriver = \"mysql\"\n"},
		{name: "postgres without host", content: "[db]\ndriver = \"postgres\"\nport = 5432\n"},
		{name: "zero cache", content: "[dungeon]\ncache_size = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("LoadConfig() returned nil error")
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := LoadConfig("does-not-exist.toml"); err == nil {
		t.Error("LoadConfig() on missing file returned nil error")
	}
}
