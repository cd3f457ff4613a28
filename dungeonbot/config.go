package dungeonbot

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/dungeon-bot/internal/domain/dungeon"
	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	EnvBotToken   = "DUNGEON_BOT_TOKEN"
	EnvDBPassword = "DUNGEON_DB_PASSWORD"
	EnvDBPath     = "DUNGEON_DB_PATH"
)

// LoadConfig reads the TOML config at path, then applies .env and environment overrides.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: slog.LevelInfo,
			Color: true,
		},
		DB: database.DBConfig{
			Driver: database.DriverSQLite,
			Path:   "data/dungeon.db",
		},
		Dungeon: DungeonConfig{
			Cooldown:  Duration{dungeon.DefaultCooldown},
			CacheSize: 256,
		},
	}
}

type Config struct {
	Log     LogConfig         `toml:"log"`
	Bot     BotConfig         `toml:"bot"`
	DB      database.DBConfig `toml:"db"`
	Dungeon DungeonConfig     `toml:"dungeon"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
	Color     bool       `toml:"color"`
}

type DungeonConfig struct {
	Cooldown Duration `toml:"cooldown"`
	// ReferenceFile replaces the embedded level table and encounter texts when set.
	ReferenceFile string `toml:"reference_file"`
	CacheSize     int    `toml:"cache_size"`
}

// Duration decodes TOML strings such as "1h" or "90m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBotToken); v != "" {
		c.Bot.Token = v
	}
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.DB.Password = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DB.Path = v
	}
}

// Validate checks everything but the bot token, which only the bot process needs.
func (c *Config) Validate() error {
	var errs []error

	switch c.DB.Driver {
	case database.DriverSQLite:
		if c.DB.Path == "" {
			errs = append(errs, errors.New("db.path is required for the sqlite driver"))
		}
	case database.DriverPostgres:
		if c.DB.Host == "" || c.DB.Database == "" {
			errs = append(errs, errors.New("db.host and db.database are required for the postgres driver"))
		}
		if c.DB.Port <= 0 {
			errs = append(errs, errors.New("db.port must be positive"))
		}
	default:
		errs = append(errs, fmt.Errorf("db.driver %q is not supported", c.DB.Driver))
	}

	if c.Dungeon.Cooldown.Duration <= 0 {
		errs = append(errs, errors.New("dungeon.cooldown must be positive"))
	}
	if c.Dungeon.CacheSize <= 0 {
		errs = append(errs, errors.New("dungeon.cache_size must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Bot.Token == "" {
		return fmt.Errorf("invalid config: bot.token is required (or set %s)", EnvBotToken)
	}
	return nil
}
