package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration shared by the binaries
type Config struct {
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	DiscordToken  string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	// GameMasterRoleID marks guild members with authority over every side
	GameMasterRoleID string `env:"GAME_MASTER_ROLE_ID"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`

	// AllowLuckyUnlucky toggles lucky/unlucky overrides table-wide
	AllowLuckyUnlucky bool `env:"ALLOW_LUCKY_UNLUCKY" envDefault:"true"`
	MaxWriteRetries   int  `env:"MAX_WRITE_RETRIES" envDefault:"3"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"contested.db"`

	// Store selects the contestctl backend, sqlite or redis
	Store string `env:"STORE" envDefault:"sqlite"`

	// DiceSeed fixes the dice sequence when non-zero
	DiceSeed int64 `env:"DICE_SEED"`

	// ResolvedChannel is the pub/sub channel resolutions are published to
	ResolvedChannel string `env:"RESOLVED_CHANNEL" envDefault:"contest:resolved"`
}

// Load reads an optional .env file and then the environment
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.MaxWriteRetries < 1 {
		cfg.MaxWriteRetries = 1
	}

	return cfg, nil
}
