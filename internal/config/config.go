package config

import (
	"fmt"
	"log"
	"time"

	"embed-manager/internal/embed"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}
}

// Config holds runtime settings read from the environment.
type Config struct {
	DiscordToken      string        `env:"DISCORD_TOKEN,required"`
	StoragePath       string        `env:"STORAGE_PATH" envDefault:"datastore.json"`
	EmbedColor        string        `env:"EMBED_COLOR" envDefault:"#5865f2"`
	BuilderTimeout    time.Duration `env:"BUILDER_TIMEOUT" envDefault:"10m"`
	InitSlashCommands bool          `env:"INIT_SLASH_COMMANDS" envDefault:"true"`

	// ThemeColor is EmbedColor resolved to a Discord color value.
	ThemeColor int `env:"-"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	color, err := embed.ParseColor(cfg.EmbedColor)
	if err != nil {
		return nil, fmt.Errorf("EMBED_COLOR: %w", err)
	}
	cfg.ThemeColor = color

	if cfg.BuilderTimeout <= 0 {
		return nil, fmt.Errorf("BUILDER_TIMEOUT must be positive, got %s", cfg.BuilderTimeout)
	}

	return cfg, nil
}
