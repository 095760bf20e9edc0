package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	API   APIConfig
	Token TokenConfig
	Lists ListConfig
	Log   LogConfig
	UI    UIConfig
}

// APIConfig points the client at the ProjectNest backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// TokenConfig locates the single durable key holding the bearer token.
type TokenConfig struct {
	Path string
}

// ListConfig tunes paginated listings.
type ListConfig struct {
	PageSize int
}

type LogConfig struct {
	Level  string
	Format string
}

// UIConfig controls terminal rendering.
type UIConfig struct {
	NoColor bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			if _, statErr := os.Stat(".env"); statErr == nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("API_TIMEOUT"), 15*time.Second),
	}

	cfg.Token = TokenConfig{Path: expandHome(v.GetString("TOKEN_PATH"))}

	cfg.Lists = ListConfig{PageSize: v.GetInt("PAGE_SIZE")}
	if cfg.Lists.PageSize <= 0 {
		cfg.Lists.PageSize = 10
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.UI = UIConfig{NoColor: v.GetBool("NO_COLOR")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_BASE_URL", "http://localhost:8000/api")
	v.SetDefault("API_TIMEOUT", "15s")

	v.SetDefault("TOKEN_PATH", "~/.projectnest/token")

	v.SetDefault("PAGE_SIZE", 10)

	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("NO_COLOR", false)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
