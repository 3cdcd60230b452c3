package boot

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Config is read once at startup and passed by value into the components that
// need it. WEBHOOK_SECRET is required; startup fails without it.
type Config struct {
	WebhookSecret string `env:"WEBHOOK_SECRET,required"`
	DatabaseURL   string `env:"DATABASE_URL,default=sqlite:///data/app.db"`
	LogLevel      string `env:"LOG_LEVEL,default=INFO"`
	Server        struct {
		Host string `env:"HOST,default=0.0.0.0"`
		Port string `env:"PORT,default=8000"`
	}
}

func Load() (Config, error) {
	config := Config{}
	if err := envconfig.Process(context.Background(), &config); err != nil {
		return Config{}, fmt.Errorf("parsing env vars: %w", err)
	}
	return config, nil
}

// DatabasePath strips the sqlite:// scheme so the remainder can be handed to
// the driver as a file path.
func (c Config) DatabasePath() string {
	return strings.TrimPrefix(c.DatabaseURL, "sqlite://")
}

func (c Config) ListenAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}
