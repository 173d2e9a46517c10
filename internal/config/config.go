package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Orthobill"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Auth struct {
		// Secret signs session tokens. The default is only suitable for
		// the demo deployment.
		Secret     string        `envconfig:"AUTH_SECRET" default:"orthobill-dev-secret"`
		TokenTTL   time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"12h"`
		LoginDelay time.Duration `envconfig:"AUTH_LOGIN_DELAY" default:"1s"`
	}

	Catalog struct {
		// Path to an external ICD-10 catalog file. Empty means the
		// embedded dataset.
		Path string `envconfig:"CATALOG_PATH" default:""`
	}

	Demo struct {
		Seed bool `envconfig:"SEED_DEMO_DATA" default:"false"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
