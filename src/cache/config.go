package cache

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TTL             time.Duration `envconfig:"CACHE_TTL" default:"30s"`
	MaxSize         int           `envconfig:"CACHE_MAX_SIZE" default:"1000"`
	JanitorInterval time.Duration `envconfig:"CACHE_JANITOR_INTERVAL" default:"1m"`
}

func GetConfig() *Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return &config
}
