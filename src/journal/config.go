package journal

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// FeeRate is the exchange fee charged per fill, applied once on the
	// entry notional and once on the exit notional. 0.002 = 0.2%.
	FeeRate float64 `envconfig:"FEE_RATE" default:"0.002"`
}

func GetConfig() *Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return &config
}
