package market

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	CoinGeckoBaseURL string        `envconfig:"COINGECKO_BASE_URL" default:"https://api.coingecko.com/api/v3"`
	RequestTimeout   time.Duration `envconfig:"MARKET_REQUEST_TIMEOUT" default:"10s"`
	KlineLimit       int           `envconfig:"KLINE_LIMIT" default:"96"`
	Quote            string        `envconfig:"QUOTE" default:"USDT"`
}

func GetConfig() *Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return &config
}
