package config

import (
	"time"

	"github.com/spf13/viper"
)

type Wallet struct {
	// JSON-RPC endpoint of the wallet provider. Empty means no provider is installed
	ProviderURL string

	// How often the provider is asked for accounts and chain id
	PollInterval time.Duration
}

func setWalletDefaults() {
	viper.SetDefault("Wallet.ProviderURL", "http://localhost:8545")
	viper.SetDefault("Wallet.PollInterval", "3s")
}
