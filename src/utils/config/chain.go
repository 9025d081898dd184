package config

import (
	"time"

	"github.com/spf13/viper"
)

type Chain struct {
	// JSON-RPC endpoint of the node. Empty means the wallet provider is used
	NodeURL string

	// Max number of RPC requests sent per second
	RequestsPerSecond int

	// Max time spent waiting for a transaction receipt
	ReceiptMaxElapsedTime time.Duration

	// Max time between receipt polls
	ReceiptMaxInterval time.Duration
}

func setChainDefaults() {
	viper.SetDefault("Chain.NodeURL", "")
	viper.SetDefault("Chain.RequestsPerSecond", 20)
	viper.SetDefault("Chain.ReceiptMaxElapsedTime", "5m")
	viper.SetDefault("Chain.ReceiptMaxInterval", "5s")
}
