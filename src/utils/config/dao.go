package config

import (
	"time"

	"github.com/spf13/viper"
)

type Dao struct {
	// Contract artifact with the ABI and per network addresses.
	// File path or http(s) URL, empty means the embedded artifact
	ArtifactPath string

	// Additional deployments, network id => contract address
	Deployments map[string]string

	// How often the watcher re-reads balances and proposals
	RefreshInterval time.Duration
}

func setDaoDefaults() {
	viper.SetDefault("Dao.ArtifactPath", "")
	viper.SetDefault("Dao.Deployments", map[string]string{})
	viper.SetDefault("Dao.RefreshInterval", "1m")
}
