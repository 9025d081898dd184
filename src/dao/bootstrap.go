package dao

import (
	"github.com/warp-contracts/dao-bridge/src/store"
	"github.com/warp-contracts/dao-bridge/src/utils/config"
	"github.com/warp-contracts/dao-bridge/src/utils/eth"
)

// Builds a session from configuration. Client is returned so the caller can close it.
func NewSessionFromConfig(config *config.Config, state *store.Store) (session *Session, client *eth.Client, err error) {
	client, err = eth.NewClient(config)
	if err != nil {
		return
	}

	registry, err := LoadRegistry(config)
	if err != nil {
		client.Close()
		return
	}

	session = NewSession().
		WithChain(client).
		WithStore(state).
		WithRegistry(registry)

	if client.HasProvider() {
		session.WithProvider(client)
	}

	return
}
