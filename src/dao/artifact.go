package dao

import (
	_ "embed"

	"github.com/warp-contracts/dao-bridge/src/utils/config"
	"github.com/warp-contracts/dao-bridge/src/utils/eth"
)

// Build artifact of the DAO contract, used when no other artifact is configured
//
//go:embed artifacts/DAO.json
var DefaultArtifact []byte

// Registry of deployments from the configured artifact and extra deployments
func LoadRegistry(config *config.Config) (registry *eth.Registry, err error) {
	registry, err = eth.LoadArtifact(config.Dao.ArtifactPath, DefaultArtifact)
	if err != nil {
		return
	}
	return registry.WithDeployments(config.Dao.Deployments)
}
