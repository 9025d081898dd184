package eth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-resty/resty/v2"
)

type (
	// Truffle style build artifact
	Artifact struct {
		ContractName string                     `json:"contractName"`
		ABI          json.RawMessage            `json:"abi"`
		Networks     map[string]ArtifactNetwork `json:"networks"`
	}

	ArtifactNetwork struct {
		Address string `json:"address"`
	}
)

// Contract deployed on a specific network
type Deployment struct {
	NetworkID uint64
	Address   common.Address
	ABI       *abi.ABI
}

// Maps network ids to the deployed contract
type Registry struct {
	ABI         *abi.ABI
	deployments map[uint64]Deployment
}

func NewRegistry(contractAbi *abi.ABI) *Registry {
	return &Registry{
		ABI:         contractAbi,
		deployments: make(map[uint64]Deployment),
	}
}

func (self *Registry) WithDeployment(networkID uint64, address common.Address) *Registry {
	self.deployments[networkID] = Deployment{
		NetworkID: networkID,
		Address:   address,
		ABI:       self.ABI,
	}
	return self
}

// Adds deployments from a network id => address map, as found in config
func (self *Registry) WithDeployments(deployments map[string]string) (*Registry, error) {
	for rawID, address := range deployments {
		networkID, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid network id %q: %w", rawID, err)
		}
		if !common.IsHexAddress(address) {
			return nil, fmt.Errorf("invalid contract address %q for network %d", address, networkID)
		}
		self.WithDeployment(networkID, common.HexToAddress(address))
	}
	return self, nil
}

func (self *Registry) Lookup(networkID uint64) (deployment Deployment, ok bool) {
	deployment, ok = self.deployments[networkID]
	return
}

func ParseArtifact(data []byte) (registry *Registry, err error) {
	artifact := new(Artifact)
	err = json.Unmarshal(data, artifact)
	if err != nil {
		return
	}
	if len(artifact.ABI) == 0 {
		err = errors.New("artifact has no abi")
		return
	}

	contractAbi, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return
	}

	registry = NewRegistry(&contractAbi)
	for rawID, network := range artifact.Networks {
		registry, err = registry.WithDeployments(map[string]string{rawID: network.Address})
		if err != nil {
			return
		}
	}
	return
}

// Loads an artifact from an http(s) URL or a file. Empty location means the fallback
func LoadArtifact(location string, fallback []byte) (*Registry, error) {
	switch {
	case location == "":
		return ParseArtifact(fallback)
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return fetchArtifact(location)
	}

	/* #nosec */
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, err
	}
	return ParseArtifact(data)
}

func fetchArtifact(url string) (*Registry, error) {
	resp, err := resty.New().R().
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetching artifact was not successful: %s", resp.Status())
	}

	return ParseArtifact(resp.Body())
}
