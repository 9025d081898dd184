package eth

import (
	"context"
	"errors"
	"math/big"

	evbus "github.com/asaskevich/EventBus"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/sirupsen/logrus"
	"github.com/warp-contracts/dao-bridge/src/utils/config"
	"github.com/warp-contracts/dao-bridge/src/utils/logger"
	"go.uber.org/ratelimit"
)

// Notifications sent by the wallet provider
type Event string

const (
	AccountsChanged Event = "accountsChanged"
	ChainChanged    Event = "chainChanged"
)

var ErrNoProvider = errors.New("wallet provider is not configured")

// Arguments of eth_sendTransaction
type TransactionArgs struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to"`
	Value *hexutil.Big    `json:"value,omitempty"`
	Data  hexutil.Bytes   `json:"data"`
}

// Connection to the wallet provider and to the node.
// The provider holds the accounts and signs transactions, the node serves reads.
type Client struct {
	log *logrus.Entry

	provider *rpc.Client
	node     *ethclient.Client

	limiter ratelimit.Limiter
	bus     evbus.Bus
}

func NewClient(config *config.Config) (self *Client, err error) {
	self = new(Client)
	self.log = logger.NewSublogger("eth-client")
	self.bus = evbus.New()

	if config.Chain.RequestsPerSecond > 0 {
		self.limiter = ratelimit.New(config.Chain.RequestsPerSecond)
	} else {
		self.limiter = ratelimit.NewUnlimited()
	}

	if config.Wallet.ProviderURL != "" {
		self.provider, err = rpc.Dial(config.Wallet.ProviderURL)
		if err != nil {
			self.log.WithError(err).Error("Cannot connect to the wallet provider")
			return
		}
	}

	switch {
	case config.Chain.NodeURL != "":
		self.node, err = ethclient.Dial(config.Chain.NodeURL)
		if err != nil {
			self.log.WithError(err).Error("Cannot get ETH client")
			return
		}
	case self.provider != nil:
		// Provider serves reads as well
		self.node = ethclient.NewClient(self.provider)
	default:
		err = errors.New("neither wallet provider nor node url is configured")
		return
	}

	return
}

func (self *Client) Close() {
	self.node.Close()
	if self.provider != nil {
		self.provider.Close()
	}
}

// Is a wallet provider available
func (self *Client) HasProvider() bool {
	return self.provider != nil
}

func (self *Client) NetworkID(ctx context.Context) (id uint64, err error) {
	self.limiter.Take()
	networkID, err := self.node.NetworkID(ctx)
	if err != nil {
		return
	}
	return networkID.Uint64(), nil
}

// Chain id reported by the wallet provider
func (self *Client) ChainID(ctx context.Context) (id uint64, err error) {
	if self.provider == nil {
		err = ErrNoProvider
		return
	}
	self.limiter.Take()
	var chainID hexutil.Uint64
	err = self.provider.CallContext(ctx, &chainID, "eth_chainId")
	return uint64(chainID), err
}

// Asks the provider to authorize accounts, may prompt the user
func (self *Client) RequestAccounts(ctx context.Context) (accounts []string, err error) {
	return self.accounts(ctx, "eth_requestAccounts")
}

// Accounts already authorized, never prompts
func (self *Client) ListAuthorizedAccounts(ctx context.Context) (accounts []string, err error) {
	return self.accounts(ctx, "eth_accounts")
}

func (self *Client) accounts(ctx context.Context, method string) (accounts []string, err error) {
	if self.provider == nil {
		err = ErrNoProvider
		return
	}
	self.limiter.Take()
	err = self.provider.CallContext(ctx, &accounts, method)
	return
}

// Registers a handler for provider notifications
func (self *Client) Subscribe(event Event, handler func()) error {
	return self.bus.Subscribe(string(event), handler)
}

// Delivers a provider notification to the subscribers
func (self *Client) Notify(event Event) {
	self.log.WithField("event", event).Debug("Provider notification")
	self.bus.Publish(string(event))
}

func (self *Client) ToBaseUnit(amount string) (*big.Int, error) {
	return EtherToWei(amount)
}

func (self *Client) FromBaseUnit(wei *big.Int) string {
	return WeiToEther(wei)
}

func (self *Client) BindContract(contractAbi *abi.ABI, address common.Address) Handle {
	return &Contract{
		address: address,
		abi:     contractAbi,
		client:  self,
		bound:   bind.NewBoundContract(address, *contractAbi, self.node, self.node, self.node),
	}
}

func (self *Client) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	self.limiter.Take()
	return self.node.TransactionReceipt(ctx, hash)
}

// Sends a transaction signed by the wallet provider
func (self *Client) SendTransaction(ctx context.Context, args TransactionArgs) (hash common.Hash, err error) {
	if self.provider == nil {
		err = ErrNoProvider
		return
	}
	self.limiter.Take()
	err = self.provider.CallContext(ctx, &hash, "eth_sendTransaction", args)
	return
}
