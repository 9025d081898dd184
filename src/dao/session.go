package dao

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"
	"github.com/warp-contracts/dao-bridge/src/store"
	"github.com/warp-contracts/dao-bridge/src/utils/eth"
	"github.com/warp-contracts/dao-bridge/src/utils/logger"
	"github.com/warp-contracts/dao-bridge/src/utils/monitoring"
)

// Timeout of the account check triggered by a provider notification
const notificationTimeout = 30 * time.Second

// Wallet that holds the accounts and signs transactions
type WalletProvider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	ListAuthorizedAccounts(ctx context.Context) ([]string, error)
	Subscribe(event eth.Event, handler func()) error
}

// Node connection used for reads and transaction tracking
type ChainClient interface {
	NetworkID(ctx context.Context) (uint64, error)
	ToBaseUnit(amount string) (*big.Int, error)
	FromBaseUnit(wei *big.Int) string
	BindContract(contractAbi *abi.ABI, address common.Address) eth.Handle
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// Shared state consumed by the UI
type StateStore interface {
	Get(key store.Key) (interface{}, bool)
	Set(key store.Key, value interface{})
	Delete(key store.Key)
	Snapshot() map[store.Key]interface{}
}

// Session is the context every operation runs in: the wallet, the chain,
// the shared state and the reporting path. It also tracks the connected account.
type Session struct {
	log *logrus.Entry

	provider WalletProvider
	chain    ChainClient
	state    StateStore
	registry *eth.Registry
	notifier *Notifier
	reporter *Reporter
	prompter Prompter
	monitor  *monitoring.Monitor

	subscribeOnce sync.Once
}

func NewSession() (self *Session) {
	self = new(Session)
	self.log = logger.NewSublogger("session")
	self.state = store.New()
	self.notifier = NewNotifier()
	self.monitor = monitoring.NewMonitor()
	self.reporter = NewReporter().WithMonitor(self.monitor)
	self.prompter = NewLogPrompter()
	return
}

// Nil provider means no wallet is installed
func (self *Session) WithProvider(v WalletProvider) *Session {
	self.provider = v
	return self
}

func (self *Session) WithChain(v ChainClient) *Session {
	self.chain = v
	return self
}

func (self *Session) WithStore(v StateStore) *Session {
	self.state = v
	return self
}

func (self *Session) WithRegistry(v *eth.Registry) *Session {
	self.registry = v
	return self
}

func (self *Session) WithNotifier(v *Notifier) *Session {
	self.notifier = v
	return self
}

func (self *Session) WithPrompter(v Prompter) *Session {
	self.prompter = v
	return self
}

func (self *Session) WithMonitor(v *monitoring.Monitor) *Session {
	self.monitor = v
	self.reporter.WithMonitor(v)
	return self
}

func (self *Session) Store() StateStore {
	return self.state
}

func (self *Session) Notifier() *Notifier {
	return self.notifier
}

func (self *Session) Reporter() *Reporter {
	return self.reporter
}

func (self *Session) Monitor() *monitoring.Monitor {
	return self.monitor
}

// Asks the wallet to authorize an account and publishes the first one
func (self *Session) Connect(ctx context.Context) error {
	if self.provider == nil {
		return self.providerMissing()
	}

	accounts, err := self.provider.RequestAccounts(ctx)
	if err != nil {
		return self.reporter.Report(err)
	}
	if len(accounts) == 0 {
		return self.reporter.Report(ErrNoAccount)
	}

	self.setAccount(accounts[0])
	self.monitor.GetReport().State.Connects.Inc()
	return nil
}

// Reads already authorized accounts without prompting and keeps following
// the provider's account and network notifications. Safe to call repeatedly.
func (self *Session) EnsureConnected(ctx context.Context) (err error) {
	if self.provider == nil {
		return self.providerMissing()
	}

	self.subscribeOnce.Do(func() {
		err = self.subscribe()
	})
	if err != nil {
		return self.reporter.Report(err)
	}

	accounts, err := self.provider.ListAuthorizedAccounts(ctx)
	if err != nil {
		return self.reporter.Report(err)
	}

	if len(accounts) == 0 {
		self.log.Debug("No accounts found")
		self.clearAccount()
		self.prompter.Prompt(promptConnectWallet)
		return ErrNoAccount
	}

	self.setAccount(accounts[0])
	return nil
}

// Connected account, false if there's none
func (self *Session) Account() (account common.Address, ok bool) {
	value, ok := self.state.Get(store.KeyConnectedAccount)
	if !ok {
		return
	}
	hex, ok := value.(string)
	if !ok || !common.IsHexAddress(hex) {
		return common.Address{}, false
	}
	return common.HexToAddress(hex), true
}

// Drops everything that was read from or bound to the previous network
func (self *Session) Invalidate() {
	for _, key := range store.NetworkScopedKeys {
		self.state.Delete(key)
	}
}

// Balances read for another account are dropped before the new account is published
func (self *Session) setAccount(account string) {
	account = strings.ToLower(account)
	if account != self.accountString() {
		self.invalidateAccount()
	}
	self.state.Set(store.KeyConnectedAccount, account)
}

func (self *Session) clearAccount() {
	self.invalidateAccount()
	self.state.Delete(store.KeyConnectedAccount)
}

func (self *Session) invalidateAccount() {
	for _, key := range store.AccountScopedKeys {
		self.state.Delete(key)
	}
}

func (self *Session) accountString() string {
	value, ok := self.state.Get(store.KeyConnectedAccount)
	if !ok {
		return ""
	}
	account, _ := value.(string)
	return account
}

func (self *Session) providerMissing() error {
	self.monitor.GetReport().Errors.ProviderMissing.Inc()
	self.prompter.Prompt(promptInstallProvider)
	return ErrProviderMissing
}

func (self *Session) subscribe() (err error) {
	err = self.provider.Subscribe(eth.AccountsChanged, self.onAccountsChanged)
	if err != nil {
		return
	}
	return self.provider.Subscribe(eth.ChainChanged, self.onChainChanged)
}

func (self *Session) onAccountsChanged() {
	ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
	defer cancel()

	err := self.EnsureConnected(ctx)
	if err != nil && !errors.Is(err, ErrNoAccount) {
		self.log.WithError(err).Warn("Failed to refresh account")
	}

	self.monitor.GetReport().State.AccountChanges.Inc()
	self.notifier.Publish(Event{Topic: EventAccountChanged, Account: self.accountString()})
}

func (self *Session) onChainChanged() {
	self.log.Info("Network changed, invalidating state")
	self.Invalidate()

	self.monitor.GetReport().State.NetworkChanges.Inc()
	self.notifier.Publish(Event{Topic: EventNetworkChanged, Account: self.accountString()})
}
