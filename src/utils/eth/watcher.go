package eth

import (
	"context"
	"strings"

	"github.com/warp-contracts/dao-bridge/src/utils/config"
	"github.com/warp-contracts/dao-bridge/src/utils/task"
)

// Provider state polled by the watcher
type WatchSource interface {
	ListAuthorizedAccounts(ctx context.Context) ([]string, error)
	ChainID(ctx context.Context) (uint64, error)
	Notify(event Event)
}

// Polls the wallet provider and emits notifications when accounts or chain change
type Watcher struct {
	*task.Task

	source WatchSource

	initialized bool
	accounts    []string
	chainID     uint64
}

func NewWatcher(config *config.Config) (self *Watcher) {
	self = new(Watcher)

	self.Task = task.NewTask(config, "watcher").
		WithPeriodicSubtaskFunc(config.Wallet.PollInterval, self.check)

	return
}

func (self *Watcher) WithSource(source WatchSource) *Watcher {
	self.source = source
	return self
}

func (self *Watcher) check() error {
	accounts, err := self.source.ListAuthorizedAccounts(self.Ctx)
	if err != nil {
		self.Log.WithError(err).Warn("Failed to list accounts")
		return nil
	}

	chainID, err := self.source.ChainID(self.Ctx)
	if err != nil {
		self.Log.WithError(err).Warn("Failed to get chain id")
		return nil
	}

	if !self.initialized {
		self.initialized = true
		self.accounts = accounts
		self.chainID = chainID
		return nil
	}

	if chainID != self.chainID {
		self.Log.WithField("from", self.chainID).WithField("to", chainID).Info("Chain changed")
		self.chainID = chainID
		self.source.Notify(ChainChanged)
	}

	if !sameAccounts(accounts, self.accounts) {
		self.Log.WithField("accounts", accounts).Info("Accounts changed")
		self.accounts = accounts
		self.source.Notify(AccountsChanged)
	}

	return nil
}

func sameAccounts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}
