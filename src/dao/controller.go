package dao

import (
	"context"
	"errors"

	"github.com/warp-contracts/dao-bridge/src/store"
	"github.com/warp-contracts/dao-bridge/src/utils/config"
	"github.com/warp-contracts/dao-bridge/src/utils/eth"
	"github.com/warp-contracts/dao-bridge/src/utils/logger"
	"github.com/warp-contracts/dao-bridge/src/utils/publisher"
	"github.com/warp-contracts/dao-bridge/src/utils/task"
)

// Keeps the shared state in sync with the wallet and the contract
type Controller struct {
	*task.Task

	Session *Session
	Gateway *Gateway
}

// Wallet and node connection owned by the controller
type controllerClient interface {
	eth.WatchSource
	HasProvider() bool
	Close()
}

// Source of the changes mirrored to Redis
type changeFeed interface {
	SubscribeAll(fn func(store.Change)) error
}

func NewController(config *config.Config) (self *Controller, err error) {
	// Shared state
	state := store.New()

	// Wallet and node
	session, client, err := NewSessionFromConfig(config, state)
	if err != nil {
		logger.NewSublogger("controller").WithError(err).Error("Could not create session")
		return
	}

	return newController(config, session, client, state)
}

// Client is closed if wiring fails, otherwise after the controller stops
func newController(config *config.Config, session *Session, client controllerClient, feed changeFeed) (self *Controller, err error) {
	defer func() {
		if err != nil {
			client.Close()
		}
	}()

	self = new(Controller)
	self.Task = task.NewTask(config, "controller")
	self.Session = session
	self.Gateway = NewGateway(session).
		WithReceiptBackoff(config.Chain.ReceiptMaxElapsedTime, config.Chain.ReceiptMaxInterval)

	// Emits account and chain notifications
	watcher := eth.NewWatcher(config).
		WithSource(client)

	// Reads balances and proposals after every change
	refresher := NewRefresher(config).
		WithGateway(self.Gateway)

	// REST API
	server := NewServer(config, self.Gateway)

	// Mirrors shared state to Redis
	var publisherTask *task.Task
	if config.Redis.Enabled {
		changes := make(chan store.Change, 100)
		err = feed.SubscribeAll(func(change store.Change) {
			if change.Key == store.KeyContract {
				// Handles don't serialize
				return
			}
			select {
			case changes <- change:
			default:
				self.Log.WithField("key", change.Key).Warn("Publisher queue full, dropping state change")
			}
		})
		if err != nil {
			self.Log.WithError(err).Error("Could not subscribe to state changes")
			return
		}

		publisherTask = publisher.NewRedisPublisher[store.Change](config, "state-publisher").
			WithInputChannel(changes).
			WithMonitor(session.Monitor()).
			Task
	}

	// Setup everything, will start upon calling Controller.Start()
	self.Task = self.Task.
		WithOnBeforeStart(self.connect).
		WithOnAfterStop(client.Close).
		WithSubtask(session.monitor.Task).
		WithConditionalSubtask(client.HasProvider(), watcher.Task).
		WithSubtask(refresher.Task).
		WithSubtask(server.Task).
		WithConditionalSubtask(publisherTask != nil, publisherTask)

	return
}

// Picks up an already authorized account, never prompts
func (self *Controller) connect() error {
	ctx, cancel := context.WithTimeout(self.Ctx, notificationTimeout)
	defer cancel()

	err := self.Session.EnsureConnected(ctx)
	if err != nil && !errors.Is(err, ErrNoAccount) && !errors.Is(err, ErrProviderMissing) {
		self.Log.WithError(err).Warn("Failed to check wallet connection")
	}
	return nil
}
