package dao

import (
	"context"
	"errors"

	"github.com/warp-contracts/dao-bridge/src/utils/config"
	"github.com/warp-contracts/dao-bridge/src/utils/task"
)

// Re-reads balances and proposals whenever account, network or contract state changes
type Refresher struct {
	*task.Task

	session *Session
	gateway *Gateway

	trigger chan struct{}
	handler func(Event)
}

var refresherTopics = []Topic{EventAccountChanged, EventNetworkChanged, EventWriteCommitted}

func NewRefresher(config *config.Config) (self *Refresher) {
	self = new(Refresher)

	self.trigger = make(chan struct{}, 1)
	self.handler = self.onEvent

	self.Task = task.NewTask(config, "refresher").
		WithOnBeforeStart(self.subscribe).
		WithOnAfterStop(self.unsubscribe).
		WithSubtaskFunc(self.run).
		WithPeriodicSubtaskFunc(config.Dao.RefreshInterval, self.schedule)

	return
}

func (self *Refresher) WithGateway(gateway *Gateway) *Refresher {
	self.gateway = gateway
	self.session = gateway.session
	return self
}

func (self *Refresher) subscribe() (err error) {
	for _, topic := range refresherTopics {
		err = self.session.notifier.Subscribe(topic, self.handler)
		if err != nil {
			return
		}
	}
	return
}

func (self *Refresher) unsubscribe() {
	for _, topic := range refresherTopics {
		err := self.session.notifier.Unsubscribe(topic, self.handler)
		if err != nil {
			self.Log.WithError(err).WithField("topic", topic).Warn("Failed to unsubscribe")
		}
	}
}

func (self *Refresher) onEvent(event Event) {
	self.Log.WithField("topic", event.Topic).Debug("Refresh requested")
	_ = self.schedule()
}

// Coalesces requests, at most one refresh is pending
func (self *Refresher) schedule() error {
	select {
	case self.trigger <- struct{}{}:
	default:
	}
	return nil
}

func (self *Refresher) run() error {
	for {
		select {
		case <-self.StopChannel:
			return nil
		case <-self.trigger:
			self.refresh(self.Ctx)
		}
	}
}

func (self *Refresher) refresh(ctx context.Context) {
	// Default handle for reads without an account, the network may have changed
	err := self.gateway.resolver.Seed(ctx)
	if errors.Is(err, ErrNetworkUnsupported) {
		self.Log.Warn("Contract is not deployed on the current network, skipping refresh")
		return
	}
	if err != nil {
		self.Log.WithError(err).Warn("Failed to resolve contract")
		return
	}

	_, err = self.gateway.FetchInfo(ctx)
	if err != nil {
		self.Log.WithError(err).Warn("Failed to refresh info")
	}

	_, err = self.gateway.FetchProposals(ctx)
	if err != nil {
		self.Log.WithError(err).Warn("Failed to refresh proposals")
	}
}
