package dao

import (
	evbus "github.com/asaskevich/EventBus"
	"github.com/ethereum/go-ethereum/common"
)

type Topic string

const (
	EventAccountChanged Topic = "account:changed"
	EventNetworkChanged Topic = "network:changed"
	EventWriteCommitted Topic = "write:committed"
)

type Event struct {
	Topic Topic

	// Connected account after the change, empty if none
	Account string

	// Set for EventWriteCommitted
	Method string
	TxHash common.Hash
}

// Notifies consumers about changes that invalidate account or network dependent data.
// Handlers run synchronously and must not subscribe or publish from within.
type Notifier struct {
	bus evbus.Bus
}

func NewNotifier() *Notifier {
	return &Notifier{bus: evbus.New()}
}

func (self *Notifier) Subscribe(topic Topic, fn func(Event)) error {
	return self.bus.Subscribe(string(topic), fn)
}

func (self *Notifier) Unsubscribe(topic Topic, fn func(Event)) error {
	return self.bus.Unsubscribe(string(topic), fn)
}

func (self *Notifier) Publish(event Event) {
	self.bus.Publish(string(event.Topic), event)
}
