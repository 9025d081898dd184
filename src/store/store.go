package store

import (
	"encoding/json"

	evbus "github.com/asaskevich/EventBus"
	"github.com/patrickmn/go-cache"
)

const topicAll = "*"

// Change of a single key, delivered to subscribers
type Change struct {
	Key     Key         `json:"key"`
	Value   interface{} `json:"value,omitempty"`
	Deleted bool        `json:"deleted,omitempty"`
}

func (self Change) MarshalBinary() ([]byte, error) {
	return json.Marshal(self)
}

// Process-wide key-value state shared with the UI.
// Safe for concurrent use, entries never expire.
type Store struct {
	cache *cache.Cache
	bus   evbus.Bus
}

func New() *Store {
	return &Store{
		cache: cache.New(cache.NoExpiration, 0),
		bus:   evbus.New(),
	}
}

func (self *Store) Get(key Key) (value interface{}, ok bool) {
	return self.cache.Get(string(key))
}

func (self *Store) Set(key Key, value interface{}) {
	self.cache.Set(string(key), value, cache.NoExpiration)
	self.publish(Change{Key: key, Value: value})
}

func (self *Store) Delete(key Key) {
	_, ok := self.cache.Get(string(key))
	if !ok {
		return
	}
	self.cache.Delete(string(key))
	self.publish(Change{Key: key, Deleted: true})
}

// Copy of all entries
func (self *Store) Snapshot() map[Key]interface{} {
	items := self.cache.Items()
	out := make(map[Key]interface{}, len(items))
	for k, item := range items {
		out[Key(k)] = item.Object
	}
	return out
}

// Calls fn synchronously after every change of the key
func (self *Store) Subscribe(key Key, fn func(Change)) error {
	return self.bus.Subscribe(string(key), fn)
}

// Calls fn synchronously after every change of any key
func (self *Store) SubscribeAll(fn func(Change)) error {
	return self.bus.Subscribe(topicAll, fn)
}

func (self *Store) Unsubscribe(key Key, fn func(Change)) error {
	return self.bus.Unsubscribe(string(key), fn)
}

func (self *Store) UnsubscribeAll(fn func(Change)) error {
	return self.bus.Unsubscribe(topicAll, fn)
}

func (self *Store) publish(change Change) {
	self.bus.Publish(string(change.Key), change)
	self.bus.Publish(topicAll, change)
}
