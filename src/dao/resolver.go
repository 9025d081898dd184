package dao

import (
	"context"

	"github.com/warp-contracts/dao-bridge/src/store"
	"github.com/warp-contracts/dao-bridge/src/utils/eth"
)

// Finds the contract deployed on the network the session is connected to
type Resolver struct {
	session *Session
}

func NewResolver(session *Session) *Resolver {
	return &Resolver{session: session}
}

// Returns a freshly bound handle, or the default handle when no account is connected.
// Nil handle without an error means the contract isn't available on this network.
func (self *Resolver) Resolve(ctx context.Context) (eth.Handle, error) {
	if _, ok := self.session.Account(); !ok {
		return self.cached(), nil
	}
	return self.bind(ctx)
}

// Binds the deployment of the current network and stores it as the default handle
func (self *Resolver) Seed(ctx context.Context) (err error) {
	handle, err := self.bind(ctx)
	if err != nil {
		return
	}
	if handle == nil {
		self.session.state.Delete(store.KeyContract)
		return ErrNetworkUnsupported
	}
	self.session.state.Set(store.KeyContract, handle)
	return nil
}

func (self *Resolver) bind(ctx context.Context) (eth.Handle, error) {
	networkID, err := self.session.chain.NetworkID(ctx)
	if err != nil {
		return nil, err
	}

	deployment, ok := self.session.registry.Lookup(networkID)
	if !ok {
		self.session.log.WithError(ErrNetworkUnsupported).WithField("networkId", networkID).Debug("No deployment")
		return nil, nil
	}

	return self.session.chain.BindContract(deployment.ABI, deployment.Address), nil
}

func (self *Resolver) cached() eth.Handle {
	value, ok := self.session.state.Get(store.KeyContract)
	if !ok {
		return nil
	}
	handle, _ := value.(eth.Handle)
	return handle
}
