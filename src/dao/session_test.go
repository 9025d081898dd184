package dao

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/warp-contracts/dao-bridge/src/store"
	"github.com/warp-contracts/dao-bridge/src/utils/eth"
)

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

type SessionTestSuite struct {
	suite.Suite
	ctx      context.Context
	provider *fakeProvider
	chain    *fakeChain
	prompter *fakePrompter
	session  *Session
}

func (s *SessionTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.provider = newFakeProvider(testAccount)
	s.chain = newFakeChain(testNetworkID)
	s.prompter = new(fakePrompter)
	s.session = newTestSession(s.provider, s.chain, s.prompter)
}

func (s *SessionTestSuite) TestConnectStoresLowerCasedAccount() {
	err := s.session.Connect(s.ctx)
	require.Nil(s.T(), err)

	value, ok := s.session.Store().Get(store.KeyConnectedAccount)
	require.True(s.T(), ok)
	require.Equal(s.T(), strings.ToLower(testAccount), value)

	account, ok := s.session.Account()
	require.True(s.T(), ok)
	require.True(s.T(), strings.EqualFold(testAccount, account.Hex()))
	require.Equal(s.T(), uint64(1), s.session.Monitor().GetReport().State.Connects.Load())
}

func (s *SessionTestSuite) TestConnectWithoutProvider() {
	session := newTestSession(nil, s.chain, s.prompter)

	err := session.Connect(s.ctx)
	require.ErrorIs(s.T(), err, ErrProviderMissing)
	require.Equal(s.T(), []string{promptInstallProvider}, s.prompter.Messages())

	_, ok := session.Account()
	require.False(s.T(), ok)
	require.Equal(s.T(), uint64(1), session.Monitor().GetReport().Errors.ProviderMissing.Load())
}

func (s *SessionTestSuite) TestConnectRejected() {
	rejected := errors.New("user rejected the request")
	s.provider.requestErr = rejected

	err := s.session.Connect(s.ctx)

	var fault *Fault
	require.ErrorAs(s.T(), err, &fault)
	require.ErrorIs(s.T(), err, rejected)
	require.Equal(s.T(), faultMessage, err.Error())

	_, ok := s.session.Account()
	require.False(s.T(), ok)
}

func (s *SessionTestSuite) TestConnectNoAccounts() {
	s.provider.setAccounts()

	err := s.session.Connect(s.ctx)
	require.ErrorIs(s.T(), err, ErrNoAccount)

	var fault *Fault
	require.ErrorAs(s.T(), err, &fault)
}

func (s *SessionTestSuite) TestEnsureConnected() {
	err := s.session.EnsureConnected(s.ctx)
	require.Nil(s.T(), err)

	account, ok := s.session.Account()
	require.True(s.T(), ok)
	require.True(s.T(), strings.EqualFold(testAccount, account.Hex()))
	require.Empty(s.T(), s.prompter.Messages())

	// Never asks for authorization
	require.Equal(s.T(), 0, s.provider.requested)
}

func (s *SessionTestSuite) TestEnsureConnectedNoAccounts() {
	s.session.Store().Set(store.KeyConnectedAccount, strings.ToLower(testAccount))
	s.provider.setAccounts()

	err := s.session.EnsureConnected(s.ctx)
	require.ErrorIs(s.T(), err, ErrNoAccount)
	require.Equal(s.T(), []string{promptConnectWallet}, s.prompter.Messages())

	_, ok := s.session.Store().Get(store.KeyConnectedAccount)
	require.False(s.T(), ok)
}

func (s *SessionTestSuite) TestEnsureConnectedWithoutProvider() {
	session := newTestSession(nil, s.chain, s.prompter)

	err := session.EnsureConnected(s.ctx)
	require.ErrorIs(s.T(), err, ErrProviderMissing)
	require.Equal(s.T(), []string{promptInstallProvider}, s.prompter.Messages())
}

func (s *SessionTestSuite) TestEnsureConnectedSubscribesOnce() {
	require.Nil(s.T(), s.session.EnsureConnected(s.ctx))
	require.Nil(s.T(), s.session.EnsureConnected(s.ctx))

	require.Len(s.T(), s.provider.handlers[eth.AccountsChanged], 1)
	require.Len(s.T(), s.provider.handlers[eth.ChainChanged], 1)
}

func (s *SessionTestSuite) TestAccountsChanged() {
	require.Nil(s.T(), s.session.EnsureConnected(s.ctx))

	var events []Event
	require.Nil(s.T(), s.session.Notifier().Subscribe(EventAccountChanged, func(e Event) {
		events = append(events, e)
	}))

	next := "0xDEF0000000000000000000000000000000000002"
	s.provider.setAccounts(next)
	s.provider.fire(eth.AccountsChanged)

	require.Len(s.T(), events, 1)
	require.Equal(s.T(), strings.ToLower(next), events[0].Account)

	value, ok := s.session.Store().Get(store.KeyConnectedAccount)
	require.True(s.T(), ok)
	require.Equal(s.T(), strings.ToLower(next), value)
	require.Equal(s.T(), uint64(1), s.session.Monitor().GetReport().State.AccountChanges.Load())
}

func (s *SessionTestSuite) TestAccountsDisconnected() {
	require.Nil(s.T(), s.session.EnsureConnected(s.ctx))

	var events []Event
	require.Nil(s.T(), s.session.Notifier().Subscribe(EventAccountChanged, func(e Event) {
		events = append(events, e)
	}))

	s.provider.setAccounts()
	s.provider.fire(eth.AccountsChanged)

	require.Len(s.T(), events, 1)
	require.Equal(s.T(), "", events[0].Account)

	_, ok := s.session.Account()
	require.False(s.T(), ok)
}

func (s *SessionTestSuite) TestChainChangedInvalidatesState() {
	require.Nil(s.T(), s.session.EnsureConnected(s.ctx))

	state := s.session.Store()
	state.Set(store.KeyContract, s.chain.handle)
	state.Set(store.KeyBalance, "1")
	state.Set(store.KeyMyBalance, "0.5")
	state.Set(store.KeyIsStakeholder, true)
	state.Set(store.KeyProposals, []Proposal{})

	var events []Event
	require.Nil(s.T(), s.session.Notifier().Subscribe(EventNetworkChanged, func(e Event) {
		events = append(events, e)
	}))

	s.provider.fire(eth.ChainChanged)

	require.Len(s.T(), events, 1)
	for _, key := range store.NetworkScopedKeys {
		_, ok := state.Get(key)
		require.False(s.T(), ok, key)
	}

	// Account doesn't depend on the network
	_, ok := s.session.Account()
	require.True(s.T(), ok)
}

func (s *SessionTestSuite) TestAccountSwitchDropsAccountState() {
	require.Nil(s.T(), s.session.EnsureConnected(s.ctx))

	state := s.session.Store()
	state.Set(store.KeyBalance, "10")
	state.Set(store.KeyMyBalance, "7")
	state.Set(store.KeyIsStakeholder, true)

	next := "0x00000000000000000000000000000000000000B2"
	s.provider.setAccounts(next)
	s.provider.fire(eth.AccountsChanged)

	value, ok := state.Get(store.KeyConnectedAccount)
	require.True(s.T(), ok)
	require.Equal(s.T(), strings.ToLower(next), value)

	for _, key := range store.AccountScopedKeys {
		_, ok := state.Get(key)
		require.False(s.T(), ok, key)
	}

	// DAO wide data stays
	balance, ok := state.Get(store.KeyBalance)
	require.True(s.T(), ok)
	require.Equal(s.T(), "10", balance)
}

func (s *SessionTestSuite) TestSameAccountKeepsAccountState() {
	require.Nil(s.T(), s.session.EnsureConnected(s.ctx))

	state := s.session.Store()
	state.Set(store.KeyMyBalance, "7")

	// Same account reported with different case
	s.provider.setAccounts(strings.ToLower(testAccount))
	s.provider.fire(eth.AccountsChanged)

	myBalance, ok := state.Get(store.KeyMyBalance)
	require.True(s.T(), ok)
	require.Equal(s.T(), "7", myBalance)
}

func (s *SessionTestSuite) TestDisconnectDropsAccountState() {
	require.Nil(s.T(), s.session.EnsureConnected(s.ctx))

	state := s.session.Store()
	state.Set(store.KeyMyBalance, "7")
	state.Set(store.KeyIsStakeholder, true)

	s.provider.setAccounts()
	s.provider.fire(eth.AccountsChanged)

	for _, key := range append([]store.Key{store.KeyConnectedAccount}, store.AccountScopedKeys...) {
		_, ok := state.Get(key)
		require.False(s.T(), ok, key)
	}
}
