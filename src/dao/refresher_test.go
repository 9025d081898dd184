package dao

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/warp-contracts/dao-bridge/src/store"
	"github.com/warp-contracts/dao-bridge/src/utils/config"
)

func TestRefresherTestSuite(t *testing.T) {
	suite.Run(t, new(RefresherTestSuite))
}

type RefresherTestSuite struct {
	suite.Suite
	config    *config.Config
	chain     *fakeChain
	session   *Session
	gateway   *Gateway
	refresher *Refresher
}

func (s *RefresherTestSuite) SetupTest() {
	s.config = config.Default()
	s.config.StopTimeout = 5 * time.Second
	s.config.Dao.RefreshInterval = time.Hour

	s.chain = newFakeChain(testNetworkID)
	s.session = newTestSession(newFakeProvider(testAccount), s.chain, new(fakePrompter))
	require.Nil(s.T(), s.session.EnsureConnected(context.Background()))

	s.gateway = NewGateway(s.session)
	s.refresher = NewRefresher(s.config).WithGateway(s.gateway)

	h := s.chain.handle
	h.On("Call", mock.Anything, methodDaoBalance, mock.Anything).Return([]interface{}{big.NewInt(1000000000000000000)}, nil)
	h.On("Call", mock.Anything, methodIsStakeholder, mock.Anything).Return([]interface{}{true}, nil)
	h.On("Call", mock.Anything, methodMyBalance, mock.Anything).Return([]interface{}{big.NewInt(0)}, nil)
	h.On("Call", mock.Anything, methodGetProposals, mock.Anything).Return([]interface{}{[]RawProposal{}}, nil)
}

func (s *RefresherTestSuite) proposalReads() uint64 {
	return s.session.Monitor().GetReport().State.ProposalReads.Load()
}

func (s *RefresherTestSuite) TestRefreshOnStart() {
	require.Nil(s.T(), s.refresher.Start())
	defer s.refresher.StopWait()

	require.Eventually(s.T(), func() bool {
		_, ok := s.session.Store().Get(store.KeyProposals)
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	balance, _ := s.session.Store().Get(store.KeyBalance)
	require.Equal(s.T(), "1", balance)

	_, ok := s.session.Store().Get(store.KeyContract)
	require.True(s.T(), ok)
}

func (s *RefresherTestSuite) TestRefreshOnEvents() {
	require.Nil(s.T(), s.refresher.Start())
	defer s.refresher.StopWait()

	require.Eventually(s.T(), func() bool { return s.proposalReads() == 1 }, 5*time.Second, 10*time.Millisecond)

	s.session.Notifier().Publish(Event{Topic: EventWriteCommitted, Method: methodVote})
	require.Eventually(s.T(), func() bool { return s.proposalReads() >= 2 }, 5*time.Second, 10*time.Millisecond)

	reads := s.proposalReads()
	s.session.Notifier().Publish(Event{Topic: EventNetworkChanged})
	require.Eventually(s.T(), func() bool { return s.proposalReads() > reads }, 5*time.Second, 10*time.Millisecond)
}

func (s *RefresherTestSuite) TestSkipsUnsupportedNetwork() {
	s.chain.setNetworkID(1)

	require.Nil(s.T(), s.refresher.Start())
	time.Sleep(100 * time.Millisecond)
	s.refresher.StopWait()

	require.Equal(s.T(), uint64(0), s.proposalReads())
	s.chain.handle.AssertNotCalled(s.T(), "Call", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RefresherTestSuite) TestUnsubscribesAfterStop() {
	require.Nil(s.T(), s.refresher.Start())
	require.Eventually(s.T(), func() bool { return s.proposalReads() == 1 }, 5*time.Second, 10*time.Millisecond)
	s.refresher.StopWait()

	s.session.Notifier().Publish(Event{Topic: EventAccountChanged})
	time.Sleep(50 * time.Millisecond)
	require.Equal(s.T(), uint64(1), s.proposalReads())
}
