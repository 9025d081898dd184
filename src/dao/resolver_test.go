package dao

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/warp-contracts/dao-bridge/src/store"
)

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

type ResolverTestSuite struct {
	suite.Suite
	ctx      context.Context
	chain    *fakeChain
	session  *Session
	resolver *Resolver
}

func (s *ResolverTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.chain = newFakeChain(testNetworkID)
	s.session = newTestSession(newFakeProvider(testAccount), s.chain, new(fakePrompter))
	s.resolver = NewResolver(s.session)
}

func (s *ResolverTestSuite) TestResolveKnownNetwork() {
	require.Nil(s.T(), s.session.EnsureConnected(s.ctx))

	handle, err := s.resolver.Resolve(s.ctx)
	require.Nil(s.T(), err)
	require.NotNil(s.T(), handle)
	require.Equal(s.T(), testDaoAddress, handle.Address())
}

func (s *ResolverTestSuite) TestResolveUnknownNetwork() {
	require.Nil(s.T(), s.session.EnsureConnected(s.ctx))
	s.chain.setNetworkID(1)

	handle, err := s.resolver.Resolve(s.ctx)
	require.Nil(s.T(), err)
	require.Nil(s.T(), handle)
	require.Equal(s.T(), 0, s.chain.boundCount())
}

func (s *ResolverTestSuite) TestResolveNetworkError() {
	require.Nil(s.T(), s.session.EnsureConnected(s.ctx))
	s.chain.networkErr = errors.New("connection refused")

	handle, err := s.resolver.Resolve(s.ctx)
	require.Error(s.T(), err)
	require.Nil(s.T(), handle)
}

func (s *ResolverTestSuite) TestResolveWithoutAccountUsesDefault() {
	handle, err := s.resolver.Resolve(s.ctx)
	require.Nil(s.T(), err)
	require.Nil(s.T(), handle)

	require.Nil(s.T(), s.resolver.Seed(s.ctx))
	require.Equal(s.T(), 1, s.chain.boundCount())

	handle, err = s.resolver.Resolve(s.ctx)
	require.Nil(s.T(), err)
	require.NotNil(s.T(), handle)
	require.Equal(s.T(), testDaoAddress, handle.Address())

	// Default handle is reused, nothing new is bound
	require.Equal(s.T(), 1, s.chain.boundCount())
}

func (s *ResolverTestSuite) TestResolveRebindsWhenConnected() {
	require.Nil(s.T(), s.session.EnsureConnected(s.ctx))

	_, err := s.resolver.Resolve(s.ctx)
	require.Nil(s.T(), err)
	_, err = s.resolver.Resolve(s.ctx)
	require.Nil(s.T(), err)

	require.Equal(s.T(), 2, s.chain.boundCount())
}

func (s *ResolverTestSuite) TestSeedUnsupportedNetwork() {
	require.Nil(s.T(), s.resolver.Seed(s.ctx))
	_, ok := s.session.Store().Get(store.KeyContract)
	require.True(s.T(), ok)

	s.chain.setNetworkID(1)
	err := s.resolver.Seed(s.ctx)
	require.ErrorIs(s.T(), err, ErrNetworkUnsupported)

	_, ok = s.session.Store().Get(store.KeyContract)
	require.False(s.T(), ok)
}
