package cmd

import (
	"context"
	"errors"

	"github.com/pterm/pterm"
	"github.com/warp-contracts/dao-bridge/src/dao"
	"github.com/warp-contracts/dao-bridge/src/store"
	"github.com/warp-contracts/dao-bridge/src/utils/eth"
)

// Prints prompts to the terminal
type terminalPrompter struct{}

func (terminalPrompter) Prompt(message string) {
	pterm.Warning.Println(message)
}

type cliSession struct {
	*dao.Session
	gateway *dao.Gateway
	client  *eth.Client
}

func (self *cliSession) Close() {
	self.client.Close()
}

// Session for a single command. Picks up an authorized account if there is one
// and binds the default contract for reads.
func newCliSession(ctx context.Context) (self *cliSession, err error) {
	session, client, err := dao.NewSessionFromConfig(conf, store.New())
	if err != nil {
		return
	}
	session.WithPrompter(terminalPrompter{})

	self = &cliSession{
		Session: session,
		client:  client,
		gateway: dao.NewGateway(session).
			WithReceiptBackoff(conf.Chain.ReceiptMaxElapsedTime, conf.Chain.ReceiptMaxInterval),
	}

	err = session.EnsureConnected(ctx)
	if err != nil && !errors.Is(err, dao.ErrNoAccount) && !errors.Is(err, dao.ErrProviderMissing) {
		self.Close()
		return nil, err
	}

	err = self.gateway.Resolver().Seed(ctx)
	if errors.Is(err, dao.ErrNetworkUnsupported) {
		pterm.Warning.Println("DAO contract is not deployed on the current network")
		err = nil
	}
	if err != nil {
		self.Close()
		return nil, err
	}

	return
}
