package dao

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/warp-contracts/dao-bridge/src/store"
	"github.com/warp-contracts/dao-bridge/src/utils/eth"
	"github.com/warp-contracts/dao-bridge/src/utils/logger"
	"github.com/warp-contracts/dao-bridge/src/utils/task"
	"go.uber.org/atomic"
)

// Contract methods
const (
	methodContribute     = "contribute"
	methodCreateProposal = "createProposal"
	methodVote           = "vote"
	methodPayBeneficiary = "payBeneficiary"
	methodIsStakeholder  = "isStakeholder"
	methodDaoBalance     = "daoBalance"
	methodMyBalance      = "myBalance"
	methodGetProposals   = "getProposals"
	methodGetVotesOf     = "getVotesOf"
)

// Reads and writes of the DAO contract
type Gateway struct {
	log      *logrus.Entry
	session  *Session
	resolver *Resolver

	// Receipt polling
	receiptMaxElapsedTime time.Duration
	receiptMaxInterval    time.Duration
}

func NewGateway(session *Session) (self *Gateway) {
	self = new(Gateway)
	self.log = logger.NewSublogger("gateway")
	self.session = session
	self.resolver = NewResolver(session)
	self.receiptMaxElapsedTime = 5 * time.Minute
	self.receiptMaxInterval = 5 * time.Second
	return
}

func (self *Gateway) WithReceiptBackoff(maxElapsedTime, maxInterval time.Duration) *Gateway {
	self.receiptMaxElapsedTime = maxElapsedTime
	self.receiptMaxInterval = maxInterval
	return self
}

func (self *Gateway) Resolver() *Resolver {
	return self.resolver
}

// Sends ether to the DAO from the connected account
func (self *Gateway) Contribute(ctx context.Context, amount string) (common.Hash, error) {
	value, err := self.session.chain.ToBaseUnit(amount)
	if err != nil {
		return common.Hash{}, self.session.reporter.Report(fmt.Errorf("%w: %w", ErrTransactionFailure, err))
	}
	return self.transact(ctx, &self.session.monitor.GetReport().State.Contributions, value, methodContribute)
}

// Creates a proposal. Input isn't validated, missing fields are sent as zero values.
func (self *Gateway) RaiseProposal(ctx context.Context, in ProposalInput) (common.Hash, error) {
	amount, err := self.session.chain.ToBaseUnit(in.Amount)
	if err != nil {
		return common.Hash{}, self.session.reporter.Report(fmt.Errorf("%w: %w", ErrTransactionFailure, err))
	}
	return self.transact(ctx, &self.session.monitor.GetReport().State.ProposalsRaised, nil, methodCreateProposal,
		in.Title, in.Description, common.HexToAddress(in.Beneficiary), amount)
}

func (self *Gateway) Vote(ctx context.Context, proposalID *big.Int, supported bool) (common.Hash, error) {
	return self.transact(ctx, &self.session.monitor.GetReport().State.VotesCast, nil, methodVote, proposalID, supported)
}

// Eligibility is checked by the contract
func (self *Gateway) PayoutBeneficiary(ctx context.Context, proposalID *big.Int) (common.Hash, error) {
	return self.transact(ctx, &self.session.monitor.GetReport().State.Payouts, nil, methodPayBeneficiary, proposalID)
}

// Reads the stakeholder flag and balances and publishes them
func (self *Gateway) FetchInfo(ctx context.Context) (info Info, err error) {
	log := self.opLogger("fetchInfo")

	handle, err := self.readHandle(ctx)
	if err != nil {
		return
	}

	account, connected := self.session.Account()

	out, err := handle.Call(ctx, account, methodDaoBalance)
	if err != nil {
		return info, self.readFailure(err)
	}
	balance, err := unpack[*big.Int](out)
	if err != nil {
		return info, self.readFailure(err)
	}

	info.Balance = self.session.chain.FromBaseUnit(balance)
	info.MyBalance = "0"

	if connected {
		out, err = handle.Call(ctx, account, methodIsStakeholder)
		if err != nil {
			return info, self.readFailure(err)
		}
		info.IsStakeholder, err = unpack[bool](out)
		if err != nil {
			return info, self.readFailure(err)
		}

		out, err = handle.Call(ctx, account, methodMyBalance)
		if err != nil {
			return info, self.readFailure(err)
		}
		myBalance, err := unpack[*big.Int](out)
		if err != nil {
			return info, self.readFailure(err)
		}
		info.MyBalance = self.session.chain.FromBaseUnit(myBalance)
	}

	self.session.state.Set(store.KeyBalance, info.Balance)
	self.session.state.Set(store.KeyMyBalance, info.MyBalance)
	self.session.state.Set(store.KeyIsStakeholder, info.IsStakeholder)

	self.session.monitor.GetReport().State.InfoReads.Inc()
	log.WithField("balance", info.Balance).WithField("myBalance", info.MyBalance).Debug("Fetched info")
	return
}

// Reads all proposals, normalizes and publishes them
func (self *Gateway) FetchProposals(ctx context.Context) (proposals []Proposal, err error) {
	log := self.opLogger("fetchProposals")

	handle, err := self.readHandle(ctx)
	if err != nil {
		return
	}

	account, _ := self.session.Account()
	out, err := handle.Call(ctx, account, methodGetProposals)
	if err != nil {
		return nil, self.readFailure(err)
	}

	raw, err := unpack[[]RawProposal](out)
	if err != nil {
		return nil, self.readFailure(err)
	}

	proposals = NormalizeProposals(self.session.chain, raw)
	self.session.state.Set(store.KeyProposals, proposals)

	report := self.session.monitor.GetReport()
	report.State.ProposalReads.Inc()
	report.State.ProposalsFetched.Store(int64(len(proposals)))
	log.WithField("count", len(proposals)).Debug("Fetched proposals")
	return
}

// Looks the proposal up in the last published list, never reads the chain
func (self *Gateway) FetchProposal(id *big.Int) (proposal Proposal, ok bool) {
	if id == nil {
		return
	}

	value, found := self.session.state.Get(store.KeyProposals)
	if !found {
		return
	}

	proposals, _ := value.([]Proposal)
	for _, p := range proposals {
		if p.Id != nil && p.Id.Cmp(id) == 0 {
			return p, true
		}
	}
	return
}

// Reads votes of a proposal, result isn't cached
func (self *Gateway) FetchVoters(ctx context.Context, id *big.Int) (votes []Vote, err error) {
	handle, err := self.readHandle(ctx)
	if err != nil {
		return
	}

	account, _ := self.session.Account()
	out, err := handle.Call(ctx, account, methodGetVotesOf, id)
	if err != nil {
		return nil, self.readFailure(err)
	}

	votes, err = unpack[[]Vote](out)
	if err != nil {
		return nil, self.readFailure(err)
	}

	self.session.monitor.GetReport().State.VoterReads.Inc()
	return
}

func (self *Gateway) transact(ctx context.Context, counter *atomic.Uint64, value *big.Int, method string, params ...interface{}) (hash common.Hash, err error) {
	log := self.opLogger(method)

	account, ok := self.session.Account()
	if !ok {
		return hash, self.session.reporter.Report(fmt.Errorf("%w: %w", ErrTransactionFailure, ErrNoAccount))
	}

	handle, err := self.resolver.Resolve(ctx)
	if err != nil {
		return hash, self.session.reporter.Report(fmt.Errorf("%w: %w", ErrTransactionFailure, err))
	}
	if handle == nil {
		return hash, self.session.reporter.Report(fmt.Errorf("%w: %w", ErrTransactionFailure, ErrNetworkUnsupported))
	}

	log.WithField("from", account.Hex()).WithField("contract", handle.Address().Hex()).Debug("Sending transaction")

	hash, err = handle.Transact(ctx, account, value, method, params...)
	if err != nil {
		return hash, self.session.reporter.Report(fmt.Errorf("%w: %w", ErrTransactionFailure, err))
	}

	err = self.waitCommitted(ctx, hash)
	if err != nil {
		return hash, self.session.reporter.Report(err)
	}

	counter.Inc()
	log.WithField("txHash", hash.Hex()).Info("Transaction committed")

	self.session.notifier.Publish(Event{
		Topic:   EventWriteCommitted,
		Account: self.session.accountString(),
		Method:  method,
		TxHash:  hash,
	})
	return
}

// Polls for the receipt until the transaction is mined
func (self *Gateway) waitCommitted(ctx context.Context, hash common.Hash) (err error) {
	var receipt *types.Receipt
	err = task.NewRetry().
		WithContext(ctx).
		WithMaxElapsedTime(self.receiptMaxElapsedTime).
		WithMaxInterval(self.receiptMaxInterval).
		WithOnError(func(err error) error {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return backoff.Permanent(err)
			}
			return err
		}).
		Run(func() (err error) {
			receipt, err = self.session.chain.TransactionReceipt(ctx, hash)
			return
		})
	if err != nil {
		return fmt.Errorf("%w: no receipt for %s: %w", ErrTransactionFailure, hash.Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%w: %s reverted", ErrTransactionFailure, hash.Hex())
	}
	return nil
}

func (self *Gateway) readHandle(ctx context.Context) (handle eth.Handle, err error) {
	handle, err = self.resolver.Resolve(ctx)
	if err != nil {
		return nil, self.readFailure(err)
	}
	if handle == nil {
		return nil, self.readFailure(ErrNetworkUnsupported)
	}
	return
}

func (self *Gateway) readFailure(err error) error {
	return self.session.reporter.Report(fmt.Errorf("%w: %w", ErrReadFailure, err))
}

func (self *Gateway) opLogger(op string) *logrus.Entry {
	return self.log.WithField("op", op).WithField("opId", xid.New().String())
}

// Converts the first output of a call to T
func unpack[T any](out []interface{}) (result T, err error) {
	if len(out) == 0 {
		err = errors.New("call returned no values")
		return
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("cannot convert %T: %v", out[0], p)
		}
	}()

	result = *abi.ConvertType(out[0], new(T)).(*T)
	return
}
