package dao

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Proposal as returned by the contract.
// Field order must match the getProposals tuple, decoding copies fields by position.
type RawProposal struct {
	Id          *big.Int       `json:"id"`
	Amount      *big.Int       `json:"amount"`
	Duration    *big.Int       `json:"duration"`
	Upvotes     *big.Int       `json:"upvotes"`
	Downvotes   *big.Int       `json:"downvotes"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Passed      bool           `json:"passed"`
	Paid        bool           `json:"paid"`
	Beneficiary common.Address `json:"beneficiary"`
	Proposer    common.Address `json:"proposer"`
	Executor    common.Address `json:"executor"`
}

// Proposal in the form consumed by the UI. Amount is in ether.
type Proposal struct {
	Id          *big.Int       `json:"id"`
	Amount      string         `json:"amount"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	IsPaid      bool           `json:"isPaid"`
	IsPassed    bool           `json:"isPassed"`
	Proposer    common.Address `json:"proposer"`
	Upvotes     uint64         `json:"upvotes"`
	Downvotes   uint64         `json:"downvotes"`
	Beneficiary common.Address `json:"beneficiary"`
	Executor    common.Address `json:"executor"`
	Duration    *big.Int       `json:"duration"`
}

// Voting deadline, duration holds a unix timestamp
func (self Proposal) Deadline() time.Time {
	if self.Duration == nil || !self.Duration.IsInt64() {
		return time.Time{}
	}
	return time.Unix(self.Duration.Int64(), 0)
}

// Single vote on a proposal. Field order must match the getVotesOf tuple.
type Vote struct {
	Voter     common.Address `json:"voter"`
	Timestamp *big.Int       `json:"timestamp"`
	Chosen    bool           `json:"chosen"`
}

// Input of a new proposal. Amount is in ether, beneficiary is a hex address.
type ProposalInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Beneficiary string `json:"beneficiary"`
	Amount      string `json:"amount"`
}

// DAO wide and account specific state
type Info struct {
	Balance       string `json:"balance"`
	MyBalance     string `json:"myBalance"`
	IsStakeholder bool   `json:"isStakeholder"`
}
