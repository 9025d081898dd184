package monitoring

import "go.uber.org/atomic"

type RunState struct {
	StartTimestamp atomic.Int64  `json:"start_timestamp"`
	UpForSeconds   atomic.Uint64 `json:"up_for_seconds"`
}

type DaoErrors struct {
	Reported            atomic.Uint64 `json:"reported"`
	ProviderMissing     atomic.Uint64 `json:"provider_missing"`
	ReadFailures        atomic.Uint64 `json:"read_failures"`
	TransactionFailures atomic.Uint64 `json:"transaction_failures"`
}

type DaoState struct {
	Connects         atomic.Uint64 `json:"connects"`
	AccountChanges   atomic.Uint64 `json:"account_changes"`
	NetworkChanges   atomic.Uint64 `json:"network_changes"`
	Contributions    atomic.Uint64 `json:"contributions"`
	ProposalsRaised  atomic.Uint64 `json:"proposals_raised"`
	VotesCast        atomic.Uint64 `json:"votes_cast"`
	Payouts          atomic.Uint64 `json:"payouts"`
	InfoReads        atomic.Uint64 `json:"info_reads"`
	ProposalReads    atomic.Uint64 `json:"proposal_reads"`
	VoterReads       atomic.Uint64 `json:"voter_reads"`
	ProposalsFetched atomic.Int64  `json:"proposals_fetched"`
}

type RedisPublisherErrors struct {
	Publish           atomic.Uint64 `json:"publish"`
	PersistentFailure atomic.Uint64 `json:"persistent_failure"`
}

type RedisPublisherState struct {
	MessagesPublished atomic.Uint64 `json:"messages_published"`
}

type RedisPublisherReport struct {
	State  RedisPublisherState  `json:"state"`
	Errors RedisPublisherErrors `json:"errors"`
}

type Report struct {
	Run            RunState             `json:"run"`
	Errors         DaoErrors            `json:"errors"`
	State          DaoState             `json:"state"`
	RedisPublisher RedisPublisherReport `json:"redis_publisher"`
}
