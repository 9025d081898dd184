package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	// Run
	UpForSeconds *prometheus.Desc

	// Errors
	Reported            *prometheus.Desc
	ProviderMissing     *prometheus.Desc
	ReadFailures        *prometheus.Desc
	TransactionFailures *prometheus.Desc

	// State
	Connects         *prometheus.Desc
	AccountChanges   *prometheus.Desc
	NetworkChanges   *prometheus.Desc
	Contributions    *prometheus.Desc
	ProposalsRaised  *prometheus.Desc
	VotesCast        *prometheus.Desc
	Payouts          *prometheus.Desc
	InfoReads        *prometheus.Desc
	ProposalReads    *prometheus.Desc
	VoterReads       *prometheus.Desc
	ProposalsFetched *prometheus.Desc

	// Redis publisher
	RedisPublishErrors      *prometheus.Desc
	RedisPersistentFailures *prometheus.Desc
	RedisMessagesPublished  *prometheus.Desc
}

func NewCollector() *Collector {
	return &Collector{
		UpForSeconds: prometheus.NewDesc("up_for_seconds", "", nil, nil),

		// Errors
		Reported:            prometheus.NewDesc("dao_errors_reported", "", nil, nil),
		ProviderMissing:     prometheus.NewDesc("dao_provider_missing", "", nil, nil),
		ReadFailures:        prometheus.NewDesc("dao_read_failures", "", nil, nil),
		TransactionFailures: prometheus.NewDesc("dao_transaction_failures", "", nil, nil),

		// State
		Connects:         prometheus.NewDesc("dao_connects", "", nil, nil),
		AccountChanges:   prometheus.NewDesc("dao_account_changes", "", nil, nil),
		NetworkChanges:   prometheus.NewDesc("dao_network_changes", "", nil, nil),
		Contributions:    prometheus.NewDesc("dao_contributions", "", nil, nil),
		ProposalsRaised:  prometheus.NewDesc("dao_proposals_raised", "", nil, nil),
		VotesCast:        prometheus.NewDesc("dao_votes_cast", "", nil, nil),
		Payouts:          prometheus.NewDesc("dao_payouts", "", nil, nil),
		InfoReads:        prometheus.NewDesc("dao_info_reads", "", nil, nil),
		ProposalReads:    prometheus.NewDesc("dao_proposal_reads", "", nil, nil),
		VoterReads:       prometheus.NewDesc("dao_voter_reads", "", nil, nil),
		ProposalsFetched: prometheus.NewDesc("dao_proposals_fetched", "", nil, nil),

		// Redis publisher
		RedisPublishErrors:      prometheus.NewDesc("dao_redis_publish_errors", "", nil, nil),
		RedisPersistentFailures: prometheus.NewDesc("dao_redis_persistent_failures", "", nil, nil),
		RedisMessagesPublished:  prometheus.NewDesc("dao_redis_messages_published", "", nil, nil),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	// Run
	ch <- self.UpForSeconds

	// Errors
	ch <- self.Reported
	ch <- self.ProviderMissing
	ch <- self.ReadFailures
	ch <- self.TransactionFailures

	// State
	ch <- self.Connects
	ch <- self.AccountChanges
	ch <- self.NetworkChanges
	ch <- self.Contributions
	ch <- self.ProposalsRaised
	ch <- self.VotesCast
	ch <- self.Payouts
	ch <- self.InfoReads
	ch <- self.ProposalReads
	ch <- self.VoterReads
	ch <- self.ProposalsFetched

	// Redis publisher
	ch <- self.RedisPublishErrors
	ch <- self.RedisPersistentFailures
	ch <- self.RedisMessagesPublished
}

// Collect implements required collect function for all promehteus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	report := &self.monitor.Report

	// Run
	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(report.Run.UpForSeconds.Load()))

	// Errors
	ch <- prometheus.MustNewConstMetric(self.Reported, prometheus.CounterValue, float64(report.Errors.Reported.Load()))
	ch <- prometheus.MustNewConstMetric(self.ProviderMissing, prometheus.CounterValue, float64(report.Errors.ProviderMissing.Load()))
	ch <- prometheus.MustNewConstMetric(self.ReadFailures, prometheus.CounterValue, float64(report.Errors.ReadFailures.Load()))
	ch <- prometheus.MustNewConstMetric(self.TransactionFailures, prometheus.CounterValue, float64(report.Errors.TransactionFailures.Load()))

	// State
	ch <- prometheus.MustNewConstMetric(self.Connects, prometheus.CounterValue, float64(report.State.Connects.Load()))
	ch <- prometheus.MustNewConstMetric(self.AccountChanges, prometheus.CounterValue, float64(report.State.AccountChanges.Load()))
	ch <- prometheus.MustNewConstMetric(self.NetworkChanges, prometheus.CounterValue, float64(report.State.NetworkChanges.Load()))
	ch <- prometheus.MustNewConstMetric(self.Contributions, prometheus.CounterValue, float64(report.State.Contributions.Load()))
	ch <- prometheus.MustNewConstMetric(self.ProposalsRaised, prometheus.CounterValue, float64(report.State.ProposalsRaised.Load()))
	ch <- prometheus.MustNewConstMetric(self.VotesCast, prometheus.CounterValue, float64(report.State.VotesCast.Load()))
	ch <- prometheus.MustNewConstMetric(self.Payouts, prometheus.CounterValue, float64(report.State.Payouts.Load()))
	ch <- prometheus.MustNewConstMetric(self.InfoReads, prometheus.CounterValue, float64(report.State.InfoReads.Load()))
	ch <- prometheus.MustNewConstMetric(self.ProposalReads, prometheus.CounterValue, float64(report.State.ProposalReads.Load()))
	ch <- prometheus.MustNewConstMetric(self.VoterReads, prometheus.CounterValue, float64(report.State.VoterReads.Load()))
	ch <- prometheus.MustNewConstMetric(self.ProposalsFetched, prometheus.GaugeValue, float64(report.State.ProposalsFetched.Load()))

	// Redis publisher
	ch <- prometheus.MustNewConstMetric(self.RedisPublishErrors, prometheus.CounterValue, float64(report.RedisPublisher.Errors.Publish.Load()))
	ch <- prometheus.MustNewConstMetric(self.RedisPersistentFailures, prometheus.CounterValue, float64(report.RedisPublisher.Errors.PersistentFailure.Load()))
	ch <- prometheus.MustNewConstMetric(self.RedisMessagesPublished, prometheus.CounterValue, float64(report.RedisPublisher.State.MessagesPublished.Load()))
}
