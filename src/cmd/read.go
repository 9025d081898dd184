package cmd

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/warp-contracts/dao-bridge/src/dao"
)

func init() {
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(proposalsCmd)
	RootCmd.AddCommand(proposalCmd)
	RootCmd.AddCommand(votersCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Shows DAO balance, own balance and stakeholder status",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		session, err := newCliSession(applicationCtx)
		if err != nil {
			return
		}
		defer session.Close()

		info, err := session.gateway.FetchInfo(applicationCtx)
		if err != nil {
			return
		}

		account, connected := session.Account()
		accountText := "not connected"
		if connected {
			accountText = account.Hex()
		}

		return pterm.DefaultTable.WithData(pterm.TableData{
			{"Account", accountText},
			{"DAO balance", info.Balance},
			{"My balance", info.MyBalance},
			{"Stakeholder", strconv.FormatBool(info.IsStakeholder)},
		}).Render()
	},
}

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "Lists all proposals",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		session, err := newCliSession(applicationCtx)
		if err != nil {
			return
		}
		defer session.Close()

		proposals, err := session.gateway.FetchProposals(applicationCtx)
		if err != nil {
			return
		}

		if len(proposals) == 0 {
			pterm.Info.Println("No proposals")
			return
		}

		data := pterm.TableData{{"Id", "Title", "Amount", "Up", "Down", "Passed", "Paid", "Deadline"}}
		for _, p := range proposals {
			data = append(data, []string{
				p.Id.String(),
				p.Title,
				p.Amount,
				strconv.FormatUint(p.Upvotes, 10),
				strconv.FormatUint(p.Downvotes, 10),
				strconv.FormatBool(p.IsPassed),
				strconv.FormatBool(p.IsPaid),
				p.Deadline().UTC().Format("2006-01-02 15:04"),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var proposalCmd = &cobra.Command{
	Use:   "proposal <id>",
	Short: "Shows a single proposal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		id, err := parseProposalID(args[0])
		if err != nil {
			return
		}

		session, err := newCliSession(applicationCtx)
		if err != nil {
			return
		}
		defer session.Close()

		// Lookup only searches the published list
		_, err = session.gateway.FetchProposals(applicationCtx)
		if err != nil {
			return
		}

		p, ok := session.gateway.FetchProposal(id)
		if !ok {
			return fmt.Errorf("proposal %s not found", id)
		}

		return pterm.DefaultTable.WithData(pterm.TableData{
			{"Id", p.Id.String()},
			{"Title", p.Title},
			{"Description", p.Description},
			{"Amount", p.Amount},
			{"Beneficiary", p.Beneficiary.Hex()},
			{"Proposer", p.Proposer.Hex()},
			{"Executor", p.Executor.Hex()},
			{"Upvotes", strconv.FormatUint(p.Upvotes, 10)},
			{"Downvotes", strconv.FormatUint(p.Downvotes, 10)},
			{"Passed", strconv.FormatBool(p.IsPassed)},
			{"Paid", strconv.FormatBool(p.IsPaid)},
			{"Deadline", p.Deadline().UTC().String()},
		}).Render()
	},
}

var votersCmd = &cobra.Command{
	Use:   "voters <id>",
	Short: "Lists votes cast on a proposal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		id, err := parseProposalID(args[0])
		if err != nil {
			return
		}

		session, err := newCliSession(applicationCtx)
		if err != nil {
			return
		}
		defer session.Close()

		votes, err := session.gateway.FetchVoters(applicationCtx, id)
		if err != nil {
			return
		}

		if len(votes) == 0 {
			pterm.Info.Println("No votes")
			return
		}

		data := pterm.TableData{{"Voter", "Timestamp", "Supported"}}
		for _, v := range votes {
			data = append(data, []string{v.Voter.Hex(), formatTimestamp(v), strconv.FormatBool(v.Chosen)})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func parseProposalID(s string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(s, 10)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("invalid proposal id: %q", s)
	}
	return id, nil
}

func formatTimestamp(v dao.Vote) string {
	if v.Timestamp == nil {
		return ""
	}
	return v.Timestamp.String()
}
