package cmd

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/warp-contracts/dao-bridge/src/dao"
)

var proposalInput dao.ProposalInput

func init() {
	proposeCmd.Flags().StringVar(&proposalInput.Title, "title", "", "proposal title")
	proposeCmd.Flags().StringVar(&proposalInput.Description, "description", "", "proposal description")
	proposeCmd.Flags().StringVar(&proposalInput.Beneficiary, "beneficiary", "", "address receiving the payout")
	proposeCmd.Flags().StringVar(&proposalInput.Amount, "amount", "0", "requested amount in ether")

	RootCmd.AddCommand(contributeCmd)
	RootCmd.AddCommand(proposeCmd)
	RootCmd.AddCommand(voteCmd)
	RootCmd.AddCommand(payoutCmd)
}

var contributeCmd = &cobra.Command{
	Use:   "contribute <amount>",
	Short: "Sends ether to the DAO, amount is in ether",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		session, err := newCliSession(applicationCtx)
		if err != nil {
			return
		}
		defer session.Close()

		hash, err := session.gateway.Contribute(applicationCtx, args[0])
		if err != nil {
			return
		}
		pterm.Success.Printfln("Contributed %s, tx %s", args[0], hash.Hex())
		return
	},
}

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Raises a new proposal",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		session, err := newCliSession(applicationCtx)
		if err != nil {
			return
		}
		defer session.Close()

		hash, err := session.gateway.RaiseProposal(applicationCtx, proposalInput)
		if err != nil {
			return
		}
		pterm.Success.Printfln("Proposal raised, tx %s", hash.Hex())
		return
	},
}

var voteCmd = &cobra.Command{
	Use:   "vote <id> <yes|no>",
	Short: "Votes on a proposal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		id, err := parseProposalID(args[0])
		if err != nil {
			return
		}

		var supported bool
		switch strings.ToLower(args[1]) {
		case "yes", "y", "true":
			supported = true
		case "no", "n", "false":
			supported = false
		default:
			return fmt.Errorf("invalid vote: %q, expected yes or no", args[1])
		}

		session, err := newCliSession(applicationCtx)
		if err != nil {
			return
		}
		defer session.Close()

		hash, err := session.gateway.Vote(applicationCtx, id, supported)
		if err != nil {
			return
		}
		pterm.Success.Printfln("Voted on proposal %s, tx %s", id, hash.Hex())
		return
	},
}

var payoutCmd = &cobra.Command{
	Use:   "payout <id>",
	Short: "Pays the beneficiary of a passed proposal",
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

		hash, err := session.gateway.PayoutBeneficiary(applicationCtx, id)
		if err != nil {
			return
		}
		pterm.Success.Printfln("Paid out proposal %s, tx %s", id, hash.Hex())
		return
	},
}
