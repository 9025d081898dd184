package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(connectCmd)
}

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Asks the wallet to authorize an account",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		session, err := newCliSession(applicationCtx)
		if err != nil {
			return
		}
		defer session.Close()

		err = session.Connect(applicationCtx)
		if err != nil {
			return
		}

		account, _ := session.Account()
		pterm.Success.Printfln("Connected %s", account.Hex())
		return
	},
}
