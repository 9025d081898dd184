package cmd

import (
	"github.com/spf13/cobra"
	"github.com/warp-contracts/dao-bridge/src/dao"
	"github.com/warp-contracts/dao-bridge/src/utils/logger"
)

func init() {
	RootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keeps the shared state in sync with the wallet and the DAO contract",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		controller, err := dao.NewController(conf)
		if err != nil {
			return
		}

		err = controller.Start()
		if err != nil {
			return
		}

		select {
		case <-controller.CtxRunning.Done():
		case <-applicationCtx.Done():
		}

		controller.StopWait()

		return
	},
	PostRunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("watch-cmd")
		log.Debug("Finished watch")
		return
	},
}
