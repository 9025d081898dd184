package dao

import (
	"github.com/sirupsen/logrus"
	"github.com/warp-contracts/dao-bridge/src/utils/logger"
)

const (
	promptInstallProvider = "Please install a wallet provider, e.g. the Metamask extension"
	promptConnectWallet   = "Please connect wallet"
)

// Shows blocking messages to the user
type Prompter interface {
	Prompt(message string)
}

// Prompter used when there's no terminal or UI attached
type LogPrompter struct {
	log *logrus.Entry
}

func NewLogPrompter() *LogPrompter {
	return &LogPrompter{log: logger.NewSublogger("prompt")}
}

func (self *LogPrompter) Prompt(message string) {
	self.log.Warn(message)
}
