package dao

import "errors"

var (
	// No wallet provider is available, the user is asked to install one
	ErrProviderMissing = errors.New("wallet provider is not installed")

	// Provider is available but no account is authorized
	ErrNoAccount = errors.New("no wallet account is connected")

	// No contract deployment is registered for the current network
	ErrNetworkUnsupported = errors.New("contract is not deployed on the current network")

	// Chain rejected or reverted a write
	ErrTransactionFailure = errors.New("transaction failed")

	// Query call failed
	ErrReadFailure = errors.New("contract read failed")
)

const faultMessage = "no ethereum object, something is wrong"

// Generic error returned by the reporter. The original error is kept as the cause.
type Fault struct {
	cause error
}

func (self *Fault) Error() string {
	return faultMessage
}

func (self *Fault) Unwrap() error {
	return self.cause
}
