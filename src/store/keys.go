package store

// Keys of the shared state
type Key string

const (
	KeyConnectedAccount Key = "connectedAccount"
	KeyContract         Key = "contract"
	KeyBalance          Key = "balance"
	KeyMyBalance        Key = "myBalance"
	KeyIsStakeholder    Key = "isStakeholder"
	KeyProposals        Key = "proposals"
)

// Values that depend on the connected network
var NetworkScopedKeys = []Key{
	KeyContract,
	KeyBalance,
	KeyMyBalance,
	KeyIsStakeholder,
	KeyProposals,
}

// Values that depend on the connected account
var AccountScopedKeys = []Key{
	KeyMyBalance,
	KeyIsStakeholder,
}
