package dao

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/warp-contracts/dao-bridge/src/utils/eth"
)

const testNetworkID = 5

var (
	testDaoAddress = common.HexToAddress("0x000000000000000000000000000000000000da05")
	testAccount    = "0xAbC0000000000000000000000000000000000001"
)

// Wallet provider with a fixed list of accounts
type fakeProvider struct {
	mtx        sync.Mutex
	accounts   []string
	requestErr error
	listErr    error
	requested  int
	handlers   map[eth.Event][]func()
}

func newFakeProvider(accounts ...string) *fakeProvider {
	return &fakeProvider{
		accounts: accounts,
		handlers: make(map[eth.Event][]func()),
	}
}

func (self *fakeProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.requested++
	return self.accounts, self.requestErr
}

func (self *fakeProvider) ListAuthorizedAccounts(ctx context.Context) ([]string, error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	return self.accounts, self.listErr
}

func (self *fakeProvider) Subscribe(event eth.Event, handler func()) error {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.handlers[event] = append(self.handlers[event], handler)
	return nil
}

func (self *fakeProvider) setAccounts(accounts ...string) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.accounts = accounts
}

func (self *fakeProvider) fire(event eth.Event) {
	self.mtx.Lock()
	handlers := append([]func(){}, self.handlers[event]...)
	self.mtx.Unlock()

	for _, h := range handlers {
		h()
	}
}

// Node returning canned network ids, handles and receipts
type fakeChain struct {
	mtx           sync.Mutex
	networkID     uint64
	networkErr    error
	handle        *handleMock
	bound         []common.Address
	receiptStatus uint64
	receiptErr    error
	receiptCalls  int
}

func newFakeChain(networkID uint64) *fakeChain {
	return &fakeChain{
		networkID:     networkID,
		handle:        &handleMock{address: testDaoAddress},
		receiptStatus: types.ReceiptStatusSuccessful,
	}
}

func (self *fakeChain) NetworkID(ctx context.Context) (uint64, error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	return self.networkID, self.networkErr
}

func (self *fakeChain) setNetworkID(id uint64) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.networkID = id
}

func (self *fakeChain) ToBaseUnit(amount string) (*big.Int, error) {
	return eth.EtherToWei(amount)
}

func (self *fakeChain) FromBaseUnit(wei *big.Int) string {
	return eth.WeiToEther(wei)
}

func (self *fakeChain) BindContract(contractAbi *abi.ABI, address common.Address) eth.Handle {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.bound = append(self.bound, address)
	self.handle.address = address
	return self.handle
}

func (self *fakeChain) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.receiptCalls++
	if self.receiptErr != nil {
		return nil, self.receiptErr
	}
	return &types.Receipt{TxHash: hash, Status: self.receiptStatus}, nil
}

func (self *fakeChain) boundCount() int {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	return len(self.bound)
}

// Contract handle with expectations
type handleMock struct {
	mock.Mock
	address common.Address
}

func (self *handleMock) Address() common.Address {
	return self.address
}

func (self *handleMock) Call(ctx context.Context, from common.Address, method string, params ...interface{}) ([]interface{}, error) {
	args := self.Called(from, method, params)
	out, _ := args.Get(0).([]interface{})
	return out, args.Error(1)
}

func (self *handleMock) Transact(ctx context.Context, from common.Address, value *big.Int, method string, params ...interface{}) (common.Hash, error) {
	args := self.Called(from, value, method, params)
	return args.Get(0).(common.Hash), args.Error(1)
}

// Records prompts instead of showing them
type fakePrompter struct {
	mtx      sync.Mutex
	messages []string
}

func (self *fakePrompter) Prompt(message string) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.messages = append(self.messages, message)
}

func (self *fakePrompter) Messages() []string {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	return append([]string{}, self.messages...)
}

func newTestRegistry() *eth.Registry {
	registry, err := eth.ParseArtifact(DefaultArtifact)
	if err != nil {
		panic(err)
	}
	return registry.WithDeployment(testNetworkID, testDaoAddress)
}

// Session wired to fakes. Nil provider means no wallet is installed.
func newTestSession(provider *fakeProvider, chain *fakeChain, prompter *fakePrompter) *Session {
	session := NewSession().
		WithChain(chain).
		WithRegistry(newTestRegistry()).
		WithPrompter(prompter)
	if provider != nil {
		session.WithProvider(provider)
	}
	return session
}

func bigEq(expected int64) interface{} {
	return mock.MatchedBy(func(v *big.Int) bool {
		return v != nil && v.Cmp(big.NewInt(expected)) == 0
	})
}
