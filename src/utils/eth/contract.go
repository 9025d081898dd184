package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Handle is a contract bound to its deployed address
type Handle interface {
	Address() common.Address

	// Read-only call, returns unpacked outputs
	Call(ctx context.Context, from common.Address, method string, params ...interface{}) ([]interface{}, error)

	// State changing call sent from the given account, value may be nil
	Transact(ctx context.Context, from common.Address, value *big.Int, method string, params ...interface{}) (common.Hash, error)
}

type Contract struct {
	address common.Address
	abi     *abi.ABI
	client  *Client
	bound   *bind.BoundContract
}

func (self *Contract) Address() common.Address {
	return self.address
}

func (self *Contract) Call(ctx context.Context, from common.Address, method string, params ...interface{}) (out []interface{}, err error) {
	self.client.limiter.Take()
	err = self.bound.Call(&bind.CallOpts{Context: ctx, From: from}, &out, method, params...)
	return
}

func (self *Contract) Transact(ctx context.Context, from common.Address, value *big.Int, method string, params ...interface{}) (hash common.Hash, err error) {
	data, err := self.abi.Pack(method, params...)
	if err != nil {
		return
	}

	args := TransactionArgs{
		From: from,
		To:   &self.address,
		Data: data,
	}
	if value != nil && value.Sign() > 0 {
		args.Value = (*hexutil.Big)(value)
	}

	return self.client.SendTransaction(ctx, args)
}
