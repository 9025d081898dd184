package dao

import (
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/warp-contracts/dao-bridge/src/utils/eth"
)

type etherUnits struct{}

func (etherUnits) FromBaseUnit(wei *big.Int) string {
	return eth.WeiToEther(wei)
}

func TestNormalizeProposal(t *testing.T) {
	raw := RawProposal{
		Id:          big.NewInt(4),
		Amount:      big.NewInt(2500000000000000000),
		Duration:    big.NewInt(1700000000),
		Upvotes:     big.NewInt(3),
		Downvotes:   big.NewInt(1),
		Title:       "Roof",
		Description: "Fix the roof",
		Passed:      true,
		Paid:        false,
		Beneficiary: common.HexToAddress("0xb0"),
		Proposer:    common.HexToAddress("0xa0"),
		Executor:    common.HexToAddress("0xe0"),
	}

	p := NormalizeProposal(etherUnits{}, raw)
	require.Equal(t, Proposal{
		Id:          big.NewInt(4),
		Amount:      "2.5",
		Title:       "Roof",
		Description: "Fix the roof",
		IsPaid:      false,
		IsPassed:    true,
		Proposer:    common.HexToAddress("0xa0"),
		Upvotes:     3,
		Downvotes:   1,
		Beneficiary: common.HexToAddress("0xb0"),
		Executor:    common.HexToAddress("0xe0"),
		Duration:    big.NewInt(1700000000),
	}, p)
	require.Equal(t, int64(1700000000), p.Deadline().Unix())
}

func TestNormalizeProposalsIsDeterministic(t *testing.T) {
	raw := []RawProposal{
		{Id: big.NewInt(0), Amount: big.NewInt(1), Upvotes: big.NewInt(0), Downvotes: big.NewInt(0)},
		{Id: big.NewInt(1), Amount: big.NewInt(1000000000000000000), Upvotes: big.NewInt(5), Downvotes: big.NewInt(2)},
	}
	before := []RawProposal{
		{Id: big.NewInt(0), Amount: big.NewInt(1), Upvotes: big.NewInt(0), Downvotes: big.NewInt(0)},
		{Id: big.NewInt(1), Amount: big.NewInt(1000000000000000000), Upvotes: big.NewInt(5), Downvotes: big.NewInt(2)},
	}

	first := NormalizeProposals(etherUnits{}, raw)
	second := NormalizeProposals(etherUnits{}, raw)

	require.Equal(t, first, second)
	require.Equal(t, before, raw)
	require.Equal(t, "0.000000000000000001", first[0].Amount)
	require.Equal(t, "1", first[1].Amount)
}

func TestNormalizeProposalsEmpty(t *testing.T) {
	out := NormalizeProposals(etherUnits{}, nil)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestNormalizeVoteCounts(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 70)

	p := NormalizeProposal(etherUnits{}, RawProposal{Upvotes: huge, Downvotes: nil})
	require.Equal(t, uint64(math.MaxUint64), p.Upvotes)
	require.Equal(t, uint64(0), p.Downvotes)
	require.Equal(t, "0", p.Amount)
	require.True(t, p.Deadline().IsZero())
}
