package dao

import (
	"math"
	"math/big"
)

// Converts amounts from wei to ether
type UnitConverter interface {
	FromBaseUnit(wei *big.Int) string
}

func NormalizeProposals(units UnitConverter, raw []RawProposal) []Proposal {
	out := make([]Proposal, 0, len(raw))
	for _, p := range raw {
		out = append(out, NormalizeProposal(units, p))
	}
	return out
}

func NormalizeProposal(units UnitConverter, raw RawProposal) Proposal {
	return Proposal{
		Id:          raw.Id,
		Amount:      units.FromBaseUnit(raw.Amount),
		Title:       raw.Title,
		Description: raw.Description,
		IsPaid:      raw.Paid,
		IsPassed:    raw.Passed,
		Proposer:    raw.Proposer,
		Upvotes:     toUint64(raw.Upvotes),
		Downvotes:   toUint64(raw.Downvotes),
		Beneficiary: raw.Beneficiary,
		Executor:    raw.Executor,
		Duration:    raw.Duration,
	}
}

// Saturates instead of wrapping around
func toUint64(v *big.Int) uint64 {
	switch {
	case v == nil || v.Sign() <= 0:
		return 0
	case !v.IsUint64():
		return math.MaxUint64
	}
	return v.Uint64()
}
