// Package proof produces zero-knowledge evidence about ledger state:
// MiMC commitments over balances and a Groth16 circuit showing that a
// transfer conserves value against committed before/after states, without
// revealing the balances involved.
package proof

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// TransferCircuit proves that applying Amount to a pair of hidden
// balances yields the committed after-state:
//
//	FromBefore >= Amount
//	MiMC(FromBefore, ToBefore)                   == BeforeRoot
//	MiMC(FromBefore - Amount, ToBefore + Amount) == AfterRoot
//
// The balance sum is invariant by construction; the circuit asserts it
// anyway so the constraint system states conservation explicitly.
type TransferCircuit struct {
	FromBefore frontend.Variable
	ToBefore   frontend.Variable

	Amount     frontend.Variable `gnark:",public"`
	BeforeRoot frontend.Variable `gnark:",public"`
	AfterRoot  frontend.Variable `gnark:",public"`
}

// Define implements frontend.Circuit.
func (c *TransferCircuit) Define(api frontend.API) error {
	api.AssertIsLessOrEqual(c.Amount, c.FromBefore)

	fromAfter := api.Sub(c.FromBefore, c.Amount)
	toAfter := api.Add(c.ToBefore, c.Amount)

	api.AssertIsEqual(
		api.Add(c.FromBefore, c.ToBefore),
		api.Add(fromAfter, toAfter),
	)

	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.FromBefore, c.ToBefore)
	api.AssertIsEqual(h.Sum(), c.BeforeRoot)

	h.Reset()
	h.Write(fromAfter, toAfter)
	api.AssertIsEqual(h.Sum(), c.AfterRoot)

	return nil
}
