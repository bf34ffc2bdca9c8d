package proof

import (
	"bytes"
	"math/big"
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-token/token"
)

// BalancePairCommitment computes the MiMC hash of two balances, matching
// the in-circuit hash of TransferCircuit. Values are reduced into the
// BN254 scalar field.
func BalancePairCommitment(a, b *uint256.Int) *big.Int {
	h := mimc.NewMiMC()
	h.Write(fieldBytes(a.ToBig()))
	h.Write(fieldBytes(b.ToBig()))
	return new(big.Int).SetBytes(h.Sum(nil))
}

// StateCommitment computes a deterministic MiMC commitment over a full
// balance map plus total supply: accounts are absorbed in address order
// as (address, balance) pairs, then the supply. Two ledgers with the
// same state commit to the same value.
func StateCommitment(balances map[token.Address]*uint256.Int, supply *uint256.Int) *big.Int {
	accounts := make([]token.Address, 0, len(balances))
	for a := range balances {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return bytes.Compare(accounts[i][:], accounts[j][:]) < 0
	})

	h := mimc.NewMiMC()
	for _, a := range accounts {
		h.Write(fieldBytes(new(big.Int).SetBytes(a[:])))
		h.Write(fieldBytes(balances[a].ToBig()))
	}
	h.Write(fieldBytes(supply.ToBig()))
	return new(big.Int).SetBytes(h.Sum(nil))
}

// fieldBytes encodes v as a 32-byte BN254 scalar field element.
func fieldBytes(v *big.Int) []byte {
	var e fr.Element
	e.SetBigInt(new(big.Int).Mod(v, fr.Modulus()))
	b := e.Bytes()
	return b[:]
}
