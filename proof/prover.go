package proof

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/holiman/uint256"
)

// Prover compiles the transfer circuit once and generates Groth16 proofs
// for individual transfers.
type Prover struct {
	curve ecc.ID
	cs    constraint.ConstraintSystem
	pk    groth16.ProvingKey
	vk    groth16.VerifyingKey
}

// NewProver compiles the circuit and runs the trusted setup. In
// production the setup would come from a ceremony; for local evidence a
// fresh setup is fine.
func NewProver() (*Prover, error) {
	curve := ecc.BN254
	cs, err := frontend.Compile(curve.ScalarField(), r1cs.NewBuilder, &TransferCircuit{})
	if err != nil {
		return nil, fmt.Errorf("proof: circuit compilation failed: %w", err)
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("proof: setup failed: %w", err)
	}
	return &Prover{curve: curve, cs: cs, pk: pk, vk: vk}, nil
}

// Constraints returns the size of the compiled constraint system.
func (p *Prover) Constraints() int {
	return p.cs.GetNbConstraints()
}

// Prove generates a proof for the assignment and returns it with the
// public witness needed for verification.
func (p *Prover) Prove(assignment *TransferCircuit) (groth16.Proof, witness.Witness, error) {
	w, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return nil, nil, fmt.Errorf("proof: witness creation failed: %w", err)
	}
	prf, err := groth16.Prove(p.cs, p.pk, w)
	if err != nil {
		return nil, nil, fmt.Errorf("proof: proof generation failed: %w", err)
	}
	public, err := w.Public()
	if err != nil {
		return nil, nil, fmt.Errorf("proof: public witness extraction failed: %w", err)
	}
	return prf, public, nil
}

// Verify checks a proof against its public witness.
func (p *Prover) Verify(prf groth16.Proof, public witness.Witness) error {
	return groth16.Verify(prf, p.vk, public)
}

// TransferAssignment builds a full witness for a transfer of amount
// between two hidden balances, computing the public commitments natively
// with the same MiMC as the circuit.
func TransferAssignment(fromBefore, toBefore, amount *uint256.Int) *TransferCircuit {
	fb := fromBefore.ToBig()
	tb := toBefore.ToBig()
	am := amount.ToBig()

	fromAfter := new(uint256.Int).Sub(fromBefore, amount)
	toAfter := new(uint256.Int).Add(toBefore, amount)

	return &TransferCircuit{
		FromBefore: fb,
		ToBefore:   tb,
		Amount:     am,
		BeforeRoot: BalancePairCommitment(fromBefore, toBefore),
		AfterRoot:  BalancePairCommitment(fromAfter, toAfter),
	}
}
