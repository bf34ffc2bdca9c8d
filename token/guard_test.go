package token

import (
	"errors"
	"fmt"
	"testing"
)

func TestPauseGuard(t *testing.T) {
	g := PauseGuard{}

	valueOps := []Op{OpTransfer, OpTransferFrom, OpMint, OpBurn}
	for _, op := range valueOps {
		t.Run(op.String(), func(t *testing.T) {
			err := g.Check(op, &GuardContext{Paused: true, Amount: amt(1)})
			if !errors.Is(err, ErrPaused) {
				t.Errorf("paused %s error = %v, want ErrPaused", op, err)
			}
			if err := g.Check(op, &GuardContext{Paused: false, Amount: amt(1)}); err != nil {
				t.Errorf("unpaused %s rejected: %v", op, err)
			}
		})
	}

	// Approval is not a value movement.
	if err := g.Check(OpApprove, &GuardContext{Paused: true, Amount: amt(1)}); err != nil {
		t.Errorf("approve while paused rejected: %v", err)
	}
}

func TestCapGuard(t *testing.T) {
	g := CapGuard{}

	tests := []struct {
		name    string
		op      Op
		supply  uint64
		cap     uint64
		amount  uint64
		wantErr error
	}{
		{"UnderCap", OpMint, 500, 1000, 499, nil},
		{"ExactlyAtCap", OpMint, 500, 1000, 500, nil},
		{"OverCap", OpMint, 500, 1000, 501, ErrCapExceeded},
		{"NonMintIgnored", OpTransfer, 1000, 1000, 9999, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &GuardContext{Supply: amt(tt.supply), Cap: amt(tt.cap), Amount: amt(tt.amount)}
			err := g.Check(tt.op, ctx)
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected rejection: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("UncappedPermitsEverything", func(t *testing.T) {
		ctx := &GuardContext{Supply: amt(1 << 62), Cap: nil, Amount: amt(1 << 62)}
		if err := g.Check(OpMint, ctx); err != nil {
			t.Errorf("uncapped mint rejected: %v", err)
		}
	})
}

// rejectGuard always rejects with its configured error.
type rejectGuard struct {
	name string
	err  error
	hits *[]string
}

func (g rejectGuard) Name() string { return g.name }
func (g rejectGuard) Check(op Op, ctx *GuardContext) error {
	*g.hits = append(*g.hits, g.name)
	return g.err
}

func TestChainOrderAndShortCircuit(t *testing.T) {
	var hits []string
	first := rejectGuard{name: "first", err: nil, hits: &hits}
	second := rejectGuard{name: "second", err: fmt.Errorf("%w: second", ErrPaused), hits: &hits}
	third := rejectGuard{name: "third", err: nil, hits: &hits}

	chain := Chain{first, second, third}
	err := chain.Check(OpTransfer, &GuardContext{Amount: amt(1)})
	if !errors.Is(err, ErrPaused) {
		t.Fatalf("error = %v, want ErrPaused", err)
	}
	if len(hits) != 2 || hits[0] != "first" || hits[1] != "second" {
		t.Errorf("evaluation order = %v, want [first second]", hits)
	}

	hits = hits[:0]
	if err := (Chain{first, third}).Check(OpTransfer, &GuardContext{Amount: amt(1)}); err != nil {
		t.Errorf("all-pass chain rejected: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("expected both guards evaluated, got %v", hits)
	}
}
