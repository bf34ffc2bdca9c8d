package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-token/eventstore"
	"github.com/pflow-xyz/go-token/proof"
	"github.com/pflow-xyz/go-token/token"
)

// demoStream is the stream ID shared by the demo and replay commands.
const demoStream = "demo-token"

// demoConfig is the token the demo mints; replay must use the same
// construction-time configuration.
func demoConfig() token.Config {
	return token.Config{
		Name:      "Demo Token",
		Symbol:    "DMO",
		Decimals:  18,
		Cap:       uint256.NewInt(1_000_000),
		Authority: token.AddressFromUint64(0xA0),
	}
}

func openStore(dbPath string) (eventstore.Store, error) {
	if dbPath == "" {
		return eventstore.NewMemoryStore(), nil
	}
	return eventstore.NewSQLiteStore(dbPath)
}

func demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite database for the event stream (default: in-memory)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gotoken demo [--db events.db]

Run a scenario against a capped, pausable token and print every change
notification. With --db, events are persisted for later replay.
`)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if version, err := store.StreamVersion(ctx, demoStream); err != nil {
		return err
	} else if version >= 0 {
		return fmt.Errorf("stream %q already has %d events; replay it or use a fresh database", demoStream, version+1)
	}

	tok, err := token.New(demoConfig())
	if err != nil {
		return err
	}
	rec, err := eventstore.NewRecorder(ctx, store, demoStream)
	if err != nil {
		return err
	}
	tok.SetEmitter(token.EmitterFunc(func(e token.Event) {
		fmt.Printf("  [%d] %-9s from=%s to=%s amount=%s\n",
			e.Sequence, e.Kind, short(e.From), short(e.To), dec(e.Amount))
		rec.Emit(e)
	}))

	authority := demoConfig().Authority
	alice := token.AddressFromUint64(1)
	bob := token.AddressFromUint64(2)

	fmt.Printf("%s (%s), cap %s\n\n", tok.Name(), tok.Symbol(), dec(tok.Cap()))

	steps := []struct {
		desc string
		call func() error
	}{
		{"mint 500000 to alice", func() error { return tok.Mint(authority, alice, uint256.NewInt(500_000)) }},
		{"transfer 120000 alice -> bob", func() error { return tok.Transfer(alice, bob, uint256.NewInt(120_000)) }},
		{"approve bob for 50000 of alice", func() error { return tok.Approve(alice, bob, uint256.NewInt(50_000)) }},
		{"transferFrom 30000 alice -> bob", func() error { return tok.TransferFrom(bob, alice, bob, uint256.NewInt(30_000)) }},
		{"burn 10000 from bob", func() error { return tok.Burn(bob, uint256.NewInt(10_000)) }},
		{"pause", func() error { return tok.Pause(authority) }},
		{"transfer while paused (rejected)", func() error { return tok.Transfer(alice, bob, uint256.NewInt(1)) }},
		{"unpause", func() error { return tok.Unpause(authority) }},
		{"mint 600000 over cap (rejected)", func() error { return tok.Mint(authority, alice, uint256.NewInt(600_000)) }},
	}
	for _, s := range steps {
		fmt.Println(s.desc)
		if err := s.call(); err != nil {
			fmt.Printf("  rejected: %v\n", err)
		}
	}
	if err := rec.Err(); err != nil {
		return fmt.Errorf("recording events: %w", err)
	}

	fmt.Println("\nFinal state:")
	printState(tok)

	commitment := proof.StateCommitment(tok.Balances(), tok.TotalSupply())
	fmt.Printf("\nState commitment: 0x%064x\n", commitment)

	if *dbPath != "" {
		version, _ := store.StreamVersion(ctx, demoStream)
		fmt.Printf("Recorded %d events to %s\n", version+1, *dbPath)
	}
	return nil
}

func printState(tok *token.Token) {
	fmt.Printf("  total supply = %s\n", dec(tok.TotalSupply()))
	for account, balance := range tok.Balances() {
		fmt.Printf("  balance %s = %s\n", short(account), balance.Dec())
	}
	fmt.Printf("  paused = %v\n", tok.Paused())
}

// short renders an address as its trailing 4 hex digits.
func short(a token.Address) string {
	s := a.String()
	return "…" + s[len(s)-4:]
}

func dec(v *uint256.Int) string {
	if v == nil {
		return "-"
	}
	return v.Dec()
}
