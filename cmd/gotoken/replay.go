package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-token/eventstore"
	"github.com/pflow-xyz/go-token/proof"
)

func replay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite database with a recorded event stream (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gotoken replay --db events.db

Rebuild token state from the demo's recorded event stream and print the
resulting balances, supply and pause flag.
`)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" {
		fs.Usage()
		return fmt.Errorf("--db is required")
	}

	ctx := context.Background()
	store, err := eventstore.NewSQLiteStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	version, err := store.StreamVersion(ctx, demoStream)
	if err != nil {
		return err
	}
	if version < 0 {
		return fmt.Errorf("no events recorded in %s; run `gotoken demo --db %s` first", *dbPath, *dbPath)
	}

	tok, err := eventstore.Replay(ctx, store, demoStream, demoConfig())
	if err != nil {
		return err
	}

	fmt.Printf("Replayed %d events from %s\n\n", version+1, *dbPath)
	fmt.Println("Rebuilt state:")
	printState(tok)

	commitment := proof.StateCommitment(tok.Balances(), tok.TotalSupply())
	fmt.Printf("\nState commitment: 0x%064x\n", commitment)
	return nil
}
