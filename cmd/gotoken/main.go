package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "demo":
		if err := demo(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "replay":
		if err := replay(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "prove":
		if err := prove(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("gotoken version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gotoken - fungible-token ledger with composable policy guards

Usage:
  gotoken <command> [options]

Commands:
  demo       Run a capped, pausable token scenario and print the event log
  replay     Rebuild token state from a recorded event stream
  prove      Generate and verify a conservation proof for a transfer
  help       Show this help message
  version    Show version information

Examples:
  # Run the demo scenario against an in-memory store
  gotoken demo

  # Persist the demo's events, then rebuild state from them
  gotoken demo --db events.db
  gotoken replay --db events.db

  # Prove a hidden-balance transfer conserves supply
  gotoken prove --from-balance 1000 --to-balance 50 --amount 400

For command-specific help, run:
  gotoken <command> --help`)
}
