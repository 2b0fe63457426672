package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	cmd := "play"
	args := os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "play":
		err = runPlay(args)
	case "simulate", "sim":
		err = runSimulate(args, os.Stdout)
	case "history":
		err = runHistory(args, os.Stdout)
	case "version":
		fmt.Printf("doctoroncall %s\n", version)
	case "help":
		printHelp()
	default:
		err = fmt.Errorf("unknown command %q (run 'doctoroncall help')", cmd)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("doctoroncall")
	fmt.Println("============")
	fmt.Println()
	fmt.Println("Run a clinic front desk for three days without getting it closed.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  doctoroncall [play] [options]          Interactive shift (default)")
	fmt.Println("  doctoroncall simulate [options]        Play a whole run with a fixed strategy")
	fmt.Println("  doctoroncall history [options]         Recent runs from the ledger")
	fmt.Println("  doctoroncall version                   Show version")
	fmt.Println()
	fmt.Println("Common options:")
	fmt.Println("  --config <FILE>       Load configuration from YAML file")
	fmt.Println("  --seed <N>            Seed for reproducibility (auto-generated if not specified)")
	fmt.Println("  --memory <FILE>       Saved progress file")
	fmt.Println("  --ledger <FILE>       Run history database")
	fmt.Println("  --no-ledger           Do not record the run")
	fmt.Println("  --log-file <FILE>     Log file")
	fmt.Println("  --log-level <LEVEL>   debug, info, warn, error")
	fmt.Println("  --log-format <FMT>    text, json")
	fmt.Println()
	fmt.Println("Simulate options:")
	fmt.Println("  --strategy <NAME>     perfect, careless, cautious, idle, random (default: perfect)")
	fmt.Println("  --quiet               Only print the outcome")
	fmt.Println()
	fmt.Println("History options:")
	fmt.Println("  --limit <N>           Number of runs to list (default: 10)")
	fmt.Println("  --run <ID>            Show every patient of one run")
	fmt.Println()
	fmt.Println("Controls:")
	fmt.Println("  ↑/↓ pick a medication, enter gives it, a admits to a specialist,")
	fmt.Println("  f finishes care, q quits (progress is saved).")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  DOC_SEED, DOC_MEMORY_PATH, DOC_LEDGER_PATH, DOC_LOG_FILE, DOC_LOG_LEVEL")
	fmt.Println("  override the config file; flags override both.")
}
