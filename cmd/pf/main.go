// Command pf is the companion CLI for Postforge debugging and
// maintenance.
//
// Usage:
//
//	pf                      Show help
//	pf history              List saved posts
//	pf history <id>         Show a post and its revisions
//	pf trends               Fetch trending topics from the CLI
//	pf events               JSONL event log viewer
package main

import (
	"fmt"
	"os"
)

const usage = `pf - Postforge debug & maintenance CLI

Usage:
  pf <command> [flags]

Commands:
  history     List saved posts, or show one post with its revisions
  trends      Fetch trending topics without starting the TUI
  events      JSONL event log viewer

Environment:
  POSTFORGE_TRENDS_URL    Override the trend webhook endpoint
  POSTFORGE_GENERATE_URL  Override the generate webhook endpoint
  POSTFORGE_REFINE_URL    Override the refine webhook endpoint

Run 'pf <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "history":
		runHistory()
	case "trends":
		runTrends()
	case "events":
		runEvents()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "pf: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
