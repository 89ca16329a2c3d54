// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing for pdfchat.
//
// CLI: Comprehensive help and examples for all commands
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdUpload
	CmdAsk
	CmdRepl
	CmdLimits
	CmdHistory
	CmdReset
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format
	Plain   bool // Disable markdown rendering for answers

	// Command-specific
	Query      string
	File       string
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `pdfchat - chat with a PDF from your terminal

Pdfchat uploads a PDF to the indexing backend and answers questions
about it, either in a full-screen TUI or as one-shot commands.

Usage:
  pdfchat                    Start TUI (default)
  pdfchat login              Sign in (email/password)
  pdfchat logout             Sign out and forget the saved session
  pdfchat upload <file.pdf>  Upload and index a document
  pdfchat ask "question"     Ask a single question about the document
  pdfchat repl               Interactive question loop
  pdfchat limits             Show the question counter
  pdfchat history            Show recorded questions and answers
  pdfchat reset              Discard the server-side index and counter
  pdfchat version            Show version information

Ask Command:
  pdfchat ask "What is the total in section 3?"
    --plain                  Print the raw answer without markdown rendering
    --json                   Output {"question": ..., "answer": ...}

History Command:
  pdfchat history            Show the most recent entries (default: 50)
    --limit N                Show last N entries
    --document NAME          Filter by document name
    --json                   Output entries as JSON

Global Flags:
  -q, --quiet     Minimal output
  -v, --verbose   Debug output
  --json          Output in JSON format
  --plain         Disable markdown rendering

Examples:
  pdfchat                              Start the TUI
  pdfchat login                        Sign in before first use
  pdfchat upload ./report.pdf          Index a document
  pdfchat ask "Summarize section 2"    One-shot question
  pdfchat ask --plain "List the figures" | less
  pdfchat history --limit 10           Recent questions
  pdfchat limits                       Questions used / allowed

Environment:
  PDFCHAT_AUTH_URL      Override the auth server URL
  PDFCHAT_BACKEND_URL   Override the backend URL
  NO_COLOR              Disable colored output

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("pdfchat version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parseFrom(os.Args[1:])
}

// parseFrom is the testable core of Parse.
func parseFrom(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "login", "signin":
		return CmdLogin, parsedArgs

	case "logout", "signout":
		return CmdLogout, parsedArgs

	case "upload":
		if len(remaining) > 0 {
			parsedArgs.File = remaining[0]
		}
		return CmdUpload, parsedArgs

	case "ask":
		parseAskArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "repl", "chat":
		return CmdRepl, parsedArgs

	case "limits", "quota":
		return CmdLimits, parsedArgs

	case "history":
		parseHistoryArgs(&parsedArgs, remaining)
		return CmdHistory, parsedArgs

	case "reset":
		return CmdReset, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: treat the whole line as a question
		parsedArgs.Query = strings.Join(append([]string{cmd}, remaining...), " ")
		return CmdAsk, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for _, arg := range args {
		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--plain":
			parsedArgs.Plain = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs
}

// parseAskArgs parses ask command specific arguments.
func parseAskArgs(args *Args, remaining []string) {
	var query []string

	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "-f" || arg == "--file":
			if i+1 < len(remaining) {
				i++
				args.File = remaining[i]
			}
		case strings.HasPrefix(arg, "--file="):
			args.File = strings.TrimPrefix(arg, "--file=")
		case !strings.HasPrefix(arg, "-"):
			query = append(query, arg)
		}
	}

	args.Query = strings.Join(query, " ")
}

// parseHistoryArgs parses history command specific arguments.
func parseHistoryArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--limit" && i+1 < len(remaining):
			i++
			args.Subcommand = remaining[i]
		case strings.HasPrefix(arg, "--limit="):
			args.Subcommand = strings.TrimPrefix(arg, "--limit=")
		case arg == "--document" && i+1 < len(remaining):
			i++
			args.Query = remaining[i]
		case strings.HasPrefix(arg, "--document="):
			args.Query = strings.TrimPrefix(arg, "--document=")
		}
	}
}

// =============================================================================
// HANDLER WRAPPERS
// =============================================================================

// ERROR HANDLING: Errors must not be silently ignored

// Run executes a handler and exits with the mapped code on failure.
func Run(fn func() error) {
	if err := fn(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		_ = outputJSON(map[string]string{
			"version":    Version,
			"git_commit": GitCommit,
			"build_date": BuildDate,
		})
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
