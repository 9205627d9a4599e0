// Package shell is the line-oriented command interface over the kernel,
// the file store and the board peripherals.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/embeddedos/oskit/config"
	"github.com/embeddedos/oskit/fsstore"
	"github.com/embeddedos/oskit/hal"
	"github.com/embeddedos/oskit/kernel"
)

// Command is one entry of the dispatch table.
type Command struct {
	Name        string
	Description string
	Run         func(ctx context.Context, s *Shell, out io.Writer, args []string)
}

// Shell reads commands from an input stream and dispatches them against
// the command table.
type Shell struct {
	kernel *kernel.Kernel
	store  *fsstore.Store
	board  hal.Board

	prompt   string
	commands []Command
}

// New wires a shell to its subsystems. store and board may be nil; the
// commands that need them report unavailability instead.
func New(k *kernel.Kernel, store *fsstore.Store, board hal.Board, cfg *config.Config) *Shell {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Shell{
		kernel: k,
		store:  store,
		board:  board,
		prompt: cfg.ShellPrompt,
	}
	s.commands = commandTable()
	return s
}

// Run processes input line by line until EOF or context cancellation.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s.printBanner(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, s.prompt)

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.Execute(ctx, out, line)
	}
}

// Execute parses and dispatches a single command line.
func (s *Shell) Execute(ctx context.Context, out io.Writer, line string) {
	fields := parseLine(line)
	if len(fields) == 0 {
		return
	}

	name := strings.ToLower(fields[0])
	for i := range s.commands {
		if s.commands[i].Name == name {
			s.commands[i].Run(ctx, s, out, fields[1:])
			return
		}
	}

	fmt.Fprintf(out, "Unknown command: %s\n", fields[0])
	fmt.Fprintln(out, "Type 'help' for available commands")
}

// parseLine splits a command line into fields, honoring double-quoted
// arguments.
func parseLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	hasField := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			hasField = true
		case (r == ' ' || r == '\t') && !inQuotes:
			if hasField {
				fields = append(fields, current.String())
				current.Reset()
				hasField = false
			}
		default:
			current.WriteRune(r)
			hasField = true
		}
	}
	if hasField {
		fields = append(fields, current.String())
	}
	return fields
}

func (s *Shell) printBanner(out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "========================================")
	fmt.Fprintf(out, "  oskit shell v%s\n", config.Version)
	fmt.Fprintln(out, "  Embedded operating-system shim")
	fmt.Fprintln(out, "========================================")
	fmt.Fprintln(out)
}

func formatUptime(seconds uint64) string {
	days := seconds / 86400
	seconds %= 86400
	hours := seconds / 3600
	seconds %= 3600
	minutes := seconds / 60
	seconds %= 60

	if days > 0 {
		return fmt.Sprintf("%d days, %02d:%02d:%02d", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

func formatBytes(b int) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(b)/(1<<10))
	}
	return fmt.Sprintf("%d bytes", b)
}
