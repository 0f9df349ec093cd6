package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/meetupaws/coach_seat_booking/booking/internal/allocator"
	"github.com/meetupaws/coach_seat_booking/internal"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer, errOut io.Writer) error {
	config := allocator.DefaultConfig()
	var logLevel string

	flagSet := pflag.NewFlagSet("simulator", pflag.ContinueOnError)
	flagSet.SetOutput(errOut)
	flagSet.IntVar(&config.Rows, "rows", allocator.DefaultRows, "number of coaches")
	flagSet.IntVar(&config.Cols, "cols", allocator.DefaultCols, "seats per coach")
	flagSet.IntVar(&config.MaxWaitlist, "max-waitlist", allocator.DefaultMaxWaitlist, "waitlist capacity (0 disables the waitlist)")
	flagSet.StringVar(&logLevel, "log-level", "warn", "logrus level for diagnostics on stderr")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(errOut, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(errOut, flagSet)
		return nil
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	logger, err := internal.NewLogger(errOut, logLevel, false)
	if err != nil {
		return err
	}
	seats, err := allocator.New(config)
	if err != nil {
		return err
	}

	sim := newSimulator(seats, out, lipgloss.NewRenderer(out), logger)
	return sim.Run(in)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `Coach booking simulator: book and cancel seats in a single session.

Passengers get the first free seat (coach by coach, seat by seat). When
every seat is taken they join a bounded waitlist, and a cancellation
promotes the head of the waitlist into the freed seat.

Usage:
  simulator [flags]

Commands (one per line on stdin):
%s
Flags:
%s`, commandHelp, flagSet.FlagUsages())
}
