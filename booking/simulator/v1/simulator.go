package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/meetupaws/coach_seat_booking/booking/internal/allocator"
	"github.com/sirupsen/logrus"
)

var ErrBlankPassengerName = errors.New("enter a valid name")

const prompt = "> "

const commandHelp = `  book NAME     book a seat, or join the waitlist when the coaches are full
  cancel NAME   cancel a seat or a waitlist entry
  status        show every coach and the waitlist
  help          show this help
  quit          leave the simulator
`

type simulator struct {
	seats  *allocator.Allocator
	view   view
	out    io.Writer
	logger logrus.FieldLogger
}

func newSimulator(seats *allocator.Allocator, out io.Writer, renderer *lipgloss.Renderer, logger logrus.FieldLogger) *simulator {
	return &simulator{
		seats:  seats,
		view:   newView(renderer),
		out:    out,
		logger: logger,
	}
}

// Run reads commands until quit or end of input.
func (s *simulator) Run(in io.Reader) error {
	config := s.seats.Config()
	fmt.Fprintln(s.out, s.view.title(fmt.Sprintf(
		"%d coaches x %d seats, waitlist of %d. Type help for commands.",
		config.Rows, config.Cols, config.MaxWaitlist,
	)))

	scanner := bufio.NewScanner(in)
	fmt.Fprint(s.out, prompt)
	for scanner.Scan() {
		if quit := s.exec(scanner.Text()); quit {
			return nil
		}
		fmt.Fprint(s.out, prompt)
	}
	fmt.Fprintln(s.out)
	return scanner.Err()
}

func (s *simulator) exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	command := line
	arg := ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		command = line[:i]
		arg = strings.TrimSpace(line[i+1:])
	}

	switch strings.ToLower(command) {
	case "book":
		if arg == "" {
			fmt.Fprintln(s.out, s.view.warning(ErrBlankPassengerName.Error()))
			return false
		}
		s.report(s.seats.Book(arg))
	case "cancel":
		if arg == "" {
			fmt.Fprintln(s.out, s.view.warning(ErrBlankPassengerName.Error()))
			return false
		}
		s.report(s.seats.Cancel(arg))
	case "status":
		fmt.Fprintln(s.out, s.view.status(s.seats.Status()))
	case "help":
		fmt.Fprint(s.out, commandHelp)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintln(s.out, s.view.warning(fmt.Sprintf("unknown command %q, type help", command)))
	}
	return false
}

func (s *simulator) report(out allocator.Outcome) {
	s.logger.WithFields(logrus.Fields{
		"passenger_name": out.Name,
		"outcome":        out.Kind.String(),
	}).Debug(out.Message())

	fmt.Fprintln(s.out, s.view.outcome(out))
}
