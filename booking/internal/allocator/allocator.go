// Package allocator assigns passengers to a fixed grid of coach seats and
// keeps a bounded FIFO waitlist for when the grid is full.
//
// An Allocator is not safe for concurrent use; callers serialize access
// (see the session package).
package allocator

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid_allocator_config")

const (
	DefaultRows        = 5
	DefaultCols        = 4
	DefaultMaxWaitlist = 5
)

type Config struct {
	Rows        int
	Cols        int
	MaxWaitlist int
}

func DefaultConfig() Config {
	return Config{
		Rows:        DefaultRows,
		Cols:        DefaultCols,
		MaxWaitlist: DefaultMaxWaitlist,
	}
}

func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 || c.MaxWaitlist < 0 {
		return fmt.Errorf("%w: rows=%d cols=%d max_waitlist=%d", ErrInvalidConfig, c.Rows, c.Cols, c.MaxWaitlist)
	}
	return nil
}

// cell is empty when occupied is false; name is only meaningful otherwise.
type cell struct {
	occupied bool
	name     string
}

type Allocator struct {
	config   Config
	grid     [][]cell
	waitlist []string
}

func New(config Config) (*Allocator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	grid := make([][]cell, config.Rows)
	for i := range grid {
		grid[i] = make([]cell, config.Cols)
	}

	return &Allocator{
		config:   config,
		grid:     grid,
		waitlist: make([]string, 0, config.MaxWaitlist),
	}, nil
}

func (a *Allocator) Config() Config {
	return a.config
}

// Book seats name in the first free cell in row-major order, or appends it
// to the waitlist when every cell is taken. A full waitlist rejects the
// booking without touching any state. name must not be blank.
func (a *Allocator) Book(name string) Outcome {
	if row, col, ok := a.firstFree(); ok {
		a.grid[row][col] = cell{occupied: true, name: name}
		return Outcome{Kind: Booked, Name: name, Seat: seatAt(row, col)}
	}

	if len(a.waitlist) < a.config.MaxWaitlist {
		a.waitlist = append(a.waitlist, name)
		return Outcome{Kind: Waitlisted, Name: name, Position: len(a.waitlist)}
	}

	return Outcome{Kind: Rejected, Name: name}
}

// Cancel frees the first seat held by name and promotes the head of the
// waitlist into it. A name that is only waitlisted loses its first
// waitlist entry instead.
func (a *Allocator) Cancel(name string) Outcome {
	if row, col, ok := a.find(name); ok {
		a.grid[row][col] = cell{}
		out := Outcome{Kind: Cancelled, Name: name, Seat: seatAt(row, col)}

		if len(a.waitlist) > 0 {
			head := a.waitlist[0]
			a.waitlist = a.waitlist[1:]
			a.grid[row][col] = cell{occupied: true, name: head}
			out.Promotion = &Promotion{Name: head, Seat: out.Seat}
		}
		return out
	}

	for i, waiting := range a.waitlist {
		if waiting == name {
			a.waitlist = append(a.waitlist[:i], a.waitlist[i+1:]...)
			return Outcome{Kind: RemovedFromWaitlist, Name: name}
		}
	}

	return Outcome{Kind: NotFound, Name: name}
}

func (a *Allocator) Status() Status {
	seats := make([][]string, len(a.grid))
	for i, row := range a.grid {
		seats[i] = make([]string, len(row))
		for j, c := range row {
			if c.occupied {
				seats[i][j] = c.name
			}
		}
	}

	waitlist := make([]string, len(a.waitlist))
	copy(waitlist, a.waitlist)

	return Status{
		Rows:        a.config.Rows,
		Cols:        a.config.Cols,
		MaxWaitlist: a.config.MaxWaitlist,
		Seats:       seats,
		Waitlist:    waitlist,
	}
}

func (a *Allocator) firstFree() (int, int, bool) {
	for i, row := range a.grid {
		for j, c := range row {
			if !c.occupied {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func (a *Allocator) find(name string) (int, int, bool) {
	for i, row := range a.grid {
		for j, c := range row {
			if c.occupied && c.name == name {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}
