package allocator

import (
	"errors"
	"fmt"
)

var (
	ErrNoCapacity        = errors.New("no_seats_or_waitlist_spots_available")
	ErrPassengerNotFound = errors.New("passenger_not_found")
)

type Kind int

const (
	Booked Kind = iota + 1
	Waitlisted
	Rejected
	Cancelled
	RemovedFromWaitlist
	NotFound
)

var kindNames = map[Kind]string{
	Booked:              "booked",
	Waitlisted:          "waitlisted",
	Rejected:            "rejected",
	Cancelled:           "cancelled",
	RemovedFromWaitlist: "removed_from_waitlist",
	NotFound:            "not_found",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Seat is a display position: Coach is the grid row and Number the
// column, both counted from 1.
type Seat struct {
	Coach  int `json:"coach"`
	Number int `json:"seat"`
}

func (s Seat) String() string {
	return fmt.Sprintf("coach %d seat %d", s.Coach, s.Number)
}

func seatAt(row, col int) Seat {
	return Seat{Coach: row + 1, Number: col + 1}
}

type Promotion struct {
	Name string
	Seat Seat
}

// Outcome is the result of a Book or Cancel call. Which fields are set
// depends on Kind: Seat for Booked and Cancelled, Position for Waitlisted,
// Promotion for a Cancelled that moved the head of the waitlist.
type Outcome struct {
	Kind      Kind
	Name      string
	Seat      Seat
	Position  int
	Promotion *Promotion
}

func (o Outcome) Promoted() bool {
	return o.Promotion != nil
}

// Err returns the sentinel error for the failure kinds, nil otherwise.
func (o Outcome) Err() error {
	switch o.Kind {
	case Rejected:
		return ErrNoCapacity
	case NotFound:
		return ErrPassengerNotFound
	}
	return nil
}

func (o Outcome) Message() string {
	switch o.Kind {
	case Booked:
		return fmt.Sprintf("seat booked for %s at %s", o.Name, o.Seat)
	case Waitlisted:
		return fmt.Sprintf("%s added to waitlist at position %d", o.Name, o.Position)
	case Rejected:
		return "no seats or waitlist spots available"
	case Cancelled:
		msg := fmt.Sprintf("cancelled for %s", o.Name)
		if o.Promotion != nil {
			msg += fmt.Sprintf(" and %s promoted from waitlist to %s", o.Promotion.Name, o.Promotion.Seat)
		}
		return msg
	case RemovedFromWaitlist:
		return fmt.Sprintf("removed %s from waitlist", o.Name)
	case NotFound:
		return fmt.Sprintf("no booking found for %s", o.Name)
	}
	return o.Kind.String()
}
