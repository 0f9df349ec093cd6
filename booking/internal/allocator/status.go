package allocator

// Status is a copy of the allocator state. Seats is indexed [row][col]
// from 0 and holds "" for an empty seat.
type Status struct {
	Rows        int
	Cols        int
	MaxWaitlist int
	Seats       [][]string
	Waitlist    []string
}

func (s Status) FreeSeats() int {
	free := 0
	for _, row := range s.Seats {
		for _, name := range row {
			if name == "" {
				free++
			}
		}
	}
	return free
}

func (s Status) Full() bool {
	return s.FreeSeats() == 0 && len(s.Waitlist) >= s.MaxWaitlist
}
