package model

type BookingRequest struct {
	PassengerName string `json:"passenger_name"`
}

type BookingResponse struct {
	Outcome       string             `json:"outcome"`
	Message       string             `json:"message"`
	PassengerName string             `json:"passenger_name"`
	Coach         int                `json:"coach,omitempty"`
	Seat          int                `json:"seat,omitempty"`
	Position      int                `json:"position,omitempty"`
	Promoted      *PromotedPassenger `json:"promoted,omitempty"`
}

type PromotedPassenger struct {
	PassengerName string `json:"passenger_name"`
	Coach         int    `json:"coach"`
	Seat          int    `json:"seat"`
}

type StatusResponse struct {
	Rows        int           `json:"rows"`
	Cols        int           `json:"cols"`
	MaxWaitlist int           `json:"max_waitlist"`
	FreeSeats   int           `json:"free_seats"`
	Coaches     []StatusCoach `json:"coaches"`
	Waitlist    []string      `json:"waitlist"`
}

type StatusCoach struct {
	Coach int          `json:"coach"`
	Seats []StatusSeat `json:"seats"`
}

type StatusSeat struct {
	Seat          int    `json:"seat"`
	PassengerName string `json:"passenger_name"`
}
