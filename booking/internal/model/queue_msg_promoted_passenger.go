package model

type QueueMsgPromotedPassenger struct {
	SessionID          string `json:"session_id"`
	PassengerName      string `json:"passenger_name"`
	CancelledPassenger string `json:"cancelled_passenger"`
	Coach              int    `json:"coach"`
	Seat               int    `json:"seat"`
}
