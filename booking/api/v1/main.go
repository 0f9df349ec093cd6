package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/meetupaws/coach_seat_booking/booking/internal/allocator"
	"github.com/meetupaws/coach_seat_booking/booking/internal/model"
	bookingsession "github.com/meetupaws/coach_seat_booking/booking/internal/session"
	"github.com/meetupaws/coach_seat_booking/internal"
	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrBlankPassengerName = errors.New("passenger_name_is_blank")
	ErrRouteNotFound      = errors.New("route_not_found")
)

const sessionHeader = "X-Session-Id"

var bookingSchema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"properties": {
		"passenger_name": {"type": "string", "minLength": 1}
	},
	"required": ["passenger_name"],
	"additionalProperties": false
}`)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type Sessions interface {
	Book(sessionID string, name string) (allocator.Outcome, error)
	Cancel(sessionID string, name string) (allocator.Outcome, error)
	Status(sessionID string) (allocator.Status, error)
}

type Enqueuer interface {
	SendMsg(msg interface{}, queue string) error
}

func Adapter(sessions Sessions, enqueuer Enqueuer, promotionsQueue string, logger logrus.FieldLogger) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		sessionID := sessionID(req)
		if internal.IsBlank(sessionID) {
			return internal.Error(http.StatusBadRequest, bookingsession.ErrMissingSessionID), nil
		}
		log := logger.WithField("session_id", sessionID)

		switch {
		case req.HTTPMethod == http.MethodPost && req.Resource == "/bookings":
			return book(sessions, sessionID, req, log), nil
		case req.HTTPMethod == http.MethodDelete && req.Resource == "/bookings/{passenger_name}":
			return cancel(sessions, enqueuer, promotionsQueue, sessionID, req, log), nil
		case req.HTTPMethod == http.MethodGet && req.Resource == "/status":
			return status(sessions, sessionID, log), nil
		}

		log.WithField("route", req.HTTPMethod+" "+req.Resource).Warn("unknown route")
		return internal.Error(http.StatusNotFound, ErrRouteNotFound), nil
	}
}

func book(sessions Sessions, sessionID string, req events.APIGatewayProxyRequest, log logrus.FieldLogger) events.APIGatewayProxyResponse {
	request := model.BookingRequest{}
	err := json.Unmarshal([]byte(req.Body), &request)
	if err != nil {
		return internal.Error(http.StatusBadRequest, err)
	}

	// Validations
	result, err := gojsonschema.Validate(bookingSchema, gojsonschema.NewStringLoader(req.Body))
	if err != nil {
		return internal.Error(http.StatusBadRequest, err)
	}
	if !result.Valid() {
		return internal.SchemaErrors(http.StatusBadRequest, result.Errors())
	}
	name := strings.TrimSpace(request.PassengerName)
	if name == "" {
		return internal.Error(http.StatusBadRequest, ErrBlankPassengerName)
	}

	// Book
	out, err := sessions.Book(sessionID, name)
	if err != nil {
		log.WithError(err).Error("book failed")
		return internal.Error(http.StatusInternalServerError, err)
	}
	log.WithFields(logrus.Fields{
		"passenger_name": name,
		"outcome":        out.Kind.String(),
	}).Info(out.Message())

	switch out.Kind {
	case allocator.Booked:
		return internal.JSON(http.StatusCreated, toBookingResponse(out))
	case allocator.Waitlisted:
		return internal.JSON(http.StatusAccepted, toBookingResponse(out))
	}
	return internal.Error(http.StatusUnprocessableEntity, out.Err())
}

func cancel(sessions Sessions, enqueuer Enqueuer, promotionsQueue string, sessionID string, req events.APIGatewayProxyRequest, log logrus.FieldLogger) events.APIGatewayProxyResponse {
	name := strings.TrimSpace(req.PathParameters["passenger_name"])
	if name == "" {
		return internal.Error(http.StatusBadRequest, ErrBlankPassengerName)
	}

	out, err := sessions.Cancel(sessionID, name)
	if err != nil {
		log.WithError(err).Error("cancel failed")
		return internal.Error(http.StatusInternalServerError, err)
	}
	log.WithFields(logrus.Fields{
		"passenger_name": name,
		"outcome":        out.Kind.String(),
	}).Info(out.Message())

	if out.Kind == allocator.NotFound {
		return internal.Error(http.StatusNotFound, out.Err())
	}

	// Notify the desk about the promoted passenger. The cancellation is
	// already applied, so a failed notice is only logged.
	if out.Promoted() && promotionsQueue != "" {
		err = enqueuer.SendMsg(model.QueueMsgPromotedPassenger{
			SessionID:          sessionID,
			PassengerName:      out.Promotion.Name,
			CancelledPassenger: out.Name,
			Coach:              out.Promotion.Seat.Coach,
			Seat:               out.Promotion.Seat.Number,
		}, promotionsQueue)
		if err != nil {
			log.WithError(err).WithField("passenger_name", out.Promotion.Name).Warn("unable to enqueue promotion notice")
		}
	}

	return internal.JSON(http.StatusOK, toBookingResponse(out))
}

func status(sessions Sessions, sessionID string, log logrus.FieldLogger) events.APIGatewayProxyResponse {
	st, err := sessions.Status(sessionID)
	if err != nil {
		log.WithError(err).Error("status failed")
		return internal.Error(http.StatusInternalServerError, err)
	}

	response := model.StatusResponse{
		Rows:        st.Rows,
		Cols:        st.Cols,
		MaxWaitlist: st.MaxWaitlist,
		FreeSeats:   st.FreeSeats(),
		Coaches:     make([]model.StatusCoach, len(st.Seats)),
		Waitlist:    st.Waitlist,
	}
	for i, row := range st.Seats {
		seats := make([]model.StatusSeat, len(row))
		for j, name := range row {
			seats[j] = model.StatusSeat{Seat: j + 1, PassengerName: name}
		}
		response.Coaches[i] = model.StatusCoach{Coach: i + 1, Seats: seats}
	}

	return internal.JSON(http.StatusOK, response)
}

func toBookingResponse(out allocator.Outcome) model.BookingResponse {
	response := model.BookingResponse{
		Outcome:       out.Kind.String(),
		Message:       out.Message(),
		PassengerName: out.Name,
		Position:      out.Position,
	}
	if out.Kind == allocator.Booked || out.Kind == allocator.Cancelled {
		response.Coach = out.Seat.Coach
		response.Seat = out.Seat.Number
	}
	if out.Promoted() {
		response.Promoted = &model.PromotedPassenger{
			PassengerName: out.Promotion.Name,
			Coach:         out.Promotion.Seat.Coach,
			Seat:          out.Promotion.Seat.Number,
		}
	}
	return response
}

func sessionID(req events.APIGatewayProxyRequest) string {
	for k, v := range req.Headers {
		if strings.EqualFold(k, sessionHeader) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func main() {
	logger, err := internal.NewLogger(os.Stdout, os.Getenv("LOG_LEVEL"), true)
	if err != nil {
		panic(err)
	}

	config, err := configFromEnv()
	if err != nil {
		panic(err)
	}
	sessions, err := bookingsession.NewStore(config)
	if err != nil {
		panic(err)
	}

	promotionsQueue := os.Getenv("PROMOTIONS_QUEUE")
	if internal.IsBlank(promotionsQueue) {
		logger.Warn("PROMOTIONS_QUEUE is empty, promotion notices are disabled")
		promotionsQueue = ""
	}
	session := session.New()
	enqueuer := internal.NewEnqueuer(sqs.New(session), 0)

	lambda.Start(Adapter(sessions, enqueuer, promotionsQueue, logger))
}

func configFromEnv() (allocator.Config, error) {
	config := allocator.DefaultConfig()
	var err error
	if config.Rows, err = internal.EnvInt("BOOKING_ROWS", allocator.DefaultRows); err != nil {
		return config, err
	}
	if config.Cols, err = internal.EnvInt("BOOKING_COLS", allocator.DefaultCols); err != nil {
		return config, err
	}
	if config.MaxWaitlist, err = internal.EnvInt("BOOKING_MAX_WAITLIST", allocator.DefaultMaxWaitlist); err != nil {
		return config, err
	}
	return config, config.Validate()
}
