package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/go-cmp/cmp"
	"github.com/meetupaws/coach_seat_booking/booking/internal/allocator"
	"github.com/meetupaws/coach_seat_booking/booking/internal/model"
	bookingsession "github.com/meetupaws/coach_seat_booking/booking/internal/session"
	"github.com/meetupaws/coach_seat_booking/internal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type EnqueuerMock struct {
	mock.Mock
}

func (m *EnqueuerMock) SendMsg(msg interface{}, queue string) error {
	ret := m.Called(msg, queue)
	return ret.Error(0)
}

type SessionsMock struct {
	mock.Mock
}

func (m *SessionsMock) Book(sessionID string, name string) (allocator.Outcome, error) {
	ret := m.Called(sessionID, name)
	return ret.Get(0).(allocator.Outcome), ret.Error(1)
}

func (m *SessionsMock) Cancel(sessionID string, name string) (allocator.Outcome, error) {
	ret := m.Called(sessionID, name)
	return ret.Get(0).(allocator.Outcome), ret.Error(1)
}

func (m *SessionsMock) Status(sessionID string) (allocator.Status, error) {
	ret := m.Called(sessionID)
	return ret.Get(0).(allocator.Status), ret.Error(1)
}

func jsonResponse(statusCode int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: internal.TrimLines(body),
	}
}

func bookRequest(body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		Resource:   "/bookings",
		HTTPMethod: http.MethodPost,
		Headers:    map[string]string{"X-Session-Id": "s1"},
		Body:       body,
	}
}

func cancelRequest(name string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		Resource:       "/bookings/{passenger_name}",
		HTTPMethod:     http.MethodDelete,
		Headers:        map[string]string{"x-session-id": "s1"},
		PathParameters: map[string]string{"passenger_name": name},
	}
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestAdapter(t *testing.T) {

	type mocks struct {
		enqueuer *EnqueuerMock
	}

	type args struct {
		promotionsQueue string
	}

	tests := []struct {
		name    string
		booked  []string
		req     events.APIGatewayProxyRequest
		want    events.APIGatewayProxyResponse
		mocks   mocks
		args    args
		mocker  func(m mocks, a args)
		wantErr bool
	}{
		{
			name: "Get a 201 status code after booking the first free seat",
			req:  bookRequest(`{"passenger_name": "ann"}`),
			want: jsonResponse(http.StatusCreated, `{
				"outcome": "booked",
				"message": "seat booked for ann at coach 1 seat 1",
				"passenger_name": "ann",
				"coach": 1,
				"seat": 1
			}`),
			mocks:  mocks{enqueuer: &EnqueuerMock{}},
			mocker: func(m mocks, a args) {},
		},
		{
			name:   "Get a 202 status code when the grid is full and the passenger is waitlisted",
			booked: []string{"a", "b", "c", "d"},
			req:    bookRequest(`{"passenger_name": "  ann  "}`),
			want: jsonResponse(http.StatusAccepted, `{
				"outcome": "waitlisted",
				"message": "ann added to waitlist at position 1",
				"passenger_name": "ann",
				"position": 1
			}`),
			mocks:  mocks{enqueuer: &EnqueuerMock{}},
			mocker: func(m mocks, a args) {},
		},
		{
			name:   "Get a 422 status code when there are no seats or waitlist spots",
			booked: []string{"a", "b", "c", "d", "w1"},
			req:    bookRequest(`{"passenger_name": "ann"}`),
			want:   jsonResponse(http.StatusUnprocessableEntity, `{"errors":["no_seats_or_waitlist_spots_available"]}`),
			mocks:  mocks{enqueuer: &EnqueuerMock{}},
			mocker: func(m mocks, a args) {},
		},
		{
			name: "Get a 400 status because request body is malformed",
			req: bookRequest(`{
				"passenger_name": "ann",
			}`),
			want:   jsonResponse(http.StatusBadRequest, `{"errors":["invalid character '}' looking for beginning of object key string"]}`),
			mocks:  mocks{enqueuer: &EnqueuerMock{}},
			mocker: func(m mocks, a args) {},
		},
		{
			name:   "Get a 400 status because passenger_name is missing",
			req:    bookRequest(`{"name": "ann"}`),
			want: events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: `{"errors":["(root): passenger_name is required","(root): Additional property name is not allowed"]}`,
			},
			mocks:  mocks{enqueuer: &EnqueuerMock{}},
			mocker: func(m mocks, a args) {},
		},
		{
			name:   "Get a 400 status because passenger_name is blank",
			req:    bookRequest(`{"passenger_name": "   "}`),
			want:   jsonResponse(http.StatusBadRequest, `{"errors":["passenger_name_is_blank"]}`),
			mocks:  mocks{enqueuer: &EnqueuerMock{}},
			mocker: func(m mocks, a args) {},
		},
		{
			name: "Get a 400 status because the session header is missing",
			req: events.APIGatewayProxyRequest{
				Resource:   "/bookings",
				HTTPMethod: http.MethodPost,
				Body:       `{"passenger_name": "ann"}`,
			},
			want:   jsonResponse(http.StatusBadRequest, `{"errors":["missing_session_id"]}`),
			mocks:  mocks{enqueuer: &EnqueuerMock{}},
			mocker: func(m mocks, a args) {},
		},
		{
			name:   "Get a 200 status code after cancelling and promoting the head of the waitlist",
			booked: []string{"a", "b", "c", "d", "w1"},
			req:    cancelRequest("b"),
			want: jsonResponse(http.StatusOK, `{
				"outcome": "cancelled",
				"message": "cancelled for b and w1 promoted from waitlist to coach 1 seat 2",
				"passenger_name": "b",
				"coach": 1,
				"seat": 2,
				"promoted": {"passenger_name": "w1","coach": 1,"seat": 2}
			}`),
			mocks: mocks{enqueuer: &EnqueuerMock{}},
			args:  args{promotionsQueue: "promotions"},
			mocker: func(m mocks, a args) {
				m.enqueuer.On(
					"SendMsg",
					model.QueueMsgPromotedPassenger{
						SessionID:          "s1",
						PassengerName:      "w1",
						CancelledPassenger: "b",
						Coach:              1,
						Seat:               2,
					},
					a.promotionsQueue,
				).Return(nil).Once()
			},
		},
		{
			name:   "Get a 200 status code even if the promotion notice cannot be enqueued",
			booked: []string{"a", "b", "c", "d", "w1"},
			req:    cancelRequest("a"),
			want: jsonResponse(http.StatusOK, `{
				"outcome": "cancelled",
				"message": "cancelled for a and w1 promoted from waitlist to coach 1 seat 1",
				"passenger_name": "a",
				"coach": 1,
				"seat": 1,
				"promoted": {"passenger_name": "w1","coach": 1,"seat": 1}
			}`),
			mocks: mocks{enqueuer: &EnqueuerMock{}},
			args:  args{promotionsQueue: "promotions"},
			mocker: func(m mocks, a args) {
				m.enqueuer.On("SendMsg", mock.Anything, a.promotionsQueue).Return(errors.New("unexpected")).Once()
			},
		},
		{
			name:   "Do not enqueue promotion notices when no queue is configured",
			booked: []string{"a", "b", "c", "d", "w1"},
			req:    cancelRequest("d"),
			want: jsonResponse(http.StatusOK, `{
				"outcome": "cancelled",
				"message": "cancelled for d and w1 promoted from waitlist to coach 2 seat 2",
				"passenger_name": "d",
				"coach": 2,
				"seat": 2,
				"promoted": {"passenger_name": "w1","coach": 2,"seat": 2}
			}`),
			mocks:  mocks{enqueuer: &EnqueuerMock{}},
			mocker: func(m mocks, a args) {},
		},
		{
			name:   "Get a 200 status code after removing a passenger from the waitlist",
			booked: []string{"a", "b", "c", "d", "w1"},
			req:    cancelRequest("w1"),
			want: jsonResponse(http.StatusOK, `{
				"outcome": "removed_from_waitlist",
				"message": "removed w1 from waitlist",
				"passenger_name": "w1"
			}`),
			mocks:  mocks{enqueuer: &EnqueuerMock{}},
			args:   args{promotionsQueue: "promotions"},
			mocker: func(m mocks, a args) {},
		},
		{
			name:   "Get a 404 status because the passenger was not found",
			booked: []string{"a"},
			req:    cancelRequest("ghost"),
			want:   jsonResponse(http.StatusNotFound, `{"errors":["passenger_not_found"]}`),
			mocks:  mocks{enqueuer: &EnqueuerMock{}},
			mocker: func(m mocks, a args) {},
		},
		{
			name:   "Get a 400 status because the passenger to cancel is blank",
			req:    cancelRequest(" "),
			want:   jsonResponse(http.StatusBadRequest, `{"errors":["passenger_name_is_blank"]}`),
			mocks:  mocks{enqueuer: &EnqueuerMock{}},
			mocker: func(m mocks, a args) {},
		},
		{
			name:   "Get a 200 status code with the grid and the waitlist",
			booked: []string{"a", "b", "c", "d", "w1"},
			req: events.APIGatewayProxyRequest{
				Resource:   "/status",
				HTTPMethod: http.MethodGet,
				Headers:    map[string]string{"X-Session-Id": "s1"},
			},
			want: jsonResponse(http.StatusOK, `{
				"rows": 2,
				"cols": 2,
				"max_waitlist": 1,
				"free_seats": 0,
				"coaches": [
					{"coach": 1,"seats": [{"seat": 1,"passenger_name": "a"},{"seat": 2,"passenger_name": "b"}]},
					{"coach": 2,"seats": [{"seat": 1,"passenger_name": "c"},{"seat": 2,"passenger_name": "d"}]}
				],
				"waitlist": ["w1"]
			}`),
			mocks:  mocks{enqueuer: &EnqueuerMock{}},
			mocker: func(m mocks, a args) {},
		},
		{
			name: "Get a 404 status for an unknown route",
			req: events.APIGatewayProxyRequest{
				Resource:   "/trains",
				HTTPMethod: http.MethodGet,
				Headers:    map[string]string{"X-Session-Id": "s1"},
			},
			want:   jsonResponse(http.StatusNotFound, `{"errors":["route_not_found"]}`),
			mocks:  mocks{enqueuer: &EnqueuerMock{}},
			mocker: func(m mocks, a args) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			sessions, err := bookingsession.NewStore(allocator.Config{Rows: 2, Cols: 2, MaxWaitlist: 1})
			require.NoError(t, err)
			for _, name := range tt.booked {
				_, err := sessions.Book("s1", name)
				require.NoError(t, err)
			}
			tt.mocker(tt.mocks, tt.args)

			// Act
			handler := Adapter(sessions, tt.mocks.enqueuer, tt.args.promotionsQueue, discardLogger())
			got, err := handler(context.Background(), tt.req)

			// Assert
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Differences found: (-want,+got)\n%s", diff)
			}
			tt.mocks.enqueuer.AssertExpectations(t)
		})
	}

}

func TestAdapter_SessionStoreFailure(t *testing.T) {
	sessions := &SessionsMock{}
	sessions.On("Book", "s1", "ann").Return(allocator.Outcome{}, errors.New("unexpected")).Once()
	sessions.On("Cancel", "s1", "ann").Return(allocator.Outcome{}, errors.New("unexpected")).Once()
	sessions.On("Status", "s1").Return(allocator.Status{}, errors.New("unexpected")).Once()

	handler := Adapter(sessions, &EnqueuerMock{}, "", discardLogger())
	requests := []events.APIGatewayProxyRequest{
		bookRequest(`{"passenger_name": "ann"}`),
		cancelRequest("ann"),
		{Resource: "/status", HTTPMethod: http.MethodGet, Headers: map[string]string{"X-Session-Id": "s1"}},
	}

	for _, req := range requests {
		got, err := handler(context.Background(), req)
		require.NoError(t, err)
		if diff := cmp.Diff(jsonResponse(http.StatusInternalServerError, `{"errors":["unexpected"]}`), got); diff != "" {
			t.Errorf("Differences found: (-want,+got)\n%s", diff)
		}
	}
	sessions.AssertExpectations(t)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("BOOKING_ROWS", "")
	t.Setenv("BOOKING_COLS", "6")
	t.Setenv("BOOKING_MAX_WAITLIST", "0")

	config, err := configFromEnv()
	require.NoError(t, err)
	require.Equal(t, allocator.Config{Rows: 5, Cols: 6, MaxWaitlist: 0}, config)

	t.Setenv("BOOKING_ROWS", "0")
	_, err = configFromEnv()
	require.ErrorIs(t, err, allocator.ErrInvalidConfig)
}
