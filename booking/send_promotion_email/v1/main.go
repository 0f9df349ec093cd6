package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/meetupaws/coach_seat_booking/booking/internal/model"
	"github.com/meetupaws/coach_seat_booking/internal"
	"github.com/sirupsen/logrus"
)

type Handler func(ctx context.Context, event events.SQSEvent) error

type Mailer interface {
	SendEmail(subject string, body string, from string, to []string, cc []string) error
}

const emailSubject = "Waitlist promotion"

var emailTemplate = `Hello!
%v was promoted from the waitlist to coach %v seat %v after %v cancelled (session %v).
`

func Adapter(mailer Mailer, senderEmail string, deskEmail string, logger logrus.FieldLogger) Handler {
	return func(ctx context.Context, event events.SQSEvent) error {
		for _, record := range event.Records {
			msgBody := model.QueueMsgPromotedPassenger{}
			err := json.Unmarshal([]byte(record.Body), &msgBody)
			if err != nil {
				return fmt.Errorf("decode message %s: %w", record.MessageId, err)
			}

			emailBody := fmt.Sprintf(
				emailTemplate,
				msgBody.PassengerName,
				msgBody.Coach,
				msgBody.Seat,
				msgBody.CancelledPassenger,
				msgBody.SessionID,
			)

			err = mailer.SendEmail(
				emailSubject,
				emailBody,
				senderEmail,
				[]string{deskEmail},
				nil,
			)
			if err != nil {
				return fmt.Errorf("send promotion email for %s: %w", msgBody.PassengerName, err)
			}

			logger.WithFields(logrus.Fields{
				"session_id":     msgBody.SessionID,
				"passenger_name": msgBody.PassengerName,
			}).Info("promotion email sent")
		}
		return nil
	}
}

func main() {
	logger, err := internal.NewLogger(os.Stdout, os.Getenv("LOG_LEVEL"), true)
	if err != nil {
		panic(err)
	}
	senderEmail := internal.RequiredEnv("SENDER_EMAIL")
	deskEmail := internal.RequiredEnv("DESK_EMAIL")
	session := session.New()
	sesClient := ses.New(session)
	mailer := internal.NewMailer(sesClient)
	lambda.Start(Adapter(mailer, senderEmail, deskEmail, logger))
}
