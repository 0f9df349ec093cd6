package internal

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"
)

type Mailer struct {
	client sesiface.SESAPI
}

func (m *Mailer) SendEmail(
	subject string,
	body string,
	from string,
	to []string,
	cc []string,
) error {
	destination := &ses.Destination{
		ToAddresses: aws.StringSlice(to),
	}
	if len(cc) > 0 {
		destination.CcAddresses = aws.StringSlice(cc)
	}

	_, err := m.client.SendEmail(&ses.SendEmailInput{
		Destination: destination,
		Message: &ses.Message{
			Body: &ses.Body{
				Text: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(body),
				},
			},
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
		},
		Source: aws.String(from),
	})
	return err
}

func NewMailer(client sesiface.SESAPI) *Mailer {
	return &Mailer{
		client: client,
	}
}
