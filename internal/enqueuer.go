package internal

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
)

type Enqueuer struct {
	client sqsiface.SQSAPI
	delay  time.Duration

	mu        sync.Mutex
	queueURLs map[string]string
}

// SendMsg publishes msg as JSON on the named queue. Queue URLs are resolved
// once per queue name and reused.
func (e *Enqueuer) SendMsg(msg interface{}, queue string) error {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	queueURL, err := e.queueURL(queue)
	if err != nil {
		return err
	}

	_, err = e.client.SendMessage(&sqs.SendMessageInput{
		DelaySeconds: aws.Int64(int64(e.delay / time.Second)),
		MessageBody:  aws.String(string(msgBytes)),
		QueueUrl:     aws.String(queueURL),
	})
	if err != nil {
		return fmt.Errorf("send message to %s: %w", queue, err)
	}

	return nil
}

func (e *Enqueuer) queueURL(queue string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if url, ok := e.queueURLs[queue]; ok {
		return url, nil
	}

	out, err := e.client.GetQueueUrl(&sqs.GetQueueUrlInput{
		QueueName: aws.String(queue),
	})
	if err != nil {
		return "", fmt.Errorf("resolve queue %s: %w", queue, err)
	}

	e.queueURLs[queue] = aws.StringValue(out.QueueUrl)
	return e.queueURLs[queue], nil
}

func NewEnqueuer(client sqsiface.SQSAPI, delay time.Duration) *Enqueuer {
	return &Enqueuer{
		client:    client,
		delay:     delay,
		queueURLs: make(map[string]string),
	}
}
