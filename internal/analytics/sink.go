package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/safehaven/brandsite/pkg/logging"
)

// Sink receives serialized analytics events.
type Sink interface {
	Publish(ctx context.Context, evt Event) error
}

// LogSink writes events to the structured log. It is the default sink for
// local runs and tests.
type LogSink struct {
	logger *logging.Logger
}

// NewLogSink creates a log-backed sink.
func NewLogSink(logger *logging.Logger) *LogSink {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSink{logger: logger.Component("analytics")}
}

// Publish logs the event.
func (s *LogSink) Publish(ctx context.Context, evt Event) error {
	s.logger.Info("analytics event", "event", evt.Name, "session_id", evt.SessionID, "fields", evt.Fields)
	return nil
}

// SQSSink forwards events to an AWS/LocalStack SQS queue for the downstream
// warehouse loader.
type SQSSink struct {
	client   *sqs.Client
	queueURL string
}

// NewSQSSink creates a queue-backed sink.
func NewSQSSink(client *sqs.Client, queueURL string) *SQSSink {
	if client == nil {
		panic("analytics: SQS client cannot be nil")
	}
	if queueURL == "" {
		panic("analytics: SQS queueURL cannot be empty")
	}
	return &SQSSink{
		client:   client,
		queueURL: queueURL,
	}
}

// Publish sends the event as a JSON message.
func (s *SQSSink) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("analytics: marshal event: %w", err)
	}
	_, err = s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("analytics: failed to send SQS message: %w", err)
	}
	return nil
}
