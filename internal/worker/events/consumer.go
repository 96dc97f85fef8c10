package eventsworker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/safehaven/brandsite/internal/analytics"
	"github.com/safehaven/brandsite/pkg/logging"
)

type queueClient interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Consumer drains analytics events from the queue into daily rollups.
// Messages that fail to decode are deleted rather than retried; a malformed
// event never becomes parseable.
type Consumer struct {
	client   queueClient
	queueURL string
	rollups  *RollupStore
	logger   *logging.Logger
	wait     int32
	batch    int32
}

// NewConsumer creates a queue consumer.
func NewConsumer(client queueClient, queueURL string, rollups *RollupStore, logger *logging.Logger) *Consumer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Consumer{
		client:   client,
		queueURL: queueURL,
		rollups:  rollups,
		logger:   logger.Component("events-worker"),
		wait:     10,
		batch:    10,
	}
}

// WithWaitSeconds overrides the long-poll wait.
func (c *Consumer) WithWaitSeconds(n int32) *Consumer {
	if n >= 0 {
		c.wait = n
	}
	return c
}

// WithBatchSize overrides the max messages per receive.
func (c *Consumer) WithBatchSize(n int32) *Consumer {
	if n > 0 && n <= 10 {
		c.batch = n
	}
	return c
}

// Run polls the queue until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		n, err := c.drain(ctx)
		// Long polling paces empty receives; a failed receive or a
		// disabled wait needs an explicit pause so a broken queue does
		// not become a tight error loop.
		if err != nil || (n == 0 && c.wait == 0) {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
		}
	}
}

func (c *Consumer) drain(ctx context.Context) (int, error) {
	if c.client == nil || c.queueURL == "" {
		return 0, nil
	}
	out, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(c.queueURL),
		MaxNumberOfMessages: c.batch,
		WaitTimeSeconds:     c.wait,
	})
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil
		}
		c.logger.Error("receive failed", "error", err)
		return 0, err
	}

	handled := 0
	for _, msg := range out.Messages {
		var evt analytics.Event
		if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &evt); err != nil {
			c.logger.Warn("dropping malformed event", "error", err)
		} else if err := c.record(ctx, evt); err != nil {
			c.logger.Error("rollup update failed", "error", err, "event", evt.Name)
			continue
		}
		if _, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
			QueueUrl:      aws.String(c.queueURL),
			ReceiptHandle: msg.ReceiptHandle,
		}); err != nil {
			c.logger.Error("delete failed", "error", err)
			continue
		}
		handled++
	}
	return handled, nil
}

func (c *Consumer) record(ctx context.Context, evt analytics.Event) error {
	day := evt.Timestamp
	if day.IsZero() {
		day = time.Now()
	}
	return c.rollups.Increment(ctx, day, evt.Name)
}
