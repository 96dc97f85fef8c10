package eventsworker

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/safehaven/brandsite/internal/analytics"
)

type fakeQueue struct {
	batches [][]types.Message
	deleted []string
}

func (q *fakeQueue) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	if len(q.batches) == 0 {
		return &sqs.ReceiveMessageOutput{}, nil
	}
	batch := q.batches[0]
	q.batches = q.batches[1:]
	return &sqs.ReceiveMessageOutput{Messages: batch}, nil
}

func (q *fakeQueue) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	q.deleted = append(q.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func message(t *testing.T, evt analytics.Event, handle string) types.Message {
	t.Helper()
	body, err := json.Marshal(evt)
	if err != nil {
		t.Fatal(err)
	}
	return types.Message{Body: aws.String(string(body)), ReceiptHandle: aws.String(handle)}
}

func TestConsumer_DrainRecordsAndDeletes(t *testing.T) {
	store, _ := newTestRollups(t)
	day := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	queue := &fakeQueue{batches: [][]types.Message{{
		message(t, analytics.Event{Name: "page_view", Timestamp: day}, "h1"),
		message(t, analytics.Event{Name: "page_view", Timestamp: day}, "h2"),
		message(t, analytics.Event{Name: "lead_submitted", Timestamp: day}, "h3"),
	}}}

	c := NewConsumer(queue, "http://localhost:4566/queue/events", store, nil).WithWaitSeconds(0)
	n, err := c.drain(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("expected 3 handled, got %d", n)
	}

	counts, err := store.Counts(context.Background(), day)
	if err != nil {
		t.Fatal(err)
	}
	if counts["page_view"] != 2 || counts["lead_submitted"] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
	if len(queue.deleted) != 3 {
		t.Errorf("expected 3 deletions, got %d", len(queue.deleted))
	}
}

func TestConsumer_MalformedMessageIsDeleted(t *testing.T) {
	store, _ := newTestRollups(t)
	queue := &fakeQueue{batches: [][]types.Message{{
		{Body: aws.String("{not json"), ReceiptHandle: aws.String("bad")},
	}}}

	c := NewConsumer(queue, "http://localhost:4566/queue/events", store, nil).WithWaitSeconds(0)
	if _, err := c.drain(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(queue.deleted) != 1 || queue.deleted[0] != "bad" {
		t.Errorf("expected malformed message deleted, got %v", queue.deleted)
	}
}

type brokenQueue struct {
	receives atomic.Int32
}

func (q *brokenQueue) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	q.receives.Add(1)
	return nil, errors.New("queue does not exist")
}

func (q *brokenQueue) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	return &sqs.DeleteMessageOutput{}, nil
}

func TestConsumer_RunBacksOffOnReceiveError(t *testing.T) {
	store, _ := newTestRollups(t)
	queue := &brokenQueue{}
	c := NewConsumer(queue, "http://localhost:4566/queue/events", store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	// A persistently failing receive must pause between attempts rather
	// than spin. One poll fits in this window; a hot loop runs thousands.
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("consumer did not stop on cancel")
	}
	if n := queue.receives.Load(); n > 2 {
		t.Errorf("expected receive errors to back off, got %d polls", n)
	}
}

func TestConsumer_RunStopsOnCancel(t *testing.T) {
	store, _ := newTestRollups(t)
	queue := &fakeQueue{}
	c := NewConsumer(queue, "http://localhost:4566/queue/events", store, nil).WithWaitSeconds(0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("consumer did not stop on cancel")
	}
}
