package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
	"github.com/srgjo27/bus_reservation/internal/core/ports"
)

const DefaultChannel = "seat-notifications"

type LogSink struct{}

func (LogSink) Notify(ctx context.Context, n domain.NeighborNotification) error {
	log.Println(n.Message())
	return nil
}

// WriterSink prints each notification message on its own line.
type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Notify(ctx context.Context, n domain.NeighborNotification) error {
	_, err := fmt.Fprintln(s.w, n.Message())
	return err
}

type Event struct {
	domain.NeighborNotification
	Message string `json:"message"`
}

// RedisSink publishes notifications as JSON on a pub/sub channel.
type RedisSink struct {
	client  redis.Cmdable
	channel string
}

func NewRedisSink(client redis.Cmdable, channel string) *RedisSink {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisSink{client: client, channel: channel}
}

func Payload(n domain.NeighborNotification) ([]byte, error) {
	return json.Marshal(Event{NeighborNotification: n, Message: n.Message()})
}

func (s *RedisSink) Notify(ctx context.Context, n domain.NeighborNotification) error {
	payload, err := Payload(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to %s: %w", s.channel, err)
	}

	return nil
}

// Multi delivers to every sink and joins their errors.
type Multi []ports.NotificationSink

func (m Multi) Notify(ctx context.Context, n domain.NeighborNotification) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
