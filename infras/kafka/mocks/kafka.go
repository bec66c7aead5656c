package mocks

import (
	"context"
	"stay/infras/kafka"
	"sync"

	kafkaGo "github.com/segmentio/kafka-go"
)

// Client records published messages per topic for assertions.
type Client struct {
	mu       sync.Mutex
	Messages map[string][]kafka.Message
	Err      error
}

func NewClient() *Client {
	return &Client{
		Messages: map[string][]kafka.Message{},
	}
}

// SendMessages implements kafka.Client.
func (c *Client) SendMessages(_ context.Context, topic string, messages ...kafka.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return c.Err
	}

	c.Messages[topic] = append(c.Messages[topic], messages...)

	return nil
}

// Reader implements kafka.Client.
func (c *Client) Reader(_, _ string) *kafkaGo.Reader {
	return nil
}

// Sent returns the messages recorded for a topic.
func (c *Client) Sent(topic string) []kafka.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.Messages[topic]
}
