// Package natsclient wraps a NATS JetStream connection, adapted from
// go-core/natsclient for the digest pipeline's own stream/subject naming.
package natsclient

import (
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	// StreamIngestTasks is the durable stream carrying one message per
	// spooled event awaiting digestion.
	StreamIngestTasks = "INGEST_TASKS"
	// SubjectIngestTasks is the wildcard subject the stream captures;
	// digestqueue publishes to "ingest.tasks.{project_id}".
	SubjectIngestTasks = "ingest.tasks.>"
)

// Client wraps a NATS connection and its JetStream context.
type Client struct {
	Conn *nats.Conn
	JS   nats.JetStreamContext
	Log  *zap.Logger
}

// NewClient connects to NATS and initializes a JetStream context.
func NewClient(url string, logger *zap.Logger) (*Client, error) {
	nc, err := nats.Connect(url, nats.RetryOnFailedConnect(true), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	logger.Info("NATS JetStream connected", zap.String("url", url))
	return &Client{Conn: nc, JS: js, Log: logger}, nil
}

// Close drains pending publishes/deliveries before closing, falling back to
// a hard close if the drain itself fails.
func (c *Client) Close() {
	if c.Conn == nil {
		return
	}
	if err := c.Conn.Drain(); err != nil {
		c.Conn.Close()
	}
}

// ProvisionStream idempotently ensures StreamIngestTasks exists.
func (c *Client) ProvisionStream() error {
	_, err := c.JS.StreamInfo(StreamIngestTasks)
	if err == nil {
		c.Log.Info("NATS stream already exists", zap.String("stream", StreamIngestTasks))
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("stream info: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:      StreamIngestTasks,
		Subjects:  []string{SubjectIngestTasks},
		Storage:   nats.FileStorage,
		Retention: nats.WorkQueuePolicy,
	}
	if _, err := c.JS.AddStream(cfg); err != nil {
		return fmt.Errorf("create stream: %w", err)
	}
	c.Log.Info("NATS stream provisioned", zap.String("stream", StreamIngestTasks))
	return nil
}
