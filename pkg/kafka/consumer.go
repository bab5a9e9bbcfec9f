package kafka

import (
	"context"
	"fmt"
	"sync"

	"github.com/Gobusters/ectologger"
	kafkago "github.com/segmentio/kafka-go"
)

// MessageHandler handles one bake request. Errors are logged by the consumer;
// reporting them downstream is the handler's job.
type MessageHandler func(ctx context.Context, msg *ReceivedMessage) error

// ReceivedMessage wraps a Kafka message with its parsed request. Request is
// nil and ParseErr is set when the body is not a valid bake request.
type ReceivedMessage struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   MessageHeaders

	Request  *BakeRequest
	ParseErr error

	raw kafkago.Message
}

// Consumer fetches bake requests with one reader and hands them to
// Concurrency workers. Offsets are committed after the handler returns,
// whatever its result, so a request that cannot be baked is reported once
// instead of blocking its partition.
type Consumer struct {
	reader *kafkago.Reader
	logger ectologger.Logger
	config ConsumerConfig

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewConsumer(config ConsumerConfig, logger ectologger.Logger) (*Consumer, error) {
	switch {
	case len(config.Brokers) == 0:
		return nil, fmt.Errorf("at least one broker is required")
	case config.Topic == "":
		return nil, fmt.Errorf("topic is required")
	case config.GroupID == "":
		return nil, fmt.Errorf("group ID is required")
	}
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:           config.Brokers,
		Topic:             config.Topic,
		GroupID:           config.GroupID,
		MinBytes:          config.MinBytes,
		MaxBytes:          config.MaxBytes,
		MaxWait:           config.MaxWait,
		CommitInterval:    config.CommitInterval,
		StartOffset:       config.StartOffset,
		SessionTimeout:    config.SessionTimeout,
		HeartbeatInterval: config.HeartbeatInterval,
		RebalanceTimeout:  config.RebalanceTimeout,
	})

	return &Consumer{
		reader: reader,
		logger: logger,
		config: config,
	}, nil
}

func (c *Consumer) GetName() string {
	return "kafka-consumer"
}

// Start runs the fetch loop and workers in the background until Stop or ctx
// is done.
func (c *Consumer) Start(ctx context.Context, handler MessageHandler) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		return fmt.Errorf("consumer is already running")
	}

	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})

	jobs := make(chan *ReceivedMessage, c.config.Concurrency)
	var workers sync.WaitGroup
	for i := 0; i < c.config.Concurrency; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for msg := range jobs {
				c.handle(ctx, handler, msg)
			}
		}()
	}

	go func() {
		defer close(c.done)
		c.fetch(ctx, jobs)
		close(jobs)
		workers.Wait()
	}()

	c.logger.WithFields(map[string]any{
		"topic":   c.config.Topic,
		"group":   c.config.GroupID,
		"workers": c.config.Concurrency,
	}).Info("kafka consumer started")
	return nil
}

func (c *Consumer) fetch(ctx context.Context, jobs chan<- *ReceivedMessage) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.WithError(err).Error("failed to fetch message")
			continue
		}

		select {
		case jobs <- ParseMessage(msg):
		case <-ctx.Done():
			return
		}
	}
}

func (c *Consumer) handle(ctx context.Context, handler MessageHandler, msg *ReceivedMessage) {
	fields := map[string]any{"partition": msg.Partition, "offset": msg.Offset}

	if err := handler(ctx, msg); err != nil {
		c.logger.WithContext(ctx).WithFields(fields).WithError(err).Warn("bake request handler failed")
	}

	// a cancelled ctx leaves the offset for the next group member
	if err := c.reader.CommitMessages(ctx, msg.raw); err != nil && ctx.Err() == nil {
		c.logger.WithContext(ctx).WithFields(fields).WithError(err).Error("failed to commit message")
	}
}

// Stop cancels fetching, waits for in-flight messages and closes the reader.
func (c *Consumer) Stop() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if done == nil {
		return nil
	}
	cancel()
	<-done

	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("failed to close reader: %w", err)
	}
	c.logger.Info("kafka consumer stopped")
	return nil
}

// ParseMessage wraps a raw Kafka message and decodes its bake request.
func ParseMessage(msg kafkago.Message) *ReceivedMessage {
	received := &ReceivedMessage{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   ExtractHeaders(msg.Headers),
		raw:       msg,
	}

	received.Request, received.ParseErr = ParseBakeRequest(msg.Value)
	return received
}

// Lag is the reader's last reported lag behind the partition head.
func (c *Consumer) Lag() int64 {
	return c.reader.Stats().Lag
}
