package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Gobusters/ectologger"
	kafkago "github.com/segmentio/kafka-go"
)

// Producer publishes bake results and failures
type Producer struct {
	writer *kafkago.Writer
	logger ectologger.Logger
	config ProducerConfig
}

func NewProducer(config ProducerConfig, logger ectologger.Logger) (*Producer, error) {
	if len(config.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}

	// Topic stays unset on the writer so each message can name its own
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(config.Brokers...),
		Balancer:               &kafkago.Hash{},
		BatchSize:              config.BatchSize,
		BatchTimeout:           config.BatchTimeout,
		MaxAttempts:            config.MaxAttempts,
		WriteTimeout:           config.WriteTimeout,
		Compression:            compressionCodec(config.Compression),
		RequiredAcks:           kafkago.RequiredAcks(config.RequiredAcks),
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		config: config,
	}, nil
}

func compressionCodec(name string) kafkago.Compression {
	switch name {
	case "gzip":
		return kafkago.Gzip
	case "snappy":
		return kafkago.Snappy
	case "lz4":
		return kafkago.Lz4
	case "zstd":
		return kafkago.Zstd
	}
	return 0
}

// PublishResult writes baked rows to the output topic, keyed by step ID.
func (p *Producer) PublishResult(ctx context.Context, result *BakeResult, headers MessageHeaders) error {
	return p.publish(ctx, p.config.Topic, result.StepID, result, headers)
}

// PublishFailure writes a failed request to the error topic.
func (p *Producer) PublishFailure(ctx context.Context, failure *BakeFailure, headers MessageHeaders) error {
	return p.publish(ctx, p.config.ErrorTopic, failure.StepID, failure, headers)
}

func (p *Producer) publish(ctx context.Context, topic, key string, body any, headers MessageHeaders) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %w", err)
	}

	msg := kafkago.Message{
		Topic:   topic,
		Key:     []byte(key),
		Value:   data,
		Headers: headers.ToKafkaHeaders(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish message to %s: %w", topic, err)
	}

	return nil
}

func (p *Producer) GetName() string {
	return "kafka-producer"
}

func (p *Producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close producer: %w", err)
	}
	p.logger.Info("Kafka producer closed")
	return nil
}
