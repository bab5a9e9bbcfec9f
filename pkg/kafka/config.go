package kafka

import (
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Where a consumer group without a committed offset starts reading.
const (
	FirstOffset = kafkago.FirstOffset
	LastOffset  = kafkago.LastOffset
)

// ConsumerConfig configures the bake request reader.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string

	// Concurrency is the number of requests baked at once
	Concurrency int

	MinBytes       int
	MaxBytes       int
	MaxWait        time.Duration
	CommitInterval time.Duration
	StartOffset    int64

	SessionTimeout    time.Duration
	HeartbeatInterval time.Duration
	RebalanceTimeout  time.Duration
}

func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		Brokers:     []string{"localhost:9092"},
		Topic:       "bake-requests",
		GroupID:     "fern-consumer",
		Concurrency: 1,
		MinBytes:    1,
		// row batches can be large
		MaxBytes:          10e6,
		MaxWait:           3 * time.Second,
		CommitInterval:    time.Second,
		StartOffset:       LastOffset,
		SessionTimeout:    30 * time.Second,
		HeartbeatInterval: 3 * time.Second,
		RebalanceTimeout:  30 * time.Second,
	}
}

// ProducerConfig configures the writer for baked rows (Topic) and failed
// requests (ErrorTopic).
type ProducerConfig struct {
	Brokers    []string
	Topic      string
	ErrorTopic string

	BatchSize    int
	BatchTimeout time.Duration

	// RequiredAcks is 0 (none), 1 (leader) or -1 (all replicas)
	RequiredAcks int
	MaxAttempts  int
	WriteTimeout time.Duration

	// Compression is none, gzip, snappy, lz4 or zstd
	Compression string
}

func DefaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		Brokers:      []string{"localhost:9092"},
		Topic:        "baked-rows",
		ErrorTopic:   "bake-errors",
		BatchSize:    100,
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: 1,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		Compression:  "snappy",
	}
}
