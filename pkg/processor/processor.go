// Package processor bakes rows arriving on Kafka with stored steps and
// publishes the results.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"
	fernctx "github.com/Ramsey-B/fern/pkg/context"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Baker bakes rows with a stored step.
type Baker interface {
	Bake(ctx context.Context, id string, rows []map[string]any) ([]map[string]any, error)
}

// Publisher writes results and failures.
type Publisher interface {
	PublishResult(ctx context.Context, result *kafka.BakeResult, headers kafka.MessageHeaders) error
	PublishFailure(ctx context.Context, failure *kafka.BakeFailure, headers kafka.MessageHeaders) error
}

type ProcessorConfig struct {
	// ProcessTimeout bounds a single message
	ProcessTimeout time.Duration
}

func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		ProcessTimeout: 30 * time.Second,
	}
}

type Processor struct {
	config    ProcessorConfig
	baker     Baker
	publisher Publisher
	logger    ectologger.Logger

	messagesProcessed int64
	messagesFailed    int64
	mu                sync.Mutex
}

func NewProcessor(config ProcessorConfig, baker Baker, publisher Publisher, logger ectologger.Logger) *Processor {
	return &Processor{
		config:    config,
		baker:     baker,
		publisher: publisher,
		logger:    logger,
	}
}

// ProcessMessage bakes one request and publishes the result. Failures are
// published to the error topic and returned.
func (p *Processor) ProcessMessage(ctx context.Context, msg *kafka.ReceivedMessage) error {
	ctx, span := tracing.StartSpan(tracing.ContinueTrace(ctx, msg.Headers.TraceParent), "processor.ProcessMessage")
	defer span.End()

	metrics.KafkaMessagesInFlight.Inc()
	defer metrics.KafkaMessagesInFlight.Dec()

	headers := msg.Headers
	if msg.ParseErr != nil {
		p.fail(ctx, msg, headers, msg.ParseErr)
		tracing.RecordError(span, msg.ParseErr)
		return msg.ParseErr
	}

	req := msg.Request
	if headers.StepID == "" {
		headers.StepID = req.StepID
	}
	if headers.RequestID == "" {
		headers.RequestID = req.RequestID
	}
	if traceparent := tracing.TraceParent(ctx); traceparent != "" {
		headers.TraceParent = traceparent
	}

	ctx = fernctx.SetRequestID(ctx, headers.RequestID)
	ctx = fernctx.SetStepID(ctx, req.StepID)

	rows, err := p.baker.Bake(ctx, req.StepID, req.Rows)
	if err != nil {
		p.fail(ctx, msg, headers, err)
		tracing.RecordError(span, err)
		return err
	}

	result := &kafka.BakeResult{
		StepID:    req.StepID,
		RequestID: headers.RequestID,
		Rows:      rows,
		Timestamp: time.Now().UTC(),
	}
	if err := p.publisher.PublishResult(ctx, result, headers); err != nil {
		p.logger.WithContext(ctx).WithFields(fernctx.LogFields(ctx)).WithError(err).Error("Failed to publish bake result")
		p.count(err)
		tracing.RecordError(span, err)
		return err
	}

	p.count(nil)
	return nil
}

func (p *Processor) fail(ctx context.Context, msg *kafka.ReceivedMessage, headers kafka.MessageHeaders, err error) {
	p.count(err)

	fields := fernctx.LogFields(ctx)
	fields["partition"] = msg.Partition
	fields["offset"] = msg.Offset
	p.logger.WithContext(ctx).WithFields(fields).WithError(err).Warn("Bake request failed")

	failure := &kafka.BakeFailure{
		StepID:    headers.StepID,
		RequestID: headers.RequestID,
		Error:     err.Error(),
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: time.Now().UTC(),
	}
	if kind, ok := errors.KindOf(err); ok {
		failure.Kind = string(kind)
	}

	if pubErr := p.publisher.PublishFailure(ctx, failure, headers); pubErr != nil {
		p.logger.WithContext(ctx).WithError(pubErr).Error("Failed to publish bake failure")
	}
}

func (p *Processor) count(err error) {
	metrics.KafkaMessagesTotal.WithLabelValues(metrics.Status(err)).Inc()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.messagesProcessed++
	if err != nil {
		p.messagesFailed++
	}
}

// MessageHandler adapts the processor to the consumer, bounding each message
// by the process timeout.
func (p *Processor) MessageHandler() kafka.MessageHandler {
	return func(ctx context.Context, msg *kafka.ReceivedMessage) error {
		if p.config.ProcessTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, p.config.ProcessTimeout)
			defer cancel()
		}
		return p.ProcessMessage(ctx, msg)
	}
}

type Stats struct {
	MessagesProcessed int64 `json:"messages_processed"`
	MessagesFailed    int64 `json:"messages_failed"`
}

func (p *Processor) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		MessagesProcessed: p.messagesProcessed,
		MessagesFailed:    p.messagesFailed,
	}
}
