package kafka

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ramsey-B/fern/pkg/utils"
	kafkago "github.com/segmentio/kafka-go"
)

// BakeRequest asks for rows to be baked by a stored step.
type BakeRequest struct {
	StepID    string           `json:"step_id" validate:"required"`
	RequestID string           `json:"request_id,omitempty"`
	Rows      []map[string]any `json:"rows"`
}

// ParseBakeRequest decodes a request. Numbers are kept as json.Number so
// integral values stay integers.
func ParseBakeRequest(data []byte) (*BakeRequest, error) {
	var req BakeRequest

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to parse bake request: %w", err)
	}

	if _, err := utils.Validate(req); err != nil {
		return nil, err
	}

	return &req, nil
}

// BakeResult carries baked rows to the output topic.
type BakeResult struct {
	StepID    string           `json:"step_id"`
	RequestID string           `json:"request_id,omitempty"`
	Rows      []map[string]any `json:"rows"`
	Timestamp time.Time        `json:"timestamp"`
}

// BakeFailure is published to the error topic.
type BakeFailure struct {
	StepID    string    `json:"step_id"`
	RequestID string    `json:"request_id,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	Error     string    `json:"error"`
	Partition int       `json:"partition"`
	Offset    int64     `json:"offset"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageHeaders are copied between request and result so consumers can
// filter without decoding the body.
type MessageHeaders struct {
	StepID      string
	RequestID   string
	TraceParent string
}

func (h MessageHeaders) ToKafkaHeaders() []kafkago.Header {
	headers := make([]kafkago.Header, 0, 3)
	if h.StepID != "" {
		headers = append(headers, kafkago.Header{Key: "step_id", Value: []byte(h.StepID)})
	}
	if h.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(h.RequestID)})
	}
	if h.TraceParent != "" {
		headers = append(headers, kafkago.Header{Key: "traceparent", Value: []byte(h.TraceParent)})
	}
	return headers
}

func ExtractHeaders(headers []kafkago.Header) MessageHeaders {
	var mh MessageHeaders
	for _, h := range headers {
		switch h.Key {
		case "step_id":
			mh.StepID = string(h.Value)
		case "request_id":
			mh.RequestID = string(h.Value)
		case "traceparent":
			mh.TraceParent = string(h.Value)
		}
	}
	return mh
}
