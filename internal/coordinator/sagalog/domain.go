// Package sagalog defines the domain types for the Saga Log pattern.
//
// A Saga Log is a durable audit trail of every state transition a purchase
// saga goes through. Each row can be correlated with the request trace via
// the trace_id field, and the rows of one saga answer "where did this
// purchase stop and what was undone".
package sagalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Status represents the lifecycle state of a saga execution.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusStepDone     Status = "STEP_DONE"
	StatusCompleted    Status = "COMPLETED"
	StatusCompensating Status = "COMPENSATING"
	StatusFailed       Status = "FAILED"
)

var ErrSagaNotFound = errors.New("saga not found")

// SagaLog is a single row in the saga_logs table.
type SagaLog struct {
	SagaID string
	Status Status

	// CurrentStep is the name of the step that was just executed or failed.
	CurrentStep string

	// Payload is the JSON input that started the saga, set on STARTED only.
	Payload string

	// ErrorMessages is a JSON array of failure details, one per failed step
	// or compensation.
	ErrorMessages string

	TraceID string
	SpanID  string

	UpdatedAt time.Time
}

// NewEntry builds the row for one saga transition. When ctx carries a span
// (the otelhttp server span of the checkout request) its ids are stamped on
// the row so the audit trail joins the request trace.
func NewEntry(ctx context.Context, sagaID string, status Status, step, payload string, errs []string) *SagaLog {
	entry := &SagaLog{
		SagaID:        sagaID,
		Status:        status,
		CurrentStep:   step,
		Payload:       payload,
		ErrorMessages: "[]",
		UpdatedAt:     time.Now().UTC(),
	}
	if len(errs) > 0 {
		if b, err := json.Marshal(errs); err == nil {
			entry.ErrorMessages = string(b)
		}
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		entry.TraceID = sc.TraceID().String()
		entry.SpanID = sc.SpanID().String()
	}
	return entry
}
