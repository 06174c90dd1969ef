package coordinator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/menswear-store/internal/coordinator/sagalog"
)

// Step represents a single unit of work in the Saga.
// Each step must have a compensating action to undo its effects.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator manages the execution of a collection of Steps and appends
// every transition to the saga log.
type Orchestrator struct {
	sagaID string
	steps  []Step
	log    sagalog.Repository // nil disables the audit trail
}

func NewOrchestrator(sagaID string, steps []Step, log sagalog.Repository) *Orchestrator {
	return &Orchestrator{sagaID: sagaID, steps: steps, log: log}
}

// Start runs the saga steps sequentially.
// If a step fails, it triggers the compensation of all previously successful steps.
func (o *Orchestrator) Start(ctx context.Context, payload string) error {
	o.record(ctx, sagalog.StatusStarted, "", payload, nil)

	var successfulSteps []Step
	for _, step := range o.steps {
		slog.InfoContext(ctx, "executing saga step", "saga_id", o.sagaID, "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			slog.WarnContext(ctx, "saga step failed, starting rollback",
				"saga_id", o.sagaID, "step", step.Name(), "error", err)
			errs := []string{fmt.Sprintf("step %s failed: %v", step.Name(), err)}
			o.record(ctx, sagalog.StatusCompensating, step.Name(), "", errs)
			errs = o.rollback(ctx, successfulSteps, errs)
			o.record(ctx, sagalog.StatusFailed, step.Name(), "", errs)
			return err
		}
		// Track successful step for potential compensation (LIFO)
		successfulSteps = append(successfulSteps, step)
		o.record(ctx, sagalog.StatusStepDone, step.Name(), "", nil)
	}

	o.record(ctx, sagalog.StatusCompleted, "", "", nil)
	slog.InfoContext(ctx, "saga completed", "saga_id", o.sagaID)
	return nil
}

func (o *Orchestrator) rollback(ctx context.Context, steps []Step, errs []string) []string {
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		slog.InfoContext(ctx, "compensating saga step", "saga_id", o.sagaID, "step", step.Name())
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "CRITICAL: failed to compensate saga step",
				"saga_id", o.sagaID, "step", step.Name(), "error", err)
			errs = append(errs, fmt.Sprintf("compensation of %s failed: %v", step.Name(), err))
		}
	}
	return errs
}

// record never fails the saga; a lost log row is only logged.
func (o *Orchestrator) record(ctx context.Context, status sagalog.Status, step, payload string, errs []string) {
	if o.log == nil {
		return
	}
	entry := sagalog.NewEntry(ctx, o.sagaID, status, step, payload, errs)
	if err := o.log.Save(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to write saga log", "saga_id", o.sagaID, "status", string(status), "error", err)
	}
}
