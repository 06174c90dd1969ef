package sagalog

import "context"

// Repository is the port the orchestrator writes transitions to. The table
// is an append-only audit log, not an upsert.
type Repository interface {
	Save(ctx context.Context, entry *SagaLog) error
}

// Reader adds the queries behind the saga status endpoint.
type Reader interface {
	Repository
	GetLatest(ctx context.Context, sagaID string) (*SagaLog, error)
	List(ctx context.Context, sagaID string) ([]SagaLog, error)
}
