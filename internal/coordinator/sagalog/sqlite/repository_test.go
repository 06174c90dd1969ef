package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	_ "modernc.org/sqlite"

	"github.com/jcmexdev/menswear-store/internal/coordinator/sagalog"
	"github.com/jcmexdev/menswear-store/internal/coordinator/sagalog/sqlite"
)

func newRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "saga.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	repo, err := sqlite.NewRepository(db)
	require.NoError(t, err)
	return repo
}

func TestSaveAndRead(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	entries := []*sagalog.SagaLog{
		{SagaID: "s1", Status: sagalog.StatusStarted, Payload: `{"customer_id":1}`, ErrorMessages: "[]", UpdatedAt: start},
		{SagaID: "s1", Status: sagalog.StatusStepDone, CurrentStep: "Checkout_Step", ErrorMessages: "[]", UpdatedAt: start.Add(time.Millisecond)},
		{SagaID: "s2", Status: sagalog.StatusStarted, ErrorMessages: "[]", UpdatedAt: start},
	}
	for _, e := range entries {
		require.NoError(t, repo.Save(ctx, e))
	}

	latest, err := repo.GetLatest(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sagalog.StatusStepDone, latest.Status)
	assert.Equal(t, "Checkout_Step", latest.CurrentStep)
	assert.Empty(t, latest.Payload)
	assert.True(t, latest.UpdatedAt.Equal(start.Add(time.Millisecond)))

	all, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, `{"customer_id":1}`, all[0].Payload)

	_, err = repo.GetLatest(ctx, "nope")
	assert.ErrorIs(t, err, sagalog.ErrSagaNotFound)
	_, err = repo.List(ctx, "nope")
	assert.ErrorIs(t, err, sagalog.ErrSagaNotFound)
}

func TestNewEntryWithoutSpan(t *testing.T) {
	e := sagalog.NewEntry(context.Background(), "s", sagalog.StatusFailed, "x", "", []string{"a"})
	assert.Empty(t, e.TraceID)
	assert.Equal(t, `["a"]`, e.ErrorMessages)
}

func TestNewEntryCarriesSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(context.Background(), "Purchase")
	defer span.End()

	e := sagalog.NewEntry(ctx, "s", sagalog.StatusStarted, "", `{}`, nil)
	assert.Equal(t, span.SpanContext().TraceID().String(), e.TraceID)
	assert.Equal(t, span.SpanContext().SpanID().String(), e.SpanID)
	assert.Equal(t, "[]", e.ErrorMessages)

	repo := newRepo(t)
	require.NoError(t, repo.Save(ctx, e))
	got, err := repo.GetLatest(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, e.TraceID, got.TraceID)
}

func TestGetLatestOrdersSubSecondTimes(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, &sagalog.SagaLog{
		SagaID: "s1", Status: sagalog.StatusCompleted, ErrorMessages: "[]", UpdatedAt: base.Add(120 * time.Millisecond),
	}))
	require.NoError(t, repo.Save(ctx, &sagalog.SagaLog{
		SagaID: "s1", Status: sagalog.StatusStepDone, ErrorMessages: "[]", UpdatedAt: base.Add(100 * time.Millisecond),
	}))

	latest, err := repo.GetLatest(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sagalog.StatusCompleted, latest.Status)
}
