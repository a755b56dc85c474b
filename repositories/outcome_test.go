package repositories

import (
	"log/slog"
	"testing"

	"roulette-lab/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) OutcomeRepository {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewOutcomeRepository(db, logs.GetLoggerFromLevel(slog.LevelDebug))
}

func TestOutcomeRepository_RecordAndHistory(t *testing.T) {
	req := require.New(t)
	repository := newTestRepository(t)

	outcomes := []domain.Outcome{
		domain.NewOutcome(0),
		domain.NewOutcome(7),
		domain.NewOutcome(26),
	}
	for _, outcome := range outcomes {
		req.NoError(repository.Record("session-1", outcome))
	}
	req.NoError(repository.Record("session-2", domain.NewOutcome(14)))

	records, err := repository.History("session-1")
	req.NoError(err)
	req.Len(records, 3, "prefix scan must not leak other sessions")

	// Padded timestamps keep records chronological
	for i, record := range records {
		req.Equal("session-1", record.SessionID)
		req.Equal(outcomes[i].Value, record.Value)
		req.Equal(outcomes[i].Color, record.Color)
		if i > 0 {
			req.False(record.At.Before(records[i-1].At))
		}
	}
}

func TestOutcomeRepository_HistoryUnknownSession(t *testing.T) {
	req := require.New(t)
	repository := newTestRepository(t)

	records, err := repository.History("session-404")
	req.NoError(err)
	req.Empty(records)
}
