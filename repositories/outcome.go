//go:generate go run go.uber.org/mock/mockgen -source=outcome.go -destination=../mocks/mock_outcome_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"roulette-lab/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IOutcomeRepository interface {
	Record(sessionID string, outcome domain.Outcome) error
	History(sessionID string) ([]SpinRecord, error)
}

// OutcomeRepository is the append-only audit trail of consumed outcomes.
// Nothing is ever read back into live game state; it exists for post-hoc
// fairness audits through the admin endpoint and the auditor CLI.
type OutcomeRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewOutcomeRepository(db *badger.DB, log *slog.Logger) OutcomeRepository {
	return OutcomeRepository{db: db, log: log}
}

// SpinRecord is one audited outcome as stored on disk.
type SpinRecord struct {
	ID        uuid.UUID    `json:"id"`
	SessionID string       `json:"sessionId"`
	Value     int          `json:"value"`
	Color     domain.Color `json:"color"`
	At        time.Time    `json:"at"`
}

// Record persists one consumed outcome.
// The key is formatted as "spin:{session_id}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two spins
//     land on the same nanosecond.
func (r OutcomeRepository) Record(sessionID string, outcome domain.Outcome) error {
	record := SpinRecord{
		ID:        uuid.New(),
		SessionID: sessionID,
		Value:     outcome.Value,
		Color:     outcome.Color,
		At:        time.Now().UTC(),
	}
	key := fmt.Sprintf("spin:%s:%019d:%s", sessionID, record.At.UnixNano(), record.ID)
	bytes, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// History retrieves every audited outcome for a session via a prefix scan.
// Thanks to the padded timestamp in the key, records come back in
// chronological order.
func (r OutcomeRepository) History(sessionID string) ([]SpinRecord, error) {
	var records []SpinRecord
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("spin:%s:", sessionID))
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				var record SpinRecord
				if err := json.Unmarshal(v, &record); err != nil {
					r.log.Warn("skipping unreadable audit record",
						"key", string(it.Item().Key()), "error", err)
					return nil
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return records, err
}
