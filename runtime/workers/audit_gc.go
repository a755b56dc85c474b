package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// AuditGCWorker reclaims space in the audit store's value log. Badger
// never garbage-collects on its own; without this the append-only spin
// trail grows unbounded on disk.
type AuditGCWorker struct {
	log      *slog.Logger
	db       *badger.DB
	interval time.Duration
}

func NewAuditGCWorker(log *slog.Logger, db *badger.DB, interval time.Duration) *AuditGCWorker {
	return &AuditGCWorker{log: log, db: db, interval: interval}
}

func (w *AuditGCWorker) Run(ctx context.Context) error {
	w.log.Info("Starting audit GC worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// Rerun until a pass rewrites nothing
			for {
				err := w.db.RunValueLogGC(0.5)
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				if err != nil {
					w.log.Warn("Value log GC failed", "error", err)
					break
				}
			}
		}
	}
}
