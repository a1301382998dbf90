package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartIndexSweeper periodically re-derives note_search rows from the notes
// table. The index is written synchronously on every note mutation; the
// sweeper is the convergence backstop for rows a crashed request left stale.
func StartIndexSweeper(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res, err := db.ExecContext(ctx, `
                    INSERT INTO note_search (note_id, vec)
                    SELECT id, to_tsvector('english', title || ' ' || content)
                      FROM notes
                    ON CONFLICT (note_id) DO UPDATE SET vec = EXCLUDED.vec
                     WHERE note_search.vec IS DISTINCT FROM EXCLUDED.vec
                `)
				if err != nil {
					log.Error("failed to sweep search index", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("repaired search index rows", zap.Int64("rows", rows))
				}
			}
		}
	}()
}
