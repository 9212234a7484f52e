package history

import (
	"database/sql"

	"github.com/pkg/errors"
)

//nolint:gochecknoglobals // Ordered schema statements, re-run on every open
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS check_ins (
		id           TEXT PRIMARY KEY,
		client_id    TEXT NOT NULL,
		submitted_at TEXT NOT NULL,
		responses    TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_check_ins_client_submitted
		ON check_ins (client_id, submitted_at DESC)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id         TEXT PRIMARY KEY,
		client_id  TEXT NOT NULL,
		tier_id    TEXT NOT NULL,
		payload    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_client_created
		ON reviews (client_id, created_at DESC)`,
}

// migrate applies every schema statement. All statements are idempotent.
func migrate(db *sql.DB) (err error) {
	for i, stmt := range migrations {
		_, err = db.Exec(stmt)
		if err != nil {
			err = errors.Wrapf(err, "migration %d failed", i)
			return err
		}
	}
	return err
}
