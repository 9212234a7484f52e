package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/nikogura/checkin-scorer/pkg/review"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // SQLite driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Fixed-width UTC layout so that lexical order in SQLite matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// Record is a stored check-in.
type Record struct {
	ID          string         `json:"id"`
	ClientID    string         `json:"clientId"`
	SubmittedAt time.Time      `json:"submittedAt"`
	CheckIn     review.CheckIn `json:"responses"`
}

// StoredReview is a persisted coach review.
type StoredReview struct {
	ID        string             `json:"id"`
	ClientID  string             `json:"clientId"`
	TierID    string             `json:"tierId"`
	CreatedAt time.Time          `json:"createdAt"`
	Review    review.CoachReview `json:"review"`
}

// Store persists check-in history and computed reviews in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the history database at path and applies migrations.
func Open(path string) (store *Store, err error) {
	if path == "" {
		err = errors.New("database path is required")
		return store, err
	}

	if path != MemoryPath {
		dir := filepath.Dir(path)
		err = os.MkdirAll(dir, 0750)
		if err != nil {
			err = errors.Wrapf(err, "failed to create database directory: %s", dir)
			return store, err
		}
	}

	var db *sql.DB
	db, err = sql.Open("sqlite", path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open database: %s", path)
		return store, err
	}

	// Each in-memory connection is its own database, so pin the pool to one.
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	_, err = db.Exec("PRAGMA journal_mode = WAL")
	if err != nil {
		_ = db.Close()
		err = errors.Wrap(err, "failed to enable WAL mode")
		return store, err
	}

	err = migrate(db)
	if err != nil {
		_ = db.Close()
		err = errors.Wrap(err, "failed to migrate database")
		return store, err
	}

	store = &Store{
		db:  db,
		now: time.Now,
	}

	return store, err
}

// Close releases the database.
func (s *Store) Close() (err error) {
	err = s.db.Close()
	return err
}

// AddCheckIn stores a check-in for a client and returns its id.
func (s *Store) AddCheckIn(ctx context.Context, clientID string, submittedAt time.Time, checkIn review.CheckIn) (id string, err error) {
	if clientID == "" {
		err = errors.New("client id is required")
		return id, err
	}

	// A nil check-in is stored as an empty object so it reads back cleanly.
	if checkIn == nil {
		checkIn = review.CheckIn{}
	}

	var responses []byte
	responses, err = json.Marshal(checkIn)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal check-in responses")
		return id, err
	}

	id = uuid.NewString()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO check_ins (id, client_id, submitted_at, responses, created_at) VALUES (?, ?, ?, ?, ?)`,
		id,
		clientID,
		formatTime(submittedAt),
		string(responses),
		formatTime(s.now()),
	)
	if err != nil {
		err = errors.Wrap(err, "failed to insert check-in")
		id = ""
		return id, err
	}

	return id, err
}

// ListCheckIns returns a client's check-ins newest first. A limit of zero or less returns all of them.
func (s *Store) ListCheckIns(ctx context.Context, clientID string, limit int) (records []Record, err error) {
	query := `SELECT id, client_id, submitted_at, responses FROM check_ins
		WHERE client_id = ? ORDER BY submitted_at DESC, rowid DESC`
	args := []any{clientID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var rows *sql.Rows
	rows, err = s.db.QueryContext(ctx, query, args...)
	if err != nil {
		err = errors.Wrap(err, "failed to list check-ins")
		return records, err
	}
	defer rows.Close()

	records = []Record{}
	for rows.Next() {
		var record Record
		var submittedAt, responses string

		err = rows.Scan(&record.ID, &record.ClientID, &submittedAt, &responses)
		if err != nil {
			err = errors.Wrap(err, "failed to scan check-in")
			return records, err
		}

		record.SubmittedAt, err = parseTime(submittedAt)
		if err != nil {
			return records, err
		}

		record.CheckIn, err = review.ParseCheckIn([]byte(responses))
		if err != nil {
			err = errors.Wrapf(err, "stored check-in %s is corrupt", record.ID)
			return records, err
		}

		records = append(records, record)
	}

	err = rows.Err()
	if err != nil {
		err = errors.Wrap(err, "failed to iterate check-ins")
		return records, err
	}

	return records, err
}

// CheckIns extracts the check-ins from records, preserving order.
func CheckIns(records []Record) (checkIns []review.CheckIn) {
	checkIns = make([]review.CheckIn, 0, len(records))
	for _, r := range records {
		checkIns = append(checkIns, r.CheckIn)
	}
	return checkIns
}

// SaveReview stores a computed review and returns its id.
func (s *Store) SaveReview(ctx context.Context, clientID, tierID string, coachReview review.CoachReview) (id string, err error) {
	if clientID == "" {
		err = errors.New("client id is required")
		return id, err
	}

	var payload []byte
	payload, err = json.Marshal(coachReview)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal review")
		return id, err
	}

	id = uuid.NewString()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reviews (id, client_id, tier_id, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		id,
		clientID,
		tierID,
		string(payload),
		formatTime(s.now()),
	)
	if err != nil {
		err = errors.Wrap(err, "failed to insert review")
		id = ""
		return id, err
	}

	return id, err
}

// LatestReview returns the most recently saved review for a client.
func (s *Store) LatestReview(ctx context.Context, clientID string) (stored StoredReview, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, client_id, tier_id, payload, created_at FROM reviews
		WHERE client_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		clientID,
	)

	var payload, createdAt string
	err = row.Scan(&stored.ID, &stored.ClientID, &stored.TierID, &payload, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = errors.Wrapf(ErrNotFound, "no review for client %s", clientID)
			return stored, err
		}
		err = errors.Wrap(err, "failed to load review")
		return stored, err
	}

	stored.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return stored, err
	}

	err = json.Unmarshal([]byte(payload), &stored.Review)
	if err != nil {
		err = errors.Wrapf(err, "stored review %s is corrupt", stored.ID)
		return stored, err
	}

	return stored, err
}

func formatTime(t time.Time) (formatted string) {
	formatted = t.UTC().Format(timeLayout)
	return formatted
}

func parseTime(value string) (t time.Time, err error) {
	t, err = time.Parse(timeLayout, value)
	if err != nil {
		err = errors.Wrapf(err, "invalid stored timestamp %q", value)
		return t, err
	}
	return t, err
}
