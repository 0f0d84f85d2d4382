package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hotel-front/internal/identity"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps credentials in a local SQLite database for single
// instance deployments. Expiry is enforced on read and expired rows are
// purged in place.
type SQLiteStore struct {
	db     *sql.DB
	ttl    time.Duration
	logger *zap.Logger
}

// NewSQLiteStore opens (or creates) the database at dbPath. Use ":memory:"
// for an in-memory database in tests.
func NewSQLiteStore(dbPath string, ttl time.Duration, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS credentials (
		session_id TEXT NOT NULL,
		class      TEXT NOT NULL,
		token      TEXT NOT NULL,
		profile    TEXT NOT NULL,
		expires_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (session_id, class)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create credentials table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_credentials_expires_at ON credentials(expires_at)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create expiry index: %w", err)
	}

	return &SQLiteStore{db: db, ttl: ttl, logger: logger}, nil
}

// Save writes both halves as one row with a shared expiry, replacing any
// previous credential for the pair.
func (s *SQLiteStore) Save(ctx context.Context, sessionID string, class identity.Class, token string, profile identity.Profile) error {
	raw, err := encodeProfile(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	now := time.Now()
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO credentials (session_id, class, token, profile, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, class.KeyPrefix, token, raw, now.Add(s.ttl).Unix(), now.Unix())
	return err
}

// Read returns the stored credential, or nil when the row is missing,
// expired, or carries an unparsable profile. Broken rows are deleted.
func (s *SQLiteStore) Read(ctx context.Context, sessionID string, class identity.Class) (*Credential, error) {
	var (
		token   string
		raw     string
		expires int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT token, profile, expires_at FROM credentials WHERE session_id = ? AND class = ?`,
		sessionID, class.KeyPrefix).Scan(&token, &raw, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	expiresAt := time.Unix(expires, 0)
	if !expiresAt.After(time.Now()) {
		_ = s.Clear(ctx, sessionID, class)
		return nil, nil
	}

	profile, ok := decodeProfile(raw)
	if !ok {
		s.logger.Warn("discarding corrupt stored profile",
			zap.String("class", string(class.Name)))
		_ = s.Clear(ctx, sessionID, class)
		return nil, nil
	}

	return &Credential{Token: token, Profile: profile, ExpiresAt: expiresAt}, nil
}

// Clear deletes the credential row. Clearing an absent credential is not an
// error.
func (s *SQLiteStore) Clear(ctx context.Context, sessionID string, class identity.Class) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE session_id = ? AND class = ?`,
		sessionID, class.KeyPrefix)
	return err
}

// PurgeExpired removes all rows past their expiry and returns the count.
func (s *SQLiteStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
