package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/crossplay/banana-engine/internal/models"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

type Database struct {
	DB    *sql.DB
	Redis *redis.Client
}

func New(postgresURL, redisURL string) (*Database, error) {
	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	// Configure connection pool for optimal performance
	db.SetMaxOpenConns(25)                 // Maximum number of open connections
	db.SetMaxIdleConns(10)                 // Maximum number of idle connections
	db.SetConnMaxLifetime(5 * time.Minute) // Maximum lifetime of a connection

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Database{DB: db, Redis: rdb}, nil
}

func (d *Database) Close() error {
	if err := d.DB.Close(); err != nil {
		return err
	}
	return d.Redis.Close()
}

// InitSchema creates all database tables
func (d *Database) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		email VARCHAR(255) UNIQUE,
		display_name VARCHAR(100) NOT NULL,
		avatar_url TEXT,
		password_hash VARCHAR(255),
		is_guest BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS user_stats (
		user_id VARCHAR(36) PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		solves_run INTEGER DEFAULT 0,
		solves_ok INTEGER DEFAULT 0,
		dumps_hit INTEGER DEFAULT 0,
		avg_solve_ms FLOAT DEFAULT 0,
		last_played_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS solve_history (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) REFERENCES users(id) ON DELETE CASCADE,
		hand VARCHAR(32) NOT NULL,
		outcome VARCHAR(20) NOT NULL,
		words_used INTEGER DEFAULT 0,
		elapsed_ms BIGINT DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_solve_history_user_id ON solve_history(user_id);
	CREATE INDEX IF NOT EXISTS idx_solve_history_created_at ON solve_history(created_at);

	CREATE TABLE IF NOT EXISTS solve_sessions (
		id VARCHAR(36) PRIMARY KEY,
		host_id VARCHAR(36) REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		ended_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_solve_sessions_host_id ON solve_sessions(host_id);
	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	`

	_, err := d.DB.Exec(schema)
	return err
}

// User operations
func (d *Database) CreateUser(user *models.User) error {
	_, err := d.DB.Exec(`
		INSERT INTO users (id, email, display_name, avatar_url, password_hash, is_guest, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, user.ID, user.Email, user.DisplayName, user.AvatarURL, user.Password, user.IsGuest, user.CreatedAt, user.UpdatedAt)

	if err != nil {
		return err
	}

	// Create initial stats
	_, err = d.DB.Exec(`
		INSERT INTO user_stats (user_id) VALUES ($1)
	`, user.ID)

	return err
}

func (d *Database) GetUserByID(id string) (*models.User, error) {
	user := &models.User{}
	err := d.DB.QueryRow(`
		SELECT id, email, display_name, avatar_url, password_hash, is_guest, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.DisplayName, &user.AvatarURL, &user.Password, &user.IsGuest, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (d *Database) GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := d.DB.QueryRow(`
		SELECT id, email, display_name, avatar_url, password_hash, is_guest, created_at, updated_at
		FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.DisplayName, &user.AvatarURL, &user.Password, &user.IsGuest, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (d *Database) GetUserStats(userID string) (*models.UserStats, error) {
	stats := &models.UserStats{}
	err := d.DB.QueryRow(`
		SELECT user_id, solves_run, solves_ok, dumps_hit, avg_solve_ms, last_played_at
		FROM user_stats WHERE user_id = $1
	`, userID).Scan(&stats.UserID, &stats.SolvesRun, &stats.SolvesOK, &stats.DumpsHit,
		&stats.AvgSolveMs, &stats.LastPlayedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return stats, err
}

func (d *Database) UpdateUserStats(stats *models.UserStats) error {
	_, err := d.DB.Exec(`
		UPDATE user_stats SET
			solves_run = $2,
			solves_ok = $3,
			dumps_hit = $4,
			avg_solve_ms = $5,
			last_played_at = $6
		WHERE user_id = $1
	`, stats.UserID, stats.SolvesRun, stats.SolvesOK, stats.DumpsHit, stats.AvgSolveMs, stats.LastPlayedAt)
	return err
}

// Solve history operations
func (d *Database) CreateSolveRecord(rec *models.SolveRecord) error {
	_, err := d.DB.Exec(`
		INSERT INTO solve_history (id, user_id, hand, outcome, words_used, elapsed_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, rec.UserID, rec.Hand, rec.Outcome, rec.WordsUsed, rec.ElapsedMs, rec.CreatedAt)
	return err
}

func (d *Database) GetUserSolveHistory(userID string, limit, offset int) ([]models.SolveRecord, error) {
	rows, err := d.DB.Query(`
		SELECT id, user_id, hand, outcome, words_used, elapsed_ms, created_at
		FROM solve_history WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.SolveRecord
	for rows.Next() {
		var r models.SolveRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Hand, &r.Outcome, &r.WordsUsed, &r.ElapsedMs, &r.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, r)
	}

	return history, nil
}

// Solve session operations, for realtime spectating
func (d *Database) CreateSolveSession(session *models.SolveSession) error {
	_, err := d.DB.Exec(`
		INSERT INTO solve_sessions (id, host_id, created_at)
		VALUES ($1, $2, $3)
	`, session.ID, session.HostID, session.CreatedAt)
	return err
}

func (d *Database) EndSolveSession(id string) error {
	_, err := d.DB.Exec(`UPDATE solve_sessions SET ended_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}

func (d *Database) GetSolveSession(id string) (*models.SolveSession, error) {
	session := &models.SolveSession{}
	err := d.DB.QueryRow(`
		SELECT id, host_id, created_at, ended_at
		FROM solve_sessions WHERE id = $1
	`, id).Scan(&session.ID, &session.HostID, &session.CreatedAt, &session.EndedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return session, err
}

// Redis session-token operations
func (d *Database) SetSession(ctx context.Context, userID, token string, expiration time.Duration) error {
	return d.Redis.Set(ctx, "session:"+token, userID, expiration).Err()
}

func (d *Database) GetSession(ctx context.Context, token string) (string, error) {
	return d.Redis.Get(ctx, "session:"+token).Result()
}

func (d *Database) DeleteSession(ctx context.Context, token string) error {
	return d.Redis.Del(ctx, "session:"+token).Err()
}

// Redis spectator presence operations, for a solve session's spectator list
func (d *Database) SetSpectatorPresence(ctx context.Context, sessionID, userID string) error {
	return d.Redis.SAdd(ctx, "solve:"+sessionID+":spectators", userID).Err()
}

func (d *Database) RemoveSpectatorPresence(ctx context.Context, sessionID, userID string) error {
	return d.Redis.SRem(ctx, "solve:"+sessionID+":spectators", userID).Err()
}

func (d *Database) GetSpectatorPresence(ctx context.Context, sessionID string) ([]string, error) {
	return d.Redis.SMembers(ctx, "solve:"+sessionID+":spectators").Result()
}

// Redis dictionary cache, storing a pre-decoded word list under a version
// key so server restarts can skip re-parsing the source wordlist file.
func (d *Database) CacheDictionaryVersion(ctx context.Context, version string, words []byte, ttl time.Duration) error {
	return d.Redis.Set(ctx, "dict:"+version, words, ttl).Err()
}

func (d *Database) GetCachedDictionaryVersion(ctx context.Context, version string) ([]byte, error) {
	return d.Redis.Get(ctx, "dict:"+version).Bytes()
}
