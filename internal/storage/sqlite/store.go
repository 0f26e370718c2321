package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/pointtrack/internal/monitoring"
	"github.com/banshee-data/pointtrack/internal/tracking"
)

// ErrNoSession is returned when frames are recorded outside a session.
var ErrNoSession = errors.New("no active tracking session")

// Session is one recorded run of the tracker.
type Session struct {
	SessionID  string
	Source     string
	ParamsJSON string
	StartedAt  time.Time
	EndedAt    *time.Time
	FrameCount int
}

// FrameStat is the stored summary of one frame.
type FrameStat struct {
	FrameIdx      uint64
	Injected      int
	Tracked       int
	Valid         int
	DetectedFaces int
	FacesTracking int
	Notified      bool
}

// Store records tracking sessions in a SQLite database.
type Store struct {
	db *sql.DB

	mu      sync.Mutex
	current string
	frames  int
}

// Open opens (creating if needed) the database at path and migrates it to
// the latest schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	s := &Store{db: db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StartSession begins a new session and makes it the target of RecordFrame.
func (s *Store) StartSession(source, paramsJSON string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if paramsJSON == "" {
		paramsJSON = "{}"
	}
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO tracking_sessions (session_id, source, params_json, started_at) VALUES (?, ?, ?, ?)`,
		id, source, paramsJSON, time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}

	s.current = id
	s.frames = 0
	monitoring.Diagf("[Store] started session %s for %s", id, source)
	return id, nil
}

// CurrentSession returns the active session ID, or "" when none is active.
func (s *Store) CurrentSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// RecordFrame implements tracking.FrameSink.
func (s *Store) RecordFrame(r tracking.FrameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == "" {
		return ErrNoSession
	}
	_, err := s.db.Exec(
		`INSERT INTO tracking_frames
			(session_id, frame_idx, injected, tracked, valid, detected_faces, faces_tracking, notified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.current, int64(r.Index), r.Injected, len(r.Points), r.ValidCount(),
		len(r.DetectedFaces), r.TrackingFaces(), r.Notified,
	)
	if err != nil {
		return fmt.Errorf("failed to insert frame %d: %w", r.Index, err)
	}
	s.frames++
	return nil
}

// EndSession closes the active session. It is a no-op without one.
func (s *Store) EndSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == "" {
		return nil
	}
	_, err := s.db.Exec(
		`UPDATE tracking_sessions SET ended_at = ?, frame_count = ? WHERE session_id = ?`,
		time.Now().UnixNano(), s.frames, s.current,
	)
	if err != nil {
		return fmt.Errorf("failed to end session %s: %w", s.current, err)
	}
	monitoring.Diagf("[Store] ended session %s after %d frames", s.current, s.frames)
	s.current = ""
	s.frames = 0
	return nil
}

// Sessions lists every session, newest first.
func (s *Store) Sessions() ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT session_id, source, params_json, started_at, ended_at, frame_count
		 FROM tracking_sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var started int64
		var ended sql.NullInt64
		if err := rows.Scan(&sess.SessionID, &sess.Source, &sess.ParamsJSON, &started, &ended, &sess.FrameCount); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sess.StartedAt = time.Unix(0, started)
		if ended.Valid {
			t := time.Unix(0, ended.Int64)
			sess.EndedAt = &t
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// FrameStats returns the stored frames of a session in frame order.
func (s *Store) FrameStats(sessionID string) ([]FrameStat, error) {
	rows, err := s.db.Query(
		`SELECT frame_idx, injected, tracked, valid, detected_faces, faces_tracking, notified
		 FROM tracking_frames WHERE session_id = ? ORDER BY frame_idx`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query frames: %w", err)
	}
	defer rows.Close()

	var stats []FrameStat
	for rows.Next() {
		var fs FrameStat
		var idx int64
		if err := rows.Scan(&idx, &fs.Injected, &fs.Tracked, &fs.Valid, &fs.DetectedFaces, &fs.FacesTracking, &fs.Notified); err != nil {
			return nil, fmt.Errorf("failed to scan frame: %w", err)
		}
		fs.FrameIdx = uint64(idx)
		stats = append(stats, fs)
	}
	return stats, rows.Err()
}

// DeleteSession removes a session and its frames.
func (s *Store) DeleteSession(sessionID string) error {
	res, err := s.db.Exec(`DELETE FROM tracking_sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}
