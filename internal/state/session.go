package state

import (
	"database/sql"
	"errors"
	"time"
)

// Session is the transport state remembered for one file.
type Session struct {
	Path      string
	NumFrames int
	Frame     int
	LoopStart *int64
	LoopEnd   *int64
	UpdatedAt time.Time
}

// HasLoop reports whether a loop region was saved.
func (s Session) HasLoop() bool {
	return s.LoopStart != nil && s.LoopEnd != nil
}

func getSession(db *sql.DB, path string) (*Session, error) {
	row := db.QueryRow(`
		SELECT path, num_frames, frame, loop_start, loop_end, updated_at
		FROM sessions WHERE path = ?
	`, path)

	var s Session
	var loopStart, loopEnd sql.NullInt64
	var updatedAt int64

	err := row.Scan(&s.Path, &s.NumFrames, &s.Frame, &loopStart, &loopEnd, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved session is valid on first open
	}
	if err != nil {
		return nil, err
	}

	if loopStart.Valid && loopEnd.Valid {
		s.LoopStart = &loopStart.Int64
		s.LoopEnd = &loopEnd.Int64
	}
	s.UpdatedAt = time.Unix(updatedAt, 0)

	return &s, nil
}

func saveSession(db *sql.DB, s Session) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}
	_, err := db.Exec(`
		INSERT INTO sessions (path, num_frames, frame, loop_start, loop_end, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			num_frames = excluded.num_frames,
			frame = excluded.frame,
			loop_start = excluded.loop_start,
			loop_end = excluded.loop_end,
			updated_at = excluded.updated_at
	`, s.Path, s.NumFrames, s.Frame, s.LoopStart, s.LoopEnd, s.UpdatedAt.Unix())
	return err
}
