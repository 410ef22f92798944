package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ayusman/formsight/internal/pose"
)

// Recording is a raw pose sequence captured for later analysis. Data holds
// the JSON-encoded frames exactly as they were submitted.
type Recording struct {
	ID         string          `json:"id"`
	Exercise   string          `json:"exercise"`
	FrameCount int             `json:"frame_count"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Sequence decodes the recorded frames.
func (r *Recording) Sequence() (pose.Sequence, error) {
	var seq pose.Sequence
	if err := json.Unmarshal(r.Data, &seq); err != nil {
		return nil, fmt.Errorf("failed to decode recording %s: %w", r.ID, err)
	}
	return seq, nil
}

// RecordingRepository provides CRUD operations for recordings.
type RecordingRepository struct {
	db *sql.DB
}

// Recordings returns the recording repository for this store.
func (s *Store) Recordings() *RecordingRepository {
	return &RecordingRepository{db: s.db}
}

// Create inserts a new recording. The caller supplies the ID.
func (r *RecordingRepository) Create(rec *Recording) error {
	rec.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO recordings (id, exercise, frame_count, data, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Exercise, rec.FrameCount, string(rec.Data), rec.CreatedAt,
	)
	return err
}

// GetByID retrieves a recording by its ID, including the frame data.
func (r *RecordingRepository) GetByID(id string) (*Recording, error) {
	rec := &Recording{}
	var data string

	err := r.db.QueryRow(
		`SELECT id, exercise, frame_count, data, created_at
		 FROM recordings WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Exercise, &rec.FrameCount, &data, &rec.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rec.Data = json.RawMessage(data)
	return rec, nil
}

// List retrieves all recordings without their frame data, newest first.
func (r *RecordingRepository) List() ([]*Recording, error) {
	rows, err := r.db.Query(
		`SELECT id, exercise, frame_count, created_at
		 FROM recordings ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recordings []*Recording
	for rows.Next() {
		rec := &Recording{}
		if err := rows.Scan(&rec.ID, &rec.Exercise, &rec.FrameCount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recordings = append(recordings, rec)
	}

	return recordings, rows.Err()
}

// Delete removes a recording by its ID.
func (r *RecordingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM recordings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
