package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ayusman/formsight/internal/analysis"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ReportSummary is the listing view of a stored report, without the error
// and suggestion details.
type ReportSummary struct {
	ID          string    `json:"id"`
	Exercise    string    `json:"exercise"`
	RepCount    int       `json:"rep_count"`
	Consistency float64   `json:"consistency"`
	Smoothness  float64   `json:"smoothness"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReportRepository provides CRUD operations for analysis reports.
type ReportRepository struct {
	db *sql.DB
}

// Reports returns the report repository for this store.
func (s *Store) Reports() *ReportRepository {
	return &ReportRepository{db: s.db}
}

// Create inserts a report with its errors and suggestions in a single
// transaction.
func (r *ReportRepository) Create(report *analysis.Report) error {
	rom, err := json.Marshal(report.RangeOfMotion)
	if err != nil {
		return fmt.Errorf("failed to encode range of motion: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO reports (id, exercise, rep_count, frame_count, valid_frame_ratio, consistency, smoothness, range_of_motion, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.Exercise, report.RepCount, report.FrameCount,
		report.ValidFrameRatio, report.Consistency, report.Smoothness,
		string(rom), report.CreatedAt,
	)
	if err != nil {
		return err
	}

	errStmt, err := tx.Prepare(
		`INSERT INTO report_errors (report_id, type, severity, start_index, end_index, description, correction, affected_landmarks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer errStmt.Close()

	for _, e := range report.Errors {
		affected, err := json.Marshal(e.AffectedLandmarks)
		if err != nil {
			return fmt.Errorf("failed to encode affected landmarks: %w", err)
		}
		if _, err := errStmt.Exec(report.ID, string(e.Type), string(e.Severity), e.StartIndex, e.EndIndex, e.Description, e.Correction, string(affected)); err != nil {
			return err
		}
	}

	sugStmt, err := tx.Prepare(
		`INSERT INTO report_suggestions (report_id, category, priority, suggestion, expected_improvement)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer sugStmt.Close()

	for _, s := range report.Suggestions {
		if _, err := sugStmt.Exec(report.ID, s.Category, s.Priority, s.Suggestion, s.ExpectedImprovement); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves a full report by its ID, reassembling the error and
// suggestion records. The frame-level phase breakdown is not persisted.
func (r *ReportRepository) GetByID(id string) (*analysis.Report, error) {
	report := &analysis.Report{}
	var rom string

	err := r.db.QueryRow(
		`SELECT id, exercise, rep_count, frame_count, valid_frame_ratio, consistency, smoothness, range_of_motion, created_at
		 FROM reports WHERE id = ?`,
		id,
	).Scan(&report.ID, &report.Exercise, &report.RepCount, &report.FrameCount,
		&report.ValidFrameRatio, &report.Consistency, &report.Smoothness, &rom, &report.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(rom), &report.RangeOfMotion); err != nil {
		return nil, fmt.Errorf("failed to decode range of motion: %w", err)
	}

	if report.Errors, err = r.errorsFor(id); err != nil {
		return nil, err
	}
	if report.Suggestions, err = r.suggestionsFor(id); err != nil {
		return nil, err
	}

	return report, nil
}

func (r *ReportRepository) errorsFor(reportID string) ([]analysis.FormError, error) {
	rows, err := r.db.Query(
		`SELECT type, severity, start_index, end_index, description, correction, affected_landmarks
		 FROM report_errors WHERE report_id = ? ORDER BY id`,
		reportID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var formErrors []analysis.FormError
	for rows.Next() {
		var e analysis.FormError
		var kind, severity, affected string
		if err := rows.Scan(&kind, &severity, &e.StartIndex, &e.EndIndex, &e.Description, &e.Correction, &affected); err != nil {
			return nil, err
		}
		e.Type = analysis.DeviationKind(kind)
		e.Severity = analysis.Severity(severity)
		if err := json.Unmarshal([]byte(affected), &e.AffectedLandmarks); err != nil {
			return nil, fmt.Errorf("failed to decode affected landmarks: %w", err)
		}
		formErrors = append(formErrors, e)
	}

	return formErrors, rows.Err()
}

func (r *ReportRepository) suggestionsFor(reportID string) ([]analysis.FormSuggestion, error) {
	rows, err := r.db.Query(
		`SELECT category, priority, suggestion, expected_improvement
		 FROM report_suggestions WHERE report_id = ? ORDER BY id`,
		reportID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []analysis.FormSuggestion
	for rows.Next() {
		var s analysis.FormSuggestion
		if err := rows.Scan(&s.Category, &s.Priority, &s.Suggestion, &s.ExpectedImprovement); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}

	return suggestions, rows.Err()
}

// List retrieves summaries of all stored reports, newest first.
func (r *ReportRepository) List() ([]ReportSummary, error) {
	rows, err := r.db.Query(
		`SELECT id, exercise, rep_count, consistency, smoothness, created_at
		 FROM reports ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []ReportSummary
	for rows.Next() {
		var s ReportSummary
		if err := rows.Scan(&s.ID, &s.Exercise, &s.RepCount, &s.Consistency, &s.Smoothness, &s.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// Delete removes a report and, via cascade, its errors and suggestions.
func (r *ReportRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM reports WHERE id = ?`, id)
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
