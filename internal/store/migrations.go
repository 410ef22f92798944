package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Reports table - one row per analyzed exercise attempt
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			exercise TEXT NOT NULL,
			rep_count INTEGER NOT NULL DEFAULT 0,
			frame_count INTEGER NOT NULL DEFAULT 0,
			valid_frame_ratio REAL NOT NULL DEFAULT 0,
			consistency REAL NOT NULL DEFAULT 0,
			smoothness REAL NOT NULL DEFAULT 0,
			range_of_motion TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Report errors table - diagnostic form faults per report
		`CREATE TABLE IF NOT EXISTS report_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			severity TEXT NOT NULL CHECK(severity IN ('low', 'medium', 'high')),
			start_index INTEGER NOT NULL,
			end_index INTEGER NOT NULL,
			description TEXT NOT NULL,
			correction TEXT NOT NULL,
			affected_landmarks TEXT NOT NULL DEFAULT '[]'
		)`,

		// Report suggestions table - coaching suggestions per report
		`CREATE TABLE IF NOT EXISTS report_suggestions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			priority INTEGER NOT NULL,
			suggestion TEXT NOT NULL,
			expected_improvement TEXT NOT NULL
		)`,

		// Recordings table - raw pose sequences captured for later analysis
		`CREATE TABLE IF NOT EXISTS recordings (
			id TEXT PRIMARY KEY,
			exercise TEXT NOT NULL,
			frame_count INTEGER NOT NULL DEFAULT 0,
			data TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_report_errors_report_id ON report_errors(report_id)`,
		`CREATE INDEX IF NOT EXISTS idx_report_suggestions_report_id ON report_suggestions(report_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recordings_exercise ON recordings(exercise)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
