package db

import "fmt"

// migrate creates the necessary tables if they don't exist.
func (s *Store) migrate() error {
	createMembersTableSQL := `
	CREATE TABLE IF NOT EXISTS members (
		member_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		gender TEXT NOT NULL DEFAULT 'masculine',
		replied_count INTEGER NOT NULL DEFAULT 0,
		last_replied_at INTEGER,
		last_replied_message_id TEXT NOT NULL DEFAULT ''
	);`

	if _, err := s.db.Exec(createMembersTableSQL); err != nil {
		return fmt.Errorf("create members table: %w", err)
	}

	createSubmissionsTableSQL := `
	CREATE TABLE IF NOT EXISTS submissions (
		message_id TEXT PRIMARY KEY,
		sender_id TEXT NOT NULL,
		content_id TEXT NOT NULL DEFAULT '',
		sent_at INTEGER NOT NULL,
		text TEXT NOT NULL,
		duplicate_of TEXT NOT NULL DEFAULT ''
	);`

	if _, err := s.db.Exec(createSubmissionsTableSQL); err != nil {
		return fmt.Errorf("create submissions table: %w", err)
	}

	// The composite primary key is what enforces at-most-one reply per
	// member per submission.
	createRepliesTableSQL := `
	CREATE TABLE IF NOT EXISTS replies (
		submission_id TEXT NOT NULL,
		sender_id TEXT NOT NULL,
		message_id TEXT NOT NULL,
		sent_at INTEGER NOT NULL,
		text TEXT NOT NULL,
		laugh_score INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (submission_id, sender_id)
	);`

	if _, err := s.db.Exec(createRepliesTableSQL); err != nil {
		return fmt.Errorf("create replies table: %w", err)
	}

	createIndexesSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_submissions_content_id ON submissions(content_id)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_sent_at ON submissions(sent_at)`,
		`CREATE INDEX IF NOT EXISTS idx_replies_sender_id ON replies(sender_id)`,
	}

	for _, stmt := range createIndexesSQL {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}
