package db

import (
	"context"
	"time"

	"github.com/cepbuch/temptok/model"
)

// Outstanding returns the submissions the member still owes a reply to,
// oldest first ("clear your oldest debt first"). A submission qualifies
// when someone else sent it at or after the cutoff, it is not a
// duplicate, and the member has not replied to it. maxSentAt, when
// non-nil, drops submissions too fresh to expect a reply yet.
func (s *Store) Outstanding(ctx context.Context, memberID string, cutoff time.Time, maxSentAt *time.Time) ([]*model.Submission, error) {
	query := `
		SELECT message_id, sender_id, content_id, sent_at, text, duplicate_of
		FROM submissions s
		WHERE s.sender_id != ?
		  AND s.sent_at >= ?
		  AND s.duplicate_of = ''
		  AND NOT EXISTS (
			SELECT 1 FROM replies r
			WHERE r.submission_id = s.message_id AND r.sender_id = ?
		  )`
	args := []interface{}{memberID, cutoff.UnixMilli(), memberID}

	if maxSentAt != nil {
		query += ` AND s.sent_at <= ?`
		args = append(args, maxSentAt.UnixMilli())
	}
	query += ` ORDER BY s.sent_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

// CountOutstanding counts the member's unanswered submissions without
// loading them.
func (s *Store) CountOutstanding(ctx context.Context, memberID string, cutoff time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(1)
		FROM submissions s
		WHERE s.sender_id != ?
		  AND s.sent_at >= ?
		  AND s.duplicate_of = ''
		  AND NOT EXISTS (
			SELECT 1 FROM replies r
			WHERE r.submission_id = s.message_id AND r.sender_id = ?
		  )
	`, memberID, cutoff.UnixMilli(), memberID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
