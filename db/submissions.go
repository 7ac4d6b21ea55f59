package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cepbuch/temptok/model"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// ReplyOutcome classifies a reply write. Everything except
// ReplyDischarged leaves the submission untouched.
type ReplyOutcome int

const (
	ReplyDischarged ReplyOutcome = iota
	ReplyTargetNotFound
	ReplySelfReply
	ReplyAlreadyReplied
)

func (o ReplyOutcome) String() string {
	switch o {
	case ReplyDischarged:
		return "discharged"
	case ReplyTargetNotFound:
		return "target not found"
	case ReplySelfReply:
		return "self reply"
	case ReplyAlreadyReplied:
		return "already replied"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// SaveSubmission upserts a submission by its message id. Re-saving an id
// replaces the scalar fields; replies live in their own table and are
// never discarded by the upsert.
func (s *Store) SaveSubmission(ctx context.Context, sub *model.Submission) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (message_id, sender_id, content_id, sent_at, text, duplicate_of)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(message_id) DO UPDATE SET
			sender_id = excluded.sender_id,
			content_id = excluded.content_id,
			sent_at = excluded.sent_at,
			text = excluded.text,
			duplicate_of = excluded.duplicate_of
	`, sub.MessageID, sub.SenderID, sub.ContentID, sub.SentAt.UnixMilli(), sub.Text, sub.DuplicateOf)
	if err != nil {
		return fmt.Errorf("save submission %s: %w", sub.MessageID, err)
	}
	return nil
}

// SubmissionByID retrieves a submission with its replies. Returns
// (nil, nil) when the id was never recorded.
func (s *Store) SubmissionByID(ctx context.Context, messageID string) (*model.Submission, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT message_id, sender_id, content_id, sent_at, text, duplicate_of
		FROM submissions WHERE message_id = ?
	`, messageID)

	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.loadReplies(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// FindByContentID returns submissions sharing a video id, newest first.
// excludeSender restricts the search to other members' submissions when
// non-empty; duplicate detection normally passes "" because any prior
// occurrence counts.
func (s *Store) FindByContentID(ctx context.Context, contentID, excludeSender string) ([]*model.Submission, error) {
	query := `
		SELECT message_id, sender_id, content_id, sent_at, text, duplicate_of
		FROM submissions WHERE content_id = ?`
	args := []interface{}{contentID}

	if excludeSender != "" {
		query += ` AND sender_id != ?`
		args = append(args, excludeSender)
	}
	query += ` ORDER BY sent_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

// RecordReply attempts to discharge the sender's obligation toward a
// submission. The insert is a single guarded statement: the submission
// must exist, must be someone else's, and the composite primary key
// rejects a second reply from the same member. Only a successful insert
// touches the member counters, in the same transaction.
func (s *Store) RecordReply(ctx context.Context, reply *model.Reply) (ReplyOutcome, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO replies (submission_id, sender_id, message_id, sent_at, text, laugh_score)
		SELECT ?1, ?2, ?3, ?4, ?5, ?6
		WHERE EXISTS (
			SELECT 1 FROM submissions WHERE message_id = ?1 AND sender_id != ?2
		)
		ON CONFLICT(submission_id, sender_id) DO NOTHING
	`, reply.SubmissionID, reply.SenderID, reply.MessageID,
		reply.SentAt.UnixMilli(), reply.Text, reply.LaughScore)
	if err != nil {
		return 0, fmt.Errorf("insert reply %s: %w", reply.MessageID, err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if inserted == 0 {
		return s.classifyIgnoredReply(ctx, reply)
	}

	if err := markReplied(tx, reply.SenderID, reply.SubmissionID, reply.SentAt); err != nil {
		return 0, fmt.Errorf("bump reply counter for %s: %w", reply.SenderID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return ReplyDischarged, nil
}

// classifyIgnoredReply figures out why the guarded insert matched
// nothing. Purely informational; state was not modified.
func (s *Store) classifyIgnoredReply(ctx context.Context, reply *model.Reply) (ReplyOutcome, error) {
	var senderID string
	err := s.db.QueryRowContext(ctx,
		`SELECT sender_id FROM submissions WHERE message_id = ?`, reply.SubmissionID,
	).Scan(&senderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ReplyTargetNotFound, nil
		}
		return 0, err
	}

	if senderID == reply.SenderID {
		return ReplySelfReply, nil
	}
	return ReplyAlreadyReplied, nil
}

// DeleteReply removes exactly one reply by its own message id,
// re-opening that member's obligation toward the submission. The parent
// submission, other replies and member counters stay untouched. Returns
// whether a reply was actually removed.
func (s *Store) DeleteReply(ctx context.Context, submissionID, replyMessageID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM replies WHERE submission_id = ? AND message_id = ?
	`, submissionID, replyMessageID)
	if err != nil {
		return false, err
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// CountSent counts a member's submissions, optionally only those sent at
// or after since.
func (s *Store) CountSent(ctx context.Context, memberID string, since *time.Time) (int, error) {
	query := `SELECT COUNT(1) FROM submissions WHERE sender_id = ?`
	args := []interface{}{memberID}

	if since != nil {
		query += ` AND sent_at >= ?`
		args = append(args, since.UnixMilli())
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) loadReplies(ctx context.Context, sub *model.Submission) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT submission_id, sender_id, message_id, sent_at, text, laugh_score
		FROM replies WHERE submission_id = ? ORDER BY sent_at ASC
	`, sub.MessageID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			reply  model.Reply
			sentAt int64
		)
		err := rows.Scan(
			&reply.SubmissionID, &reply.SenderID, &reply.MessageID,
			&sentAt, &reply.Text, &reply.LaughScore,
		)
		if err != nil {
			return err
		}
		reply.SentAt = time.UnixMilli(sentAt).UTC()
		sub.Replies = append(sub.Replies, reply)
	}

	return rows.Err()
}

func scanSubmission(scanner rowScanner) (*model.Submission, error) {
	var (
		sub    model.Submission
		sentAt int64
	)
	err := scanner.Scan(
		&sub.MessageID, &sub.SenderID, &sub.ContentID,
		&sentAt, &sub.Text, &sub.DuplicateOf,
	)
	if err != nil {
		return nil, err
	}
	sub.SentAt = time.UnixMilli(sentAt).UTC()
	return &sub, nil
}

func collectSubmissions(rows *sql.Rows) ([]*model.Submission, error) {
	var subs []*model.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
