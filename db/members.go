package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cepbuch/temptok/model"
)

// ErrUnknownMember is returned when a member id has no roster record.
// Events from unregistered participants must be rejected by the caller.
var ErrUnknownMember = errors.New("unknown member")

// MemberByID looks up a registered member.
func (s *Store) MemberByID(ctx context.Context, memberID string) (*model.Member, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT member_id, name, gender, replied_count, last_replied_at, last_replied_message_id
		FROM members WHERE member_id = ?
	`, memberID)

	member, err := scanMember(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("member %s: %w", memberID, ErrUnknownMember)
		}
		return nil, err
	}
	return member, nil
}

// MemberByName finds a member by their display name.
func (s *Store) MemberByName(ctx context.Context, name string) (*model.Member, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT member_id, name, gender, replied_count, last_replied_at, last_replied_message_id
		FROM members WHERE name = ?
	`, name)

	member, err := scanMember(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("member named %q: %w", name, ErrUnknownMember)
		}
		return nil, err
	}
	return member, nil
}

// ListMembers returns all registered members ordered by name.
func (s *Store) ListMembers(ctx context.Context) ([]*model.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT member_id, name, gender, replied_count, last_replied_at, last_replied_message_id
		FROM members ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*model.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// UpsertMember inserts a roster record or refreshes its name and gender.
// Counters are never touched here; they only move on a discharged
// obligation.
func (s *Store) UpsertMember(ctx context.Context, memberID, name string, gender model.Gender) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO members (member_id, name, gender) VALUES (?, ?, ?)
		ON CONFLICT(member_id) DO UPDATE SET name = excluded.name, gender = excluded.gender
	`, memberID, name, string(gender))
	return err
}

// markReplied bumps the member's reply counter inside the discharge
// transaction.
func markReplied(tx *sql.Tx, memberID, submissionID string, repliedAt time.Time) error {
	_, err := tx.Exec(`
		UPDATE members
		SET replied_count = replied_count + 1,
		    last_replied_at = ?,
		    last_replied_message_id = ?
		WHERE member_id = ?
	`, repliedAt.UnixMilli(), submissionID, memberID)
	return err
}

func scanMember(scanner rowScanner) (*model.Member, error) {
	var (
		member        model.Member
		gender        string
		lastRepliedAt sql.NullInt64
	)

	err := scanner.Scan(
		&member.ID, &member.Name, &gender,
		&member.RepliedCount, &lastRepliedAt, &member.LastRepliedMessageID,
	)
	if err != nil {
		return nil, err
	}

	member.Gender = model.Gender(gender)
	if lastRepliedAt.Valid {
		t := time.UnixMilli(lastRepliedAt.Int64).UTC()
		member.LastRepliedAt = &t
	}
	return &member, nil
}
