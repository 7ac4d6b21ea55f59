package db

import (
	"context"
	"time"

	"github.com/cepbuch/temptok/model"
)

// SentStats aggregates per-member submission counts and how many of
// those submissions got at least one reply. since bounds submission time
// inclusively; nil means all-time.
func (s *Store) SentStats(ctx context.Context, since *time.Time) (map[string]model.SentStat, error) {
	query := `
		SELECT s.sender_id,
		       COUNT(1),
		       SUM(CASE WHEN EXISTS (
		           SELECT 1 FROM replies r WHERE r.submission_id = s.message_id
		       ) THEN 1 ELSE 0 END)
		FROM submissions s`
	args := []interface{}{}

	if since != nil {
		query += ` WHERE s.sent_at >= ?`
		args = append(args, since.UnixMilli())
	}
	query += ` GROUP BY s.sender_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]model.SentStat)
	for rows.Next() {
		var (
			memberID string
			stat     model.SentStat
		)
		if err := rows.Scan(&memberID, &stat.SentCount, &stat.GotReplyCount); err != nil {
			return nil, err
		}
		stats[memberID] = stat
	}

	return stats, rows.Err()
}

// OutcomeReplyStats aggregates replies grouped by the replier: how many
// obligations each member discharged, their mean latency and mean laugh
// score. Latency below zero is clamped before averaging. since bounds
// reply time inclusively.
func (s *Store) OutcomeReplyStats(ctx context.Context, since *time.Time) (map[string]model.OutcomeStat, error) {
	query := `
		SELECT r.sender_id,
		       COUNT(1),
		       AVG(MAX(r.sent_at - s.sent_at, 0)),
		       AVG(r.laugh_score)
		FROM replies r
		JOIN submissions s ON s.message_id = r.submission_id
		WHERE r.sender_id != s.sender_id`
	args := []interface{}{}

	if since != nil {
		query += ` AND r.sent_at >= ?`
		args = append(args, since.UnixMilli())
	}
	query += ` GROUP BY r.sender_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]model.OutcomeStat)
	for rows.Next() {
		var (
			memberID string
			stat     model.OutcomeStat
		)
		if err := rows.Scan(&memberID, &stat.RepliedCount, &stat.AvgLatencyMS, &stat.AvgLaughScore); err != nil {
			return nil, err
		}
		stats[memberID] = stat
	}

	return stats, rows.Err()
}

// IncomeReplyStats is the same latency/score aggregation as
// OutcomeReplyStats but grouped by the original sender: how fast and how
// warmly others answer this member.
func (s *Store) IncomeReplyStats(ctx context.Context, since *time.Time) (map[string]model.IncomeStat, error) {
	query := `
		SELECT s.sender_id,
		       AVG(MAX(r.sent_at - s.sent_at, 0)),
		       AVG(r.laugh_score)
		FROM replies r
		JOIN submissions s ON s.message_id = r.submission_id
		WHERE r.sender_id != s.sender_id`
	args := []interface{}{}

	if since != nil {
		query += ` AND r.sent_at >= ?`
		args = append(args, since.UnixMilli())
	}
	query += ` GROUP BY s.sender_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]model.IncomeStat)
	for rows.Next() {
		var (
			memberID string
			stat     model.IncomeStat
		)
		if err := rows.Scan(&memberID, &stat.AvgLatencyMS, &stat.AvgLaughScore); err != nil {
			return nil, err
		}
		stats[memberID] = stat
	}

	return stats, rows.Err()
}

// topReactionsLimit caps the ranking a member gets in their personal
// stats.
const topReactionsLimit = 10

// TopReactions ranks the member's reply texts to other members'
// submissions by frequency, most frequent first, oldest first within a
// tie.
func (s *Store) TopReactions(ctx context.Context, memberID string, since *time.Time) ([]model.Reaction, error) {
	query := `
		SELECT r.text, COUNT(1) AS frequency
		FROM replies r
		JOIN submissions s ON s.message_id = r.submission_id
		WHERE r.sender_id = ? AND s.sender_id != ?`
	args := []interface{}{memberID, memberID}

	if since != nil {
		query += ` AND r.sent_at >= ?`
		args = append(args, since.UnixMilli())
	}
	query += `
		GROUP BY r.text
		ORDER BY frequency DESC, MIN(r.sent_at) ASC
		LIMIT ?`
	args = append(args, topReactionsLimit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reactions []model.Reaction
	for rows.Next() {
		var reaction model.Reaction
		if err := rows.Scan(&reaction.Text, &reaction.Frequency); err != nil {
			return nil, err
		}
		reactions = append(reactions, reaction)
	}

	return reactions, rows.Err()
}
