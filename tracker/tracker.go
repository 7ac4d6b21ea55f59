// Package tracker is the reply-tracking engine: it records shared
// videos, detects duplicates, discharges reply obligations and answers
// who still owes a reply to what. Chat transport, command parsing and
// message rendering live outside and call in through this package.
package tracker

import (
	"context"
	"log"
	"time"

	"github.com/cepbuch/temptok/db"
	"github.com/cepbuch/temptok/model"
)

// ResolveFunc extracts a deduplication video id from a message text. An
// empty id means the content is unresolvable and is treated as novel.
type ResolveFunc func(ctx context.Context, text string) (string, error)

// Tracker orchestrates the store, the content resolver and the
// obligation rules.
type Tracker struct {
	store   *db.Store
	resolve ResolveFunc
	cutoff  time.Time

	now func() time.Time
}

// New builds a tracker. cutoff is the epoch before which submissions
// carry no obligations.
func New(store *db.Store, resolve ResolveFunc, cutoff time.Time) *Tracker {
	return &Tracker{
		store:   store,
		resolve: resolve,
		cutoff:  cutoff,
		now:     time.Now,
	}
}

// Store exposes the underlying store for reporting queries.
func (t *Tracker) Store() *db.Store {
	return t.store
}

// Cutoff returns the enforcement epoch.
func (t *Tracker) Cutoff() time.Time {
	return t.cutoff
}

// SubmissionReceipt is the result of recording a submission. Original
// is non-nil when the video had been shared before; the new message is
// still persisted for audit but carries no obligations.
type SubmissionReceipt struct {
	Submission *model.Submission
	Original   *model.Submission
}

// RecordSubmission runs the submission workflow: resolve the sender,
// derive the video id, check novelty and persist. Unregistered senders
// are rejected with db.ErrUnknownMember and nothing is written.
func (t *Tracker) RecordSubmission(ctx context.Context, senderID, messageID string, sentAt time.Time, text string) (*SubmissionReceipt, error) {
	if _, err := t.store.MemberByID(ctx, senderID); err != nil {
		return nil, err
	}

	contentID := ""
	if t.resolve != nil {
		id, err := t.resolve(ctx, text)
		if err != nil {
			// Unresolvable content is a degraded success: the
			// submission is recorded as novel.
			log.Printf("resolve content id for message %s: %v", messageID, err)
		} else {
			contentID = id
		}
	}

	original, err := t.CheckDuplicate(ctx, contentID, messageID, sentAt)
	if err != nil {
		return nil, err
	}

	sub := &model.Submission{
		MessageID: messageID,
		SenderID:  senderID,
		ContentID: contentID,
		SentAt:    sentAt,
		Text:      text,
	}
	if original != nil {
		sub.DuplicateOf = original.MessageID
	}

	if err := t.store.SaveSubmission(ctx, sub); err != nil {
		return nil, err
	}

	return &SubmissionReceipt{Submission: sub, Original: original}, nil
}

// CheckDuplicate finds the most recent earlier submission of the same
// video, if any. An empty content id never matches: unresolvable
// content cannot be deduplicated. Only submissions sent strictly before
// sentAt count, and the message being recorded is skipped, so a
// redelivered event is never demoted to a duplicate of itself or of a
// later copy.
func (t *Tracker) CheckDuplicate(ctx context.Context, contentID, messageID string, sentAt time.Time) (*model.Submission, error) {
	if contentID == "" {
		return nil, nil
	}

	prior, err := t.store.FindByContentID(ctx, contentID, "")
	if err != nil {
		return nil, err
	}

	for _, sub := range prior {
		if sub.MessageID == messageID || !sub.SentAt.Before(sentAt) {
			continue
		}
		return sub, nil
	}
	return nil, nil
}

// RecordReply runs the discharge workflow. Self-replies, second replies
// and replies to unknown targets are reported as ignored outcomes, not
// errors; only an unregistered sender or a store failure is an error.
func (t *Tracker) RecordReply(ctx context.Context, senderID, targetMessageID, messageID string, sentAt time.Time, text string) (db.ReplyOutcome, error) {
	if _, err := t.store.MemberByID(ctx, senderID); err != nil {
		return 0, err
	}

	reply := &model.Reply{
		SubmissionID: targetMessageID,
		SenderID:     senderID,
		MessageID:    messageID,
		SentAt:       sentAt,
		Text:         text,
		LaughScore:   LaughScore(text),
	}
	return t.store.RecordReply(ctx, reply)
}

// Outstanding lists the member's unanswered submissions, oldest first.
// notOlderThan > 0 skips submissions fresher than that, so callers can
// avoid nagging about items nobody is expected to have answered yet.
func (t *Tracker) Outstanding(ctx context.Context, memberID string, notOlderThan time.Duration) ([]*model.Submission, error) {
	var maxSentAt *time.Time
	if notOlderThan > 0 {
		limit := t.now().Add(-notOlderThan)
		maxSentAt = &limit
	}
	return t.store.Outstanding(ctx, memberID, t.cutoff, maxSentAt)
}

// EarliestOutstanding returns the member's oldest unanswered submission,
// or nil when they are all caught up.
func (t *Tracker) EarliestOutstanding(ctx context.Context, memberID string) (*model.Submission, error) {
	outstanding, err := t.Outstanding(ctx, memberID, 0)
	if err != nil {
		return nil, err
	}
	if len(outstanding) == 0 {
		return nil, nil
	}
	return outstanding[0], nil
}

// CountOutstanding counts the member's unanswered submissions.
func (t *Tracker) CountOutstanding(ctx context.Context, memberID string) (int, error) {
	return t.store.CountOutstanding(ctx, memberID, t.cutoff)
}
