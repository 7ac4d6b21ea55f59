package db

import (
	"context"
	"testing"
	"time"

	"github.com/cepbuch/temptok/model"
)

func TestSentStatsBinaryGotReply(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, "stats-sent.db")

	seedMember(t, ctx, store, "alice", "Алиса", model.GenderFeminine)
	seedMember(t, ctx, store, "bob", "Боб", model.GenderMasculine)
	seedMember(t, ctx, store, "vera", "Вера", model.GenderFeminine)

	sentAt := testCutoff.Add(time.Hour)
	seedSubmission(t, ctx, store, "m1", "alice", "v1", sentAt)
	seedSubmission(t, ctx, store, "m2", "alice", "v2", sentAt.Add(time.Hour))

	// Two replies on the same submission still mean one answered
	// submission.
	seedReply(t, ctx, store, "m1", "bob", "r1", "ок", sentAt.Add(2*time.Hour), 0)
	seedReply(t, ctx, store, "m1", "vera", "r2", "лол", sentAt.Add(3*time.Hour), 0)

	stats, err := store.SentStats(ctx, nil)
	if err != nil {
		t.Fatalf("sent stats: %v", err)
	}

	alice := stats["alice"]
	if alice.SentCount != 2 {
		t.Fatalf("expected sent_count 2, got %d", alice.SentCount)
	}
	if alice.GotReplyCount != 1 {
		t.Fatalf("expected got_reply_count 1 (binary per submission), got %d", alice.GotReplyCount)
	}
}

func TestOutcomeReplyStatsLatencyAndLaugh(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, "stats-outcome.db")

	seedMember(t, ctx, store, "alice", "Алиса", model.GenderFeminine)
	seedMember(t, ctx, store, "bob", "Боб", model.GenderMasculine)

	sentAt := testCutoff.Add(time.Hour)
	seedSubmission(t, ctx, store, "m1", "alice", "v1", sentAt)
	seedReply(t, ctx, store, "m1", "bob", "r1", "ахаха", sentAt.Add(90*time.Second), 2)

	stats, err := store.OutcomeReplyStats(ctx, nil)
	if err != nil {
		t.Fatalf("outcome stats: %v", err)
	}

	bob := stats["bob"]
	if bob.RepliedCount != 1 {
		t.Fatalf("expected replied_count 1, got %d", bob.RepliedCount)
	}
	if bob.AvgLatencyMS != 90000 {
		t.Fatalf("expected avg latency 90000ms, got %v", bob.AvgLatencyMS)
	}
	if bob.AvgLaughScore != 2 {
		t.Fatalf("expected avg laugh score 2, got %v", bob.AvgLaughScore)
	}

	if _, ok := stats["alice"]; ok {
		t.Fatalf("alice gave no replies, expected no outcome entry")
	}
}

func TestIncomeReplyStatsGroupedBySender(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, "stats-income.db")

	seedMember(t, ctx, store, "alice", "Алиса", model.GenderFeminine)
	seedMember(t, ctx, store, "bob", "Боб", model.GenderMasculine)
	seedMember(t, ctx, store, "vera", "Вера", model.GenderFeminine)

	sentAt := testCutoff.Add(time.Hour)
	seedSubmission(t, ctx, store, "m1", "alice", "v1", sentAt)
	seedReply(t, ctx, store, "m1", "bob", "r1", "ах", sentAt.Add(time.Minute), 1)
	seedReply(t, ctx, store, "m1", "vera", "r2", "АХ", sentAt.Add(3*time.Minute), 2)

	stats, err := store.IncomeReplyStats(ctx, nil)
	if err != nil {
		t.Fatalf("income stats: %v", err)
	}

	alice := stats["alice"]
	if alice.AvgLatencyMS != 120000 {
		t.Fatalf("expected avg income latency 120000ms, got %v", alice.AvgLatencyMS)
	}
	if alice.AvgLaughScore != 1.5 {
		t.Fatalf("expected avg income laugh score 1.5, got %v", alice.AvgLaughScore)
	}

	if _, ok := stats["bob"]; ok {
		t.Fatalf("nobody replied to bob, expected no income entry")
	}
}

func TestStatsStartDateFiltersReplies(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, "stats-start-date.db")

	seedMember(t, ctx, store, "alice", "Алиса", model.GenderFeminine)
	seedMember(t, ctx, store, "bob", "Боб", model.GenderMasculine)

	seedSubmission(t, ctx, store, "m1", "alice", "v1", testCutoff.Add(1*time.Hour))
	seedSubmission(t, ctx, store, "m2", "alice", "v2", testCutoff.Add(48*time.Hour))
	seedReply(t, ctx, store, "m1", "bob", "r1", "ок", testCutoff.Add(2*time.Hour), 0)
	seedReply(t, ctx, store, "m2", "bob", "r2", "лол", testCutoff.Add(49*time.Hour), 0)

	since := testCutoff.Add(24 * time.Hour)

	sent, err := store.SentStats(ctx, &since)
	if err != nil {
		t.Fatalf("sent stats: %v", err)
	}
	if sent["alice"].SentCount != 1 {
		t.Fatalf("expected 1 submission in period, got %d", sent["alice"].SentCount)
	}

	outcome, err := store.OutcomeReplyStats(ctx, &since)
	if err != nil {
		t.Fatalf("outcome stats: %v", err)
	}
	if outcome["bob"].RepliedCount != 1 {
		t.Fatalf("expected 1 reply in period, got %d", outcome["bob"].RepliedCount)
	}
}

func TestTopReactions(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, "stats-reactions.db")

	seedMember(t, ctx, store, "alice", "Алиса", model.GenderFeminine)
	seedMember(t, ctx, store, "bob", "Боб", model.GenderMasculine)

	sentAt := testCutoff.Add(time.Hour)
	seedSubmission(t, ctx, store, "m1", "alice", "v1", sentAt)
	seedSubmission(t, ctx, store, "m2", "alice", "v2", sentAt.Add(time.Hour))
	seedSubmission(t, ctx, store, "m3", "alice", "v3", sentAt.Add(2*time.Hour))

	seedReply(t, ctx, store, "m1", "bob", "r1", "ок", sentAt.Add(3*time.Hour), 0)
	seedReply(t, ctx, store, "m2", "bob", "r2", "ок", sentAt.Add(4*time.Hour), 0)
	seedReply(t, ctx, store, "m3", "bob", "r3", "лол", sentAt.Add(5*time.Hour), 0)

	reactions, err := store.TopReactions(ctx, "bob", nil)
	if err != nil {
		t.Fatalf("top reactions: %v", err)
	}

	if len(reactions) != 2 {
		t.Fatalf("expected 2 distinct reactions, got %d", len(reactions))
	}
	if reactions[0].Text != "ок" || reactions[0].Frequency != 2 {
		t.Fatalf("expected ок(2) first, got %+v", reactions[0])
	}
	if reactions[1].Text != "лол" || reactions[1].Frequency != 1 {
		t.Fatalf("expected лол(1) second, got %+v", reactions[1])
	}
}

func TestTopReactionsExcludesOwnSubmissions(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, "stats-reactions-own.db")

	seedMember(t, ctx, store, "alice", "Алиса", model.GenderFeminine)
	seedMember(t, ctx, store, "bob", "Боб", model.GenderMasculine)

	sentAt := testCutoff.Add(time.Hour)
	seedSubmission(t, ctx, store, "m1", "bob", "v1", sentAt)
	seedReply(t, ctx, store, "m1", "alice", "r1", "ок", sentAt.Add(time.Minute), 0)

	// Alice's reaction counts for alice, not for bob.
	reactions, err := store.TopReactions(ctx, "bob", nil)
	if err != nil {
		t.Fatalf("top reactions: %v", err)
	}
	if len(reactions) != 0 {
		t.Fatalf("expected no reactions for bob, got %+v", reactions)
	}
}
