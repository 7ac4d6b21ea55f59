package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cepbuch/temptok/model"
)

var testCutoff = time.Date(2021, 2, 15, 0, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T, name string) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedMember(t *testing.T, ctx context.Context, store *Store, id, name string, gender model.Gender) {
	t.Helper()
	if err := store.UpsertMember(ctx, id, name, gender); err != nil {
		t.Fatalf("upsert member %s: %v", id, err)
	}
}

func seedSubmission(t *testing.T, ctx context.Context, store *Store, messageID, senderID, contentID string, sentAt time.Time) {
	t.Helper()
	err := store.SaveSubmission(ctx, &model.Submission{
		MessageID: messageID,
		SenderID:  senderID,
		ContentID: contentID,
		SentAt:    sentAt,
		Text:      "https://vm.tiktok.com/" + messageID,
	})
	if err != nil {
		t.Fatalf("save submission %s: %v", messageID, err)
	}
}

func seedReply(t *testing.T, ctx context.Context, store *Store, submissionID, senderID, messageID, text string, sentAt time.Time, laughScore int) {
	t.Helper()
	outcome, err := store.RecordReply(ctx, &model.Reply{
		SubmissionID: submissionID,
		SenderID:     senderID,
		MessageID:    messageID,
		SentAt:       sentAt,
		Text:         text,
		LaughScore:   laughScore,
	})
	if err != nil {
		t.Fatalf("record reply %s: %v", messageID, err)
	}
	if outcome != ReplyDischarged {
		t.Fatalf("expected reply %s to discharge, got %v", messageID, outcome)
	}
}
