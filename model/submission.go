package model

import "time"

// Submission is a shared video recorded as sent by a member. It is keyed
// by the transport message id. ContentID is the extracted video id, empty
// when resolution failed. DuplicateOf holds the message id of an earlier
// submission of the same video and is empty for novel submissions.
type Submission struct {
	MessageID   string
	SenderID    string
	ContentID   string
	SentAt      time.Time
	Text        string
	DuplicateOf string
	Replies     []Reply
}

// Reply is a member's answer to a submission. At most one reply per
// member per submission is ever stored.
type Reply struct {
	SubmissionID string
	SenderID     string
	MessageID    string
	SentAt       time.Time
	Text         string
	LaughScore   int
}

// HasReplyFrom reports whether the loaded replies contain one from the
// given member.
func (s *Submission) HasReplyFrom(memberID string) bool {
	for _, r := range s.Replies {
		if r.SenderID == memberID {
			return true
		}
	}
	return false
}
