package model

import "time"

// Gender is the member's grammatical gender. It only affects how the
// presentation layer agrees verbs with the member's name.
type Gender string

const (
	GenderMasculine Gender = "masculine"
	GenderFeminine  Gender = "feminine"
)

// Member is a registered group participant. Members are loaded from the
// roster before any events are handled and are never created implicitly.
type Member struct {
	ID                   string
	Name                 string
	Gender               Gender
	RepliedCount         int
	LastRepliedAt        *time.Time
	LastRepliedMessageID string
}
