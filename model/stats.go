package model

// SentStat is a member's submission-side totals. GotReplyCount counts
// submissions that received at least one reply, not the replies
// themselves.
type SentStat struct {
	SentCount     int
	GotReplyCount int
}

// OutcomeStat describes how a member answers others: how many replies
// they gave, how long they take on average and how hard they laugh.
// Latency is in milliseconds.
type OutcomeStat struct {
	RepliedCount  int
	AvgLatencyMS  float64
	AvgLaughScore float64
}

// IncomeStat describes how others answer a member's submissions.
// Latency is in milliseconds.
type IncomeStat struct {
	AvgLatencyMS  float64
	AvgLaughScore float64
}

// Reaction is one entry of a member's most frequent reply texts.
type Reaction struct {
	Text      string
	Frequency int
}
