package tracker

import "strings"

// LaughScore derives the engagement intensity of a reply text: each
// lowercase "ах" counts once, each uppercase "АХ" counts double. The
// score is computed once at write time and stored with the reply.
func LaughScore(text string) int {
	return strings.Count(text, "ах") + 2*strings.Count(text, "АХ")
}
