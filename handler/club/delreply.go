package club

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"
)

// DelReplyCommandHandler handles /delreply: removes a single reply by
// its message id, which re-opens that member's obligation toward the
// submission. Admin only.
func (h *Handlers) DelReplyCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID := interactionUserID(i)
	if !h.cfg.IsAdmin(userID) {
		respondEphemeral(s, i, "Эта команда только для админов")
		return
	}

	var submissionID, replyID string
	for _, option := range i.ApplicationCommandData().Options {
		switch option.Name {
		case "submission":
			submissionID = option.StringValue()
		case "reply":
			replyID = option.StringValue()
		}
	}

	deleted, err := h.store.DeleteReply(ctx, submissionID, replyID)
	if err != nil {
		log.Printf("Error deleting reply %s of %s: %v", replyID, submissionID, err)
		respondEphemeral(s, i, crashedText)
		return
	}

	if !deleted {
		respondEphemeral(s, i, "Такого реплая не нашлось")
		return
	}
	respondEphemeral(s, i, "Удалил, обязательство снова в силе")
}
