package club

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/cepbuch/temptok/format"
)

// WatchCommandHandler handles /watch: points the member at their oldest
// unanswered submission, or praises them when the queue is empty.
func (h *Handlers) WatchCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, ok := h.knownMember(ctx, s, i)
	if !ok {
		return
	}

	earliest, err := h.tracker.EarliestOutstanding(ctx, userID)
	if err != nil {
		log.Printf("Error querying earliest outstanding for %s: %v", userID, err)
		respondEphemeral(s, i, crashedText)
		return
	}

	if earliest == nil {
		member, err := h.store.MemberByID(ctx, userID)
		if err != nil {
			log.Printf("Error loading member %s: %v", userID, err)
			respondEphemeral(s, i, crashedText)
			return
		}
		respond(s, i, format.AllWatched(member))
		return
	}

	respond(s, i, "Here you go!\n"+messageLink(i.GuildID, h.cfg.Club.ChannelID, earliest.MessageID))
}
