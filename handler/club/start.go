package club

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/cepbuch/temptok/command"
	"github.com/cepbuch/temptok/format"
)

// StartCommandHandler handles /start with the club instructions.
func (h *Handlers) StartCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if _, ok := h.knownMember(context.Background(), s, i); !ok {
		return
	}
	respond(s, i, format.Start(command.Descriptions))
}
