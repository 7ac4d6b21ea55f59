// Package club binds the tracker to the Discord group: link messages
// become submissions, reply messages discharge obligations, and the
// slash commands expose reporting and moderation.
package club

import (
	"context"
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/cepbuch/temptok/config"
	"github.com/cepbuch/temptok/db"
	"github.com/cepbuch/temptok/format"
	"github.com/cepbuch/temptok/tracker"
)

// crashedText is what the group sees when something actually breaks.
const crashedText = "💫 Что-то упало... Сережа, почини"

// Handlers holds the injected dependencies for all event and command
// handlers.
type Handlers struct {
	cfg     *config.Config
	store   *db.Store
	tracker *tracker.Tracker
}

// New wires the handlers to their dependencies.
func New(cfg *config.Config, store *db.Store, trk *tracker.Tracker) *Handlers {
	return &Handlers{cfg: cfg, store: store, tracker: trk}
}

// respond sends the initial interaction response, logging failures.
func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}

// respondEphemeral is respond with visibility limited to the caller.
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}

// interactionUserID extracts the invoking user's id for both guild and
// DM interactions.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// knownMember resolves the invoking user against the roster, answering
// the interaction itself when the user is unregistered or the lookup
// fails.
func (h *Handlers) knownMember(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) (string, bool) {
	userID := interactionUserID(i)
	if _, err := h.store.MemberByID(ctx, userID); err != nil {
		if errors.Is(err, db.ErrUnknownMember) {
			respondEphemeral(s, i, format.UnknownMember())
		} else {
			log.Printf("Error resolving member %s: %v", userID, err)
			respondEphemeral(s, i, crashedText)
		}
		return "", false
	}
	return userID, true
}
