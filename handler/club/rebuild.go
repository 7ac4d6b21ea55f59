package club

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/cepbuch/temptok/db"
	"github.com/cepbuch/temptok/tiktok"
)

const historyPageSize = 100

// RebuildCommandHandler handles /rebuild: walks the club channel
// history oldest-first and re-feeds every link message and reply
// through the tracker. The submission upsert makes re-runs safe. Admin
// only.
func (h *Handlers) RebuildCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)
	if !h.cfg.IsAdmin(userID) {
		respondEphemeral(s, i, "Эта команда только для админов")
		return
	}

	var limit int
	for _, option := range i.ApplicationCommandData().Options {
		if option.Name == "limit" {
			limit = int(option.IntValue())
		}
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		log.Printf("Error sending deferred response: %v", err)
		return
	}

	jobID := uuid.New().String()
	log.Printf("Rebuild %s started by %s (limit %d)", jobID, userID, limit)

	go func() {
		submissions, replies, err := h.rebuildFromHistory(context.Background(), s, jobID, limit)

		content := fmt.Sprintf("Готово: %d тиктоков, %d реплаев (job %s)", submissions, replies, jobID)
		if err != nil {
			log.Printf("Rebuild %s failed: %v", jobID, err)
			content = fmt.Sprintf("Пересборка упала после %d тиктоков и %d реплаев: %v", submissions, replies, err)
		}

		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		}); err != nil {
			log.Printf("Error editing rebuild response: %v", err)
		}
	}()
}

func (h *Handlers) rebuildFromHistory(ctx context.Context, s *discordgo.Session, jobID string, limit int) (submissions, replies int, err error) {
	afterID := "0"
	processed := 0

	for {
		pageSize := historyPageSize
		if limit > 0 && limit-processed < pageSize {
			pageSize = limit - processed
		}
		if pageSize <= 0 {
			return submissions, replies, nil
		}

		page, err := s.ChannelMessages(h.cfg.Club.ChannelID, pageSize, "", afterID, "")
		if err != nil {
			return submissions, replies, fmt.Errorf("fetch history after %s: %w", afterID, err)
		}
		if len(page) == 0 {
			return submissions, replies, nil
		}

		// Pages come back newest-first; replay them in arrival order so
		// replies land after the submissions they answer.
		for idx := len(page) - 1; idx >= 0; idx-- {
			m := page[idx]
			if m.Author == nil || m.Author.Bot {
				continue
			}

			switch {
			case tiktok.ContainsLink(m.Content):
				_, err := h.tracker.RecordSubmission(ctx, m.Author.ID, m.ID, m.Timestamp, m.Content)
				if err != nil && !errors.Is(err, db.ErrUnknownMember) {
					return submissions, replies, err
				}
				if err == nil {
					submissions++
				}
			case m.MessageReference != nil && m.MessageReference.MessageID != "":
				_, err := h.tracker.RecordReply(ctx, m.Author.ID, m.MessageReference.MessageID, m.ID, m.Timestamp, m.Content)
				if err != nil && !errors.Is(err, db.ErrUnknownMember) {
					return submissions, replies, err
				}
				if err == nil {
					replies++
				}
			}
		}

		afterID = page[0].ID
		processed += len(page)

		if submissions > 0 && submissions%500 == 0 {
			log.Printf("Rebuild %s: %d submissions, %d replies so far", jobID, submissions, replies)
		}
	}
}
