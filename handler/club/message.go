package club

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/cepbuch/temptok/db"
	"github.com/cepbuch/temptok/format"
	"github.com/cepbuch/temptok/model"
	"github.com/cepbuch/temptok/tiktok"
)

// MessageCreate routes club channel messages: link-bearing ones become
// submissions, replies go through the discharge flow, everything else
// is ignored.
func (h *Handlers) MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.ChannelID != h.cfg.Club.ChannelID {
		return
	}

	ctx := context.Background()

	switch {
	case tiktok.ContainsLink(m.Content):
		h.handleSubmission(ctx, s, m)
	case m.MessageReference != nil && m.MessageReference.MessageID != "":
		h.handleReply(ctx, s, m)
	}
}

func (h *Handlers) handleSubmission(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	receipt, err := h.tracker.RecordSubmission(ctx, m.Author.ID, m.ID, m.Timestamp, m.Content)
	if err != nil {
		if errors.Is(err, db.ErrUnknownMember) {
			h.sendReply(s, m, format.UnknownMember())
			return
		}
		log.Printf("Error recording submission %s: %v", m.ID, err)
		return
	}

	member, err := h.store.MemberByID(ctx, m.Author.ID)
	if err != nil {
		log.Printf("Error loading member %s: %v", m.Author.ID, err)
		return
	}

	if receipt.Original != nil {
		originalSender := receipt.Original.SenderID
		if orig, err := h.store.MemberByID(ctx, receipt.Original.SenderID); err == nil {
			originalSender = orig.Name
		}
		h.sendReply(s, m, format.Duplicate(member, originalSender))
	}

	// Nag only about items old enough that a reply is overdue.
	outstanding, err := h.tracker.Outstanding(ctx, m.Author.ID, h.cfg.Club.ReminderGrace)
	if err != nil {
		log.Printf("Error querying outstanding for %s: %v", m.Author.ID, err)
		return
	}
	if len(outstanding) > 0 {
		h.sendReply(s, m, format.Reminder(member))
		h.send(s, m.ChannelID, messageLink(m.GuildID, m.ChannelID, outstanding[0].MessageID))
	}

	h.announceMilestones(ctx, s, m, member)
}

func (h *Handlers) announceMilestones(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, member *model.Member) {
	lifetime, err := h.store.CountSent(ctx, m.Author.ID, nil)
	if err != nil {
		log.Printf("Error counting submissions for %s: %v", m.Author.ID, err)
		return
	}
	if lifetime > 0 && lifetime%h.cfg.Club.MilestoneLifetime == 0 {
		h.send(s, m.ChannelID, format.LifetimeMilestone(member, lifetime))
	}

	sent := m.Timestamp.UTC()
	dayStart := time.Date(sent.Year(), sent.Month(), sent.Day(), 0, 0, 0, 0, time.UTC)
	daily, err := h.store.CountSent(ctx, m.Author.ID, &dayStart)
	if err != nil {
		log.Printf("Error counting today's submissions for %s: %v", m.Author.ID, err)
		return
	}
	if daily > 0 && daily%h.cfg.Club.MilestoneDaily == 0 {
		h.send(s, m.ChannelID, format.DailyMilestone(member, daily))
	}
}

func (h *Handlers) handleReply(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	outcome, err := h.tracker.RecordReply(ctx, m.Author.ID, m.MessageReference.MessageID, m.ID, m.Timestamp, m.Content)
	if err != nil {
		if errors.Is(err, db.ErrUnknownMember) {
			h.sendReply(s, m, format.UnknownMember())
			return
		}
		log.Printf("Error recording reply %s: %v", m.ID, err)
		return
	}

	if outcome != db.ReplyDischarged {
		// Replies to pre-tracker messages, self-replies and repeat
		// replies are all fine to stay silent about.
		log.Printf("Reply %s by %s ignored: %s", m.ID, m.Author.ID, outcome)
	}
}

func (h *Handlers) sendReply(s *discordgo.Session, m *discordgo.MessageCreate, content string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		log.Printf("Error sending reply in %s: %v", m.ChannelID, err)
	}
}

func (h *Handlers) send(s *discordgo.Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("Error sending message in %s: %v", channelID, err)
	}
}

// messageLink builds the jump link used to "forward" the earliest
// outstanding submission back into the channel.
func messageLink(guildID, channelID, messageID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, messageID)
}
