package club

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/cepbuch/temptok/db"
	"github.com/cepbuch/temptok/format"
	"github.com/cepbuch/temptok/model"
)

// StatsCommandHandler handles /stats. Without arguments it renders the
// group summary; with a member name it renders that member's personal
// stats. An optional DD.MM.YYYY date bounds the period.
func (h *Handlers) StatsCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if _, ok := h.knownMember(ctx, s, i); !ok {
		return
	}

	var (
		target    *model.Member
		startDate *time.Time
	)

	for _, option := range i.ApplicationCommandData().Options {
		switch option.Name {
		case "member":
			member, err := h.store.MemberByName(ctx, option.StringValue())
			if err != nil {
				if errors.Is(err, db.ErrUnknownMember) {
					respondEphemeral(s, i, format.UnknownMember())
				} else {
					log.Printf("Error finding member %q: %v", option.StringValue(), err)
					respondEphemeral(s, i, crashedText)
				}
				return
			}
			target = member
		case "date":
			parsed, err := time.ParseInLocation("02.01.2006", option.StringValue(), time.UTC)
			if err != nil {
				respondEphemeral(s, i, "Не понимаю дату, жду DD.MM.YYYY")
				return
			}
			startDate = &parsed
		}
	}

	var (
		text string
		err  error
	)
	if target != nil {
		text, err = h.personalStats(ctx, target, startDate)
	} else {
		text, err = h.summaryStats(ctx, startDate)
	}
	if err != nil {
		log.Printf("Error building stats: %v", err)
		respondEphemeral(s, i, crashedText)
		return
	}

	respond(s, i, text)
}

func (h *Handlers) summaryStats(ctx context.Context, startDate *time.Time) (string, error) {
	members, err := h.store.ListMembers(ctx)
	if err != nil {
		return "", err
	}

	sent, err := h.store.SentStats(ctx, startDate)
	if err != nil {
		return "", err
	}
	outcome, err := h.store.OutcomeReplyStats(ctx, startDate)
	if err != nil {
		return "", err
	}
	income, err := h.store.IncomeReplyStats(ctx, startDate)
	if err != nil {
		return "", err
	}

	return format.Summary(members, sent, outcome, income), nil
}

func (h *Handlers) personalStats(ctx context.Context, member *model.Member, startDate *time.Time) (string, error) {
	reactions, err := h.store.TopReactions(ctx, member.ID, startDate)
	if err != nil {
		return "", err
	}
	return format.Personal(member, reactions), nil
}
