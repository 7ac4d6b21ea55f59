// Package format renders tracker results as Russian chat messages. The
// tracker itself never produces text; everything user-facing, including
// gender and numeral agreement, happens here.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/cepbuch/temptok/model"
)

// femSuffix is the past-tense verb ending for feminine members
// ("отправил" vs "отправила").
func femSuffix(g model.Gender) string {
	if g == model.GenderFeminine {
		return "а"
	}
	return ""
}

// TiktokWord agrees "тикток" with a count: 1 тикток, 2 тиктока,
// 5 тиктоков.
func TiktokWord(n int) string {
	n = n % 100
	if n >= 11 && n <= 14 {
		return "тиктоков"
	}
	switch n % 10 {
	case 1:
		return "тикток"
	case 2, 3, 4:
		return "тиктока"
	default:
		return "тиктоков"
	}
}

// Summary renders the group-wide stats block, one section per member in
// roster order.
func Summary(
	members []*model.Member,
	sent map[string]model.SentStat,
	outcome map[string]model.OutcomeStat,
	income map[string]model.IncomeStat,
) string {
	var b strings.Builder

	for _, member := range members {
		fem := femSuffix(member.Gender)
		memberSent, hasSent := sent[member.ID]
		memberOutcome, hasOutcome := outcome[member.ID]
		memberIncome, hasIncome := income[member.ID]

		fmt.Fprintf(&b, "**%s**\n", member.Name)

		if hasSent && memberSent.SentCount > 0 {
			gotPercent := int(math.Round(float64(memberSent.GotReplyCount) / float64(memberSent.SentCount) * 100))
			fmt.Fprintf(&b,
				"Отправил%s `%d` %s и получил%s ответ на `%d` из них (%d%%). ",
				fem, memberSent.SentCount, TiktokWord(memberSent.SentCount),
				fem, memberSent.GotReplyCount, gotPercent,
			)

			if hasIncome {
				fmt.Fprintf(&b,
					"AVG получает ответ за %s, AVG длина получаемого ахаха — %.1f",
					Duration(memberIncome.AvgLatencyMS), memberIncome.AvgLaughScore,
				)
			}
		} else {
			fmt.Fprintf(&b, "Не отправлял%s тиктоков за период :(", fem)
		}

		b.WriteString("\n\n")

		othersSent := 0
		for memberID, stat := range sent {
			if memberID != member.ID {
				othersSent += stat.SentCount
			}
		}

		if othersSent > 0 {
			fmt.Fprintf(&b,
				"Ответил%s на `%d` из `%d` тиктоков, которые получил%s. ",
				fem, memberOutcome.RepliedCount, othersSent, fem,
			)

			if hasOutcome {
				fmt.Fprintf(&b,
					"AVG отвечает за %s, AVG длина ахаха в ответе — %.1f",
					Duration(memberOutcome.AvgLatencyMS), memberOutcome.AvgLaughScore,
				)
			}
		} else {
			pronoun := "ему"
			if member.Gender == model.GenderFeminine {
				pronoun = "ей"
			}
			fmt.Fprintf(&b, "А отвечать %s некому — нет тиктоков", pronoun)
		}

		b.WriteString("\n\n")
	}

	return b.String()
}

// Personal renders a member's most frequent reactions.
func Personal(member *model.Member, reactions []model.Reaction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Самые частые реакции %s:\n", member.Name)

	if len(reactions) == 0 {
		b.WriteString("Нет реакций за период")
		return b.String()
	}

	for i, reaction := range reactions {
		fmt.Fprintf(&b, "%d. %s (%d)\n", i+1, reaction.Text, reaction.Frequency)
	}

	return b.String()
}

// Reminder is the nag sent when a member shares a new video while still
// owing replies to older ones.
func Reminder(member *model.Member) string {
	return fmt.Sprintf(
		"%s, kind reminder о том, что у тебя есть неотвеченные тиктоки, но "+
			"ты присылаешь новые. Ведь те тиктоки ценнее, чем в ленте: за тебя их уже отобрали "+
			"и возможно очень сильно ждут твоей реакции.\n\n"+
			"Вот самый ранний неотвеченный, пожалуйста, начни с него и просмотри внимательно все что после:",
		member.Name,
	)
}

// LifetimeMilestone congratulates a round lifetime submission count.
func LifetimeMilestone(member *model.Member, count int) string {
	return fmt.Sprintf(
		"🥂 %s, а у тебя юбилей! За все время ты отправил%s уже %d %s, продолжай в том же духе!",
		member.Name, femSuffix(member.Gender), count, TiktokWord(count),
	)
}

// DailyMilestone celebrates an unusually productive day.
func DailyMilestone(member *model.Member, count int) string {
	return fmt.Sprintf(
		"👍 Вау, вот это контент! За сегодня %s послал%s уже %d %s. Предлагаю не останавливаться!",
		member.Name, femSuffix(member.Gender), count, TiktokWord(count),
	)
}

// Duplicate tells the group the video has been shared before.
func Duplicate(member *model.Member, originalSender string) string {
	return fmt.Sprintf(
		"🔁 %s, этот тикток уже присылал(а) %s — баян! Отвечать на него никто не обязан.",
		member.Name, originalSender,
	)
}

// AllWatched praises a member with an empty obligation queue.
func AllWatched(member *model.Member) string {
	return fmt.Sprintf(
		"Ты молодец, ты все просмотрел%s! "+
			"Можно с чистой совестью идти смотреть новые тиктоки и скидывать друзьям 😊",
		femSuffix(member.Gender),
	)
}

// UnknownMember is the reply to a participant missing from the roster.
func UnknownMember() string {
	return "А мы точно знакомы? Кажется я тебя не знаю..."
}

// Start is the instruction message for /start.
func Start(commands [][2]string) string {
	var lines []string
	for _, command := range commands {
		lines = append(lines, fmt.Sprintf("/%s — %s", command[0], command[1]))
	}

	return "Привет!\n\n" +
		"Я буду помогать соблюдать некоторые правила temptok'ского клуба. " +
		"Какие конкретно правила — станет ясно в момент их нарушения.\n\n" +
		"Единственное, чтобы я лишний раз на тебя не наговаривал, отвечай, пожалуйста, на " +
		"все тиктоки через реплаи, а не просто сообщением.\n\n" +
		"Что еще:\n\n" + strings.Join(lines, "\n\n")
}
