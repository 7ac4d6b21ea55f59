package def

import "github.com/bwmarrin/discordgo"

var StatsCommand = &discordgo.ApplicationCommand{
	Name:        "stats",
	Description: "Посмотреть статистику по тиктокам",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "member",
			Description: "Имя участника (по умолчанию — общая сводка)",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "date",
			Description: "Считать с даты DD.MM.YYYY (по умолчанию — за все время)",
			Required:    false,
		},
	},
}
