package def

import "github.com/bwmarrin/discordgo"

var RebuildCommand = &discordgo.ApplicationCommand{
	Name:        "rebuild",
	Description: "Пересобрать базу из истории канала (только для админов)",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "limit",
			Description: "Сколько сообщений истории просмотреть (по умолчанию — всю)",
			Required:    false,
		},
	},
}
