package def

import "github.com/bwmarrin/discordgo"

var DelReplyCommand = &discordgo.ApplicationCommand{
	Name:        "delreply",
	Description: "Удалить один реплай и вернуть обязательство (только для админов)",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "submission",
			Description: "ID сообщения с тиктоком",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reply",
			Description: "ID сообщения-реплая",
			Required:    true,
		},
	},
}
