package def

import "github.com/bwmarrin/discordgo"

var WatchCommand = &discordgo.ApplicationCommand{
	Name:        "watch",
	Description: "Получить самый ранний неотвеченный тикток",
}
