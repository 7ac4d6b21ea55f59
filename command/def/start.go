package def

import "github.com/bwmarrin/discordgo"

var StartCommand = &discordgo.ApplicationCommand{
	Name:        "start",
	Description: "Посмотреть инструкцию",
}
