package command

import (
	"github.com/bwmarrin/discordgo"

	"github.com/cepbuch/temptok/command/def"
)

// AllCommands contains all of the commands the bot registers.
var AllCommands = []*discordgo.ApplicationCommand{
	def.StartCommand,
	def.StatsCommand,
	def.WatchCommand,
	def.RebuildCommand,
	def.DelReplyCommand,
}

// Descriptions pairs command names with what they do, for the /start
// instruction text.
var Descriptions = [][2]string{
	{"start", "посмотреть инструкцию"},
	{"stats", "посмотреть статистику по тиктокам (есть аргументы \"Имя\" \"DD.MM.YYYY\")"},
	{"watch", "получить самый ранний неотвеченный тикток"},
}
