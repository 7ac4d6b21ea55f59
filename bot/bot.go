// Package bot owns the Discord session: event wiring, slash command
// registration and shutdown.
package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/cepbuch/temptok/command"
	"github.com/cepbuch/temptok/config"
	"github.com/cepbuch/temptok/handler"
	"github.com/cepbuch/temptok/handler/club"
)

// Run opens the session and blocks until SIGINT/SIGTERM.
func Run(cfg *config.Config, handlers *club.Handlers) error {
	handlers.RegisterHandlers()

	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	registerEventHandlers(dg, handlers)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("open connection: %w", err)
	}
	defer dg.Close()

	for _, cmd := range command.AllCommands {
		if _, err := dg.ApplicationCommandCreate(dg.State.User.ID, "", cmd); err != nil {
			return fmt.Errorf("create %q command: %w", cmd.Name, err)
		}
	}

	log.Printf("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return nil
}

func registerEventHandlers(s *discordgo.Session, handlers *club.Handlers) {
	s.AddHandler(handler.OnInteractionCreate)
	s.AddHandler(handlers.MessageCreate)

	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent
}
