package main

import (
	"context"
	"log"

	"github.com/cepbuch/temptok/bot"
	"github.com/cepbuch/temptok/config"
	"github.com/cepbuch/temptok/db"
	"github.com/cepbuch/temptok/handler/club"
	"github.com/cepbuch/temptok/model"
	"github.com/cepbuch/temptok/tiktok"
	"github.com/cepbuch/temptok/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	store, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer store.Close()

	// The roster is loaded before any events are handled; the tracker
	// never registers members on its own.
	ctx := context.Background()
	for _, m := range cfg.Members {
		if err := store.UpsertMember(ctx, m.ID, m.Name, model.Gender(m.Gender)); err != nil {
			log.Fatalf("Error loading roster member %s: %v", m.ID, err)
		}
	}

	resolver := tiktok.NewResolver(cfg.Resolver.Timeout, cfg.Resolver.CacheTTL)
	trk := tracker.New(store, resolver.ContentID, cfg.Cutoff)
	handlers := club.New(cfg, store, trk)

	if err := bot.Run(cfg, handlers); err != nil {
		log.Fatalf("Bot stopped: %v", err)
	}
}
