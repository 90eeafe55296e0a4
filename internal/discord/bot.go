package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"embed-manager/internal/config"
	"embed-manager/internal/core"
	"embed-manager/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Bot is the Discord bot runtime: session lifecycle, command registration
// and interaction dispatch.
type Bot struct {
	dg      *discordgo.Session
	storage *storage.Storage
	cfg     *config.Config
}

func NewBot(cfg *config.Config, storage *storage.Storage) *Bot {
	return &Bot{cfg: cfg, storage: storage}
}

// Run opens the gateway session and blocks until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if !b.cfg.InitSlashCommands {
		log.Println("[INFO] Registering slash commands skipped")
	} else {
		for _, g := range r.Guilds {
			if err := b.registerCommands(context.Background(), g.ID); err != nil {
				log.Printf("[ERR] Error registering slash commands for guild %s: %v", g.ID, err)
			}
		}
	}
	log.Printf("[INFO] ✅ Discord bot %v is running.", r.User.Username)
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Bot added to guild: %s (%s)", g.Guild.ID, g.Guild.Name)
	if err := b.registerCommands(context.Background(), g.Guild.ID); err != nil {
		log.Printf("[ERR] Failed to register commands for guild %s: %v", g.Guild.ID, err)
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		cmdName := i.ApplicationCommandData().Name
		cmd, ok := core.GetCommand(cmdName)
		if !ok {
			log.Printf("[WARN] Unknown command: %s", cmdName)
			return
		}
		ctx := &core.SlashInteractionContext{
			Session: s,
			Event:   i,
			Storage: b.storage,
			Config:  b.cfg,
		}
		if err := cmd.Run(ctx); err != nil {
			log.Println("[ERR] Error running slash command:", err)
			_ = core.RespondEphemeral(s, i, fmt.Sprintf("Error running command: %v", err))
		}

	case discordgo.InteractionMessageComponent:
		cmd := matchByCustomID(i.MessageComponentData().CustomID)
		if cmd == nil {
			log.Printf("[WARN] No matching command for component customID: %s", i.MessageComponentData().CustomID)
			return
		}
		handler, ok := cmd.(core.ComponentInteractionHandler)
		if !ok {
			log.Printf("[WARN] Command %s does not handle components", cmd.Name())
			return
		}
		ctx := &core.ComponentInteractionContext{
			Session: s,
			Event:   i,
			Storage: b.storage,
			Config:  b.cfg,
		}
		if err := handler.Component(ctx); err != nil {
			log.Printf("[ERR] Error running component handler %s: %v", cmd.Name(), err)
		}

	case discordgo.InteractionModalSubmit:
		cmd := matchByCustomID(i.ModalSubmitData().CustomID)
		if cmd == nil {
			log.Printf("[WARN] No matching command for modal customID: %s", i.ModalSubmitData().CustomID)
			return
		}
		handler, ok := cmd.(core.ModalInteractionHandler)
		if !ok {
			log.Printf("[WARN] Command %s does not handle modals", cmd.Name())
			return
		}
		ctx := &core.ModalInteractionContext{
			Session: s,
			Event:   i,
			Storage: b.storage,
			Config:  b.cfg,
		}
		if err := handler.Modal(ctx); err != nil {
			log.Printf("[ERR] Error running modal handler %s: %v", cmd.Name(), err)
		}
	}
}

// matchByCustomID resolves the owning command of a component or modal
// interaction; customIDs are namespaced as "<command>:...".
func matchByCustomID(customID string) core.Command {
	for _, cmd := range core.AllCommands() {
		if strings.HasPrefix(customID, cmd.Name()+":") {
			return cmd
		}
	}
	return nil
}
