package discord

import (
	"context"
	"fmt"
	"log"

	"embed-manager/internal/core"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// Discord allows bursts of command writes but throttles sustained ones;
// pace registration well under the documented limits.
var registerLimiter = rate.NewLimiter(rate.Limit(20), 5)

// registerCommands reconciles a guild's slash commands with the registry:
// obsolete ones are deleted, wanted ones are upserted.
func (b *Bot) registerCommands(ctx context.Context, guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return fmt.Errorf("fetch self: %w", err)
		}
		appID = user.ID
	}

	wanted := make(map[string]*discordgo.ApplicationCommand)
	for _, cmd := range core.AllCommands() {
		if def := normalizeDefinition(cmd); def != nil {
			wanted[def.Name] = def
		}
	}

	existing, err := b.dg.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("list commands: %w", err)
	}
	for _, old := range existing {
		if _, ok := wanted[old.Name]; ok {
			continue
		}
		if err := registerLimiter.Wait(ctx); err != nil {
			return err
		}
		log.Printf("[INFO] [%s] Deleting obsolete command: %s", guildID, old.Name)
		if err := b.dg.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
			log.Printf("[ERR] [%s] Failed to delete %s: %v", guildID, old.Name, err)
		}
	}

	for _, def := range wanted {
		if err := registerLimiter.Wait(ctx); err != nil {
			return err
		}
		if _, err := b.dg.ApplicationCommandCreate(appID, guildID, def); err != nil {
			log.Printf("[ERR] [%s] Can't create command %s: %v", guildID, def.Name, err)
		}
	}
	return nil
}

// normalizeDefinition fills defaults on a command's slash definition.
func normalizeDefinition(cmd core.Command) *discordgo.ApplicationCommand {
	slash, ok := cmd.(core.SlashProvider)
	if !ok {
		return nil
	}
	def := slash.SlashDefinition()
	if def == nil {
		return nil
	}
	if def.Type == 0 {
		def.Type = discordgo.ChatApplicationCommand
	}
	return def
}
