package command

import (
	"fmt"

	"embed-manager/internal/core"

	"github.com/bwmarrin/discordgo"
)

type PingCommand struct{}

func (c *PingCommand) Name() string             { return "ping" }
func (c *PingCommand) Description() string      { return "Check if the bot is alive" }
func (c *PingCommand) Aliases() []string        { return []string{} }
func (c *PingCommand) Group() string            { return "core" }
func (c *PingCommand) Category() string         { return "🕯️ Information" }
func (c *PingCommand) UserPermissions() []int64 { return nil }
func (c *PingCommand) BotPermissions() []int64  { return nil }

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *PingCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}
	latency := slash.Session.HeartbeatLatency().Milliseconds()
	return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Pong! `%dms`", latency))
}

func init() {
	core.RegisterCommand(&PingCommand{})
}
