package command

import (
	"fmt"
	"strings"
	"time"

	"embed-manager/internal/core"
	"embed-manager/internal/version"

	"github.com/bwmarrin/discordgo"
	disembed "github.com/clinet/discordgo-embed"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string             { return "about" }
func (c *AboutCommand) Description() string      { return "Discover the origin of this bot" }
func (c *AboutCommand) Aliases() []string        { return []string{} }
func (c *AboutCommand) Group() string            { return "core" }
func (c *AboutCommand) Category() string         { return "🕯️ Information" }
func (c *AboutCommand) UserPermissions() []int64 { return nil }
func (c *AboutCommand) BotPermissions() []int64  { return nil }

func (c *AboutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *AboutCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	buildDate := "unknown"
	if version.BuildDate != "" {
		if t, err := time.Parse(time.RFC3339, version.BuildDate); err == nil {
			buildDate = t.Format("2006-01-02")
		}
	}
	goVer := strings.TrimPrefix(version.GoVersion, "go")

	msg := disembed.NewEmbed().
		SetColor(slash.Config.ThemeColor).
		SetDescription(fmt.Sprintf("ℹ️ **About %s**\n\n%s", version.AppName, version.AppDescription)).
		AddField("Release", fmt.Sprintf("%s (Go %s)", buildDate, goVer))

	return core.RespondEmbedEphemeral(slash.Session, slash.Event, msg.MessageEmbed)
}

func init() {
	core.RegisterCommand(core.ApplyMiddlewares(
		&AboutCommand{},
		core.WithCommandLogger(),
	))
}
