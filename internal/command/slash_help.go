package command

import (
	"fmt"
	"sort"
	"strings"

	"embed-manager/internal/core"

	"github.com/bwmarrin/discordgo"
	disembed "github.com/clinet/discordgo-embed"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string             { return "help" }
func (c *HelpCommand) Description() string      { return "List available commands" }
func (c *HelpCommand) Aliases() []string        { return []string{} }
func (c *HelpCommand) Group() string            { return "core" }
func (c *HelpCommand) Category() string         { return "🕯️ Information" }
func (c *HelpCommand) UserPermissions() []int64 { return nil }
func (c *HelpCommand) BotPermissions() []int64  { return nil }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	byCategory := map[string][]string{}
	for _, cmd := range core.AllCommands() {
		byCategory[cmd.Category()] = append(byCategory[cmd.Category()], fmt.Sprintf("`/%s` — %s", cmd.Name(), cmd.Description()))
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	msg := disembed.NewEmbed().
		SetColor(slash.Config.ThemeColor).
		SetTitle("Commands")
	for _, cat := range categories {
		lines := byCategory[cat]
		sort.Strings(lines)
		msg = msg.AddField(cat, strings.Join(lines, "\n"))
	}

	return core.RespondEmbedEphemeral(slash.Session, slash.Event, msg.MessageEmbed)
}

func init() {
	core.RegisterCommand(&HelpCommand{})
}
