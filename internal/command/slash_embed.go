package command

import (
	"fmt"

	"embed-manager/internal/core"

	"github.com/bwmarrin/discordgo"
)

// EmbedCommand is the /embed command tree: interactive builder, JSON and
// message based posting/editing, and the stored-embed surface.
type EmbedCommand struct{}

func (c *EmbedCommand) Name() string        { return "embed" }
func (c *EmbedCommand) Description() string { return "Create, edit, store and share rich embeds" }
func (c *EmbedCommand) Aliases() []string   { return []string{} }
func (c *EmbedCommand) Group() string       { return "embed" }
func (c *EmbedCommand) Category() string    { return "🛠️ Moderation" }
func (c *EmbedCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageMessages}
}
func (c *EmbedCommand) BotPermissions() []int64 {
	return []int64{discordgo.PermissionSendMessages, discordgo.PermissionEmbedLinks}
}

func (c *EmbedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	manageMessages := int64(discordgo.PermissionManageMessages)

	nameOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "name",
		Description: "Name of the stored embed",
		Required:    true,
	}
	messageOpt := func(name, desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        name,
			Description: desc,
			Required:    true,
		}
	}
	indexOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "index",
		Description: "Which embed of the message, if it has several (0-based)",
	}
	channelOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionChannel,
		Name:        "channel",
		Description: "Channel to post to (defaults to here)",
		ChannelTypes: []discordgo.ChannelType{
			discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews,
		},
	}
	dataOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "data",
		Description: "Embed JSON (see /embed example)",
		Required:    true,
	}
	fileOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionAttachment,
		Name:        "file",
		Description: "A .json or .txt file with embed JSON",
		Required:    true,
	}
	colorOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "color",
		Description: "Hex color like #ff8800, or a color name",
	}

	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		Type:                     discordgo.ChatApplicationCommand,
		DefaultMemberPermissions: &manageMessages,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "build",
				Description: "Build an embed interactively with buttons and forms",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "simple",
				Description: "Post a simple embed",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "title",
						Description: "Embed title",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "description",
						Description: "Embed description",
						Required:    true,
					},
					channelOpt,
					colorOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "json",
				Description: "Post an embed from JSON",
				Options:     []*discordgo.ApplicationCommandOption{dataOpt},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "fromfile",
				Description: "Post an embed from a JSON file",
				Options:     []*discordgo.ApplicationCommandOption{fileOpt},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "frommessage",
				Description: "Repost an embed copied from a message",
				Options: []*discordgo.ApplicationCommandOption{
					messageOpt("message", "Message ID, link, or channelID-messageID"),
					indexOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "download",
				Description: "Download a message's embed as a JSON file",
				Options: []*discordgo.ApplicationCommandOption{
					messageOpt("message", "Message ID, link, or channelID-messageID"),
					indexOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "example",
				Description: "Show the accepted embed JSON shape",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "post",
				Description: "Post a stored embed",
				Options: []*discordgo.ApplicationCommandOption{
					nameOpt,
					channelOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "info",
				Description: "Show owner, length and uses of a stored embed",
				Options:     []*discordgo.ApplicationCommandOption{nameOpt},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "edit",
				Description: "Edit an embed on one of my messages",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "panel",
						Description: "Edit interactively, seeded from the current embed",
						Options: []*discordgo.ApplicationCommandOption{
							messageOpt("message", "Message ID, link, or channelID-messageID of my message"),
							indexOpt,
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "json",
						Description: "Replace the embed with one built from JSON",
						Options: []*discordgo.ApplicationCommandOption{
							messageOpt("message", "Message ID, link, or channelID-messageID of my message"),
							dataOpt,
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "fromfile",
						Description: "Replace the embed with one from a JSON file",
						Options: []*discordgo.ApplicationCommandOption{
							messageOpt("message", "Message ID, link, or channelID-messageID of my message"),
							fileOpt,
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "frommessage",
						Description: "Replace the embed with another message's embed",
						Options: []*discordgo.ApplicationCommandOption{
							messageOpt("source", "Message to copy the embed from"),
							messageOpt("target", "My message to edit"),
							indexOpt,
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "store",
				Description: "Store embeds for later use",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "add",
						Description: "Store an embed from JSON",
						Options:     []*discordgo.ApplicationCommandOption{nameOpt, dataOpt},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "simple",
						Description: "Store a simple embed",
						Options: []*discordgo.ApplicationCommandOption{
							nameOpt,
							{
								Type:        discordgo.ApplicationCommandOptionString,
								Name:        "title",
								Description: "Embed title",
								Required:    true,
							},
							{
								Type:        discordgo.ApplicationCommandOptionString,
								Name:        "description",
								Description: "Embed description",
								Required:    true,
							},
							colorOpt,
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "fromfile",
						Description: "Store an embed from a JSON file",
						Options:     []*discordgo.ApplicationCommandOption{nameOpt, fileOpt},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "frommessage",
						Description: "Store an embed copied from a message",
						Options: []*discordgo.ApplicationCommandOption{
							nameOpt,
							messageOpt("message", "Message ID, link, or channelID-messageID"),
							indexOpt,
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "remove",
						Description: "Delete a stored embed",
						Options:     []*discordgo.ApplicationCommandOption{nameOpt},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "download",
						Description: "Download a stored embed as a JSON file",
						Options:     []*discordgo.ApplicationCommandOption{nameOpt},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "list",
						Description: "List stored embeds",
					},
				},
			},
		},
	}
}

func (c *EmbedCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	path, opts := subcommandPath(slash.Event.ApplicationCommandData())
	m := optionMap(opts)

	switch path {
	case "build":
		return c.runBuild(slash)
	case "simple":
		return c.runSimple(slash, m)
	case "json":
		return c.runJSON(slash, m)
	case "fromfile":
		return c.runFromFile(slash, m)
	case "frommessage":
		return c.runFromMessage(slash, m)
	case "download":
		return c.runDownload(slash, m)
	case "example":
		return c.runExample(slash)
	case "post":
		return c.runPost(slash, m)
	case "info":
		return c.runInfo(slash, m)
	case "edit panel":
		return c.runEditPanel(slash, m)
	case "edit json":
		return c.runEditJSON(slash, m)
	case "edit fromfile":
		return c.runEditFromFile(slash, m)
	case "edit frommessage":
		return c.runEditFromMessage(slash, m)
	case "store add":
		return c.runStoreJSON(slash, m)
	case "store simple":
		return c.runStoreSimple(slash, m)
	case "store fromfile":
		return c.runStoreFromFile(slash, m)
	case "store frommessage":
		return c.runStoreFromMessage(slash, m)
	case "store remove":
		return c.runStoreRemove(slash, m)
	case "store download":
		return c.runStoreDownload(slash, m)
	case "store list":
		return c.runStoreList(slash)
	default:
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Unknown subcommand `%s`.", path))
	}
}

func init() {
	core.RegisterCommand(core.ApplyMiddlewares(
		&EmbedCommand{},
		core.WithUserPermissionCheck(),
		core.WithGuildOnly(),
		core.WithCommandLogger(),
	))
}
