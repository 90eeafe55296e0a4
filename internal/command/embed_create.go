package command

import (
	"bytes"
	"fmt"

	"embed-manager/internal/core"
	"embed-manager/internal/embed"

	"github.com/bwmarrin/discordgo"
	disembed "github.com/clinet/discordgo-embed"
)

const jsonExample = `{
    "title": "Server Rules",
    "description": "Be nice to each other.",
    "color": 5793266,
    "url": "https://example.com",
    "timestamp": "2024-01-01T00:00:00Z",
    "author": {"name": "Mod Team", "icon_url": "https://example.com/icon.png"},
    "footer": {"text": "Last updated"},
    "thumbnail": {"url": "https://example.com/thumb.png"},
    "image": {"url": "https://example.com/banner.png"},
    "fields": [
        {"name": "Rule 1", "value": "No spam.", "inline": false}
    ]
}`

// postDraft delivers a finished draft. Posting to the invoking channel
// responds with the embed directly; posting elsewhere sends it there and
// confirms ephemerally.
func postDraft(slash *core.SlashInteractionContext, d *embed.Draft, content, channelID string) error {
	if channelID == slash.Event.ChannelID {
		return slash.Session.InteractionRespond(slash.Event.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
				Embeds:  []*discordgo.MessageEmbed{d.MessageEmbed()},
			},
		})
	}

	_, err := slash.Session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{d.MessageEmbed()},
	})
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Failed to post to <#%s>: %v", channelID, err))
	}
	return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("✅ Posted to <#%s>.", channelID))
}

// simpleDraft assembles the simple-embed form shared by /embed simple and
// /embed store simple.
func simpleDraft(m map[string]*discordgo.ApplicationCommandInteractionDataOption, defaultColor int) (*embed.Draft, error) {
	d := embed.NewDraft()
	d.Title = stringOption(m, "title")
	d.Description = stringOption(m, "description")
	d.Color = defaultColor
	if raw := stringOption(m, "color"); raw != "" {
		c, err := embed.ParseColor(raw)
		if err != nil {
			return nil, err
		}
		d.Color = c
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (c *EmbedCommand) runSimple(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	d, err := simpleDraft(m, slash.Config.ThemeColor)
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	return postDraft(slash, d, "", channelOption(m, "channel", slash.Event))
}

func (c *EmbedCommand) runJSON(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	d, content, err := embed.DecodeJSON(stringOption(m, "data"))
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	return postDraft(slash, d, content, slash.Event.ChannelID)
}

func (c *EmbedCommand) runFromFile(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	data, err := attachmentOption(slash.Event.ApplicationCommandData(), m, "file")
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	d, content, err := embed.DecodeJSON(data)
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	return postDraft(slash, d, content, slash.Event.ChannelID)
}

func (c *EmbedCommand) runFromMessage(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	me, _, err := fetchMessageEmbed(slash.Session, stringOption(m, "message"), slash.Event.ChannelID, intOption(m, "index", 0))
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	return postDraft(slash, embed.FromMessageEmbed(me), "", slash.Event.ChannelID)
}

func (c *EmbedCommand) runDownload(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	me, _, err := fetchMessageEmbed(slash.Session, stringOption(m, "message"), slash.Event.ChannelID, intOption(m, "index", 0))
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	data, err := embed.EncodeJSON(embed.FromMessageEmbed(me))
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Failed to encode the embed: %v", err))
	}
	return core.RespondFile(slash.Session, slash.Event, &discordgo.File{
		Name:        "embed.json",
		ContentType: "application/json",
		Reader:      bytes.NewReader(data),
	})
}

func (c *EmbedCommand) runExample(slash *core.SlashInteractionContext) error {
	msg := disembed.NewEmbed().
		SetColor(slash.Config.ThemeColor).
		SetTitle("JSON Example").
		SetDescription(fmt.Sprintf("```json\n%s\n```\nA wrapper form `{\"content\": \"...\", \"embed\": {...}}` is accepted too.", jsonExample))
	return core.RespondEmbedEphemeral(slash.Session, slash.Event, msg.MessageEmbed)
}
