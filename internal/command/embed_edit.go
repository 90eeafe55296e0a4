package command

import (
	"fmt"

	"embed-manager/internal/core"
	"embed-manager/internal/embed"

	"github.com/bwmarrin/discordgo"
)

// fetchBotMessage resolves a reference to a message sent by the bot itself.
func fetchBotMessage(s *discordgo.Session, ref, fallbackChannelID string) (*discordgo.Message, error) {
	channelID, messageID, err := resolveMessageRef(ref, fallbackChannelID)
	if err != nil {
		return nil, err
	}
	msg, err := s.ChannelMessage(channelID, messageID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch that message: %w", err)
	}
	if err := requireBotMessage(s, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// replaceEmbed swaps the embed on one of the bot's messages.
func replaceEmbed(slash *core.SlashInteractionContext, msg *discordgo.Message, d *embed.Draft) error {
	me := d.MessageEmbed()
	_, err := slash.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: msg.ChannelID,
		ID:      msg.ID,
		Embeds:  &[]*discordgo.MessageEmbed{me},
	})
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Failed to edit the message: %v", err))
	}
	return core.RespondEphemeral(slash.Session, slash.Event, "✅ Embed updated.")
}

func (c *EmbedCommand) runEditJSON(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	msg, err := fetchBotMessage(slash.Session, stringOption(m, "message"), slash.Event.ChannelID)
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	d, _, err := embed.DecodeJSON(stringOption(m, "data"))
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	return replaceEmbed(slash, msg, d)
}

func (c *EmbedCommand) runEditFromFile(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	msg, err := fetchBotMessage(slash.Session, stringOption(m, "message"), slash.Event.ChannelID)
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	data, err := attachmentOption(slash.Event.ApplicationCommandData(), m, "file")
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	d, _, err := embed.DecodeJSON(data)
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	return replaceEmbed(slash, msg, d)
}

func (c *EmbedCommand) runEditFromMessage(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	me, _, err := fetchMessageEmbed(slash.Session, stringOption(m, "source"), slash.Event.ChannelID, intOption(m, "index", 0))
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	msg, err := fetchBotMessage(slash.Session, stringOption(m, "target"), slash.Event.ChannelID)
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	return replaceEmbed(slash, msg, embed.FromMessageEmbed(me))
}
