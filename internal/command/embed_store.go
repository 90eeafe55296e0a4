package command

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"embed-manager/internal/core"
	"embed-manager/internal/embed"
	"embed-manager/internal/storage"

	"github.com/bwmarrin/discordgo"
	disembed "github.com/clinet/discordgo-embed"
)

// storeDraft persists a named embed for the guild and confirms it.
func storeDraft(slash *core.SlashInteractionContext, name string, d *embed.Draft) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.RespondEphemeral(slash.Session, slash.Event, "The embed name cannot be empty.")
	}
	userID := slash.Event.Member.User.ID
	if err := slash.Storage.PutEmbed(slash.Event.GuildID, name, userID, d); err != nil {
		return fmt.Errorf("store embed %q: %w", name, err)
	}
	return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf(
		"Embed stored under the name `%s`. Post it with `/embed post name:%s`.", name, name))
}

func (c *EmbedCommand) runStoreJSON(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	d, _, err := embed.DecodeJSON(stringOption(m, "data"))
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	return storeDraft(slash, stringOption(m, "name"), d)
}

func (c *EmbedCommand) runStoreSimple(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	d, err := simpleDraft(m, slash.Config.ThemeColor)
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	return storeDraft(slash, stringOption(m, "name"), d)
}

func (c *EmbedCommand) runStoreFromFile(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	data, err := attachmentOption(slash.Event.ApplicationCommandData(), m, "file")
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	d, _, err := embed.DecodeJSON(data)
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	return storeDraft(slash, stringOption(m, "name"), d)
}

func (c *EmbedCommand) runStoreFromMessage(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	me, _, err := fetchMessageEmbed(slash.Session, stringOption(m, "message"), slash.Event.ChannelID, intOption(m, "index", 0))
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	return storeDraft(slash, stringOption(m, "name"), embed.FromMessageEmbed(me))
}

func (c *EmbedCommand) runStoreRemove(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	name := stringOption(m, "name")
	err := slash.Storage.DeleteEmbed(slash.Event.GuildID, name)
	if errors.Is(err, storage.ErrNotFound) {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("There is no stored embed named `%s`.", name))
	}
	if err != nil {
		return fmt.Errorf("delete embed %q: %w", name, err)
	}
	return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Embed `%s` is now deleted.", name))
}

func (c *EmbedCommand) runStoreDownload(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	name := stringOption(m, "name")
	se, err := slash.Storage.GetEmbed(slash.Event.GuildID, name)
	if errors.Is(err, storage.ErrNotFound) {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("There is no stored embed named `%s`.", name))
	}
	if err != nil {
		return fmt.Errorf("get embed %q: %w", name, err)
	}
	data, err := embed.EncodeJSON(se.Embed)
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Failed to encode the embed: %v", err))
	}
	return core.RespondFile(slash.Session, slash.Event, &discordgo.File{
		Name:        name + ".json",
		ContentType: "application/json",
		Reader:      bytes.NewReader(data),
	})
}

func (c *EmbedCommand) runStoreList(slash *core.SlashInteractionContext) error {
	names, err := slash.Storage.ListEmbeds(slash.Event.GuildID)
	if err != nil {
		return fmt.Errorf("list embeds: %w", err)
	}
	if len(names) == 0 {
		return core.RespondEphemeral(slash.Session, slash.Event, "There are no stored embeds.")
	}

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("%d. `%s`", i+1, name)
	}
	msg := disembed.NewEmbed().
		SetColor(slash.Config.ThemeColor).
		SetTitle("Stored Embeds").
		SetDescription(strings.Join(lines, "\n"))
	return core.RespondEmbedEphemeral(slash.Session, slash.Event, msg.MessageEmbed)
}

func (c *EmbedCommand) runPost(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	name := stringOption(m, "name")
	se, err := slash.Storage.GetEmbed(slash.Event.GuildID, name)
	if errors.Is(err, storage.ErrNotFound) {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("There is no stored embed named `%s`.", name))
	}
	if err != nil {
		return fmt.Errorf("get embed %q: %w", name, err)
	}

	if err := postDraft(slash, se.Embed, "", channelOption(m, "channel", slash.Event)); err != nil {
		return err
	}
	if _, err := slash.Storage.IncrementUses(slash.Event.GuildID, name); err != nil {
		return fmt.Errorf("bump uses of %q: %w", name, err)
	}
	return nil
}

func (c *EmbedCommand) runInfo(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	name := stringOption(m, "name")
	se, err := slash.Storage.GetEmbed(slash.Event.GuildID, name)
	if errors.Is(err, storage.ErrNotFound) {
		return core.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("There is no stored embed named `%s`.", name))
	}
	if err != nil {
		return fmt.Errorf("get embed %q: %w", name, err)
	}

	msg := disembed.NewEmbed().
		SetColor(slash.Config.ThemeColor).
		SetTitle(fmt.Sprintf("`%s` Info", se.Name)).
		AddField("Owner", fmt.Sprintf("<@%s>", se.OwnerID)).
		AddField("Length", fmt.Sprintf("%d", se.Embed.Length())).
		AddField("Uses", fmt.Sprintf("%d", se.Uses))
	return core.RespondEmbedEphemeral(slash.Session, slash.Event, msg.MessageEmbed)
}
