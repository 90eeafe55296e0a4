package command

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const maxAttachmentSize = 1 << 20 // 1 MiB is plenty for embed JSON

var httpClient = &http.Client{Timeout: 10 * time.Second}

// subcommandPath resolves the invoked subcommand (or "group sub") and its
// leaf options.
func subcommandPath(data discordgo.ApplicationCommandInteractionData) (string, []*discordgo.ApplicationCommandInteractionDataOption) {
	if len(data.Options) == 0 {
		return "", nil
	}
	top := data.Options[0]
	if top.Type == discordgo.ApplicationCommandOptionSubCommandGroup && len(top.Options) > 0 {
		sub := top.Options[0]
		return top.Name + " " + sub.Name, sub.Options
	}
	return top.Name, top.Options
}

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func stringOption(m map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if o, ok := m[name]; ok {
		return o.StringValue()
	}
	return ""
}

func intOption(m map[string]*discordgo.ApplicationCommandInteractionDataOption, name string, fallback int) int {
	if o, ok := m[name]; ok {
		return int(o.IntValue())
	}
	return fallback
}

// channelOption returns the chosen channel ID, or the invoking channel when
// the option was omitted.
func channelOption(m map[string]*discordgo.ApplicationCommandInteractionDataOption, name string, i *discordgo.InteractionCreate) string {
	if o, ok := m[name]; ok {
		if v, ok := o.Value.(string); ok && v != "" {
			return v
		}
	}
	return i.ChannelID
}

// resolveMessageRef accepts a message ID, a message link, or
// "channelID-messageID" and resolves it to a channel/message pair. A bare ID
// refers to the invoking channel.
func resolveMessageRef(ref, fallbackChannelID string) (channelID, messageID string, err error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", fmt.Errorf("empty message reference")
	}

	if idx := strings.Index(ref, "/channels/"); idx >= 0 {
		parts := strings.Split(strings.Trim(ref[idx+len("/channels/"):], "/"), "/")
		if len(parts) != 3 {
			return "", "", fmt.Errorf("%q is not a valid message link", ref)
		}
		return parts[1], parts[2], nil
	}

	if before, after, found := strings.Cut(ref, "-"); found {
		if before == "" || after == "" {
			return "", "", fmt.Errorf("%q is not a valid channelID-messageID reference", ref)
		}
		return before, after, nil
	}

	return fallbackChannelID, ref, nil
}

// fetchMessageEmbed fetches a message and returns its index-th rich embed.
// The index is clamped into range the way the original tool did.
func fetchMessageEmbed(s *discordgo.Session, ref, fallbackChannelID string, index int) (*discordgo.MessageEmbed, *discordgo.Message, error) {
	channelID, messageID, err := resolveMessageRef(ref, fallbackChannelID)
	if err != nil {
		return nil, nil, err
	}
	msg, err := s.ChannelMessage(channelID, messageID)
	if err != nil {
		return nil, nil, fmt.Errorf("could not fetch that message: %w", err)
	}
	if len(msg.Embeds) == 0 {
		return nil, nil, fmt.Errorf("that message has no embeds")
	}
	if index < 0 {
		index = 0
	}
	if index >= len(msg.Embeds) {
		index = len(msg.Embeds) - 1
	}
	me := msg.Embeds[index]
	if me.Type != "" && me.Type != discordgo.EmbedTypeRich {
		return nil, nil, fmt.Errorf("that is not a rich embed")
	}
	return me, msg, nil
}

// requireBotMessage ensures a message was authored by the bot itself before
// it is edited.
func requireBotMessage(s *discordgo.Session, msg *discordgo.Message) error {
	if s.State.User == nil || msg.Author == nil || msg.Author.ID != s.State.User.ID {
		return fmt.Errorf("that message was not sent by me, I can only edit my own embeds")
	}
	return nil
}

// attachmentOption resolves an attachment option and downloads its contents,
// enforcing the accepted file types.
func attachmentOption(data discordgo.ApplicationCommandInteractionData, m map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) (string, error) {
	o, ok := m[name]
	if !ok {
		return "", fmt.Errorf("attach an embed file to use this command")
	}
	id, _ := o.Value.(string)
	if data.Resolved == nil {
		return "", fmt.Errorf("attachment missing from interaction data")
	}
	att, ok := data.Resolved.Attachments[id]
	if !ok {
		return "", fmt.Errorf("attachment missing from interaction data")
	}
	if !strings.HasSuffix(att.Filename, ".json") && !strings.HasSuffix(att.Filename, ".txt") {
		return "", fmt.Errorf("invalid file type, the file name must end with `.json` or `.txt`")
	}
	if att.Size > maxAttachmentSize {
		return "", fmt.Errorf("file too large, the limit is %d bytes", maxAttachmentSize)
	}

	resp, err := httpClient.Get(att.URL)
	if err != nil {
		return "", fmt.Errorf("failed to download the file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download the file: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAttachmentSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read the file: %w", err)
	}
	if len(body) > maxAttachmentSize {
		return "", fmt.Errorf("file too large, the limit is %d bytes", maxAttachmentSize)
	}
	return string(body), nil
}
