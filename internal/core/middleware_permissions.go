package core

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var permissionNames = map[int64]string{
	discordgo.PermissionAdministrator:  "Administrator",
	discordgo.PermissionManageGuild:    "Manage Server",
	discordgo.PermissionManageMessages: "Manage Messages",
	discordgo.PermissionManageChannels: "Manage Channels",
	discordgo.PermissionSendMessages:   "Send Messages",
	discordgo.PermissionEmbedLinks:     "Embed Links",
	discordgo.PermissionAttachFiles:    "Attach Files",
}

func permissionName(p int64) string {
	if name := permissionNames[p]; name != "" {
		return name
	}
	return fmt.Sprintf("0x%x", p)
}

// WithUserPermissionCheck gates a command on the invoking member holding at
// least one of the command's UserPermissions. Commands with an empty list
// are open; administrators always pass.
func WithUserPermissionCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				v, ok := ctx.(*SlashInteractionContext)
				if !ok {
					return cmd.Run(ctx)
				}

				m := v.Event.Member
				if v.Event.GuildID == "" || m == nil {
					return cmd.Run(ctx)
				}

				required := cmd.UserPermissions()
				if len(required) == 0 {
					return cmd.Run(ctx)
				}

				memberPerms, err := v.Session.UserChannelPermissions(m.User.ID, v.Event.ChannelID)
				if err != nil {
					return fmt.Errorf("failed to get user permissions: %w", err)
				}
				if memberPerms&discordgo.PermissionAdministrator != 0 {
					return cmd.Run(ctx)
				}

				for _, p := range required {
					if memberPerms&p != 0 {
						return cmd.Run(ctx)
					}
				}

				names := make([]string, len(required))
				for i, p := range required {
					names[i] = permissionName(p)
				}
				return RespondEphemeral(v.Session, v.Event, fmt.Sprintf(
					"You need at least one of the following permissions to run this command:\n`%s`",
					strings.Join(names, "`, `"),
				))
			},
		}
	}
}
