package core

import (
	"embed-manager/internal/config"
	"embed-manager/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Group() string
	Category() string
	UserPermissions() []int64
	BotPermissions() []int64
	Run(ctx interface{}) error
}

// Providers - how this command should be registered with Discord
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Contexts - what runtime hands you when executing a command
// Slash command
type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
	Config  *config.Config
}

// Button press or select on a message component
type ComponentInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
	Config  *config.Config
}

// Modal form submission
type ModalInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
	Config  *config.Config
}

// Hooks for interactions beyond Run
type ComponentInteractionHandler interface {
	Component(*ComponentInteractionContext) error
}

type ModalInteractionHandler interface {
	Modal(*ModalInteractionContext) error
}
