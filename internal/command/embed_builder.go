package command

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"embed-manager/internal/builder"
	"embed-manager/internal/core"
	"embed-manager/internal/embed"

	"github.com/bwmarrin/discordgo"
)

// sessions tracks live builder panels across the process, keyed by panel
// message ID.
var sessions = builder.NewManager()

// editTargets remembers, per panel, which bot message an editing session
// updates on save.
var (
	editTargets    = map[string]editTarget{}
	editTargetsMux sync.Mutex
)

type editTarget struct {
	ChannelID string
	MessageID string
}

func setEditTarget(panelID string, t editTarget) {
	editTargetsMux.Lock()
	editTargets[panelID] = t
	editTargetsMux.Unlock()
}

func takeEditTarget(panelID string) (editTarget, bool) {
	editTargetsMux.Lock()
	defer editTargetsMux.Unlock()
	t, ok := editTargets[panelID]
	return t, ok
}

func clearEditTarget(panelID string) {
	editTargetsMux.Lock()
	delete(editTargets, panelID)
	editTargetsMux.Unlock()
}

func (c *EmbedCommand) runBuild(slash *core.SlashInteractionContext) error {
	return c.openPanel(slash, embed.NewDraft(), nil)
}

func (c *EmbedCommand) runEditPanel(slash *core.SlashInteractionContext, m map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	me, msg, err := fetchMessageEmbed(slash.Session, stringOption(m, "message"), slash.Event.ChannelID, intOption(m, "index", 0))
	if err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	if err := requireBotMessage(slash.Session, msg); err != nil {
		return core.RespondEphemeral(slash.Session, slash.Event, err.Error())
	}
	return c.openPanel(slash, embed.FromMessageEmbed(me), &editTarget{ChannelID: msg.ChannelID, MessageID: msg.ID})
}

// openPanel posts a builder panel and binds a session to it. When target is
// set the session edits that message on save instead of posting a new one.
func (c *EmbedCommand) openPanel(slash *core.SlashInteractionContext, draft *embed.Draft, target *editTarget) error {
	notifier := &panelNotifier{
		dg:      slash.Session,
		theme:   slash.Config.ThemeColor,
		timeout: slash.Config.BuilderTimeout,
	}
	sess := builder.NewSession(slash.Event.Member.User.ID, draft, target != nil, slash.Config.BuilderTimeout, notifier)

	panelEmbed, comps := renderPanel(sess.Panel(), slash.Config.ThemeColor, slash.Config.BuilderTimeout)
	err := slash.Session.InteractionRespond(slash.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{panelEmbed},
			Components: comps,
		},
	})
	if err != nil {
		return fmt.Errorf("send builder panel: %w", err)
	}

	msg, err := slash.Session.InteractionResponse(slash.Event.Interaction)
	if err != nil {
		return fmt.Errorf("fetch builder panel message: %w", err)
	}

	if target != nil {
		setEditTarget(msg.ID, *target)
	}
	sessions.Bind(msg.ChannelID, msg.ID, sess)
	return nil
}

// Component handles the panel buttons.
func (c *EmbedCommand) Component(ctx *core.ComponentInteractionContext) error {
	s, i := ctx.Session, ctx.Event
	parts := strings.Split(i.MessageComponentData().CustomID, ":")
	if len(parts) < 2 || i.Message == nil {
		return nil
	}

	sess, ok := sessions.Get(i.Message.ID)
	if !ok {
		// Late press on a dead panel: inert by design.
		return core.AckUpdate(s, i)
	}
	userID := i.Member.User.ID

	switch parts[1] {
	case "cat":
		if len(parts) < 3 {
			return nil
		}
		cat, ok := builder.ParseCategory(parts[2])
		if !ok {
			return nil
		}
		form, err := sess.Select(userID, cat)
		if err != nil {
			return respondSessionError(s, i, sess, err)
		}
		return s.InteractionRespond(i.Interaction, modalFromForm(form, i.Message.ID))

	case "save":
		// Capture the edit target first: the terminal notification inside
		// Save clears it.
		target, hasTarget := takeEditTarget(i.Message.ID)
		final, err := sess.Save(userID)
		if err != nil {
			return respondSessionError(s, i, sess, err)
		}
		if hasTarget {
			me := final.MessageEmbed()
			_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
				Channel: target.ChannelID,
				ID:      target.MessageID,
				Embeds:  &[]*discordgo.MessageEmbed{me},
			})
			if err != nil {
				return core.RespondEphemeral(s, i, fmt.Sprintf("Failed to edit the message: %v", err))
			}
			return core.RespondEphemeral(s, i, "✅ Embed updated.")
		}
		return core.RespondEmbed(s, i, final.MessageEmbed())

	case "cancel":
		if err := sess.Cancel(userID); err != nil {
			return respondSessionError(s, i, sess, err)
		}
		return core.AckUpdate(s, i)
	}
	return nil
}

// Modal handles editor submissions. The customID carries the category, the
// selection sequence and the panel message, since a modal submission does
// not reference the panel directly.
func (c *EmbedCommand) Modal(ctx *core.ModalInteractionContext) error {
	s, i := ctx.Session, ctx.Event
	data := i.ModalSubmitData()

	// embed:modal:<category>:<seq>:<panelMessageID>
	parts := strings.Split(data.CustomID, ":")
	if len(parts) != 5 || parts[1] != "modal" {
		return nil
	}
	cat, ok := builder.ParseCategory(parts[2])
	if !ok {
		return nil
	}
	seq, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil
	}

	sess, ok := sessions.Get(parts[4])
	if !ok {
		return core.RespondEphemeral(s, i, "This builder session has ended.")
	}

	err = sess.Submit(i.Member.User.ID, cat, seq, modalValues(data))
	if err != nil {
		var verr *embed.ValidationError
		if errors.As(err, &verr) {
			return core.RespondEphemeral(s, i, fmt.Sprintf("❌ %s — the draft was left unchanged.", verr))
		}
		return respondSessionError(s, i, sess, err)
	}
	return core.AckUpdate(s, i)
}

// respondSessionError maps state machine errors onto interaction responses.
// Terminal sessions swallow the event; everything else surfaces ephemerally
// to the acting user only.
func respondSessionError(s *discordgo.Session, i *discordgo.InteractionCreate, sess *builder.Session, err error) error {
	switch {
	case errors.Is(err, builder.ErrFinished):
		return core.AckUpdate(s, i)
	case errors.Is(err, builder.ErrNotOwner):
		return core.RespondEphemeral(s, i, fmt.Sprintf("Only <@%s> can use this panel.", sess.OwnerID()))
	default:
		return core.RespondEphemeral(s, i, err.Error())
	}
}

func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	out := map[string]string{}
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range ar.Components {
			if ti, ok := comp.(*discordgo.TextInput); ok {
				out[ti.CustomID] = ti.Value
			}
		}
	}
	return out
}

func modalFromForm(f *builder.Form, panelMessageID string) *discordgo.InteractionResponse {
	rows := make([]discordgo.MessageComponent, 0, len(f.Inputs))
	for _, in := range f.Inputs {
		style := discordgo.TextInputShort
		if in.Style == builder.InputParagraph {
			style = discordgo.TextInputParagraph
		}
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    in.Key,
					Label:       in.Label,
					Style:       style,
					Value:       in.Value,
					Placeholder: in.Placeholder,
					Required:    in.Required,
					MaxLength:   in.MaxLength,
				},
			},
		})
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   fmt.Sprintf("embed:modal:%s:%d:%s", f.Category, f.Seq, panelMessageID),
			Title:      f.Title,
			Components: rows,
		},
	}
}

// panelNotifier renders session panels back onto the Discord message.
type panelNotifier struct {
	dg      *discordgo.Session
	theme   int
	timeout time.Duration
}

func (n *panelNotifier) PanelChanged(p *builder.Panel) {
	panelEmbed, comps := renderPanel(p, n.theme, n.timeout)
	_, err := n.dg.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    p.ChannelID,
		ID:         p.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{panelEmbed},
		Components: &comps,
	})
	if err != nil {
		log.Println("[ERR] Failed to update builder panel:", err)
	}
}

func (n *panelNotifier) Finished(p *builder.Panel, final builder.State) {
	panelEmbed, comps := renderPanel(p, n.theme, n.timeout)
	_, err := n.dg.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    p.ChannelID,
		ID:         p.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{panelEmbed},
		Components: &comps,
	})
	if err != nil {
		log.Println("[ERR] Failed to disable builder panel:", err)
	}
	sessions.Remove(p.MessageID)
	clearEditTarget(p.MessageID)
}

// renderPanel turns the pure panel data into the Discord message parts.
func renderPanel(p *builder.Panel, theme int, timeout time.Duration) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	title := "Embed Builder Panel"
	if p.Editing {
		title = "Embed Editor"
	}

	me := &discordgo.MessageEmbed{
		Title:       title,
		Description: "Select a category to edit the embed, then press **Save** to finish.",
		Color:       theme,
	}
	for _, row := range p.Summary {
		me.Fields = append(me.Fields, &discordgo.MessageEmbedField{
			Name:   row.Name,
			Value:  row.Value,
			Inline: true,
		})
	}

	switch p.State {
	case builder.StateSaved:
		me.Footer = &discordgo.MessageEmbedFooter{Text: "Saved."}
	case builder.StateCancelled:
		me.Footer = &discordgo.MessageEmbedFooter{Text: "Cancelled — no embed produced."}
	case builder.StateTimedOut:
		me.Footer = &discordgo.MessageEmbedFooter{Text: "Timed out due to inactivity."}
	default:
		me.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Owner only. The panel times out after %s of inactivity. %d/%d characters used.",
				timeout, p.Length, embed.MaxTotal),
		}
	}

	disabled := p.State.Terminal()
	cats := builder.Categories()

	var row1, row2 []discordgo.MessageComponent
	for _, cat := range cats[:5] {
		row1 = append(row1, discordgo.Button{
			Label:    cat.Label(),
			Style:    discordgo.SecondaryButton,
			CustomID: "embed:cat:" + cat.String(),
			Disabled: disabled,
		})
	}
	for _, cat := range cats[5:] {
		row2 = append(row2, discordgo.Button{
			Label:    cat.Label(),
			Style:    discordgo.SecondaryButton,
			CustomID: "embed:cat:" + cat.String(),
			Disabled: disabled,
		})
	}
	row3 := []discordgo.MessageComponent{
		discordgo.Button{Label: "Save", Style: discordgo.SuccessButton, CustomID: "embed:save", Disabled: disabled},
		discordgo.Button{Label: "Cancel", Style: discordgo.DangerButton, CustomID: "embed:cancel", Disabled: disabled},
	}

	return me, []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: row1},
		discordgo.ActionsRow{Components: row2},
		discordgo.ActionsRow{Components: row3},
	}
}
