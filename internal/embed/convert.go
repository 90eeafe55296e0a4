package embed

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Wire mirrors the Discord embed object JSON shape.
type wireEmbed struct {
	Title       string       `json:"title,omitempty"`
	Type        string       `json:"type,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Color       *int         `json:"color,omitempty"`
	Footer      *wireFooter  `json:"footer,omitempty"`
	Image       *wireURL     `json:"image,omitempty"`
	Thumbnail   *wireURL     `json:"thumbnail,omitempty"`
	Author      *wireAuthor  `json:"author,omitempty"`
	Fields      []wireField  `json:"fields,omitempty"`
}

type wireFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

type wireURL struct {
	URL string `json:"url"`
}

type wireAuthor struct {
	Name    string `json:"name,omitempty"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type wireField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

func (d *Draft) wire() *wireEmbed {
	w := &wireEmbed{
		Title:       d.Title,
		Type:        "rich",
		Description: d.Description,
		URL:         d.URL,
		Timestamp:   d.Timestamp,
	}
	if d.Color != NullColor {
		c := d.Color
		w.Color = &c
	}
	if d.Footer != nil {
		w.Footer = &wireFooter{Text: d.Footer.Text, IconURL: d.Footer.IconURL}
	}
	if d.Image != "" {
		w.Image = &wireURL{URL: d.Image}
	}
	if d.Thumbnail != "" {
		w.Thumbnail = &wireURL{URL: d.Thumbnail}
	}
	if d.Author != nil {
		w.Author = &wireAuthor{Name: d.Author.Name, URL: d.Author.URL, IconURL: d.Author.IconURL}
	}
	for _, f := range d.Fields {
		w.Fields = append(w.Fields, wireField(f))
	}
	return w
}

func fromWire(w *wireEmbed) *Draft {
	d := &Draft{
		Title:       w.Title,
		Description: w.Description,
		URL:         w.URL,
		Timestamp:   w.Timestamp,
		Color:       NullColor,
	}
	if w.Color != nil {
		d.Color = *w.Color
	}
	if w.Footer != nil {
		d.Footer = &Footer{Text: w.Footer.Text, IconURL: w.Footer.IconURL}
	}
	if w.Image != nil {
		d.Image = w.Image.URL
	}
	if w.Thumbnail != nil {
		d.Thumbnail = w.Thumbnail.URL
	}
	if w.Author != nil {
		d.Author = &Author{Name: w.Author.Name, URL: w.Author.URL, IconURL: w.Author.IconURL}
	}
	for _, f := range w.Fields {
		d.Fields = append(d.Fields, Field(f))
	}
	return d
}

func (d *Draft) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.wire())
}

func (d *Draft) UnmarshalJSON(data []byte) error {
	var w wireEmbed
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*d = *fromWire(&w)
	return nil
}

// envelope is the optional wrapper form: {"content": "...", "embed": {...}}.
type envelope struct {
	Content string          `json:"content"`
	Embed   json.RawMessage `json:"embed"`
}

// DecodeJSON parses an embed from its Discord JSON representation. The input
// may be a bare embed object or wrapped as {"embed": {...}} with an optional
// sibling "content" string, which is returned alongside the draft. The
// decoded draft is validated against the size limits.
func DecodeJSON(data string) (*Draft, string, error) {
	data = strings.TrimSpace(data)
	// Tolerate input pasted inside a code block.
	data = strings.TrimSuffix(strings.TrimPrefix(data, "```json"), "```")
	data = strings.TrimSuffix(strings.TrimPrefix(data, "```"), "```")

	var env envelope
	raw := []byte(data)
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, "", fmt.Errorf("invalid JSON: %w", err)
	}
	if env.Embed != nil {
		raw = env.Embed
	}

	d := NewDraft()
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, "", fmt.Errorf("invalid embed JSON: %w", err)
	}
	if d.IsEmpty() {
		return nil, "", fmt.Errorf("embed JSON has no content to render")
	}
	if err := d.Validate(); err != nil {
		return nil, "", err
	}
	return d, env.Content, nil
}

// EncodeJSON renders the draft as indented Discord embed JSON, suitable for
// the download commands.
func EncodeJSON(d *Draft) ([]byte, error) {
	return json.MarshalIndent(d.wire(), "", "    ")
}

// MessageEmbed converts the draft to the discordgo embed it renders as.
func (d *Draft) MessageEmbed() *discordgo.MessageEmbed {
	me := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       d.Title,
		Description: d.Description,
		URL:         d.URL,
		Timestamp:   d.Timestamp,
	}
	if d.Color != NullColor {
		me.Color = d.Color
	}
	if d.Footer != nil {
		me.Footer = &discordgo.MessageEmbedFooter{Text: d.Footer.Text, IconURL: d.Footer.IconURL}
	}
	if d.Image != "" {
		me.Image = &discordgo.MessageEmbedImage{URL: d.Image}
	}
	if d.Thumbnail != "" {
		me.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: d.Thumbnail}
	}
	if d.Author != nil {
		me.Author = &discordgo.MessageEmbedAuthor{Name: d.Author.Name, URL: d.Author.URL, IconURL: d.Author.IconURL}
	}
	for _, f := range d.Fields {
		me.Fields = append(me.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	return me
}

// FromMessageEmbed decomposes a rendered embed back into a draft, the inverse
// of MessageEmbed. Used to seed editing sessions from existing messages.
// A zero color maps to "not set"; discordgo cannot distinguish the two.
func FromMessageEmbed(me *discordgo.MessageEmbed) *Draft {
	d := &Draft{
		Title:       me.Title,
		Description: me.Description,
		URL:         me.URL,
		Timestamp:   me.Timestamp,
		Color:       NullColor,
	}
	if me.Color != 0 {
		d.Color = me.Color
	}
	if me.Footer != nil {
		d.Footer = &Footer{Text: me.Footer.Text, IconURL: me.Footer.IconURL}
	}
	if me.Image != nil {
		d.Image = me.Image.URL
	}
	if me.Thumbnail != nil {
		d.Thumbnail = me.Thumbnail.URL
	}
	if me.Author != nil {
		d.Author = &Author{Name: me.Author.Name, URL: me.Author.URL, IconURL: me.Author.IconURL}
	}
	for _, f := range me.Fields {
		if f == nil {
			continue
		}
		d.Fields = append(d.Fields, Field{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return d
}
