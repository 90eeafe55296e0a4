package builder

import (
	"fmt"
	"strings"

	"embed-manager/internal/embed"
)

// Panel is the pure-data rendering of a session's current state: a summary
// of the draft plus which category buttons to offer. The platform adapter
// turns it into an actual message. Values show "not set" distinctly from an
// empty string so users can tell what is currently configured.
type Panel struct {
	OwnerID    string
	ChannelID  string
	MessageID  string
	State      State
	Editing    bool
	Summary    []SummaryRow
	Length     int
	FieldCount int
}

type SummaryRow struct {
	Name  string
	Value string
}

const (
	notSet       = "*not set*"
	previewWidth = 60
)

func (s *Session) panelLocked() *Panel {
	d := s.draft
	p := &Panel{
		OwnerID:    s.ownerID,
		ChannelID:  s.channelID,
		MessageID:  s.messageID,
		State:      s.state,
		Editing:    s.editing,
		Length:     d.Length(),
		FieldCount: len(d.Fields),
	}

	p.Summary = []SummaryRow{
		{"Title", preview(d.Title)},
		{"Description", preview(d.Description)},
		{"URL", preview(d.URL)},
		{"Color", previewColor(d.Color)},
		{"Timestamp", preview(d.Timestamp)},
		{"Author", previewAuthor(d.Author)},
		{"Footer", previewFooter(d.Footer)},
		{"Image", preview(d.Image)},
		{"Thumbnail", preview(d.Thumbnail)},
		{"Fields", previewFields(d.Fields)},
	}
	return p
}

func preview(s string) string {
	if s == "" {
		return notSet
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > previewWidth {
		s = s[:previewWidth] + "…"
	}
	return s
}

func previewColor(c int) string {
	if c == embed.NullColor {
		return notSet
	}
	return embed.FormatColor(c)
}

func previewAuthor(a *embed.Author) string {
	if a == nil {
		return notSet
	}
	out := preview(a.Name)
	if a.IconURL != "" {
		out += " (with icon)"
	}
	return out
}

func previewFooter(f *embed.Footer) string {
	if f == nil {
		return notSet
	}
	out := preview(f.Text)
	if f.IconURL != "" {
		out += " (with icon)"
	}
	return out
}

func previewFields(fields []embed.Field) string {
	if len(fields) == 0 {
		return notSet
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = fmt.Sprintf("%d. %s", i+1, preview(f.Name))
	}
	return fmt.Sprintf("%d/%d — %s", len(fields), embed.MaxFields, strings.Join(names, ", "))
}
