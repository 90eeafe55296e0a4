// Package embed holds the draft model for embeds under construction and
// enforces Discord's size limits on them.
package embed

import "fmt"

// Limits Discord imposes on rich embeds. Submissions exceeding any of these
// are rejected, never truncated.
const (
	MaxTitle       = 256
	MaxDescription = 4096
	MaxFieldName   = 256
	MaxFieldValue  = 1024
	MaxFooterText  = 2048
	MaxAuthorName  = 256
	MaxFields      = 25
	MaxTotal       = 6000
)

// NullColor marks a draft with no color set. Zero is a valid color (black),
// so the sentinel has to live outside the 24-bit range.
const NullColor = -1

type Author struct {
	Name    string
	URL     string
	IconURL string
}

type Footer struct {
	Text    string
	IconURL string
}

type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Draft is an embed under construction. Empty strings mean "not set" for
// scalar attributes; nil means "not set" for substructures.
type Draft struct {
	Title       string
	Description string
	URL         string
	Color       int
	Timestamp   string // RFC3339
	Author      *Author
	Footer      *Footer
	Image       string
	Thumbnail   string
	Fields      []Field
}

func NewDraft() *Draft {
	return &Draft{Color: NullColor}
}

// ValidationError reports user-submitted data violating a size, format or
// type constraint. Field names the offending part of the embed.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func overbound(field string, n, max int) *ValidationError {
	return &ValidationError{
		Field: field,
		Msg:   fmt.Sprintf("too long: %d > %d characters", n, max),
	}
}

// Validate checks the whole draft against Discord's embed limits.
func (d *Draft) Validate() error {
	if len(d.Title) > MaxTitle {
		return overbound("title", len(d.Title), MaxTitle)
	}
	if len(d.Description) > MaxDescription {
		return overbound("description", len(d.Description), MaxDescription)
	}
	if len(d.Fields) > MaxFields {
		return &ValidationError{
			Field: "fields",
			Msg:   fmt.Sprintf("too many: %d > %d", len(d.Fields), MaxFields),
		}
	}
	if d.Footer != nil && len(d.Footer.Text) > MaxFooterText {
		return overbound("footer text", len(d.Footer.Text), MaxFooterText)
	}
	if d.Author != nil && len(d.Author.Name) > MaxAuthorName {
		return overbound("author name", len(d.Author.Name), MaxAuthorName)
	}
	for i, f := range d.Fields {
		if len(f.Name) > MaxFieldName {
			return overbound(fmt.Sprintf("field %d name", i+1), len(f.Name), MaxFieldName)
		}
		if len(f.Value) > MaxFieldValue {
			return overbound(fmt.Sprintf("field %d value", i+1), len(f.Value), MaxFieldValue)
		}
	}
	if sum := d.Length(); sum > MaxTotal {
		return overbound("embed", sum, MaxTotal)
	}
	return nil
}

// Length returns the sum of the lengths of all text in the draft. Discord
// counts title, description, footer text, author name and field names/values
// toward the 6000-character cap.
func (d *Draft) Length() int {
	sum := len(d.Title) + len(d.Description)
	if d.Footer != nil {
		sum += len(d.Footer.Text)
	}
	if d.Author != nil {
		sum += len(d.Author.Name)
	}
	for _, f := range d.Fields {
		sum += len(f.Name) + len(f.Value)
	}
	return sum
}

// IsEmpty reports whether the draft has nothing Discord would render.
func (d *Draft) IsEmpty() bool {
	return d.Title == "" &&
		d.Description == "" &&
		d.Author == nil &&
		d.Footer == nil &&
		d.Image == "" &&
		d.Thumbnail == "" &&
		len(d.Fields) == 0
}

// Clone returns a deep copy of the draft.
func (d *Draft) Clone() *Draft {
	c := *d
	if d.Author != nil {
		a := *d.Author
		c.Author = &a
	}
	if d.Footer != nil {
		f := *d.Footer
		c.Footer = &f
	}
	if d.Fields != nil {
		c.Fields = make([]Field, len(d.Fields))
		copy(c.Fields, d.Fields)
	}
	return &c
}
