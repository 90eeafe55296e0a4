package builder

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"embed-manager/internal/embed"
)

// Category is one editable section of an embed, each with its own editor.
type Category int

const (
	CategoryContent Category = iota
	CategoryAuthor
	CategoryFooter
	CategoryImage
	CategoryThumbnail
	CategoryFieldAdd
	CategoryFieldEdit
	CategoryFieldRemove
)

// Categories returns all categories in panel button order.
func Categories() []Category {
	return []Category{
		CategoryContent, CategoryAuthor, CategoryFooter, CategoryImage, CategoryThumbnail,
		CategoryFieldAdd, CategoryFieldEdit, CategoryFieldRemove,
	}
}

var categoryNames = map[Category]string{
	CategoryContent:     "content",
	CategoryAuthor:      "author",
	CategoryFooter:      "footer",
	CategoryImage:       "image",
	CategoryThumbnail:   "thumbnail",
	CategoryFieldAdd:    "field-add",
	CategoryFieldEdit:   "field-edit",
	CategoryFieldRemove: "field-remove",
}

var categoryLabels = map[Category]string{
	CategoryContent:     "Content",
	CategoryAuthor:      "Author",
	CategoryFooter:      "Footer",
	CategoryImage:       "Image",
	CategoryThumbnail:   "Thumbnail",
	CategoryFieldAdd:    "Add Field",
	CategoryFieldEdit:   "Edit Field",
	CategoryFieldRemove: "Remove Field",
}

func (c Category) String() string { return categoryNames[c] }

// Label is the human-facing button/modal title for the category.
func (c Category) Label() string { return categoryLabels[c] }

// ParseCategory resolves a category from its wire name.
func ParseCategory(s string) (Category, bool) {
	for c, name := range categoryNames {
		if name == s {
			return c, true
		}
	}
	return 0, false
}

// InputStyle selects between a single-line and a multi-line text input.
type InputStyle int

const (
	InputShort InputStyle = iota
	InputParagraph
)

// Input describes one text field of an editor form.
type Input struct {
	Key         string
	Label       string
	Style       InputStyle
	Value       string // pre-filled from the current draft
	Placeholder string
	Required    bool
	MaxLength   int
}

// Form is the pure-data description of an editor modal, pre-filled from the
// draft at the moment the category was selected. Seq ties a submission back
// to the selection that opened it; stale submissions are rejected.
type Form struct {
	Category Category
	Seq      int
	Title    string
	Inputs   []Input
}

// Modal text inputs cap out at 4000 characters, below the 4096 the embed
// description allows. Longer descriptions have to come in via JSON.
const maxModalInput = 4000

func formFor(cat Category, d *embed.Draft) *Form {
	f := &Form{Category: cat, Title: cat.Label()}
	switch cat {
	case CategoryContent:
		f.Inputs = []Input{
			{Key: "title", Label: "Title", Style: InputShort, Value: d.Title, MaxLength: embed.MaxTitle},
			{Key: "description", Label: "Description", Style: InputParagraph, Value: clip(d.Description, maxModalInput), MaxLength: maxModalInput},
			{Key: "url", Label: "URL", Style: InputShort, Value: d.URL, Placeholder: "https://..."},
			{Key: "color", Label: "Color", Style: InputShort, Value: embed.FormatColor(d.Color), Placeholder: "#rrggbb or a color name"},
			{Key: "timestamp", Label: "Timestamp", Style: InputShort, Value: d.Timestamp, Placeholder: "2006-01-02T15:04:05Z or \"now\""},
		}
	case CategoryAuthor:
		var a embed.Author
		if d.Author != nil {
			a = *d.Author
		}
		f.Inputs = []Input{
			{Key: "name", Label: "Name", Style: InputShort, Value: a.Name, MaxLength: embed.MaxAuthorName},
			{Key: "url", Label: "URL", Style: InputShort, Value: a.URL, Placeholder: "https://..."},
			{Key: "icon_url", Label: "Icon URL", Style: InputShort, Value: a.IconURL, Placeholder: "https://..."},
		}
	case CategoryFooter:
		var ft embed.Footer
		if d.Footer != nil {
			ft = *d.Footer
		}
		f.Inputs = []Input{
			{Key: "text", Label: "Text", Style: InputParagraph, Value: ft.Text, MaxLength: embed.MaxFooterText},
			{Key: "icon_url", Label: "Icon URL", Style: InputShort, Value: ft.IconURL, Placeholder: "https://..."},
		}
	case CategoryImage:
		f.Inputs = []Input{
			{Key: "url", Label: "Image URL (leave empty to clear)", Style: InputShort, Value: d.Image, Placeholder: "https://..."},
		}
	case CategoryThumbnail:
		f.Inputs = []Input{
			{Key: "url", Label: "Thumbnail URL (leave empty to clear)", Style: InputShort, Value: d.Thumbnail, Placeholder: "https://..."},
		}
	case CategoryFieldAdd:
		f.Inputs = []Input{
			{Key: "name", Label: "Name", Style: InputShort, Required: true, MaxLength: embed.MaxFieldName},
			{Key: "value", Label: "Value", Style: InputParagraph, Required: true, MaxLength: embed.MaxFieldValue},
			{Key: "inline", Label: "Inline (true/false)", Style: InputShort, Value: "false"},
		}
	case CategoryFieldEdit:
		f.Inputs = []Input{
			{Key: "index", Label: fmt.Sprintf("Field number (1-%d)", len(d.Fields)), Style: InputShort, Required: true},
			{Key: "name", Label: "New name (empty keeps current)", Style: InputShort, MaxLength: embed.MaxFieldName},
			{Key: "value", Label: "New value (empty keeps current)", Style: InputParagraph, MaxLength: embed.MaxFieldValue},
			{Key: "inline", Label: "Inline (true/false, empty keeps current)", Style: InputShort},
		}
	case CategoryFieldRemove:
		f.Inputs = []Input{
			{Key: "index", Label: fmt.Sprintf("Field number (1-%d)", len(d.Fields)), Style: InputShort, Required: true},
		}
	}
	return f
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// applyEditor mutates d according to the submitted raw text fields of the
// category's editor. It returns a *embed.ValidationError when the submission
// violates a constraint; callers apply editors to a clone so a rejection
// provably leaves the live draft untouched. The whole draft is re-validated
// after every change since cumulative size can exceed the limit even when
// each field is individually valid.
func applyEditor(cat Category, d *embed.Draft, values map[string]string) error {
	var err error
	switch cat {
	case CategoryContent:
		err = applyContent(d, values)
	case CategoryAuthor:
		err = applyAuthor(d, values)
	case CategoryFooter:
		err = applyFooter(d, values)
	case CategoryImage:
		err = applyImageURL(&d.Image, "image url", values)
	case CategoryThumbnail:
		err = applyImageURL(&d.Thumbnail, "thumbnail url", values)
	case CategoryFieldAdd:
		err = applyFieldAdd(d, values)
	case CategoryFieldEdit:
		err = applyFieldEdit(d, values)
	case CategoryFieldRemove:
		err = applyFieldRemove(d, values)
	default:
		return fmt.Errorf("unknown category %d", cat)
	}
	if err != nil {
		return err
	}
	return d.Validate()
}

func applyContent(d *embed.Draft, v map[string]string) error {
	d.Title = strings.TrimSpace(v["title"])
	d.Description = v["description"]
	if err := checkURL("url", v["url"]); err != nil {
		return err
	}
	d.URL = strings.TrimSpace(v["url"])

	if raw := strings.TrimSpace(v["color"]); raw == "" {
		d.Color = embed.NullColor
	} else {
		c, err := embed.ParseColor(raw)
		if err != nil {
			return err
		}
		d.Color = c
	}

	switch raw := strings.TrimSpace(v["timestamp"]); {
	case raw == "":
		d.Timestamp = ""
	case strings.EqualFold(raw, "now"):
		d.Timestamp = time.Now().UTC().Format(time.RFC3339)
	default:
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return &embed.ValidationError{Field: "timestamp", Msg: fmt.Sprintf("%q is not an RFC3339 timestamp", raw)}
		}
		d.Timestamp = t.UTC().Format(time.RFC3339)
	}
	return nil
}

func applyAuthor(d *embed.Draft, v map[string]string) error {
	name := strings.TrimSpace(v["name"])
	u := strings.TrimSpace(v["url"])
	icon := strings.TrimSpace(v["icon_url"])

	if name == "" && u == "" && icon == "" {
		d.Author = nil
		return nil
	}
	if name == "" {
		return &embed.ValidationError{Field: "author name", Msg: "required when a url or icon is set"}
	}
	if err := checkURL("author url", u); err != nil {
		return err
	}
	if err := checkURL("author icon url", icon); err != nil {
		return err
	}
	d.Author = &embed.Author{Name: name, URL: u, IconURL: icon}
	return nil
}

func applyFooter(d *embed.Draft, v map[string]string) error {
	text := v["text"]
	icon := strings.TrimSpace(v["icon_url"])

	if text == "" && icon == "" {
		d.Footer = nil
		return nil
	}
	if text == "" {
		return &embed.ValidationError{Field: "footer text", Msg: "required when an icon is set"}
	}
	if err := checkURL("footer icon url", icon); err != nil {
		return err
	}
	d.Footer = &embed.Footer{Text: text, IconURL: icon}
	return nil
}

// applyImageURL handles both the image and thumbnail editors; an empty
// submission clears the value.
func applyImageURL(dst *string, field string, v map[string]string) error {
	u := strings.TrimSpace(v["url"])
	if u == "" {
		*dst = ""
		return nil
	}
	if err := checkURL(field, u); err != nil {
		return err
	}
	*dst = u
	return nil
}

func applyFieldAdd(d *embed.Draft, v map[string]string) error {
	if len(d.Fields) >= embed.MaxFields {
		return &embed.ValidationError{
			Field: "fields",
			Msg:   fmt.Sprintf("limit of %d fields reached", embed.MaxFields),
		}
	}
	name := strings.TrimSpace(v["name"])
	value := v["value"]
	if name == "" {
		return &embed.ValidationError{Field: "field name", Msg: "required"}
	}
	if value == "" {
		return &embed.ValidationError{Field: "field value", Msg: "required"}
	}
	inline, err := parseInline(v["inline"], false)
	if err != nil {
		return err
	}
	d.Fields = append(d.Fields, embed.Field{Name: name, Value: value, Inline: inline})
	return nil
}

func applyFieldEdit(d *embed.Draft, v map[string]string) error {
	i, err := parseIndex(v["index"], len(d.Fields))
	if err != nil {
		return err
	}
	f := d.Fields[i]
	if name := strings.TrimSpace(v["name"]); name != "" {
		f.Name = name
	}
	if value := v["value"]; value != "" {
		f.Value = value
	}
	inline, err := parseInline(v["inline"], f.Inline)
	if err != nil {
		return err
	}
	f.Inline = inline
	d.Fields[i] = f
	return nil
}

func applyFieldRemove(d *embed.Draft, v map[string]string) error {
	i, err := parseIndex(v["index"], len(d.Fields))
	if err != nil {
		return err
	}
	d.Fields = append(d.Fields[:i], d.Fields[i+1:]...)
	return nil
}

// parseIndex converts a 1-based user-facing field number into a slice index.
func parseIndex(raw string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &embed.ValidationError{Field: "field index", Msg: fmt.Sprintf("%q is not a number", raw)}
	}
	if n < 1 || n > count {
		return 0, &embed.ValidationError{
			Field: "field index",
			Msg:   fmt.Sprintf("no field %d, the embed has %d field(s)", n, count),
		}
	}
	return n - 1, nil
}

func parseInline(raw string, current bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return current, nil
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	default:
		return false, &embed.ValidationError{Field: "inline", Msg: fmt.Sprintf("%q is not true or false", raw)}
	}
}

func checkURL(field, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &embed.ValidationError{Field: field, Msg: fmt.Sprintf("%q is not a valid http(s) URL", raw)}
	}
	return nil
}
