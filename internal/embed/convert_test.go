package embed

import (
	"reflect"
	"strings"
	"testing"
)

func sampleDraft() *Draft {
	return &Draft{
		Title:       "Server Rules",
		Description: "Be nice.",
		URL:         "https://example.com",
		Color:       0x5865f2,
		Timestamp:   "2024-01-01T00:00:00Z",
		Author:      &Author{Name: "Mod Team", IconURL: "https://example.com/icon.png"},
		Footer:      &Footer{Text: "Last updated"},
		Image:       "https://example.com/banner.png",
		Thumbnail:   "https://example.com/thumb.png",
		Fields: []Field{
			{Name: "Rule 1", Value: "No spam.", Inline: false},
			{Name: "Rule 2", Value: "Stay on topic.", Inline: true},
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := sampleDraft()
	data, err := EncodeJSON(d)
	if err != nil {
		t.Fatal(err)
	}
	got, content, err := DecodeJSON(string(data))
	if err != nil {
		t.Fatal(err)
	}
	if content != "" {
		t.Errorf("content = %q, want empty", content)
	}
	if !reflect.DeepEqual(got, d) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, d)
	}
}

func TestDecodeJSONWrapped(t *testing.T) {
	d, content, err := DecodeJSON(`{"content": "hey @mods", "embed": {"title": "Hi"}}`)
	if err != nil {
		t.Fatal(err)
	}
	if content != "hey @mods" {
		t.Errorf("content = %q", content)
	}
	if d.Title != "Hi" {
		t.Errorf("title = %q", d.Title)
	}
	if d.Color != NullColor {
		t.Errorf("color = %d, want NullColor", d.Color)
	}
}

func TestDecodeJSONCodeBlock(t *testing.T) {
	d, _, err := DecodeJSON("```json\n{\"title\": \"Hi\"}\n```")
	if err != nil {
		t.Fatal(err)
	}
	if d.Title != "Hi" {
		t.Errorf("title = %q", d.Title)
	}
}

func TestDecodeJSONErrors(t *testing.T) {
	cases := []string{
		`not json`,
		`{"embed": "not an object"}`,
		`{}`, // nothing to render
		`{"title": "` + strings.Repeat("x", MaxTitle+1) + `"}`, // oversize
	}
	for _, in := range cases {
		if _, _, err := DecodeJSON(in); err == nil {
			t.Errorf("DecodeJSON(%.40q) succeeded, want error", in)
		}
	}
}

func TestDecodeJSONZeroColorKept(t *testing.T) {
	d, _, err := DecodeJSON(`{"title": "Hi", "color": 0}`)
	if err != nil {
		t.Fatal(err)
	}
	if d.Color != 0 {
		t.Errorf("color = %d, want explicit 0", d.Color)
	}
}

func TestMessageEmbedRoundTrip(t *testing.T) {
	d := sampleDraft()
	got := FromMessageEmbed(d.MessageEmbed())
	if !reflect.DeepEqual(got, d) {
		t.Errorf("message embed round trip mismatch:\n got %+v\nwant %+v", got, d)
	}
}

func TestMessageEmbedUnsetColor(t *testing.T) {
	d := NewDraft()
	d.Title = "t"
	me := d.MessageEmbed()
	if me.Color != 0 {
		t.Errorf("unset color rendered as %d, want 0", me.Color)
	}
	if got := FromMessageEmbed(me); got.Color != NullColor {
		t.Errorf("decomposed color = %d, want NullColor", got.Color)
	}
}
