package embed

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		draft     *Draft
		wantField string // "" means valid
	}{
		{
			name:  "minimal",
			draft: &Draft{Title: "Hello", Description: "World", Color: NullColor},
		},
		{
			name: "full at the per-part limits",
			draft: &Draft{
				Title:       strings.Repeat("t", MaxTitle),
				Description: strings.Repeat("a", MaxDescription),
				Color:       0xff8800,
				Author:      &Author{Name: "Mods"},
				Footer:      &Footer{Text: "updated"},
				Fields:      []Field{{Name: "n", Value: "v"}},
			},
		},
		{
			name:      "title overflow",
			draft:     &Draft{Title: strings.Repeat("x", MaxTitle+1), Color: NullColor},
			wantField: "title",
		},
		{
			name:      "footer overflow",
			draft:     &Draft{Footer: &Footer{Text: strings.Repeat("x", MaxFooterText+1)}, Color: NullColor},
			wantField: "footer text",
		},
		{
			name:      "author overflow",
			draft:     &Draft{Author: &Author{Name: strings.Repeat("x", MaxAuthorName+1)}, Color: NullColor},
			wantField: "author name",
		},
		{
			name: "too many fields",
			draft: func() *Draft {
				d := NewDraft()
				for i := 0; i < MaxFields+1; i++ {
					d.Fields = append(d.Fields, Field{Name: "n", Value: "v"})
				}
				return d
			}(),
			wantField: "fields",
		},
		{
			name: "field value overflow",
			draft: &Draft{
				Fields: []Field{{Name: "ok", Value: "ok"}, {Name: "bad", Value: strings.Repeat("x", MaxFieldValue+1)}},
				Color:  NullColor,
			},
			wantField: "field 2 value",
		},
		{
			name: "cumulative overflow",
			draft: &Draft{
				Description: strings.Repeat("a", 4000),
				Footer:      &Footer{Text: strings.Repeat("b", 2048)},
				Color:       NullColor,
			},
			wantField: "embed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestLength(t *testing.T) {
	d := &Draft{
		Title:       "1234",
		Description: "12345678",
		Author:      &Author{Name: "12", URL: "https://ignored.example"},
		Footer:      &Footer{Text: "123"},
		Fields:      []Field{{Name: "12", Value: "1234"}},
		Color:       NullColor,
		URL:         "https://not-counted.example",
	}
	if got := d.Length(); got != 4+8+2+3+2+4 {
		t.Errorf("Length() = %d, want %d", got, 23)
	}
}

func TestIsEmpty(t *testing.T) {
	if !NewDraft().IsEmpty() {
		t.Error("new draft should be empty")
	}
	d := NewDraft()
	d.Color = 0xff0000
	d.URL = "https://example.com"
	d.Timestamp = "2024-01-01T00:00:00Z"
	if !d.IsEmpty() {
		t.Error("color, url and timestamp alone render nothing, draft should count as empty")
	}
	d.Title = "t"
	if d.IsEmpty() {
		t.Error("draft with a title is not empty")
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := &Draft{
		Title:  "t",
		Color:  NullColor,
		Author: &Author{Name: "a"},
		Footer: &Footer{Text: "f"},
		Fields: []Field{{Name: "n", Value: "v"}},
	}
	c := d.Clone()
	if !reflect.DeepEqual(d, c) {
		t.Fatalf("clone differs: %+v vs %+v", d, c)
	}

	c.Author.Name = "changed"
	c.Footer.Text = "changed"
	c.Fields[0].Name = "changed"
	if d.Author.Name != "a" || d.Footer.Text != "f" || d.Fields[0].Name != "n" {
		t.Error("mutating the clone leaked into the original")
	}
}
