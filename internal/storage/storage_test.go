package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"embed-manager/internal/embed"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "datastore.json"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDraft() *embed.Draft {
	d := embed.NewDraft()
	d.Title = "Server Rules"
	d.Description = "Be nice."
	d.Color = 0x5865f2
	d.Fields = []embed.Field{{Name: "Rule 1", Value: "No spam.", Inline: true}}
	return d
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	d := sampleDraft()

	if err := s.PutEmbed("guild-1", "rules", "user-1", d); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetEmbed("guild-1", "rules")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "rules" || got.OwnerID != "user-1" || got.Uses != 0 {
		t.Errorf("stored = %+v", got)
	}
	if !reflect.DeepEqual(got.Embed, d) {
		t.Errorf("draft round trip mismatch:\n got %+v\nwant %+v", got.Embed, d)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStorage(t)
	if _, err := s.GetEmbed("guild-1", "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestOverwriteResetsUses(t *testing.T) {
	s := newTestStorage(t)
	if err := s.PutEmbed("guild-1", "rules", "user-1", sampleDraft()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.IncrementUses("guild-1", "rules"); err != nil {
		t.Fatal(err)
	}

	if err := s.PutEmbed("guild-1", "rules", "user-2", sampleDraft()); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetEmbed("guild-1", "rules")
	if err != nil {
		t.Fatal(err)
	}
	if got.Uses != 0 || got.OwnerID != "user-2" {
		t.Errorf("overwritten = %+v, want uses reset and new owner", got)
	}
}

func TestIncrementUses(t *testing.T) {
	s := newTestStorage(t)
	if err := s.PutEmbed("guild-1", "rules", "user-1", sampleDraft()); err != nil {
		t.Fatal(err)
	}

	for want := 1; want <= 3; want++ {
		n, err := s.IncrementUses("guild-1", "rules")
		if err != nil {
			t.Fatal(err)
		}
		if n != want {
			t.Errorf("uses = %d, want %d", n, want)
		}
	}

	if _, err := s.IncrementUses("guild-1", "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteEmbed(t *testing.T) {
	s := newTestStorage(t)
	if err := s.PutEmbed("guild-1", "rules", "user-1", sampleDraft()); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteEmbed("guild-1", "rules"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetEmbed("guild-1", "rules"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}
	if err := s.DeleteEmbed("guild-1", "rules"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete err = %v, want ErrNotFound", err)
	}
}

func TestListEmbedsSorted(t *testing.T) {
	s := newTestStorage(t)
	for _, name := range []string{"welcome", "rules", "faq"} {
		if err := s.PutEmbed("guild-1", name, "user-1", sampleDraft()); err != nil {
			t.Fatal(err)
		}
	}

	names, err := s.ListEmbeds("guild-1")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"faq", "rules", "welcome"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}

	// An untouched guild lists empty, not an error.
	empty, err := s.ListEmbeds("guild-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("names = %v, want empty", empty)
	}
}

func TestGuildsIsolated(t *testing.T) {
	s := newTestStorage(t)
	if err := s.PutEmbed("guild-1", "rules", "user-1", sampleDraft()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetEmbed("guild-2", "rules"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound in the other guild", err)
	}
}
