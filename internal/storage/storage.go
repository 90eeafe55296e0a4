// Package storage persists named embeds per guild on top of a JSON-file
// key-value datastore.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"embed-manager/internal/embed"

	"github.com/keshon/datastore"
)

// ErrNotFound reports a referenced stored embed that does not exist.
var ErrNotFound = errors.New("stored embed not found")

type Storage struct {
	ds *datastore.DataStore
}

// StoredEmbed is one named embed with its owner and usage count.
type StoredEmbed struct {
	Name    string       `json:"name"`
	OwnerID string       `json:"owner_id"`
	Embed   *embed.Draft `json:"embed"`
	Uses    int          `json:"uses"`
}

// Record is the per-guild document held in the datastore.
type Record struct {
	Embeds map[string]StoredEmbed `json:"embeds"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// getOrCreateGuildRecord loads a guild's record, creating an empty one on
// first use. The datastore hands back loosely typed data, so records go
// through a JSON round trip.
func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	data, exists := s.ds.Get(guildID)
	if !exists {
		return &Record{Embeds: map[string]StoredEmbed{}}, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var record Record
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("error unmarshalling to *Record: %w", err)
	}
	if record.Embeds == nil {
		record.Embeds = map[string]StoredEmbed{}
	}
	return &record, nil
}

// GetEmbed returns a stored embed by name.
func (s *Storage) GetEmbed(guildID, name string) (StoredEmbed, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return StoredEmbed{}, err
	}
	se, ok := record.Embeds[name]
	if !ok {
		return StoredEmbed{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return se, nil
}

// PutEmbed stores an embed under a name, overwriting any previous entry and
// resetting its usage count.
func (s *Storage) PutEmbed(guildID, name, ownerID string, d *embed.Draft) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.Embeds[name] = StoredEmbed{
		Name:    name,
		OwnerID: ownerID,
		Embed:   d.Clone(),
	}
	s.ds.Add(guildID, record)
	return nil
}

// DeleteEmbed removes a stored embed by name.
func (s *Storage) DeleteEmbed(guildID, name string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}
	if _, ok := record.Embeds[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(record.Embeds, name)
	s.ds.Add(guildID, record)
	return nil
}

// ListEmbeds returns the stored embed names, sorted.
func (s *Storage) ListEmbeds(guildID string) ([]string, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(record.Embeds))
	for name := range record.Embeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// IncrementUses bumps the usage counter of a stored embed and returns the
// new count.
func (s *Storage) IncrementUses(guildID, name string) (int, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return 0, err
	}
	se, ok := record.Embeds[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	se.Uses++
	record.Embeds[name] = se
	s.ds.Add(guildID, record)
	return se.Uses, nil
}
