// Package storage persists the companion's state snapshot as a single
// record in a JSON-backed datastore file.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/keshon/datastore"

	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/companion"
)

const companionKey = "companion"

type Storage struct {
	ds *datastore.DataStore
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

// Load fetches the saved snapshot. The second return is false when nothing
// has been saved yet.
func (s *Storage) Load() (*companion.State, bool, error) {
	data, exists := s.ds.Get(companionKey)
	if !exists {
		return nil, false, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, false, fmt.Errorf("error marshalling data: %w", err)
	}

	var state companion.State
	if err := json.Unmarshal(jsonData, &state); err != nil {
		return nil, false, fmt.Errorf("error unmarshalling to *State: %w", err)
	}
	return &state, true, nil
}

// Save overwrites the stored snapshot.
func (s *Storage) Save(state companion.State) error {
	s.ds.Add(companionKey, state)
	return nil
}
