// Package memory persists run progress between launches as a small JSON
// document: the current day and every rating so far.
package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Memory is the persisted progress of a run.
type Memory struct {
	Day     int   `json:"day"`
	Ratings []int `json:"ratings"`
}

// New returns the memory of a run that has not started.
func New() Memory {
	return Memory{Day: 1, Ratings: []int{}}
}

// AddReview appends a rating.
func (m *Memory) AddReview(stars int) {
	m.Ratings = append(m.Ratings, stars)
}

// Average returns the mean rating, 0 when there are none.
func (m Memory) Average() float64 {
	if len(m.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range m.Ratings {
		sum += r
	}
	return float64(sum) / float64(len(m.Ratings))
}

// Reset puts the memory back to day 1 with no ratings.
func (m *Memory) Reset() {
	*m = New()
}

// HasProgress reports whether anything was recorded.
func (m Memory) HasProgress() bool {
	return len(m.Ratings) > 0 || m.Day > 1
}

func (m Memory) valid() bool {
	if m.Day < 1 {
		return false
	}
	for _, r := range m.Ratings {
		if r < 1 || r > 5 {
			return false
		}
	}
	return true
}

// Store reads and writes a memory file.
type Store struct {
	path           string
	patientsPerDay int
}

// NewStore returns a store for path. patientsPerDay is used to derive the
// day of files written as a bare rating list.
func NewStore(path string, patientsPerDay int) *Store {
	if patientsPerDay < 1 {
		patientsPerDay = 5
	}
	return &Store{path: path, patientsPerDay: patientsPerDay}
}

// Path returns the file the store works on.
func (s *Store) Path() string { return s.path }

// Load reads the memory file. A missing, unreadable or malformed file
// yields a fresh memory; the returned error only describes why the file
// was discarded and is nil when it is simply absent.
func (s *Store) Load() (Memory, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return New(), fmt.Errorf("read memory: %w", err)
	}

	m, err := s.decode(data)
	if err != nil {
		return New(), fmt.Errorf("decode memory %s: %w", s.path, err)
	}
	if !m.valid() {
		return New(), fmt.Errorf("memory %s holds out of range values", s.path)
	}
	if m.Ratings == nil {
		m.Ratings = []int{}
	}
	return m, nil
}

func (s *Store) decode(data []byte) (Memory, error) {
	var m Memory
	objErr := json.Unmarshal(data, &m)
	if objErr == nil {
		return m, nil
	}

	// Older saves were a bare list of ratings.
	var ratings []int
	if err := json.Unmarshal(data, &ratings); err != nil {
		return Memory{}, objErr
	}
	day := len(ratings)/s.patientsPerDay + 1
	return Memory{Day: day, Ratings: ratings}, nil
}

// Save writes m atomically.
func (s *Store) Save(m Memory) error {
	if m.Ratings == nil {
		m.Ratings = []int{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode memory: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create memory directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".memory-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write memory: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close memory: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace memory: %w", err)
	}
	return nil
}

// Clear removes the memory file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove memory: %w", err)
	}
	return nil
}
