package conversation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/longkey1/fincoach/internal/fincoach/config"
)

// AmbiguousIDError is returned when multiple transcripts match a prefix
type AmbiguousIDError struct {
	Prefix  string
	Matches []*Conversation
}

func (e *AmbiguousIDError) Error() string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Ambiguous transcript ID %q. Multiple matches found:", e.Prefix))
	for _, match := range e.Matches {
		lines = append(lines, fmt.Sprintf("- %s (%s, %s, %d messages)",
			match.GetShortID(),
			match.Mode,
			match.CreatedAt.Format("2006-01-02"),
			match.MessageCount()))
	}
	lines = append(lines, "")
	lines = append(lines, "Please use a longer prefix or run 'fincoach transcripts list'.")
	return strings.Join(lines, "\n")
}

// Store reads and writes transcripts as JSON files in one directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultStore returns the store in the "transcripts" directory next to the
// config file.
func DefaultStore() (*Store, error) {
	configDir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Join(configDir, "transcripts")), nil
}

// Dir returns the directory where transcripts are stored
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path of a transcript.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save writes a transcript to disk
func (s *Store) Save(c *Conversation) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create transcript directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize transcript: %w", err)
	}

	// Write to a temp file first so a crash never leaves a truncated transcript
	tmp := s.Path(c.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write transcript file: %w", err)
	}
	if err := os.Rename(tmp, s.Path(c.ID)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write transcript file: %w", err)
	}
	return nil
}

// Load reads a transcript by full ID
func (s *Store) Load(id string) (*Conversation, error) {
	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("transcript not found: %s\n\nRun 'fincoach transcripts list' to see available transcripts.", id)
		}
		return nil, fmt.Errorf("failed to read transcript file: %w", err)
	}

	var c Conversation
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse transcript file: %w\n\nThe transcript file may be corrupted.", err)
	}
	return &c, nil
}

// Delete removes a transcript by full ID
func (s *Store) Delete(id string) error {
	if err := os.Remove(s.Path(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("transcript not found: %s", id)
		}
		return fmt.Errorf("failed to delete transcript file: %w", err)
	}
	return nil
}

// List returns all transcripts sorted by UpdatedAt (newest first)
func (s *Store) List() ([]*Conversation, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read transcript directory: %w", err)
	}

	var out []*Conversation
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		c, err := s.Load(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			// Skip corrupted transcript files
			continue
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// FindByPrefix finds a transcript by short ID prefix (minimum 4 characters).
// "latest" returns the most recently updated transcript.
func (s *Store) FindByPrefix(prefix string) (*Conversation, error) {
	if prefix == "latest" {
		return s.Latest()
	}

	if len(prefix) < 4 {
		return nil, fmt.Errorf("transcript ID prefix must be at least 4 characters (got %d)", len(prefix))
	}

	// Full UUID (36 characters with 4 dashes)
	if len(prefix) == 36 && strings.Count(prefix, "-") == 4 {
		return s.Load(prefix)
	}

	all, err := s.List()
	if err != nil {
		return nil, err
	}

	var matches []*Conversation
	for _, c := range all {
		if strings.HasPrefix(c.ID, prefix) {
			matches = append(matches, c)
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("transcript not found: %s\n\nRun 'fincoach transcripts list' to see available transcripts.", prefix)
	}
	if len(matches) > 1 {
		return nil, &AmbiguousIDError{Prefix: prefix, Matches: matches}
	}
	return matches[0], nil
}

// Latest returns the most recently updated transcript
func (s *Store) Latest() (*Conversation, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no transcripts found\n\nStart one with: fincoach chat --new \"your message\"")
	}
	return all[0], nil
}
