package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
)

const (
	// appDirName is the config directory name under XDG_CONFIG_HOME.
	appDirName = "taskboard"

	sessionFile     = "session.json"
	preferencesFile = "preferences.json"

	// maxSearchHistory caps the persisted search history.
	maxSearchHistory = 10

	// maxRecentItems caps the persisted recent-item list.
	maxRecentItems = 10

	savedSearchIDLength = 12
)

// Session is the persisted auth session. It is cleared on logout and
// whenever the API rejects the token.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
}

// SavedSearch is a named filter the user can re-run.
type SavedSearch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Query     TaskQuery `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

// Preferences is the persisted UI state. The transient search box text
// is deliberately not part of it; only explicit history entries are.
type Preferences struct {
	Theme            string `json:"theme"`
	SidebarCollapsed bool   `json:"sidebar_collapsed"`
	ViewMode         string `json:"view_mode"`

	SortBy   string `json:"sort_by,omitempty"`
	SortDesc bool   `json:"sort_desc,omitempty"`

	SavedSearches []SavedSearch `json:"saved_searches,omitempty"`
	SearchHistory []string      `json:"search_history,omitempty"`
	RecentItems   []string      `json:"recent_items,omitempty"`

	OnboardingDone bool            `json:"onboarding_done"`
	FeatureFlags   map[string]bool `json:"feature_flags,omitempty"`
}

// DefaultPreferences returns the preferences of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:    "system",
		ViewMode: "board",
	}
}

// AddSearchHistory records a submitted search query. Entries are most
// recent first, deduplicated, capped at maxSearchHistory. Blank queries
// are ignored.
func (p *Preferences) AddSearchHistory(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	history := make([]string, 0, maxSearchHistory)
	history = append(history, query)
	for _, prev := range p.SearchHistory {
		if prev == query {
			continue
		}
		history = append(history, prev)
		if len(history) == maxSearchHistory {
			break
		}
	}
	p.SearchHistory = history
}

// AddSavedSearch stores a named search under a fresh id.
func (p *Preferences) AddSavedSearch(name string, query TaskQuery) (SavedSearch, error) {
	gen, err := nanoid.Standard(savedSearchIDLength)
	if err != nil {
		return SavedSearch{}, fmt.Errorf("generate saved search id: %w", err)
	}

	search := SavedSearch{
		ID:        gen(),
		Name:      name,
		Query:     query,
		CreatedAt: time.Now(),
	}
	p.SavedSearches = append(p.SavedSearches, search)
	return search, nil
}

// RemoveSavedSearch deletes a saved search by id. Unknown ids are a
// no-op.
func (p *Preferences) RemoveSavedSearch(id string) {
	kept := p.SavedSearches[:0]
	for _, s := range p.SavedSearches {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	p.SavedSearches = kept
}

// TouchRecent moves an item id to the front of the recent list.
func (p *Preferences) TouchRecent(id string) {
	if id == "" {
		return
	}

	recent := make([]string, 0, maxRecentItems)
	recent = append(recent, id)
	for _, prev := range p.RecentItems {
		if prev == id {
			continue
		}
		recent = append(recent, prev)
		if len(recent) == maxRecentItems {
			break
		}
	}
	p.RecentItems = recent
}

// StateStore persists Session and Preferences as JSON files under a
// config directory.
type StateStore struct {
	dir string
}

// NewStateStore creates a store rooted at dir. An empty dir selects
// XDG_CONFIG_HOME/taskboard, falling back to $HOME/.config/taskboard.
func NewStateStore(dir string) (*StateStore, error) {
	if dir == "" {
		dir = defaultStateDir()
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &StateStore{dir: dir}, nil
}

func defaultStateDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return appDirName
	}
	return filepath.Join(home, ".config", appDirName)
}

// Dir returns the store's directory.
func (s *StateStore) Dir() string {
	return s.dir
}

// LoadSession reads the persisted session. A missing file returns
// (nil, nil); the caller treats that as logged out.
func (s *StateStore) LoadSession() (*Session, error) {
	var session Session
	found, err := s.load(sessionFile, &session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

// SaveSession persists the session.
func (s *StateStore) SaveSession(session *Session) error {
	return s.save(sessionFile, session)
}

// ClearSession removes the persisted session. Missing files are fine.
func (s *StateStore) ClearSession() error {
	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// LoadPreferences reads the persisted preferences, returning the
// defaults when none are saved yet.
func (s *StateStore) LoadPreferences() (Preferences, error) {
	prefs := DefaultPreferences()
	if _, err := s.load(preferencesFile, &prefs); err != nil {
		return DefaultPreferences(), err
	}
	return prefs, nil
}

// SavePreferences persists the preferences.
func (s *StateStore) SavePreferences(prefs Preferences) error {
	return s.save(preferencesFile, prefs)
}

func (s *StateStore) load(name string, out any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("parse %s: %w", name, err)
	}
	return true, nil
}

func (s *StateStore) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0600)
}
