// Package session owns the active authenticated identity and the
// registered-user directory, both persisted to the key-value store.
package session

import (
	"context"
	"crypto/subtle"
	"log"
	"strings"
	"sync"

	"github.com/newsbyte/newsbyte/pkg/domain"
	"github.com/newsbyte/newsbyte/pkg/store"
)

// storage keys, kept compatible with what the mobile client persisted
const (
	sessionKey = "newsbyte_auth"
	usersKey   = "newsbyte_users"
)

// directoryEntry is a registered-user record as persisted under usersKey.
// Password is the legacy plaintext field from records written before
// credential hashing, cleared once the entry is upgraded on login.
type directoryEntry struct {
	Email       string             `json:"email"`
	Name        string             `json:"name"`
	Password    string             `json:"password,omitempty"`
	Credential  *credential        `json:"credential,omitempty"`
	Preferences domain.Preferences `json:"preferences"`
}

// persistedSession is the durable marker of who is logged in now,
// credentials are never part of it
type persistedSession struct {
	User *domain.User `json:"user"`
}

// sampleUser seeds the directory on first run so the app is usable
// without a signup
var sampleUser = directoryEntry{
	Email:    "user@example.com",
	Name:     "Demo User",
	Password: "password123",
	Preferences: domain.Preferences{
		Language:   domain.LanguageEN,
		Categories: []domain.Category{domain.CategoryGeneral, domain.CategoryTechnology},
	},
}

// Store holds the current session and authenticates against the
// registered-user directory. All storage failures are logged and converted
// into boolean results, nothing propagates to callers.
type Store struct {
	kv *store.Store

	mu        sync.RWMutex
	user      *domain.User
	loggedIn  bool
	listeners []func(*domain.User)
}

// New creates the session store and restores a persisted session if one
// exists. Absence or a read failure leaves the store logged out.
func New(ctx context.Context, kv *store.Store) *Store {
	s := &Store{kv: kv}

	var persisted persistedSession
	ok, err := kv.GetJSON(ctx, sessionKey, &persisted)
	if err != nil {
		log.Printf("[WARN] failed to restore session: %v", err)
		return s
	}
	if ok && persisted.User != nil {
		s.user = persisted.User
		s.loggedIn = true
		log.Printf("[INFO] restored session for %s", persisted.User.Email)
	}
	return s
}

// OnChange registers a listener invoked after the active identity changes,
// with the new user or nil after logout. Listeners are called outside the
// store's lock.
func (s *Store) OnChange(fn func(*domain.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// User returns a copy of the current user, nil when logged out
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.user)
}

// IsLoggedIn reports whether a session is active
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// Login authenticates against the registered-user directory and persists
// the new session. Returns false on bad credentials or storage failure,
// the session is left unchanged in that case.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	entries, err := s.loadDirectory(ctx)
	if err != nil {
		log.Printf("[WARN] login failed to load user directory: %v", err)
		return false
	}

	idx := -1
	for i, e := range entries {
		if e.Email == email && verifyEntry(e, password) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	// upgrade legacy plaintext records to hashed credentials
	if entries[idx].Credential == nil {
		if cred, hashErr := hashPassword(password); hashErr == nil {
			entries[idx].Credential = &cred
			entries[idx].Password = ""
			if saveErr := s.kv.SetJSON(ctx, usersKey, entries); saveErr != nil {
				log.Printf("[WARN] failed to upgrade credentials for %s: %v", email, saveErr)
			}
		}
	}

	user := entryUser(entries[idx])
	if err := s.kv.SetJSON(ctx, sessionKey, persistedSession{User: &user}); err != nil {
		log.Printf("[WARN] failed to persist session: %v", err)
		return false
	}

	s.setUser(&user)
	log.Printf("[INFO] user %s logged in", email)
	return true
}

// Signup registers a new user and logs it in. Returns false on missing
// fields, invalid preferences, duplicate email or storage failure.
func (s *Store) Signup(ctx context.Context, name, email, password string, language domain.Language, categories []domain.Category) bool {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	prefs := domain.Preferences{Language: language, Categories: categories}
	if name == "" || email == "" || password == "" || !prefs.Valid() {
		return false
	}

	entries, err := s.loadDirectory(ctx)
	if err != nil {
		log.Printf("[WARN] signup failed to load user directory: %v", err)
		return false
	}

	for _, e := range entries {
		if e.Email == email {
			return false
		}
	}

	cred, err := hashPassword(password)
	if err != nil {
		log.Printf("[WARN] signup failed to hash password: %v", err)
		return false
	}

	entries = append(entries, directoryEntry{
		Email:       email,
		Name:        name,
		Credential:  &cred,
		Preferences: prefs,
	})
	if err := s.kv.SetJSON(ctx, usersKey, entries); err != nil {
		log.Printf("[WARN] signup failed to persist user directory: %v", err)
		return false
	}

	user := domain.User{Email: email, Name: name, Preferences: prefs}
	if err := s.kv.SetJSON(ctx, sessionKey, persistedSession{User: &user}); err != nil {
		log.Printf("[WARN] signup failed to persist session: %v", err)
		return false
	}

	s.setUser(&user)
	log.Printf("[INFO] user %s signed up", email)
	return true
}

// Logout removes the persisted session and clears the in-memory state.
// Storage errors are swallowed, the caller always ends up logged out.
func (s *Store) Logout(ctx context.Context) {
	if err := s.kv.Delete(ctx, sessionKey); err != nil {
		log.Printf("[WARN] failed to remove persisted session: %v", err)
	}
	s.setUser(nil)
	log.Printf("[INFO] logged out")
}

// UpdatePreferences replaces the current user's preferences and rewrites
// both the persisted session and the matching directory entry
func (s *Store) UpdatePreferences(ctx context.Context, language domain.Language, categories []domain.Category) bool {
	prefs := domain.Preferences{Language: language, Categories: categories}
	if !prefs.Valid() {
		return false
	}

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return false
	}
	s.user.Preferences = prefs
	user := *copyUser(s.user)
	s.mu.Unlock()

	if err := s.kv.SetJSON(ctx, sessionKey, persistedSession{User: &user}); err != nil {
		log.Printf("[WARN] failed to persist updated session: %v", err)
		return false
	}

	entries, err := s.loadDirectory(ctx)
	if err != nil {
		log.Printf("[WARN] preferences update failed to load user directory: %v", err)
		return false
	}
	for i := range entries {
		if entries[i].Email == user.Email {
			entries[i].Preferences = prefs
		}
	}
	if err := s.kv.SetJSON(ctx, usersKey, entries); err != nil {
		log.Printf("[WARN] failed to persist updated user directory: %v", err)
		return false
	}

	return true
}

// setUser swaps the active identity and notifies listeners outside the lock
func (s *Store) setUser(user *domain.User) {
	s.mu.Lock()
	s.user = user
	s.loggedIn = user != nil
	listeners := make([]func(*domain.User), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(copyUser(user))
	}
}

// loadDirectory reads the registered-user directory, seeding it with the
// sample account on first run
func (s *Store) loadDirectory(ctx context.Context) ([]directoryEntry, error) {
	var entries []directoryEntry
	ok, err := s.kv.GetJSON(ctx, usersKey, &entries)
	if err != nil {
		return nil, err
	}
	if !ok {
		entries = []directoryEntry{sampleUser}
		if err := s.kv.SetJSON(ctx, usersKey, entries); err != nil {
			return nil, err
		}
		log.Printf("[INFO] seeded user directory with sample account")
	}
	return entries, nil
}

// verifyEntry checks the password against hashed credentials, falling back
// to the legacy plaintext field for records written before hashing
func verifyEntry(e directoryEntry, password string) bool {
	if e.Credential != nil {
		return e.Credential.verify(password)
	}
	return subtle.ConstantTimeCompare([]byte(e.Password), []byte(password)) == 1
}

// entryUser strips credentials from a directory entry
func entryUser(e directoryEntry) domain.User {
	return domain.User{Email: e.Email, Name: e.Name, Preferences: e.Preferences}
}

func copyUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.Preferences.Categories = append([]domain.Category(nil), u.Preferences.Categories...)
	return &cp
}
