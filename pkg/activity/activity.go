// Package activity tracks per-user likes, bookmarks and comment threads,
// scoped and persisted by the active user's email.
package activity

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/newsbyte/newsbyte/pkg/domain"
	"github.com/newsbyte/newsbyte/pkg/store"
)

// storage key prefixes, kept compatible with what the mobile client persisted
const (
	likesKeyPrefix     = "newsbyte_likes"
	bookmarksKeyPrefix = "newsbyte_bookmarks"
	commentsKeyPrefix  = "newsbyte_comments"
)

// SessionSource provides the active identity and change notifications
type SessionSource interface {
	User() *domain.User
	OnChange(func(*domain.User))
}

// Store keeps the current user's activity in memory and persists every
// mutation. When the active identity changes it reloads all scoped state
// for the new user, or clears it on logout. Storage failures are logged
// and converted into boolean results.
type Store struct {
	kv *store.Store

	mu        sync.RWMutex
	user      *domain.User
	likes     []string
	bookmarks []domain.Article
	comments  map[string][]domain.Comment
	lastID    int64

	now func() time.Time
}

// New creates the activity store, loads state for the session's current
// user and subscribes to identity changes
func New(kv *store.Store, sessions SessionSource) *Store {
	s := &Store{kv: kv, comments: map[string][]domain.Comment{}, now: time.Now}
	s.setUser(sessions.User())
	sessions.OnChange(s.setUser)
	return s
}

// ToggleLike flips membership of the article URL in the liked set.
// Returns false when no user is logged in or persistence fails.
func (s *Store) ToggleLike(ctx context.Context, articleURL string) bool {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return false
	}

	found := false
	for i, url := range s.likes {
		if url == articleURL {
			s.likes = append(s.likes[:i], s.likes[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.likes = append(s.likes, articleURL)
	}

	key := userKey(likesKeyPrefix, s.user.Email)
	likes := append([]string(nil), s.likes...)
	s.mu.Unlock()

	if err := s.kv.SetJSON(ctx, key, likes); err != nil {
		log.Printf("[WARN] failed to persist likes: %v", err)
		return false
	}
	return true
}

// ToggleBookmark removes the bookmark with a matching URL if present,
// otherwise appends the full article snapshot
func (s *Store) ToggleBookmark(ctx context.Context, article domain.Article) bool {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return false
	}

	found := false
	for i, b := range s.bookmarks {
		if b.URL == article.URL {
			s.bookmarks = append(s.bookmarks[:i], s.bookmarks[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.bookmarks = append(s.bookmarks, article)
	}

	key := userKey(bookmarksKeyPrefix, s.user.Email)
	bookmarks := append([]domain.Article(nil), s.bookmarks...)
	s.mu.Unlock()

	if err := s.kv.SetJSON(ctx, key, bookmarks); err != nil {
		log.Printf("[WARN] failed to persist bookmarks: %v", err)
		return false
	}
	return true
}

// IsLiked reports whether the article URL is in the current liked set
func (s *Store) IsLiked(articleURL string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, url := range s.likes {
		if url == articleURL {
			return true
		}
	}
	return false
}

// IsBookmarked reports whether an article with this URL is bookmarked
func (s *Store) IsBookmarked(articleURL string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookmarks {
		if b.URL == articleURL {
			return true
		}
	}
	return false
}

// AddComment appends a comment to the article's thread. Returns false when
// no user is logged in, the text is empty after trimming, or persistence
// fails. Comment IDs are time-derived and monotonic within the store.
func (s *Store) AddComment(ctx context.Context, articleID, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return false
	}

	created := s.now()
	id := created.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	comment := domain.Comment{
		ID:        strconv.FormatInt(id, 10),
		ArticleID: articleID,
		User:      s.user.Name,
		Text:      text,
		Time:      "Just now",
		CreatedAt: created,
	}
	s.comments[articleID] = append(s.comments[articleID], comment)

	key := userKey(commentsKeyPrefix, s.user.Email)
	comments := copyComments(s.comments)
	s.mu.Unlock()

	if err := s.kv.SetJSON(ctx, key, comments); err != nil {
		log.Printf("[WARN] failed to persist comments: %v", err)
		return false
	}
	return true
}

// ArticleComments returns the thread for an article in insertion order,
// with relative-time labels recomputed against the current time
func (s *Store) ArticleComments(articleID string) []domain.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	thread := s.comments[articleID]
	result := make([]domain.Comment, len(thread))
	now := s.now()
	for i, c := range thread {
		c.Time = domain.RelativeTime(c.CreatedAt, now)
		result[i] = c
	}
	return result
}

// BookmarkedArticles returns the current bookmark list in saved order
func (s *Store) BookmarkedArticles() []domain.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Article(nil), s.bookmarks...)
}

// setUser swaps the active identity and reloads or clears scoped state
func (s *Store) setUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	s.likes = nil
	s.bookmarks = nil
	s.comments = map[string][]domain.Comment{}
	s.lastID = 0

	if user == nil {
		return
	}

	ctx := context.Background()
	if _, err := s.kv.GetJSON(ctx, userKey(likesKeyPrefix, user.Email), &s.likes); err != nil {
		log.Printf("[WARN] failed to load likes for %s: %v", user.Email, err)
	}
	if _, err := s.kv.GetJSON(ctx, userKey(bookmarksKeyPrefix, user.Email), &s.bookmarks); err != nil {
		log.Printf("[WARN] failed to load bookmarks for %s: %v", user.Email, err)
	}
	if _, err := s.kv.GetJSON(ctx, userKey(commentsKeyPrefix, user.Email), &s.comments); err != nil {
		log.Printf("[WARN] failed to load comments for %s: %v", user.Email, err)
	}
	if s.comments == nil {
		s.comments = map[string][]domain.Comment{}
	}

	// keep comment IDs monotonic across reloads
	for _, thread := range s.comments {
		for _, c := range thread {
			if id, err := strconv.ParseInt(c.ID, 10, 64); err == nil && id > s.lastID {
				s.lastID = id
			}
		}
	}
}

func userKey(prefix, email string) string {
	return fmt.Sprintf("%s_%s", prefix, email)
}

func copyComments(m map[string][]domain.Comment) map[string][]domain.Comment {
	cp := make(map[string][]domain.Comment, len(m))
	for k, v := range m {
		cp[k] = append([]domain.Comment(nil), v...)
	}
	return cp
}
