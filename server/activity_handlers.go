package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/newsbyte/newsbyte/pkg/domain"
)

// likeHandler toggles the like state of an article for the current user
func (s *Server) likeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		renderError(w, r, fmt.Errorf("article url is required"), http.StatusBadRequest)
		return
	}

	if !s.sessions.IsLoggedIn() {
		renderError(w, r, fmt.Errorf("not logged in"), http.StatusUnauthorized)
		return
	}

	if !s.activities.ToggleLike(r.Context(), req.URL) {
		renderError(w, r, fmt.Errorf("failed to toggle like"), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]bool{"liked": s.activities.IsLiked(req.URL)})
}

// bookmarkHandler toggles a bookmark, the full article snapshot is saved
func (s *Server) bookmarkHandler(w http.ResponseWriter, r *http.Request) {
	var article domain.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil || article.URL == "" {
		renderError(w, r, fmt.Errorf("article with url is required"), http.StatusBadRequest)
		return
	}

	if !s.sessions.IsLoggedIn() {
		renderError(w, r, fmt.Errorf("not logged in"), http.StatusUnauthorized)
		return
	}

	if !s.activities.ToggleBookmark(r.Context(), article) {
		renderError(w, r, fmt.Errorf("failed to toggle bookmark"), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]bool{"bookmarked": s.activities.IsBookmarked(article.URL)})
}

// bookmarksHandler lists the current user's saved articles
func (s *Server) bookmarksHandler(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.IsLoggedIn() {
		renderError(w, r, fmt.Errorf("not logged in"), http.StatusUnauthorized)
		return
	}

	bookmarks := s.activities.BookmarkedArticles()
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"articles": bookmarks, "count": len(bookmarks)})
}

// commentsHandler returns the comment thread for an article
func (s *Server) commentsHandler(w http.ResponseWriter, r *http.Request) {
	articleID := r.URL.Query().Get("article_id")
	if articleID == "" {
		renderError(w, r, fmt.Errorf("article_id is required"), http.StatusBadRequest)
		return
	}

	comments := s.activities.ArticleComments(articleID)
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"comments": comments, "count": len(comments)})
}

// addCommentHandler appends a comment to an article's thread
func (s *Server) addCommentHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArticleID string `json:"article_id"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ArticleID == "" {
		renderError(w, r, fmt.Errorf("article_id is required"), http.StatusBadRequest)
		return
	}

	if !s.sessions.IsLoggedIn() {
		renderError(w, r, fmt.Errorf("not logged in"), http.StatusUnauthorized)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		renderError(w, r, fmt.Errorf("comment text is empty"), http.StatusBadRequest)
		return
	}

	if !s.activities.AddComment(r.Context(), req.ArticleID, req.Text) {
		renderError(w, r, fmt.Errorf("failed to add comment"), http.StatusInternalServerError)
		return
	}

	comments := s.activities.ArticleComments(req.ArticleID)
	renderJSON(w, r, http.StatusCreated, map[string]interface{}{"comments": comments, "count": len(comments)})
}
