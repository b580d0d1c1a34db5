package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/newsbyte/newsbyte/pkg/domain"
)

// feedArticle is an article annotated with the current user's state
type feedArticle struct {
	domain.Article
	Liked      bool `json:"liked"`
	Bookmarked bool `json:"bookmarked"`
}

// articlesHandler returns articles for a category, annotated with the
// current user's like/bookmark state
func (s *Server) articlesHandler(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.URL.Query().Get("category"))
	if category == "" {
		category = domain.CategoryGeneral
	}
	if !category.Valid() {
		renderError(w, r, fmt.Errorf("unknown category %q", category), http.StatusBadRequest)
		return
	}

	articles, err := s.feeds.Articles(r.Context(), category)
	if err != nil {
		log.Printf("[ERROR] failed to get articles for %s: %v", category, err)
		renderError(w, r, fmt.Errorf("failed to load articles"), http.StatusInternalServerError)
		return
	}

	result := make([]feedArticle, len(articles))
	for i, a := range articles {
		result[i] = feedArticle{
			Article:    a,
			Liked:      s.activities.IsLiked(a.URL),
			Bookmarked: s.activities.IsBookmarked(a.URL),
		}
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"category": category,
		"articles": result,
		"count":    len(result),
	})
}

// articleContentHandler extracts readable text for the reader view
func (s *Server) articleContentHandler(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		renderError(w, r, fmt.Errorf("url is required"), http.StatusBadRequest)
		return
	}

	result, err := s.extractor.Extract(r.Context(), url)
	if err != nil {
		log.Printf("[WARN] content extraction failed for %s: %v", url, err)
		renderError(w, r, fmt.Errorf("failed to extract content"), http.StatusBadGateway)
		return
	}

	renderJSON(w, r, http.StatusOK, result)
}
