// Package server exposes the session, activity and feed stores over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/newsbyte/newsbyte/pkg/content"
	"github.com/newsbyte/newsbyte/pkg/domain"
)

// Server represents HTTP server instance
type Server struct {
	config     ConfigProvider
	sessions   Sessions
	activities Activities
	feeds      Feeds
	extractor  Extractor
	version    string
	debug      bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Sessions is the session store surface the server needs
type Sessions interface {
	Login(ctx context.Context, email, password string) bool
	Signup(ctx context.Context, name, email, password string, language domain.Language, categories []domain.Category) bool
	Logout(ctx context.Context)
	UpdatePreferences(ctx context.Context, language domain.Language, categories []domain.Category) bool
	User() *domain.User
	IsLoggedIn() bool
}

// Activities is the user-activity store surface the server needs
type Activities interface {
	ToggleLike(ctx context.Context, articleURL string) bool
	ToggleBookmark(ctx context.Context, article domain.Article) bool
	IsLiked(articleURL string) bool
	IsBookmarked(articleURL string) bool
	AddComment(ctx context.Context, articleID, text string) bool
	ArticleComments(articleID string) []domain.Comment
	BookmarkedArticles() []domain.Article
}

// Feeds provides category-scoped articles
type Feeds interface {
	Articles(ctx context.Context, category domain.Category) ([]domain.Article, error)
}

// Extractor pulls readable content from article pages
type Extractor interface {
	Extract(ctx context.Context, url string) (*content.Result, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, sessions Sessions, activities Activities, feeds Feeds, extractor Extractor, version string, debug bool) *Server {
	s := &Server{
		config:     cfg,
		sessions:   sessions,
		activities: activities,
		feeds:      feeds,
		extractor:  extractor,
		version:    version,
		debug:      debug,
		router:     routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newsbyte", "newsbyte", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("POST /auth/login", s.loginHandler)
		r.HandleFunc("POST /auth/signup", s.signupHandler)
		r.HandleFunc("POST /auth/logout", s.logoutHandler)
		r.HandleFunc("PUT /auth/preferences", s.preferencesHandler)
		r.HandleFunc("GET /auth/session", s.sessionHandler)

		r.HandleFunc("GET /articles", s.articlesHandler)
		r.HandleFunc("GET /articles/content", s.articleContentHandler)
		r.HandleFunc("POST /articles/like", s.likeHandler)
		r.HandleFunc("POST /articles/bookmark", s.bookmarkHandler)
		r.HandleFunc("GET /articles/comments", s.commentsHandler)
		r.HandleFunc("POST /articles/comments", s.addCommentHandler)

		r.HandleFunc("GET /bookmarks", s.bookmarksHandler)
	})
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}
