// Package feed provides category-scoped news articles fetched from
// configured RSS/Atom sources, with embedded samples as a fallback.
package feed

import (
	"context"
	"fmt"
	"html"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/newsbyte/newsbyte/pkg/domain"
)

// descriptionWords caps how many words of a feed item description are kept
const descriptionWords = 60

// Source is a single RSS/Atom source serving one category
type Source struct {
	Name string
	URL  string
}

// Fetcher retrieves and normalizes articles from RSS/Atom sources
type Fetcher struct {
	parser   *gofeed.Parser
	sanitize *bluemonday.Policy
	sources  map[domain.Category][]Source
	timeout  time.Duration
}

// NewFetcher creates a fetcher over the per-category source map
func NewFetcher(sources map[domain.Category][]Source, timeout time.Duration, userAgent string) *Fetcher {
	parser := gofeed.NewParser()
	if userAgent != "" {
		parser.UserAgent = userAgent
	}
	return &Fetcher{
		parser:   parser,
		sanitize: bluemonday.StrictPolicy(),
		sources:  sources,
		timeout:  timeout,
	}
}

// Fetch retrieves articles for a category from all its sources, newest
// first. Sources are fetched concurrently, a failing source is logged and
// skipped. When the category has no sources or every fetch fails, the
// embedded sample articles are returned instead.
func (f *Fetcher) Fetch(ctx context.Context, category domain.Category) ([]domain.Article, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	sources := f.sources[category]
	if len(sources) == 0 {
		return sampleArticles(category), nil
	}

	var mu sync.Mutex
	var articles []domain.Article

	g, ctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		g.Go(func() error {
			items, err := f.fetchSource(ctx, src, category)
			if err != nil {
				log.Printf("[WARN] failed to fetch %s (%s): %v", src.Name, src.URL, err)
				return nil // other sources still count
			}
			mu.Lock()
			articles = append(articles, items...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(articles) == 0 {
		log.Printf("[WARN] no articles fetched for %s, falling back to samples", category)
		return sampleArticles(category), nil
	}

	sort.Slice(articles, func(i, j int) bool { return articles[i].Published.After(articles[j].Published) })
	return articles, nil
}

// fetchSource retrieves one source and converts its items to articles
func (f *Fetcher) fetchSource(ctx context.Context, src Source, category domain.Category) ([]domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parsed, err := f.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", src.URL, err)
	}

	sourceName := src.Name
	if sourceName == "" {
		sourceName = parsed.Title
	}

	articles := make([]domain.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}

		article := domain.Article{
			URL:         item.Link,
			Title:       f.cleanText(item.Title),
			Description: domain.TruncateWords(f.cleanText(item.Description), descriptionWords),
			Content:     f.cleanText(item.Content),
			Source:      sourceName,
			Category:    category,
		}

		if item.Image != nil {
			article.ImageURL = item.Image.URL
		}
		if item.PublishedParsed != nil {
			article.Published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			article.Published = *item.UpdatedParsed
		}

		articles = append(articles, article)
	}
	return articles, nil
}

// cleanText strips HTML markup and collapses the result to plain text
func (f *Fetcher) cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(f.sanitize.Sanitize(s)))
}
