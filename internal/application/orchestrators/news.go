package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"bizkit/internal/domain/news"
)

// NewsStoreForOrchestrator defines the store interface needed by news
// orchestrators.
type NewsStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (news.Item, error)
	Save(ctx context.Context, n news.Item) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]news.Item, error)
}

// PageFetcher retrieves the HTML body of a URL for metadata extraction.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// NewsDeps holds dependencies for news orchestrators.
type NewsDeps struct {
	NewsStore  NewsStoreForOrchestrator
	Fetcher    PageFetcher    // optional: nil skips metadata extraction
	MetaCache  *gocache.Cache // optional: caches extracted metadata per URL
	GenerateID func() string
	Now        func() time.Time
}

// AddNewsInput carries input for the add news orchestrator.
type AddNewsInput struct {
	UserID string
	URL    string
}

// PageMetadata is what the open-graph tags of a page yield.
type PageMetadata struct {
	Title  string
	Image  string
	Source string
}

// Open-graph tags come in both attribute orders in the wild.
var (
	ogTitleRe    = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']*)["']|<meta[^>]+content=["']([^"']*)["'][^>]+property=["']og:title["']`)
	ogImageRe    = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:image["'][^>]+content=["']([^"']*)["']|<meta[^>]+content=["']([^"']*)["'][^>]+property=["']og:image["']`)
	ogSiteNameRe = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:site_name["'][^>]+content=["']([^"']*)["']|<meta[^>]+content=["']([^"']*)["'][^>]+property=["']og:site_name["']`)
	titleTagRe   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
)

// ExtractMetadata pulls og:title, og:image and og:site_name out of an
// HTML document, falling back to the <title> tag.
// PRE: none
// POST: pure; absent tags leave empty fields
func ExtractMetadata(html string) PageMetadata {
	meta := PageMetadata{
		Title:  firstGroup(ogTitleRe.FindStringSubmatch(html)),
		Image:  firstGroup(ogImageRe.FindStringSubmatch(html)),
		Source: firstGroup(ogSiteNameRe.FindStringSubmatch(html)),
	}
	if meta.Title == "" {
		if m := titleTagRe.FindStringSubmatch(html); m != nil {
			meta.Title = m[1]
		}
	}
	return meta
}

func firstGroup(m []string) string {
	for i := 1; i < len(m); i++ {
		if m[i] != "" {
			return m[i]
		}
	}
	return ""
}

// ExecuteAddNews saves a news link with page metadata and returns the
// refreshed list. Fetch failures degrade to fallback metadata rather
// than failing the save.
// PRE: input.UserID and input.URL are non-empty
// POST: the item is saved with a title ("No title" when none found) and
// a source (URL hostname when none found)
func ExecuteAddNews(ctx context.Context, input AddNewsInput, deps NewsDeps) ([]news.Item, error) {
	if input.UserID == "" {
		return nil, invalid(errors.New("user ID is required"))
	}

	n := news.Item{
		ID:        deps.GenerateID(),
		UserID:    input.UserID,
		URL:       input.URL,
		CreatedAt: deps.Now(),
	}

	if err := n.Validate(); err != nil {
		return refetchNews(ctx, deps, input.UserID, invalid(err))
	}

	meta := lookupMetadata(ctx, deps, input.URL)
	n.Title = meta.Title
	n.Image = meta.Image
	n.Source = meta.Source
	if n.Title == "" {
		n.Title = "No title"
	}
	if n.Source == "" {
		n.Source = n.Hostname()
	}

	if err := deps.NewsStore.Save(ctx, n); err != nil {
		slog.Error("news_event", "event", "add_failed", "news_id", n.ID, "error", err)
		return refetchNews(ctx, deps, input.UserID, err)
	}

	slog.Info("news_event", "event", "news_added", "news_id", n.ID, "source", n.Source)
	return refetchNews(ctx, deps, input.UserID, nil)
}

// ExecuteDeleteNews removes a saved link and returns the refreshed list.
// PRE: newsID names an existing item
// POST: the refreshed list is returned even when the delete fails
func ExecuteDeleteNews(ctx context.Context, newsID string, deps NewsDeps) ([]news.Item, error) {
	if newsID == "" {
		return nil, invalid(errors.New("news ID is required"))
	}

	existing, err := deps.NewsStore.GetByID(ctx, newsID)
	if err != nil {
		return nil, err
	}

	if err := deps.NewsStore.Delete(ctx, newsID); err != nil {
		slog.Error("news_event", "event", "delete_failed", "news_id", newsID, "error", err)
		return refetchNews(ctx, deps, existing.UserID, err)
	}

	slog.Info("news_event", "event", "news_deleted", "news_id", newsID)
	return refetchNews(ctx, deps, existing.UserID, nil)
}

func lookupMetadata(ctx context.Context, deps NewsDeps, url string) PageMetadata {
	if deps.MetaCache != nil {
		if v, ok := deps.MetaCache.Get(url); ok {
			return v.(PageMetadata)
		}
	}
	if deps.Fetcher == nil {
		return PageMetadata{}
	}

	html, err := deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		slog.Warn("news_event", "event", "metadata_fetch_failed", "url", url, "error", err)
		return PageMetadata{}
	}
	meta := ExtractMetadata(html)
	if deps.MetaCache != nil {
		deps.MetaCache.Set(url, meta, gocache.DefaultExpiration)
	}
	return meta
}

func refetchNews(ctx context.Context, deps NewsDeps, userID string, opErr error) ([]news.Item, error) {
	items, err := deps.NewsStore.ListByUser(ctx, userID)
	if opErr != nil {
		return items, opErr
	}
	return items, err
}
