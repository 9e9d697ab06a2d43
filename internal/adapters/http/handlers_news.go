package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"bizkit/internal/application/orchestrators"
	"bizkit/internal/domain/news"
)

// maxMetadataBody caps how much of a page is read for tag extraction.
const maxMetadataBody = 512 * 1024

// pageFetcher retrieves page HTML for open-graph extraction.
type pageFetcher struct {
	client *http.Client
}

func newPageFetcher() *pageFetcher {
	return &pageFetcher{client: &http.Client{Timeout: 10 * time.Second}}
}

// Fetch downloads the page body, capped at maxMetadataBody bytes.
func (f *pageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "bizkit/1.0 (+link preview)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataBody))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

var (
	newsFetcher   orchestrators.PageFetcher = newPageFetcher()
	newsMetaCache                           = gocache.New(time.Hour, 2*time.Hour)
)

type newsView struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

func newsListResponse(items []news.Item) map[string]any {
	views := make([]newsView, 0, len(items))
	for _, n := range items {
		views = append(views, newsView{
			ID:        n.ID,
			URL:       n.URL,
			Title:     n.Title,
			Image:     n.Image,
			Source:    n.Source,
			CreatedAt: n.CreatedAt,
		})
	}
	return map[string]any{"items": views}
}

// handleNews handles GET/POST/DELETE for /api/news. POST saves a URL and
// extracts page metadata server-side.
func handleNews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	deps := orchestrators.NewsDeps{
		NewsStore:  stores.NewsStore,
		Fetcher:    newsFetcher,
		MetaCache:  newsMetaCache,
		GenerateID: generateID,
		Now:        timeNow,
	}

	switch r.Method {
	case "GET":
		items, err := stores.NewsStore.ListByUser(ctx, sess.AccountID)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newsListResponse(items))

	case "POST":
		release, ok := acquireView(w, "news")
		if !ok {
			return
		}
		defer release()

		var input struct {
			URL string `json:"url"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		items, err := orchestrators.ExecuteAddNews(ctx, orchestrators.AddNewsInput{
			UserID: sess.AccountID,
			URL:    input.URL,
		}, deps)
		if err != nil {
			writeMutationError(w, err, newsListResponse(items))
			return
		}
		writeJSON(w, http.StatusCreated, newsListResponse(items))

	case "DELETE":
		release, ok := acquireView(w, "news")
		if !ok {
			return
		}
		defer release()

		var input struct {
			ID string `json:"id"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		items, err := orchestrators.ExecuteDeleteNews(ctx, input.ID, deps)
		if err != nil {
			writeMutationError(w, err, newsListResponse(items))
			return
		}
		writeJSON(w, http.StatusOK, newsListResponse(items))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
