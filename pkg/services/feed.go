package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"opphub/pkg/models"
)

// FeedService resolves a category to its published feed and decodes it.
type FeedService struct {
	cache   *FeedCache
	baseURL string
}

// NewFeedService wires a cache over the given fetcher. baseURL is empty for
// local data-directory mode; otherwise feed identifiers are baseURL/slug.json.
func NewFeedService(fetcher Fetcher, baseURL string) *FeedService {
	return &FeedService{
		cache:   NewFeedCache(fetcher),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FeedURL returns the resource identifier for a category's published array.
func (s *FeedService) FeedURL(cat models.Category) string {
	slug := models.FeedSlugs[cat]
	if s.baseURL != "" {
		return s.baseURL + "/" + slug + ".json"
	}
	return slug + ".json"
}

// Raw returns the published JSON array for a category, cache-backed.
func (s *FeedService) Raw(ctx context.Context, cat models.Category) ([]byte, error) {
	return s.cache.Get(ctx, s.FeedURL(cat))
}

// Items loads and decodes a category's feed. Individual malformed records
// degrade to placeholder fields; they never abort the whole list.
func (s *FeedService) Items(ctx context.Context, cat models.Category) ([]models.Item, error) {
	raw, err := s.Raw(ctx, cat)
	if err != nil {
		return nil, err
	}
	items, err := DecodeItems(raw, cat)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", s.FeedURL(cat), err)
	}
	return items, nil
}

// Invalidate drops a category's cached feed.
func (s *FeedService) Invalidate(cat models.Category) {
	s.cache.Invalidate(s.FeedURL(cat))
}

// DecodeItems parses a feed array element by element so one bad record does
// not take down its neighbors. Records that fail to decode entirely are
// kept as placeholders rather than dropped.
func DecodeItems(raw []byte, cat models.Category) ([]models.Item, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("not a JSON array: %w", err)
	}

	items := make([]models.Item, 0, len(elements))
	for i, el := range elements {
		var it models.Item
		if err := json.Unmarshal(el, &it); err != nil {
			it = models.Item{}
		}
		items = append(items, normalizeItem(it, cat, i))
	}
	return items, nil
}

func normalizeItem(it models.Item, cat models.Category, idx int) models.Item {
	if it.Category == "" {
		it.Category = cat
	}
	if it.ID == "" {
		it.ID = fmt.Sprintf("%s-%d", cat, idx)
	}
	if it.Title == "" {
		it.Title = "(untitled)"
	}
	if it.SourceName == "" {
		it.SourceName = sourceNameFromURL(it.SourceURL)
	}
	if it.Tags == nil {
		it.Tags = []string{}
	}
	return it
}

func sourceNameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "unknown source"
	}
	return u.Host
}
