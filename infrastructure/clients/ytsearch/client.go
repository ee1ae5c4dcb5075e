// Package ytsearch scrapes the public results page for the fast metadata
// path. It is deliberately minimal: first-page results only, no continuation
// tokens, no API key.
package ytsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"media-gateway/domain/model"
	"media-gateway/domain/repository"

	"github.com/google/go-querystring/query"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Client implements repository.ISearchProvider against the results page.
type Client struct {
	host       string
	httpClient *http.Client
}

type searchParams struct {
	Query    string `url:"search_query"`
	Language string `url:"hl"`
}

// NewClient creates a search client for the given host, e.g.
// "https://www.youtube.com".
func NewClient(host string) repository.ISearchProvider {
	return &Client{
		host:       host,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Search fetches the results page for the query and returns up to maxResults
// video items.
func (c *Client) Search(ctx context.Context, q string, maxResults int) ([]model.SearchItem, error) {
	params, err := query.Values(searchParams{Query: q, Language: "en"})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/results?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return ParseResults(body, maxResults)
}

// ParseResults extracts video items from a results-page document.
func ParseResults(body []byte, maxResults int) ([]model.SearchItem, error) {
	data, err := initialData(body)
	if err != nil {
		return nil, err
	}

	sections, ok := dig(data,
		"contents", "twoColumnSearchResultsRenderer", "primaryContents",
		"sectionListRenderer", "contents").([]interface{})
	if !ok {
		return nil, errors.New("unexpected results page structure")
	}

	var items []model.SearchItem
	for _, section := range sections {
		videos, ok := dig(section, "itemSectionRenderer", "contents").([]interface{})
		if !ok {
			continue
		}
		for _, entry := range videos {
			renderer, ok := dig(entry, "videoRenderer").(map[string]interface{})
			if !ok {
				continue
			}
			item := renderItem(renderer)
			if item.ID == "" {
				continue
			}
			items = append(items, item)
			if maxResults > 0 && len(items) >= maxResults {
				return items, nil
			}
		}
	}
	return items, nil
}

func renderItem(renderer map[string]interface{}) model.SearchItem {
	id, _ := dig(renderer, "videoId").(string)
	title, _ := dig(renderer, "title", "runs", 0, "text").(string)
	duration, _ := dig(renderer, "lengthText", "simpleText").(string)
	thumbnail, _ := dig(renderer, "thumbnail", "thumbnails", 0, "url").(string)

	return model.SearchItem{
		ID:        id,
		Title:     title,
		URLSuffix: "/watch?v=" + id,
		Duration:  duration,
		Thumbnail: thumbnail,
	}
}

// initialData locates and decodes the embedded ytInitialData JSON blob.
func initialData(body []byte) (map[string]interface{}, error) {
	const marker = "ytInitialData = "
	start := bytes.Index(body, []byte(marker))
	if start < 0 {
		return nil, errors.New("results payload not found")
	}
	rest := body[start+len(marker):]
	end := bytes.Index(rest, []byte(";</script>"))
	if end < 0 {
		return nil, errors.New("results payload not terminated")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(rest[:end], &data); err != nil {
		return nil, fmt.Errorf("decoding results payload: %w", err)
	}
	return data, nil
}

// dig walks nested maps and slices by string key or int index, returning nil
// as soon as a step does not match.
func dig(value interface{}, path ...interface{}) interface{} {
	current := value
	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := current.(map[string]interface{})
			if !ok {
				return nil
			}
			current = m[key]
		case int:
			s, ok := current.([]interface{})
			if !ok || key < 0 || key >= len(s) {
				return nil
			}
			current = s[key]
		default:
			return nil
		}
	}
	return current
}
