package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"media-gateway/domain/model"
	"media-gateway/infrastructure/taskpool"
	"media-gateway/usecase"
)

// stubExtractor lets each test script the extraction behavior.
type stubExtractor struct {
	fn func(ctx context.Context, target string, opts model.ExtractOptions) (*model.MediaInfo, error)
}

func (s *stubExtractor) Extract(ctx context.Context, target string, opts model.ExtractOptions) (*model.MediaInfo, error) {
	return s.fn(ctx, target, opts)
}

func TestGateway_URLMode(t *testing.T) {
	pool := taskpool.New(1)
	defer pool.Close()

	var seenTarget string
	gateway := usecase.NewExtractionGateway(pool, &stubExtractor{
		fn: func(ctx context.Context, target string, opts model.ExtractOptions) (*model.MediaInfo, error) {
			seenTarget = target
			return &model.MediaInfo{Title: "Video", Raw: map[string]interface{}{"title": "Video"}}, nil
		},
	})

	info, err := gateway.Execute(context.Background(), model.ExtractionRequest{URL: "https://example.com/v"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/v", seenTarget)
	assert.Equal(t, "Video", info.Title)
}

func TestGateway_SearchModeUsesFirstEntry(t *testing.T) {
	pool := taskpool.New(1)
	defer pool.Close()

	gateway := usecase.NewExtractionGateway(pool, &stubExtractor{
		fn: func(ctx context.Context, target string, opts model.ExtractOptions) (*model.MediaInfo, error) {
			assert.Equal(t, "ytsearch:cat videos", target)
			return &model.MediaInfo{
				Entries: []model.MediaInfo{
					{ID: "first", Title: "First hit"},
					{ID: "second", Title: "Second hit"},
				},
				Raw: map[string]interface{}{
					"entries": []interface{}{
						map[string]interface{}{"id": "first", "title": "First hit"},
						map[string]interface{}{"id": "second", "title": "Second hit"},
					},
				},
			}, nil
		},
	})

	info, err := gateway.Execute(context.Background(), model.ExtractionRequest{SearchQuery: "cat videos"})
	require.NoError(t, err)
	assert.Equal(t, "first", info.ID)
	assert.Equal(t, "first", info.Raw["id"], "the entry keeps its raw document")
}

func TestGateway_SearchModeEmptyEntriesIsNotFound(t *testing.T) {
	pool := taskpool.New(1)
	defer pool.Close()

	gateway := usecase.NewExtractionGateway(pool, &stubExtractor{
		fn: func(ctx context.Context, target string, opts model.ExtractOptions) (*model.MediaInfo, error) {
			return &model.MediaInfo{Raw: map[string]interface{}{"entries": []interface{}{}}}, nil
		},
	})

	_, err := gateway.Execute(context.Background(), model.ExtractionRequest{SearchQuery: "nothing"})
	assert.ErrorIs(t, err, model.ErrNoResults)
}

func TestGateway_TimeoutMapsToExtractTimeout(t *testing.T) {
	pool := taskpool.New(1)
	defer pool.Close()

	gateway := usecase.NewExtractionGateway(pool, &stubExtractor{
		fn: func(ctx context.Context, target string, opts model.ExtractOptions) (*model.MediaInfo, error) {
			select {
			case <-time.After(2 * time.Second):
				return &model.MediaInfo{}, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	})

	started := time.Now()
	_, err := gateway.Execute(context.Background(), model.ExtractionRequest{
		URL:     "https://example.com/slow",
		Timeout: 30 * time.Millisecond,
	})

	assert.ErrorIs(t, err, model.ErrExtractTimeout)
	assert.Less(t, time.Since(started), time.Second)
}

func TestGateway_UpstreamErrorPassesThrough(t *testing.T) {
	pool := taskpool.New(1)
	defer pool.Close()

	gateway := usecase.NewExtractionGateway(pool, &stubExtractor{
		fn: func(ctx context.Context, target string, opts model.ExtractOptions) (*model.MediaInfo, error) {
			return nil, model.NewUpstreamError("Unsupported URL: https://nope")
		},
	})

	_, err := gateway.Execute(context.Background(), model.ExtractionRequest{URL: "https://nope"})
	var upstream *model.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "Unsupported URL: https://nope", upstream.Message)
}
