package usecase

import (
	"context"
	"fmt"
	"time"

	"media-gateway/domain/dto"
	"media-gateway/domain/model"
	"media-gateway/domain/repository"
)

// Timeouts holds per-route extraction deadlines. Zero means wait
// indefinitely.
type Timeouts struct {
	Meta     time.Duration
	Full     time.Duration
	Channel  time.Duration
	Playlist time.Duration
	Social   time.Duration
	Download time.Duration
}

// IMediaUseCase defines the operations behind the HTTP surface. Cached
// operations return the JSON-serializable value that was (or will be)
// cached, so callers must not assume concrete types after a cache hit.
type IMediaUseCase interface {
	Home(ctx context.Context, refresh bool) (interface{}, error)
	FastMeta(ctx context.Context, searchQuery, url string, refresh bool) (interface{}, error)
	Meta(ctx context.Context, searchQuery, url string, refresh bool) (interface{}, error)
	All(ctx context.Context, searchQuery, url string) (interface{}, error)
	Channel(ctx context.Context, idOrURL string, refresh bool) (interface{}, error)
	Playlist(ctx context.Context, idOrURL string, refresh bool) (interface{}, error)
	Social(ctx context.Context, platform, url string, refresh bool) (interface{}, error)
	DownloadFormats(ctx context.Context, cacheKey, searchQuery, url string, refresh bool) (interface{}, error)
	AudioFormats(ctx context.Context, searchQuery, url string) (interface{}, error)
	VideoFormats(ctx context.Context, searchQuery, url string) (interface{}, error)
}

// MediaUseCase wires the gateway, the search provider and the response cache
// into the per-route cache-check / extract / shape / cache-set flow.
type MediaUseCase struct {
	gateway          IExtractionGateway
	search           repository.ISearchProvider
	cache            repository.IResponseCache
	timeouts         Timeouts
	maxSearchResults int
}

// NewMediaUseCase creates the media use case.
func NewMediaUseCase(
	gateway IExtractionGateway,
	search repository.ISearchProvider,
	cache repository.IResponseCache,
	timeouts Timeouts,
	maxSearchResults int,
) IMediaUseCase {
	if maxSearchResults <= 0 {
		maxSearchResults = 1
	}
	return &MediaUseCase{
		gateway:          gateway,
		search:           search,
		cache:            cache,
		timeouts:         timeouts,
		maxSearchResults: maxSearchResults,
	}
}

// resolve is the shared route template: bypass deletes the entry, a hit
// short-circuits, a miss computes, caches and returns. An empty key disables
// caching for the operation. Concurrent misses may compute independently;
// recomputation is idempotent so last-write-wins is fine.
func (u *MediaUseCase) resolve(ctx context.Context, key string, refresh bool, compute func() (interface{}, error)) (interface{}, error) {
	if key != "" {
		if refresh {
			u.cache.Delete(ctx, key)
		} else if value, ok := u.cache.Get(ctx, key); ok {
			return value, nil
		}
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}
	if key != "" {
		u.cache.Set(ctx, key, value)
	}
	return value, nil
}

// Home returns the cached liveness message.
func (u *MediaUseCase) Home(ctx context.Context, refresh bool) (interface{}, error) {
	return u.resolve(ctx, "home", refresh, func() (interface{}, error) {
		return &dto.HomeResponse{Message: "media-gateway is alive"}, nil
	})
}

// FastMeta returns minimal metadata quickly: searches go through the
// lightweight provider, URLs through a short-deadline extraction.
func (u *MediaUseCase) FastMeta(ctx context.Context, searchQuery, url string, refresh bool) (interface{}, error) {
	key := fmt.Sprintf("fast_meta:%s:%s", searchQuery, url)
	return u.resolve(ctx, key, refresh, func() (interface{}, error) {
		if searchQuery != "" {
			items, err := u.search.Search(ctx, searchQuery, u.maxSearchResults)
			if err != nil {
				return nil, err
			}
			if len(items) == 0 {
				return nil, model.ErrNoResults
			}
			return ShapeFastMetaFromSearch(&items[0]), nil
		}

		info, err := u.gateway.Execute(ctx, model.ExtractionRequest{
			URL:     url,
			Opts:    model.ExtractOptions{NoPlaylist: true},
			Timeout: u.timeouts.Meta,
		})
		if err != nil {
			return nil, err
		}
		return ShapeFastMetaFromInfo(info), nil
	})
}

// Meta returns the allowlisted metadata projection.
func (u *MediaUseCase) Meta(ctx context.Context, searchQuery, url string, refresh bool) (interface{}, error) {
	key := fmt.Sprintf("meta:%s:%s", searchQuery, url)
	return u.resolve(ctx, key, refresh, func() (interface{}, error) {
		info, err := u.gateway.Execute(ctx, model.ExtractionRequest{
			URL:         url,
			SearchQuery: searchQuery,
			Opts:        model.ExtractOptions{NoPlaylist: true},
			Timeout:     u.timeouts.Meta,
		})
		if err != nil {
			return nil, err
		}
		return &dto.MetaResponse{Metadata: MetaProjection(info)}, nil
	})
}

// All runs a full extraction and returns metadata, classified formats and
// suggestions. Uncached: the format stream URLs expire too quickly to be
// worth keeping.
func (u *MediaUseCase) All(ctx context.Context, searchQuery, url string) (interface{}, error) {
	info, err := u.gateway.Execute(ctx, model.ExtractionRequest{
		URL:         url,
		SearchQuery: searchQuery,
		Timeout:     u.timeouts.Full,
	})
	if err != nil {
		return nil, err
	}
	return ShapeAll(info), nil
}

// Channel returns channel metadata for an id or URL.
func (u *MediaUseCase) Channel(ctx context.Context, idOrURL string, refresh bool) (interface{}, error) {
	key := "channel:" + idOrURL
	return u.resolve(ctx, key, refresh, func() (interface{}, error) {
		info, err := u.gateway.Execute(ctx, model.ExtractionRequest{
			URL:     idOrURL,
			Opts:    model.ExtractOptions{NoPlaylist: true},
			Timeout: u.timeouts.Channel,
		})
		if err != nil {
			return nil, err
		}
		return ShapeChannel(info), nil
	})
}

// Playlist returns playlist metadata plus its entry list.
func (u *MediaUseCase) Playlist(ctx context.Context, idOrURL string, refresh bool) (interface{}, error) {
	key := "playlist:" + idOrURL
	return u.resolve(ctx, key, refresh, func() (interface{}, error) {
		info, err := u.gateway.Execute(ctx, model.ExtractionRequest{
			URL:     idOrURL,
			Timeout: u.timeouts.Playlist,
		})
		if err != nil {
			return nil, err
		}
		return ShapePlaylist(info), nil
	})
}

// Social returns the near-raw extraction for single social-media assets.
// These routes intentionally skip the metadata allowlist.
func (u *MediaUseCase) Social(ctx context.Context, platform, url string, refresh bool) (interface{}, error) {
	key := fmt.Sprintf("%s:%s", platform, url)
	return u.resolve(ctx, key, refresh, func() (interface{}, error) {
		info, err := u.gateway.Execute(ctx, model.ExtractionRequest{
			URL:     url,
			Opts:    model.ExtractOptions{NoPlaylist: true},
			Timeout: u.timeouts.Social,
		})
		if err != nil {
			return nil, err
		}
		return rawOf(info), nil
	})
}

// DownloadFormats returns the full classified format list, cached under the
// literal request path so distinct parameter combinations never collide.
func (u *MediaUseCase) DownloadFormats(ctx context.Context, cacheKey, searchQuery, url string, refresh bool) (interface{}, error) {
	return u.resolve(ctx, cacheKey, refresh, func() (interface{}, error) {
		info, err := u.gateway.Execute(ctx, model.ExtractionRequest{
			URL:         url,
			SearchQuery: searchQuery,
			Timeout:     u.timeouts.Download,
		})
		if err != nil {
			return nil, err
		}
		return &dto.FormatListResponse{Formats: BuildFormats(info)}, nil
	})
}

// AudioFormats returns formats carrying an audio track.
func (u *MediaUseCase) AudioFormats(ctx context.Context, searchQuery, url string) (interface{}, error) {
	formats, err := u.extractFormats(ctx, searchQuery, url)
	if err != nil {
		return nil, err
	}
	return &dto.AudioFormatsResponse{
		AudioFormats: FilterFormats(formats, dto.KindAudioOnly, dto.KindProgressive),
	}, nil
}

// VideoFormats returns formats carrying a video track.
func (u *MediaUseCase) VideoFormats(ctx context.Context, searchQuery, url string) (interface{}, error) {
	formats, err := u.extractFormats(ctx, searchQuery, url)
	if err != nil {
		return nil, err
	}
	return &dto.VideoFormatsResponse{
		VideoFormats: FilterFormats(formats, dto.KindVideoOnly, dto.KindProgressive),
	}, nil
}

func (u *MediaUseCase) extractFormats(ctx context.Context, searchQuery, url string) ([]dto.FormatDescriptor, error) {
	info, err := u.gateway.Execute(ctx, model.ExtractionRequest{
		URL:         url,
		SearchQuery: searchQuery,
		Timeout:     u.timeouts.Full,
	})
	if err != nil {
		return nil, err
	}
	return BuildFormats(info), nil
}
