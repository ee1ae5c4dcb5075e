package repository

import (
	"context"

	"media-gateway/domain/model"
)

// IMediaExtractor is the port for the external extraction tool. Extract is a
// blocking call; implementations must honor context cancellation.
type IMediaExtractor interface {
	Extract(ctx context.Context, target string, opts model.ExtractOptions) (*model.MediaInfo, error)
}

// ISearchProvider is the lightweight search port used by the fast metadata
// path. It never touches the extraction tool.
type ISearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]model.SearchItem, error)
}

// IResponseCache maps request fingerprints to previously computed
// JSON-serializable results. Implementations must be safe for concurrent use.
// Entries live until deleted; there is no automatic expiry.
type IResponseCache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{})
	Delete(ctx context.Context, key string)
}
