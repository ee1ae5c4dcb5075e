package usecase

import (
	"context"
	"errors"

	"media-gateway/domain/model"
	"media-gateway/domain/repository"
	"media-gateway/infrastructure/taskpool"
)

// IExtractionGateway runs a blocking extraction on the shared worker pool and
// turns pool-level failures into the request error taxonomy.
type IExtractionGateway interface {
	Execute(ctx context.Context, req model.ExtractionRequest) (*model.MediaInfo, error)
}

// ExtractionGateway is the single blocking boundary of the service: one
// attempt per request, bounded by req.Timeout when set.
type ExtractionGateway struct {
	pool      *taskpool.Pool
	extractor repository.IMediaExtractor
}

// NewExtractionGateway creates a gateway over the given pool and extractor.
func NewExtractionGateway(pool *taskpool.Pool, extractor repository.IMediaExtractor) IExtractionGateway {
	return &ExtractionGateway{pool: pool, extractor: extractor}
}

const searchPrefix = "ytsearch:"

// Execute submits the extraction and waits for the result up to the request
// timeout. On expiry the task context is cancelled, which kills the
// underlying process; the stale result is discarded.
func (g *ExtractionGateway) Execute(ctx context.Context, req model.ExtractionRequest) (*model.MediaInfo, error) {
	target := req.URL
	if req.SearchQuery != "" {
		target = searchPrefix + req.SearchQuery
	}

	taskCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	value, err := g.pool.Execute(taskCtx, func(tctx context.Context) (interface{}, error) {
		return g.extractor.Extract(tctx, target, req.Opts)
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, model.ErrExtractTimeout
		}
		return nil, err
	}

	info, ok := value.(*model.MediaInfo)
	if !ok || info == nil {
		return nil, model.NewUpstreamError("extractor returned no result")
	}

	if req.SearchQuery != "" {
		return firstSearchEntry(info)
	}
	return info, nil
}

// firstSearchEntry unwraps a search result set to its first entry. An empty
// set is a not-found condition; a result without an entry set is returned
// as-is.
func firstSearchEntry(info *model.MediaInfo) (*model.MediaInfo, error) {
	rawEntries, present := info.Raw["entries"]
	if !present {
		return info, nil
	}
	if len(info.Entries) == 0 {
		return nil, model.ErrNoResults
	}

	entry := info.Entries[0]
	if list, ok := rawEntries.([]interface{}); ok && len(list) > 0 {
		if m, ok := list[0].(map[string]interface{}); ok {
			entry.Raw = m
		}
	}
	return &entry, nil
}
