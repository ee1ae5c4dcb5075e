package http

import (
	"errors"
	"net/http"
	"strings"

	"media-gateway/domain/dto"
	"media-gateway/domain/model"
	"media-gateway/usecase"

	"github.com/gin-gonic/gin"
)

// IMediaHandler defines the HTTP handlers of the media façade.
type IMediaHandler interface {
	Home(ctx *gin.Context)
	FastMeta(ctx *gin.Context)
	Meta(ctx *gin.Context)
	All(ctx *gin.Context)
	Channel(ctx *gin.Context)
	Playlist(ctx *gin.Context)
	Instagram(ctx *gin.Context)
	Twitter(ctx *gin.Context)
	TikTok(ctx *gin.Context)
	Facebook(ctx *gin.Context)
	Download(ctx *gin.Context)
	Audio(ctx *gin.Context)
	Video(ctx *gin.Context)
}

// MediaHandler implements the media HTTP handlers. Handlers only validate
// parameters and map errors; all behavior lives in the use case.
type MediaHandler struct {
	mediaUseCase usecase.IMediaUseCase
}

// NewMediaHandler creates a new media handler instance.
func NewMediaHandler(mediaUseCase usecase.IMediaUseCase) IMediaHandler {
	return &MediaHandler{mediaUseCase: mediaUseCase}
}

// refreshRequested reports whether the cache-bypass flag is present.
func refreshRequested(ctx *gin.Context) bool {
	_, ok := ctx.GetQuery("latest")
	return ok
}

// respondError maps the error taxonomy onto HTTP statuses: timeout → 504,
// empty search → 404, everything else → 500.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrExtractTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, model.ErrNoResults):
		status = http.StatusNotFound
	}
	ctx.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

// Home handles GET /
func (h *MediaHandler) Home(ctx *gin.Context) {
	value, err := h.mediaUseCase.Home(ctx.Request.Context(), refreshRequested(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, value)
}

// FastMeta handles GET /api/fast-meta
func (h *MediaHandler) FastMeta(ctx *gin.Context) {
	searchQuery := strings.TrimSpace(ctx.Query("search"))
	url := strings.TrimSpace(ctx.Query("url"))
	if searchQuery == "" && url == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: `Provide either "search" or "url" parameter`})
		return
	}

	value, err := h.mediaUseCase.FastMeta(ctx.Request.Context(), searchQuery, url, refreshRequested(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, value)
}

// Meta handles GET /api/meta
func (h *MediaHandler) Meta(ctx *gin.Context) {
	searchQuery := strings.TrimSpace(ctx.Query("search"))
	url := strings.TrimSpace(ctx.Query("url"))
	if searchQuery == "" && url == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: `Provide "url" or "search"`})
		return
	}

	value, err := h.mediaUseCase.Meta(ctx.Request.Context(), searchQuery, url, refreshRequested(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, value)
}

// All handles GET /api/all
func (h *MediaHandler) All(ctx *gin.Context) {
	searchQuery := strings.TrimSpace(ctx.Query("search"))
	url := strings.TrimSpace(ctx.Query("url"))
	if searchQuery == "" && url == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: `Provide "url" or "search"`})
		return
	}

	value, err := h.mediaUseCase.All(ctx.Request.Context(), searchQuery, url)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, value)
}

// Channel handles GET /api/channel
func (h *MediaHandler) Channel(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Query("id"))
	url := strings.TrimSpace(ctx.Query("url"))
	if id == "" && url == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: `Provide "url" or "id" parameter for channel`})
		return
	}
	target := id
	if target == "" {
		target = url
	}

	value, err := h.mediaUseCase.Channel(ctx.Request.Context(), target, refreshRequested(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, value)
}

// Playlist handles GET /api/playlist
func (h *MediaHandler) Playlist(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Query("id"))
	url := strings.TrimSpace(ctx.Query("url"))
	if id == "" && url == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: `Provide "url" or "id" parameter for playlist`})
		return
	}
	target := id
	if target == "" {
		target = url
	}

	value, err := h.mediaUseCase.Playlist(ctx.Request.Context(), target, refreshRequested(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, value)
}

// Instagram handles GET /api/instagram
func (h *MediaHandler) Instagram(ctx *gin.Context) {
	h.social(ctx, "instagram", "Instagram")
}

// Twitter handles GET /api/twitter
func (h *MediaHandler) Twitter(ctx *gin.Context) {
	h.social(ctx, "twitter", "Twitter")
}

// TikTok handles GET /api/tiktok
func (h *MediaHandler) TikTok(ctx *gin.Context) {
	h.social(ctx, "tiktok", "TikTok")
}

// Facebook handles GET /api/facebook
func (h *MediaHandler) Facebook(ctx *gin.Context) {
	h.social(ctx, "facebook", "Facebook")
}

func (h *MediaHandler) social(ctx *gin.Context, platform, displayName string) {
	url := strings.TrimSpace(ctx.Query("url"))
	if url == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: `Provide "url" parameter for ` + displayName})
		return
	}

	value, err := h.mediaUseCase.Social(ctx.Request.Context(), platform, url, refreshRequested(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, value)
}

// Download handles GET /download. The cache key is the literal request path
// including the query string, so parameter combinations never collide.
func (h *MediaHandler) Download(ctx *gin.Context) {
	url := strings.TrimSpace(ctx.Query("url"))
	searchQuery := strings.TrimSpace(ctx.Query("search"))
	if url == "" && searchQuery == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: `Provide "url" or "search"`})
		return
	}
	cacheKey := "download:" + ctx.Request.URL.RequestURI()

	value, err := h.mediaUseCase.DownloadFormats(ctx.Request.Context(), cacheKey, searchQuery, url, refreshRequested(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, value)
}

// Audio handles GET /api/audio
func (h *MediaHandler) Audio(ctx *gin.Context) {
	url := strings.TrimSpace(ctx.Query("url"))
	searchQuery := strings.TrimSpace(ctx.Query("search"))
	if url == "" && searchQuery == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: `Provide "url" or "search"`})
		return
	}

	value, err := h.mediaUseCase.AudioFormats(ctx.Request.Context(), searchQuery, url)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, value)
}

// Video handles GET /api/video
func (h *MediaHandler) Video(ctx *gin.Context) {
	url := strings.TrimSpace(ctx.Query("url"))
	searchQuery := strings.TrimSpace(ctx.Query("search"))
	if url == "" && searchQuery == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: `Provide "url" or "search"`})
		return
	}

	value, err := h.mediaUseCase.VideoFormats(ctx.Request.Context(), searchQuery, url)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, value)
}
