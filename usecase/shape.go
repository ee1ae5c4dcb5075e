package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"media-gateway/domain/dto"
	"media-gateway/domain/model"
)

// Pure, deterministic transforms from raw extraction output to response
// shapes. No I/O happens here; missing fields map to null/zero.

// ToISODuration converts a colon-delimited duration ("H:M:S", "M:S" or "S")
// to ISO 8601. Malformed or empty input yields "PT0S".
func ToISODuration(raw string) string {
	parts := strings.Split(raw, ":")
	switch len(parts) {
	case 3:
		h, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		s, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			return "PT0S"
		}
		iso := "PT"
		if h != 0 {
			iso += fmt.Sprintf("%dH", h)
		}
		return iso + fmt.Sprintf("%dM%dS", m, s)
	case 2:
		m, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		s, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return "PT0S"
		}
		return fmt.Sprintf("PT%dM%dS", m, s)
	case 1:
		if allDigits(strings.TrimSpace(parts[0])) {
			s, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
			return fmt.Sprintf("PT%dS", s)
		}
	}
	return "PT0S"
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatSize renders a byte count with decimal (1000-based) unit steps.
func FormatSize(bytes int64) string {
	switch {
	case bytes >= 1e9:
		return fmt.Sprintf("%.2f GB", float64(bytes)/1e9)
	case bytes >= 1e6:
		return fmt.Sprintf("%.2f MB", float64(bytes)/1e6)
	case bytes >= 1e3:
		return fmt.Sprintf("%.2f KB", float64(bytes)/1e3)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// BuildFormats classifies every raw format into progressive, video-only or
// audio-only. Formats without a stream URL, or matching neither codec
// category, are dropped.
func BuildFormats(info *model.MediaInfo) []dto.FormatDescriptor {
	formats := make([]dto.FormatDescriptor, 0, len(info.Formats))
	for i := range info.Formats {
		f := &info.Formats[i]
		if f.URL == "" {
			continue
		}
		hasVideo := f.VCodec != "" && f.VCodec != "none"
		hasAudio := f.ACodec != "" && f.ACodec != "none"

		var kind string
		switch {
		case hasVideo && hasAudio:
			kind = dto.KindProgressive
		case hasVideo:
			kind = dto.KindVideoOnly
		case hasAudio:
			kind = dto.KindAudioOnly
		default:
			continue
		}

		size := f.SizeBytes()
		formats = append(formats, dto.FormatDescriptor{
			FormatID:      f.FormatID,
			Ext:           f.Ext,
			Kind:          kind,
			FilesizeBytes: size,
			Filesize:      FormatSize(size),
			Width:         f.Width,
			Height:        f.Height,
			FPS:           f.FPS,
			ABR:           f.ABR,
			ASR:           f.ASR,
			URL:           f.URL,
		})
	}
	return formats
}

// FilterFormats keeps only descriptors matching one of the given kinds.
func FilterFormats(formats []dto.FormatDescriptor, kinds ...string) []dto.FormatDescriptor {
	out := make([]dto.FormatDescriptor, 0, len(formats))
	for _, f := range formats {
		for _, k := range kinds {
			if f.Kind == k {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// BuildSuggestions maps related entries onto the suggestion shape.
func BuildSuggestions(info *model.MediaInfo) []dto.Suggestion {
	suggestions := make([]dto.Suggestion, 0, len(info.Related))
	for i := range info.Related {
		rel := &info.Related[i]
		relURL := rel.WebpageURL
		if relURL == "" {
			relURL = rel.URL
		}
		thumbnail := ""
		if len(rel.Thumbnails) > 0 {
			thumbnail = rel.Thumbnails[0].URL
		}
		suggestions = append(suggestions, dto.Suggestion{
			ID:        rel.ID,
			Title:     rel.Title,
			URL:       relURL,
			Thumbnail: thumbnail,
		})
	}
	return suggestions
}

// metaFields is the fixed allowlist projected by the metadata endpoint.
var metaFields = []string{
	"id", "title", "webpage_url", "duration", "upload_date",
	"view_count", "like_count", "thumbnail", "description",
	"tags", "is_live", "age_limit", "average_rating",
	"uploader", "uploader_url", "uploader_id",
}

// MetaProjection extracts the allowlisted fields from the raw result. Absent
// fields come through as null.
func MetaProjection(info *model.MediaInfo) map[string]interface{} {
	raw := rawOf(info)
	projected := make(map[string]interface{}, len(metaFields))
	for _, k := range metaFields {
		projected[k] = raw[k]
	}
	return projected
}

// rawOf returns the raw document for the info, rebuilding one from the typed
// fields when the raw form was not retained (e.g. search entries).
func rawOf(info *model.MediaInfo) map[string]interface{} {
	if info.Raw != nil {
		return info.Raw
	}
	data, err := json.Marshal(info)
	if err != nil {
		return map[string]interface{}{}
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]interface{}{}
	}
	return m
}

// ShapeAll builds the full response: projected metadata, classified formats
// and suggestions.
func ShapeAll(info *model.MediaInfo) *dto.AllResponse {
	channelURL := info.UploaderURL
	if channelURL == "" {
		channelURL = info.ChannelURL
	}
	return &dto.AllResponse{
		Title:         info.Title,
		VideoURL:      info.WebpageURL,
		Duration:      info.Duration,
		UploadDate:    info.UploadDate,
		ViewCount:     info.ViewCount,
		LikeCount:     info.LikeCount,
		Thumbnail:     info.Thumbnail,
		Description:   info.Description,
		Tags:          info.Tags,
		IsLive:        info.IsLive,
		AgeLimit:      info.AgeLimit,
		AverageRating: info.AverageRating,
		Channel: dto.ChannelRef{
			Name: info.Uploader,
			URL:  channelURL,
			ID:   info.UploaderID,
		},
		Formats:     BuildFormats(info),
		Suggestions: BuildSuggestions(info),
	}
}

// ShapeChannel projects channel metadata.
func ShapeChannel(info *model.MediaInfo) *dto.ChannelResponse {
	videoCount := info.Followers
	if videoCount == nil {
		videoCount = info.VideoCount
	}
	return &dto.ChannelResponse{
		ID:              info.ID,
		Name:            info.Uploader,
		URL:             info.WebpageURL,
		Description:     info.Description,
		SubscriberCount: info.Subscribers,
		VideoCount:      videoCount,
		Thumbnails:      rawOf(info)["thumbnails"],
	}
}

// ShapePlaylist projects playlist metadata plus its entry list.
func ShapePlaylist(info *model.MediaInfo) *dto.PlaylistResponse {
	videos := make([]dto.PlaylistVideo, 0, len(info.Entries))
	for i := range info.Entries {
		e := &info.Entries[i]
		videos = append(videos, dto.PlaylistVideo{
			ID:       e.ID,
			Title:    e.Title,
			URL:      e.WebpageURL,
			Duration: e.Duration,
		})
	}
	return &dto.PlaylistResponse{
		ID:        info.ID,
		Title:     info.Title,
		URL:       info.WebpageURL,
		ItemCount: info.PlaylistCount,
		Videos:    videos,
	}
}

// ShapeFastMetaFromInfo builds the fast-meta shape from a full extraction.
// The numeric duration becomes an ISO string via its seconds representation.
func ShapeFastMetaFromInfo(info *model.MediaInfo) *dto.FastMetaResponse {
	return &dto.FastMetaResponse{
		Title:     info.Title,
		Link:      info.WebpageURL,
		Duration:  ToISODuration(strconv.Itoa(int(info.Duration))),
		Thumbnail: info.Thumbnail,
	}
}

// ShapeFastMetaFromSearch builds the fast-meta shape from a search result.
// The link is rebuilt from the watch suffix's video id.
func ShapeFastMetaFromSearch(item *model.SearchItem) *dto.FastMetaResponse {
	id := item.URLSuffix
	if idx := strings.LastIndex(id, "v="); idx != -1 {
		id = id[idx+2:]
	}
	return &dto.FastMetaResponse{
		Title:     item.Title,
		Link:      "https://www.youtube.com/watch?v=" + id,
		Duration:  ToISODuration(item.Duration),
		Thumbnail: item.Thumbnail,
	}
}
