package model

import (
	"encoding/json"
	"time"
)

// MediaInfo is the parsed result of one extraction. The typed fields cover
// everything the shaped responses need; Raw keeps the complete decoded
// document for the passthrough endpoints.
type MediaInfo struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	WebpageURL    string        `json:"webpage_url"`
	URL           string        `json:"url"`
	Description   string        `json:"description"`
	Thumbnail     string        `json:"thumbnail"`
	Duration      float64       `json:"duration"`
	UploadDate    string        `json:"upload_date"`
	ViewCount     *int64        `json:"view_count"`
	LikeCount     *int64        `json:"like_count"`
	Tags          []string      `json:"tags"`
	IsLive        bool          `json:"is_live"`
	AgeLimit      int           `json:"age_limit"`
	AverageRating *float64      `json:"average_rating"`
	Uploader      string        `json:"uploader"`
	UploaderID    string        `json:"uploader_id"`
	UploaderURL   string        `json:"uploader_url"`
	ChannelURL    string        `json:"channel_url"`
	Subscribers   *int64        `json:"subscriber_count"`
	Followers     *int64        `json:"channel_follower_count"`
	VideoCount    *int64        `json:"video_count"`
	PlaylistCount *int64        `json:"playlist_count"`
	Thumbnails    []Thumbnail   `json:"thumbnails"`
	Formats       []MediaFormat `json:"formats"`
	Entries       []MediaInfo   `json:"entries"`
	Related       []MediaInfo   `json:"related"`

	// Raw is the full decoded extractor output, retained for endpoints that
	// return the result near-verbatim.
	Raw map[string]interface{} `json:"-"`
}

// MediaFormat is one candidate stream as reported by the extractor. Codec
// fields use the extractor's convention of "none" for an absent codec.
type MediaFormat struct {
	FormatID       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	URL            string   `json:"url"`
	VCodec         string   `json:"vcodec"`
	ACodec         string   `json:"acodec"`
	Filesize       *int64   `json:"filesize"`
	FilesizeApprox *int64   `json:"filesize_approx"`
	Width          *int     `json:"width"`
	Height         *int     `json:"height"`
	FPS            *float64 `json:"fps"`
	ABR            *float64 `json:"abr"`
	ASR            *int     `json:"asr"`
}

// SizeBytes returns the best available size estimate for the format.
func (f *MediaFormat) SizeBytes() int64 {
	if f.Filesize != nil && *f.Filesize > 0 {
		return *f.Filesize
	}
	if f.FilesizeApprox != nil && *f.FilesizeApprox > 0 {
		return *f.FilesizeApprox
	}
	return 0
}

// Thumbnail is one thumbnail candidate from the extractor output.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SearchItem is one result from the lightweight search provider. Duration is
// the textual colon-delimited form shown on the results page.
type SearchItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URLSuffix string `json:"url_suffix"`
	Duration  string `json:"duration"`
	Thumbnail string `json:"thumbnail"`
}

// ExtractOptions selects how the extractor is invoked for a route.
type ExtractOptions struct {
	// NoPlaylist restricts extraction to a single item when the target could
	// resolve to a list (the metadata routes set this).
	NoPlaylist bool
}

// ExtractionRequest describes one gateway call. Exactly one of URL or
// SearchQuery is set. A zero Timeout means wait indefinitely.
type ExtractionRequest struct {
	URL         string
	SearchQuery string
	Opts        ExtractOptions
	Timeout     time.Duration
}

// UnmarshalInfo decodes an extractor JSON document into a MediaInfo,
// retaining the raw form alongside the typed fields.
func UnmarshalInfo(data []byte) (*MediaInfo, error) {
	var info MediaInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &info.Raw); err != nil {
		return nil, err
	}
	return &info, nil
}
