package dto

// ErrorResponse is the uniform error body for every route.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FormatDescriptor is one classified candidate stream.
type FormatDescriptor struct {
	FormatID      string   `json:"format_id"`
	Ext           string   `json:"ext"`
	Kind          string   `json:"kind"`
	FilesizeBytes int64    `json:"filesize_bytes"`
	Filesize      string   `json:"filesize"`
	Width         *int     `json:"width"`
	Height        *int     `json:"height"`
	FPS           *float64 `json:"fps"`
	ABR           *float64 `json:"abr"`
	ASR           *int     `json:"asr"`
	URL           string   `json:"url"`
}

// Format kinds. Progressive formats carry both a video and an audio track.
const (
	KindProgressive = "progressive"
	KindVideoOnly   = "video-only"
	KindAudioOnly   = "audio-only"
)

// FastMetaResponse is the minimal shape returned by /api/fast-meta.
type FastMetaResponse struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Duration  string `json:"duration"`
	Thumbnail string `json:"thumbnail"`
}

// MetaResponse wraps the allowlisted metadata projection of /api/meta.
type MetaResponse struct {
	Metadata map[string]interface{} `json:"metadata"`
}

// ChannelRef identifies the uploading channel inside an AllResponse.
type ChannelRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	ID   string `json:"id"`
}

// Suggestion is one related item attached to an AllResponse.
type Suggestion struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

// AllResponse is the full shape of /api/all: projected metadata plus the
// classified format list and related-item suggestions.
type AllResponse struct {
	Title         string             `json:"title"`
	VideoURL      string             `json:"video_url"`
	Duration      float64            `json:"duration"`
	UploadDate    string             `json:"upload_date"`
	ViewCount     *int64             `json:"view_count"`
	LikeCount     *int64             `json:"like_count"`
	Thumbnail     string             `json:"thumbnail"`
	Description   string             `json:"description"`
	Tags          []string           `json:"tags"`
	IsLive        bool               `json:"is_live"`
	AgeLimit      int                `json:"age_limit"`
	AverageRating *float64           `json:"average_rating"`
	Channel       ChannelRef         `json:"channel"`
	Formats       []FormatDescriptor `json:"formats"`
	Suggestions   []Suggestion       `json:"suggestions"`
}

// ChannelResponse is the shape of /api/channel.
type ChannelResponse struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	URL             string      `json:"url"`
	Description     string      `json:"description"`
	SubscriberCount *int64      `json:"subscriber_count"`
	VideoCount      *int64      `json:"video_count"`
	Thumbnails      interface{} `json:"thumbnails"`
}

// PlaylistVideo is one entry of a PlaylistResponse.
type PlaylistVideo struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Duration float64 `json:"duration"`
}

// PlaylistResponse is the shape of /api/playlist.
type PlaylistResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	URL       string          `json:"url"`
	ItemCount *int64          `json:"item_count"`
	Videos    []PlaylistVideo `json:"videos"`
}

// FormatListResponse is the shape of /download.
type FormatListResponse struct {
	Formats []FormatDescriptor `json:"formats"`
}

// AudioFormatsResponse is the shape of /api/audio.
type AudioFormatsResponse struct {
	AudioFormats []FormatDescriptor `json:"audio_formats"`
}

// VideoFormatsResponse is the shape of /api/video.
type VideoFormatsResponse struct {
	VideoFormats []FormatDescriptor `json:"video_formats"`
}

// HomeResponse is the cached liveness body of the root route.
type HomeResponse struct {
	Message string `json:"message"`
}
