package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"media-gateway/domain/dto"
	"media-gateway/domain/model"
	"media-gateway/usecase"
)

func TestToISODuration(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"hours_minutes_seconds", "1:02:03", "PT1H2M3S"},
		{"zero_hours_elided", "0:05:09", "PT5M9S"},
		{"minutes_seconds", "5:09", "PT5M9S"},
		{"seconds_only", "45", "PT45S"},
		{"empty", "", "PT0S"},
		{"garbage", "abc", "PT0S"},
		{"garbage_with_colons", "a:b:c", "PT0S"},
		{"negative_seconds", "-5", "PT0S"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, usecase.ToISODuration(tc.input))
		})
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		name  string
		input int64
		want  string
	}{
		{"bytes", 500, "500 B"},
		{"kilobytes", 1500, "1.50 KB"},
		{"megabytes", 2_500_000, "2.50 MB"},
		{"gigabytes", 3_000_000_000, "3.00 GB"},
		{"zero", 0, "0 B"},
		{"kilobyte_boundary", 1000, "1.00 KB"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, usecase.FormatSize(tc.input))
		})
	}
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

func TestBuildFormats_Classification(t *testing.T) {
	size := int64Ptr(1500)
	info := &model.MediaInfo{
		Formats: []model.MediaFormat{
			{FormatID: "22", Ext: "mp4", URL: "https://cdn/22", VCodec: "avc1", ACodec: "mp4a", Filesize: size},
			{FormatID: "137", Ext: "mp4", URL: "https://cdn/137", VCodec: "avc1", ACodec: "none", Height: intPtr(1080)},
			{FormatID: "140", Ext: "m4a", URL: "https://cdn/140", VCodec: "none", ACodec: "mp4a"},
			{FormatID: "no-url", Ext: "mp4", VCodec: "avc1", ACodec: "mp4a"},
			{FormatID: "storyboard", Ext: "mhtml", URL: "https://cdn/sb", VCodec: "none", ACodec: "none"},
		},
	}

	formats := usecase.BuildFormats(info)
	assert.Len(t, formats, 3)

	assert.Equal(t, dto.KindProgressive, formats[0].Kind)
	assert.Equal(t, "1.50 KB", formats[0].Filesize)
	assert.Equal(t, int64(1500), formats[0].FilesizeBytes)

	assert.Equal(t, dto.KindVideoOnly, formats[1].Kind)
	assert.Equal(t, 1080, *formats[1].Height)
	// No size fields at all still yields a formatted zero.
	assert.Equal(t, "0 B", formats[1].Filesize)

	assert.Equal(t, dto.KindAudioOnly, formats[2].Kind)

	for _, f := range formats {
		assert.NotEqual(t, "no-url", f.FormatID, "formats without a stream URL must be dropped")
		assert.NotEqual(t, "storyboard", f.FormatID, "formats matching neither codec category must be dropped")
	}
}

func TestBuildFormats_PrefersExactSizeOverApprox(t *testing.T) {
	info := &model.MediaInfo{
		Formats: []model.MediaFormat{
			{FormatID: "a", URL: "u", VCodec: "avc1", ACodec: "mp4a", Filesize: int64Ptr(100), FilesizeApprox: int64Ptr(999)},
			{FormatID: "b", URL: "u", VCodec: "avc1", ACodec: "mp4a", FilesizeApprox: int64Ptr(250)},
		},
	}

	formats := usecase.BuildFormats(info)
	assert.Equal(t, int64(100), formats[0].FilesizeBytes)
	assert.Equal(t, int64(250), formats[1].FilesizeBytes)
}

func TestFilterFormats(t *testing.T) {
	formats := []dto.FormatDescriptor{
		{FormatID: "1", Kind: dto.KindProgressive},
		{FormatID: "2", Kind: dto.KindVideoOnly},
		{FormatID: "3", Kind: dto.KindAudioOnly},
	}

	audio := usecase.FilterFormats(formats, dto.KindAudioOnly, dto.KindProgressive)
	assert.Len(t, audio, 2)
	assert.Equal(t, "1", audio[0].FormatID)
	assert.Equal(t, "3", audio[1].FormatID)

	video := usecase.FilterFormats(formats, dto.KindVideoOnly, dto.KindProgressive)
	assert.Len(t, video, 2)
	assert.Equal(t, "1", video[0].FormatID)
	assert.Equal(t, "2", video[1].FormatID)
}

func TestMetaProjection(t *testing.T) {
	info := &model.MediaInfo{
		Raw: map[string]interface{}{
			"id":        "abc",
			"title":     "Some title",
			"duration":  float64(120),
			"extra_key": "must not leak",
		},
	}

	projected := usecase.MetaProjection(info)

	assert.Equal(t, "abc", projected["id"])
	assert.Equal(t, "Some title", projected["title"])
	assert.NotContains(t, projected, "extra_key", "projection must never pass the raw result through verbatim")
	// Absent allowlisted fields come through as explicit nulls.
	assert.Contains(t, projected, "uploader")
	assert.Nil(t, projected["uploader"])
}

func TestShapeFastMetaFromSearch(t *testing.T) {
	item := &model.SearchItem{
		ID:        "dQw4w9WgXcQ",
		Title:     "Video",
		URLSuffix: "/watch?v=dQw4w9WgXcQ",
		Duration:  "3:32",
		Thumbnail: "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg",
	}

	shaped := usecase.ShapeFastMetaFromSearch(item)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", shaped.Link)
	assert.Equal(t, "PT3M32S", shaped.Duration)
	assert.Equal(t, "Video", shaped.Title)
}

func TestShapeFastMetaFromInfo(t *testing.T) {
	info := &model.MediaInfo{
		Title:      "Video",
		WebpageURL: "https://www.youtube.com/watch?v=abc",
		Duration:   154,
		Thumbnail:  "https://i.ytimg.com/vi/abc/default.jpg",
	}

	shaped := usecase.ShapeFastMetaFromInfo(info)
	assert.Equal(t, "PT154S", shaped.Duration)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", shaped.Link)
}

func TestShapePlaylist(t *testing.T) {
	count := int64Ptr(2)
	info := &model.MediaInfo{
		ID:            "PL123",
		Title:         "Mix",
		WebpageURL:    "https://www.youtube.com/playlist?list=PL123",
		PlaylistCount: count,
		Entries: []model.MediaInfo{
			{ID: "a", Title: "First", WebpageURL: "https://w/a", Duration: 10},
			{ID: "b", Title: "Second", WebpageURL: "https://w/b", Duration: 20},
		},
	}

	shaped := usecase.ShapePlaylist(info)
	assert.Equal(t, "PL123", shaped.ID)
	assert.Equal(t, int64(2), *shaped.ItemCount)
	assert.Len(t, shaped.Videos, 2)
	assert.Equal(t, "Second", shaped.Videos[1].Title)
}

func TestShapeAll_SuggestionsAndChannel(t *testing.T) {
	info := &model.MediaInfo{
		Title:      "Video",
		Uploader:   "Channel",
		UploaderID: "UC1",
		ChannelURL: "https://www.youtube.com/channel/UC1",
		Related: []model.MediaInfo{
			{ID: "r1", Title: "Related", URL: "https://w/r1", Thumbnails: []model.Thumbnail{{URL: "https://t/r1"}}},
		},
	}

	shaped := usecase.ShapeAll(info)
	assert.Equal(t, "Channel", shaped.Channel.Name)
	// uploader_url missing, channel_url is the fallback
	assert.Equal(t, "https://www.youtube.com/channel/UC1", shaped.Channel.URL)
	assert.Len(t, shaped.Suggestions, 1)
	assert.Equal(t, "https://w/r1", shaped.Suggestions[0].URL)
	assert.Equal(t, "https://t/r1", shaped.Suggestions[0].Thumbnail)
}
