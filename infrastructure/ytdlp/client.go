// Package ytdlp shells out to the yt-dlp binary and parses its JSON dump.
// The binary is treated as an opaque collaborator; nothing here interprets
// media beyond decoding the dump.
package ytdlp

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"media-gateway/domain/model"
	"media-gateway/domain/repository"
	"media-gateway/infrastructure/logger"
)

// Config mirrors the extractor section of the service configuration.
type Config struct {
	BinaryPath          string
	CookieFile          string
	TempDir             string
	ConcurrentFragments int
}

// Client implements repository.IMediaExtractor over the yt-dlp binary.
type Client struct {
	cfg Config
}

// NewClient creates a yt-dlp backed extractor.
func NewClient(cfg Config) repository.IMediaExtractor {
	if cfg.BinaryPath == "" {
		cfg.BinaryPath = "yt-dlp"
	}
	return &Client{cfg: cfg}
}

// Extract runs `yt-dlp -J` for the target and decodes the dump. The command
// inherits ctx, so cancelling the context kills the process.
func (c *Client) Extract(ctx context.Context, target string, opts model.ExtractOptions) (*model.MediaInfo, error) {
	args := c.buildArgs(target, opts)

	cmd := exec.CommandContext(ctx, c.cfg.BinaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		msg := extractorError(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		logger.GetLogger().WithField("target", target).WithField("error", msg).Warn("Extraction failed")
		return nil, model.NewUpstreamError(msg)
	}

	info, err := model.UnmarshalInfo(stdout.Bytes())
	if err != nil {
		return nil, model.NewUpstreamError("malformed extractor output: " + err.Error())
	}
	return info, nil
}

func (c *Client) buildArgs(target string, opts model.ExtractOptions) []string {
	args := []string{
		"-J",
		"--no-warnings",
		"-f", "bestvideo+bestaudio/best",
		"--no-cache-dir",
	}
	if c.cfg.TempDir != "" {
		args = append(args, "-P", "temp:"+c.cfg.TempDir)
	}
	if c.cfg.ConcurrentFragments > 0 {
		args = append(args, "--concurrent-fragments", strconv.Itoa(c.cfg.ConcurrentFragments))
	}
	// Pass the cookie jar through untouched when one is present.
	if c.cfg.CookieFile != "" {
		if _, err := os.Stat(c.cfg.CookieFile); err == nil {
			args = append(args, "--cookies", c.cfg.CookieFile)
		}
	}
	if opts.NoPlaylist {
		args = append(args, "--no-playlist")
	}
	return append(args, target)
}

// extractorError pulls the first ERROR line out of yt-dlp's stderr.
func extractorError(stderr string) string {
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "ERROR:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		}
	}
	return strings.TrimSpace(stderr)
}
