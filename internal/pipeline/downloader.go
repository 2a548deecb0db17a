package pipeline

import (
	"context"
	"strings"

	"videobot/pkg/ytdlp"
)

// YtdlpDownloader implements Downloader on top of the yt-dlp client.
type YtdlpDownloader struct {
	Client *ytdlp.Client
}

func (d *YtdlpDownloader) Download(ctx context.Context, url, destDir string, maxHeight int) (Download, error) {
	// Probe the title first; it names the published file. A missing title is
	// not fatal, a failed probe is (the download would fail the same way).
	title, err := d.Client.Title(ctx, url)
	if err != nil {
		return Download{}, err
	}
	if strings.TrimSpace(title) == "" {
		title = "video"
	}

	path, err := d.Client.Download(ctx, url, destDir, maxHeight)
	if err != nil {
		return Download{}, err
	}

	return Download{Path: path, Title: title}, nil
}

func isUnsupportedURL(err error) bool {
	return ytdlp.IsUnsupportedURL(err)
}
