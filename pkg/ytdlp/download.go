package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Title runs yt-dlp in metadata-only mode and returns the media title.
// An empty title is not an error; callers choose their own fallback.
func (c *Client) Title(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("ytdlp: url is required")
	}

	args := []string{"--print", "title", "--skip-download", "--no-playlist", url}
	stdout, stderr, err := c.exec(ctx, args...)
	if err != nil {
		return "", wrapExecError(c.PathOrDefault(), args, stdout, stderr, err)
	}

	title, _, _ := strings.Cut(strings.TrimSpace(string(stdout)), "\n")
	return strings.TrimSpace(title), nil
}

// Download fetches the media into destDir capped at maxHeight pixels and
// returns the path of the produced file. It uses a stable output template:
//
//	<destDir>/input_video.<ext>
//
// so the caller can hand the result straight to the encoder without guessing
// what container yt-dlp picked.
func (c *Client) Download(ctx context.Context, url string, destDir string, maxHeight int) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("ytdlp: url is required")
	}
	if strings.TrimSpace(destDir) == "" {
		return "", fmt.Errorf("ytdlp: destDir is required")
	}
	if maxHeight <= 0 {
		maxHeight = 720
	}

	tmpl := filepath.Join(destDir, "input_video.%(ext)s")
	format := fmt.Sprintf("best[height<=%d]/bv*[height<=%d]+ba/b", maxHeight, maxHeight)

	args := []string{
		"-o", tmpl,
		"--format", format,
		"--no-playlist",
		"--no-colors",
		"--newline",
	}
	args = append(args, url)

	stdout, stderr, err := c.exec(ctx, args...)
	if err != nil {
		return "", wrapExecError(c.PathOrDefault(), args, stdout, stderr, err)
	}

	matches, err := filepath.Glob(filepath.Join(destDir, "input_video.*"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", errors.New("ytdlp: no media file produced")
	}
	return matches[0], nil
}

// IsUnsupportedURL reports whether err is yt-dlp rejecting the URL itself, as
// opposed to a transient network or extractor failure.
func IsUnsupportedURL(err error) bool {
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		return false
	}
	stderr := strings.ToLower(execErr.Stderr)
	return strings.Contains(stderr, "unsupported url") ||
		strings.Contains(stderr, "is not a valid url")
}
