package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTitle_TakesFirstLine(t *testing.T) {
	c := New()
	c.execFn = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte("Some Video Title\nextra\n"), nil, nil
	}

	title, err := c.Title(context.Background(), "https://youtube.com/watch?v=abc")
	require.NoError(t, err)
	require.Equal(t, "Some Video Title", title)
}

func TestTitle_WrapsExecError(t *testing.T) {
	c := New()
	c.execFn = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte("out"), []byte("err"), errors.New("boom")
	}

	_, err := c.Title(context.Background(), "https://example.com")
	require.Error(t, err)
	var ee *ExecError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, "err", ee.Stderr)
}

func TestDownload_BuildsFormatCapAndReturnsFile(t *testing.T) {
	dir := t.TempDir()

	var gotArgs []string
	c := New()
	c.execFn = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		gotArgs = args
		// Simulate yt-dlp writing the media file.
		return nil, nil, os.WriteFile(filepath.Join(dir, "input_video.webm"), []byte("x"), 0o644)
	}

	path, err := c.Download(context.Background(), "https://youtube.com/watch?v=abc", dir, 720)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "input_video.webm"), path)
	require.Contains(t, strings.Join(gotArgs, " "), "best[height<=720]")
	require.Contains(t, gotArgs, "--no-playlist")
}

func TestDownload_NoFileProduced(t *testing.T) {
	c := New()
	c.execFn = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, nil, nil
	}

	_, err := c.Download(context.Background(), "https://youtube.com/watch?v=abc", t.TempDir(), 720)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no media file produced")
}

func TestIsUnsupportedURL(t *testing.T) {
	unsupported := &ExecError{Stderr: "ERROR: Unsupported URL: https://example.com/page"}
	require.True(t, IsUnsupportedURL(unsupported))

	network := &ExecError{Stderr: "ERROR: unable to download webpage: timed out"}
	require.False(t, IsUnsupportedURL(network))

	require.False(t, IsUnsupportedURL(errors.New("plain error")))
}

func TestVersion_TrimsOutput(t *testing.T) {
	c := New()
	c.execFn = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte("2026.08.01\n"), nil, nil
	}

	v, err := c.Version(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2026.08.01", v)
}
