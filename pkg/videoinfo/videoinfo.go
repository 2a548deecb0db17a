// Package videoinfo probes media files with ffprobe.
package videoinfo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Client wraps the ffprobe binary.
type Client struct {
	// Path to ffprobe executable. Defaults to "ffprobe" (PATH lookup).
	Path string

	execFn func(ctx context.Context, name string, args ...string) (stdout []byte, err error)
}

func New() *Client {
	return &Client{Path: "ffprobe"}
}

// Info is the subset of ffprobe output the pipeline cares about.
type Info struct {
	// DurationSeconds comes from the container; zero when ffprobe can't tell.
	DurationSeconds float64
	Width           int
	Height          int
	VideoCodec      string
	AudioCodec      string
}

// Duration renders the duration as "12m34s"-style text, or "" when unknown.
func (i Info) Duration() string {
	if i.DurationSeconds <= 0 {
		return ""
	}
	total := int(i.DurationSeconds)
	if total >= 3600 {
		return fmt.Sprintf("%dh%dm%ds", total/3600, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%dm%ds", total/60, total%60)
}

// Resolution renders "WxH", or "" when no video stream was found.
func (i Info) Resolution() string {
	if i.Width <= 0 || i.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}

type probeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

// Probe runs ffprobe against path and parses the stream and format metadata.
func (c *Client) Probe(ctx context.Context, path string) (Info, error) {
	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}

	stdout, err := c.exec(ctx, args...)
	if err != nil {
		return Info{}, fmt.Errorf("videoinfo: ffprobe %s: %w", path, err)
	}

	var out probeOutput
	if err := json.Unmarshal(stdout, &out); err != nil {
		return Info{}, fmt.Errorf("videoinfo: parse ffprobe output for %s: %w", path, err)
	}

	var info Info
	if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
		info.DurationSeconds = d
	}
	for _, s := range out.Streams {
		switch s.CodecType {
		case "video":
			if info.VideoCodec == "" {
				info.VideoCodec = s.CodecName
				info.Width = s.Width
				info.Height = s.Height
			}
		case "audio":
			if info.AudioCodec == "" {
				info.AudioCodec = s.CodecName
			}
		}
	}
	return info, nil
}

func (c *Client) exec(ctx context.Context, args ...string) ([]byte, error) {
	name := c.Path
	if strings.TrimSpace(name) == "" {
		name = "ffprobe"
	}

	if c.execFn != nil {
		return c.execFn(ctx, name, args...)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf bytes.Buffer
	cmd.Stdout = &outBuf
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return outBuf.Bytes(), nil
}
