package ffmpeg

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// DetectNVENC reports whether this ffmpeg build exposes the h264_nvenc
// encoder. A missing binary or a failed probe reads as "not available"
// rather than an error; the caller falls back to software encoding anyway.
func DetectNVENC(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-encoders")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return false
	}
	return strings.Contains(out.String(), "h264_nvenc")
}
