package pipeline

import (
	"context"
	"log/slog"
	"os"

	"videobot/pkg/ffmpeg"
)

// HardwareEncoder implements Encoder with GPU-first fallback: when NVENC is
// preferred and available it is attempted once, and any non-timeout failure
// falls back to libx264 with the same target profile.
type HardwareEncoder struct {
	runFn    func(ctx context.Context, input, output string, opts ...ffmpeg.Option) error
	detectFn func(ctx context.Context) bool
}

func NewHardwareEncoder() *HardwareEncoder {
	return &HardwareEncoder{
		runFn:    ffmpeg.Run,
		detectFn: ffmpeg.DetectNVENC,
	}
}

func (e *HardwareEncoder) Encode(ctx context.Context, inputPath, outputPath string, pref HardwarePreference) (EncodeResult, error) {
	if pref == PreferGPU {
		if e.detectFn(ctx) {
			slog.Info("NVENC available, using GPU encoding", "input", inputPath)
			err := e.runFn(ctx, inputPath, outputPath, append(ffmpeg.PresetNVENC(), ffmpeg.PresetAAC()...)...)
			if err == nil {
				return EncodeResult{Path: EncodePathGPU}, nil
			}
			if ctx.Err() != nil {
				// The stage deadline is spent; a CPU attempt would die instantly.
				return EncodeResult{}, err
			}
			slog.Warn("NVENC encoding failed, falling back to CPU encoding", "error", err)
			// Discard whatever the failed attempt left behind.
			_ = os.Remove(outputPath)
		} else {
			slog.Info("NVENC not available, using CPU encoding")
		}
	}

	if err := e.runFn(ctx, inputPath, outputPath, append(ffmpeg.PresetX264(), ffmpeg.PresetAAC()...)...); err != nil {
		return EncodeResult{}, err
	}
	return EncodeResult{Path: EncodePathCPU}, nil
}
