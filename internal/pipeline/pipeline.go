// Package pipeline drives jobs through download, encode, and publish.
//
// The external binaries (yt-dlp, ffmpeg) sit behind the Downloader and
// Encoder interfaces; the worker itself never shells out.
package pipeline

import "context"

// HardwarePreference selects the encode path attempted first.
type HardwarePreference string

const (
	PreferGPU HardwarePreference = "gpu"
	PreferCPU HardwarePreference = "cpu"
)

// Download is the product of a successful download stage.
type Download struct {
	// Path is the local media file inside the job's working directory.
	Path string
	// Title is the source-reported title, used to derive the published filename.
	Title string
}

// EncodePath records which encoder produced the output.
type EncodePath string

const (
	EncodePathGPU EncodePath = "gpu"
	EncodePathCPU EncodePath = "cpu"
)

// EncodeResult is the product of a successful encode stage.
type EncodeResult struct {
	Path EncodePath
}

// Downloader fetches a video capped at maxHeight pixels into destDir.
type Downloader interface {
	Download(ctx context.Context, url, destDir string, maxHeight int) (Download, error)
}

// Encoder transcodes inputPath to the fixed target profile at outputPath.
// Implementations own the GPU-then-CPU fallback sequencing; either path
// succeeding satisfies the call.
type Encoder interface {
	Encode(ctx context.Context, inputPath, outputPath string, pref HardwarePreference) (EncodeResult, error)
}
