package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"videobot/internal/notify"
	"videobot/internal/queue"
	"videobot/pkg/videoinfo"
)

// Worker consumes the job queue and runs each job through the pipeline,
// one job at a time. Stage failures terminate the job, never the worker.
type Worker struct {
	Queue      *queue.Queue
	Downloader Downloader
	Encoder    Encoder
	Notifier   notify.Notifier
	// Prober, when set, verifies encoded output with ffprobe. Probe results
	// are informational only.
	Prober *videoinfo.Client

	OutputDir string
	TempDir   string

	MaxHeight       int
	Hardware        HardwarePreference
	DownloadTimeout time.Duration
	EncodeTimeout   time.Duration
}

// Run processes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	for {
		job, err := w.Queue.Dequeue(ctx)
		if err != nil {
			return
		}
		w.process(ctx, job)
	}
}

func (w *Worker) process(ctx context.Context, job *queue.Job) {
	logger := slog.With("job_id", job.ID, "url", job.URL, "requested_by", job.RequestedBy)

	workDir := filepath.Join(w.TempDir, job.ID.String())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		logger.Error("failed to create work dir", "dir", workDir, "error", err)
		w.fail(job, err, "could not prepare working directory")
		return
	}
	// The published file has already been renamed out of workDir by the time
	// this runs, so this only ever discards intermediates.
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Warn("failed to remove work dir", "dir", workDir, "error", err)
		}
	}()

	// Downloading
	w.Queue.Advance(job, queue.StateDownloading)
	w.Notifier.Started(job)
	logger.Info("Downloading", "max_height", w.MaxHeight)

	dctx, cancel := context.WithTimeout(ctx, w.DownloadTimeout)
	dl, err := w.Downloader.Download(dctx, job.URL, workDir, w.MaxHeight)
	cancel()
	if err != nil {
		logger.Error("download failed", "error", err)
		w.fail(job, err, downloadFailureReason(err))
		return
	}

	// Encoding
	w.Queue.Advance(job, queue.StateEncoding)
	logger.Info("Encoding", "input", dl.Path, "hardware_preference", w.Hardware)

	encodedPath := filepath.Join(workDir, "encoded.mp4")
	ectx, cancel := context.WithTimeout(ctx, w.EncodeTimeout)
	res, err := w.Encoder.Encode(ectx, dl.Path, encodedPath, w.Hardware)
	cancel()
	if err != nil {
		logger.Error("encode failed", "error", err)
		w.fail(job, err, encodeFailureReason(err))
		return
	}

	if w.Prober != nil {
		if info, perr := w.Prober.Probe(ctx, encodedPath); perr != nil {
			logger.Warn("ffprobe failed on encoded output", "error", perr)
		} else {
			logger.Info("Encoded media", "duration", info.Duration(), "resolution", info.Resolution(),
				"video_codec", info.VideoCodec, "audio_codec", info.AudioCodec)
		}
	}

	// Publishing
	w.Queue.Advance(job, queue.StatePublishing)
	outputPath, err := publish(w.OutputDir, dl.Title, job.SubmittedAt, encodedPath)
	if err != nil {
		logger.Error("publish failed", "error", err)
		w.fail(job, err, "could not publish video")
		return
	}

	w.Queue.Complete(job, outputPath)
	size := int64(0)
	if info, err := os.Stat(outputPath); err == nil {
		size = info.Size()
	}
	logger.Info("Video processing completed", "output", outputPath, "size_bytes", size, "encode_path", res.Path)
	w.Notifier.Completed(job, size)
}

func (w *Worker) fail(job *queue.Job, err error, reason string) {
	w.Queue.Fail(job, err)
	w.Notifier.Failed(job, reason)
}

// downloadFailureReason maps a download error to a short message safe to
// echo back into the channel.
func downloadFailureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "download timed out"
	case isUnsupportedURL(err):
		return "unsupported URL"
	default:
		return "download failed"
	}
}

func encodeFailureReason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "encoding timed out"
	}
	return "encoding failed"
}
