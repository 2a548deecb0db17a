package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"

	"videobot/internal/chat"
	"videobot/internal/config"
	"videobot/internal/extract"
	"videobot/internal/notify"
	"videobot/internal/pipeline"
	"videobot/internal/queue"
	"videobot/internal/server"
	"videobot/pkg/videoinfo"
	"videobot/pkg/ytdlp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting videobot")

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := prepareDirs(conf.OutputDir, conf.TempDir); err != nil {
		slog.Error("failed to prepare directories", "error", err)
		os.Exit(1)
	}

	ydl := ytdlp.New()
	if version, err := ydl.Version(ctx); err != nil {
		slog.Warn("yt-dlp not reachable, downloads will fail", "error", err)
	} else {
		slog.Info("Found yt-dlp", "version", version)
	}

	bus := chat.NewIRC(chat.IRCConfig{
		Server:   conf.IRCServer,
		Port:     conf.IRCPort,
		Channel:  conf.IRCChannel,
		Nickname: conf.IRCNickname,
		Password: conf.IRCPassword,
	})
	if err := bus.Connect(); err != nil {
		slog.Error("failed to connect to IRC", "server", conf.IRCServer, "error", err)
		os.Exit(1)
	}
	go bus.Loop()

	q := queue.New()
	notifier := &notify.ChatNotifier{Bus: bus, BaseURL: conf.PublicBaseURL}

	var wg sync.WaitGroup
	for i := 0; i < conf.Workers; i++ {
		w := &pipeline.Worker{
			Queue:           q,
			Downloader:      &pipeline.YtdlpDownloader{Client: ydl},
			Encoder:         pipeline.NewHardwareEncoder(),
			Notifier:        notifier,
			Prober:          videoinfo.New(),
			OutputDir:       conf.OutputDir,
			TempDir:         conf.TempDir,
			MaxHeight:       conf.MaxHeight,
			Hardware:        pipeline.HardwarePreference(conf.HardwarePreference),
			DownloadTimeout: conf.DownloadTimeout(),
			EncodeTimeout:   conf.EncodeTimeout(),
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Run(ctx)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		ingest(ctx, bus, q, notifier)
	}()

	e := server.New(conf.OutputDir)
	addr := ":" + strconv.Itoa(conf.HTTPPort)

	go func() {
		<-ctx.Done()
		bus.Quit()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			wg.Wait()
			return
		}
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	wg.Wait()
}

// ingest feeds chat messages through the URL extractor into the queue.
func ingest(ctx context.Context, bus chat.Bus, q *queue.Queue, notifier notify.Notifier) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-bus.Messages():
			if !ok {
				return
			}
			for _, raw := range extract.Extract(msg.Text) {
				key, err := extract.Canonicalize(raw)
				if err != nil {
					slog.Debug("skipping uncanonicalizable URL", "url", raw, "error", err)
					continue
				}
				job, created := q.Enqueue(raw, key, msg.Sender)
				if !created {
					slog.Info("URL already queued or processing", "url", raw, "key", key)
					continue
				}
				slog.Info("Queued video", "job_id", job.ID, "url", raw, "requested_by", msg.Sender)
				notifier.Acknowledged(job)
			}
		}
	}
}

// prepareDirs creates the output and temp directories and clears any
// leftover working directories from a previous run.
func prepareDirs(outputDir, tempDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return err
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		stale := filepath.Join(tempDir, entry.Name())
		if err := os.RemoveAll(stale); err != nil {
			slog.Warn("failed to remove stale temp entry", "path", stale, "error", err)
		}
	}
	return nil
}
