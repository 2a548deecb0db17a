// Package notify reports job lifecycle events back to the chat channel.
//
// Delivery is best-effort: a failed send is logged and dropped, it never
// blocks or fails the pipeline.
package notify

import (
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"videobot/internal/chat"
	"videobot/internal/queue"
)

// Notifier receives job lifecycle events.
type Notifier interface {
	// Acknowledged fires when a URL is first admitted to the queue.
	Acknowledged(job *queue.Job)
	// Started fires when a worker picks the job up and begins downloading.
	Started(job *queue.Job)
	// Completed fires once the artifact is published.
	Completed(job *queue.Job, sizeBytes int64)
	// Failed fires with a short reason safe to echo into the channel.
	Failed(job *queue.Job, reason string)
}

// ChatNotifier formats lifecycle messages and sends them over the chat bus.
type ChatNotifier struct {
	Bus chat.Bus
	// BaseURL is the public address of the file server, e.g.
	// "http://10.0.0.2:8084". Completed messages link artifacts under it.
	BaseURL string
}

func (n *ChatNotifier) Acknowledged(job *queue.Job) {
	n.send(fmt.Sprintf("📹 Queued: %s", job.URL))
}

func (n *ChatNotifier) Started(job *queue.Job) {
	n.send(fmt.Sprintf("📹 Processing video: %s (requested by %s)", job.URL, job.RequestedBy))
}

func (n *ChatNotifier) Completed(job *queue.Job, sizeBytes int64) {
	fileURL := n.artifactURL(job.OutputPath)
	n.send(fmt.Sprintf("✅ Video ready: %s (%s, requested by %s)",
		fileURL, humanize.Bytes(uint64(sizeBytes)), job.RequestedBy))
}

func (n *ChatNotifier) Failed(job *queue.Job, reason string) {
	n.send(fmt.Sprintf("❌ Failed to process video: %s: %s (requested by %s)",
		job.URL, reason, job.RequestedBy))
}

func (n *ChatNotifier) artifactURL(outputPath string) string {
	return strings.TrimRight(n.BaseURL, "/") + "/" + url.PathEscape(filepath.Base(outputPath))
}

func (n *ChatNotifier) send(text string) {
	if err := n.Bus.Send(text); err != nil {
		slog.Warn("notification dropped", "error", err, "text", text)
	}
}

// Noop discards all events. Used in tests and when no chat sink is wired.
type Noop struct{}

func (Noop) Acknowledged(*queue.Job)     {}
func (Noop) Started(*queue.Job)          {}
func (Noop) Completed(*queue.Job, int64) {}
func (Noop) Failed(*queue.Job, string)   {}
