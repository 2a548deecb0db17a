package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"videobot/internal/chat"
	"videobot/internal/queue"
)

type sendRecorder struct {
	sent []string
	err  error
}

func (b *sendRecorder) Messages() <-chan chat.Message { return nil }

func (b *sendRecorder) Send(text string) error {
	if b.err != nil {
		return b.err
	}
	b.sent = append(b.sent, text)
	return nil
}

func testJob() *queue.Job {
	return &queue.Job{
		URL:         "https://youtube.com/watch?v=abc",
		RequestedBy: "alice",
		OutputPath:  "/output/My-Clip-08-30-26_21-07-x220.mp4",
	}
}

func TestChatNotifier_Messages(t *testing.T) {
	bus := &sendRecorder{}
	n := &ChatNotifier{Bus: bus, BaseURL: "http://10.0.0.2:8084/"}
	job := testJob()

	n.Acknowledged(job)
	n.Started(job)
	n.Completed(job, 52_428_800)
	n.Failed(job, "encoding failed")

	require.Len(t, bus.sent, 4)
	require.Contains(t, bus.sent[0], "Queued: https://youtube.com/watch?v=abc")
	require.Contains(t, bus.sent[1], "Processing video: https://youtube.com/watch?v=abc")
	require.Contains(t, bus.sent[1], "requested by alice")
	require.Contains(t, bus.sent[2], "http://10.0.0.2:8084/My-Clip-08-30-26_21-07-x220.mp4")
	require.Contains(t, bus.sent[2], "52 MB")
	require.Contains(t, bus.sent[3], "encoding failed")
	require.Contains(t, bus.sent[3], "requested by alice")
}

func TestChatNotifier_SendFailureIsDropped(t *testing.T) {
	bus := &sendRecorder{err: errors.New("sink unreachable")}
	n := &ChatNotifier{Bus: bus, BaseURL: "http://localhost:8084"}

	// Must not panic or propagate anything.
	n.Started(testJob())
	n.Completed(testJob(), 1)
	require.Empty(t, bus.sent)
}

func TestChatNotifier_EscapesArtifactName(t *testing.T) {
	bus := &sendRecorder{}
	n := &ChatNotifier{Bus: bus, BaseURL: "http://localhost:8084"}
	job := testJob()
	job.OutputPath = "/output/a video.mp4"

	n.Completed(job, 10)
	require.Contains(t, bus.sent[0], "http://localhost:8084/a%20video.mp4")
}
