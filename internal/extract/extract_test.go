package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract_SingleYouTubeURL(t *testing.T) {
	urls := Extract("check this out https://www.youtube.com/watch?v=ggLajT7aMMk lol")
	require.Equal(t, []string{"https://youtube.com/watch?v=ggLajT7aMMk"}, urls)
}

func TestExtract_OrderOfFirstOccurrence(t *testing.T) {
	text := "https://vimeo.com/123456 then https://youtu.be/abc123 and https://www.twitch.tv/videos/987654"
	urls := Extract(text)
	require.Equal(t, []string{
		"https://vimeo.com/123456",
		"https://youtube.com/watch?v=abc123",
		"https://twitch.tv/videos/987654",
	}, urls)
}

func TestExtract_DeduplicatesOnCanonicalForm(t *testing.T) {
	// Same video via shortlink and full link, plus a literal repeat.
	text := "https://youtu.be/ggLajT7aMMk and https://www.youtube.com/watch?v=ggLajT7aMMk&t=10s and https://youtu.be/ggLajT7aMMk"
	urls := Extract(text)
	require.Equal(t, []string{"https://youtube.com/watch?v=ggLajT7aMMk"}, urls)
}

func TestExtract_GenericDirectFile(t *testing.T) {
	urls := Extract("raw file at http://files.example.com/clips/demo.mp4?token=1")
	require.Equal(t, []string{"https://files.example.com/clips/demo.mp4?token=1"}, urls)
}

func TestExtract_NoURLs(t *testing.T) {
	require.Empty(t, Extract("just chatting, no links here"))
	require.Empty(t, Extract(""))
}

func TestExtract_IgnoresNonVideoLinks(t *testing.T) {
	require.Empty(t, Extract("see https://example.com/article and https://youtube.com/feed/subscriptions"))
}

func TestCanonicalize_YouTubeVariants(t *testing.T) {
	for _, raw := range []string{
		"https://www.youtube.com/watch?v=ggLajT7aMMk&t=123s&si=abc",
		"https://youtu.be/ggLajT7aMMk?t=120",
		"https://m.youtube.com/watch?v=ggLajT7aMMk",
		"https://youtube.com/shorts/ggLajT7aMMk",
		"http://www.youtube.com/embed/ggLajT7aMMk",
	} {
		canon, err := Canonicalize(raw)
		require.NoError(t, err, raw)
		require.Equal(t, "https://youtube.com/watch?v=ggLajT7aMMk", canon, raw)
	}
}

func TestCanonicalize_StripsQueryForKnownHosts(t *testing.T) {
	canon, err := Canonicalize("https://www.twitch.tv/videos/123456789?t=1h2m3s")
	require.NoError(t, err)
	require.Equal(t, "https://twitch.tv/videos/123456789", canon)

	canon, err = Canonicalize("https://www.dailymotion.com/video/x7abc12")
	require.NoError(t, err)
	require.Equal(t, "https://dailymotion.com/video/x7abc12", canon)
}

func TestCanonicalize_UnknownHostKeepsQuery(t *testing.T) {
	canon, err := Canonicalize("http://cdn.example.net/v/clip.webm?sig=xyz#t=30")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.net/v/clip.webm?sig=xyz", canon)
}

func TestCanonicalize_Empty(t *testing.T) {
	_, err := Canonicalize("   ")
	require.Error(t, err)
}
