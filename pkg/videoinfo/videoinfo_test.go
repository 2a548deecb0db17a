package videoinfo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleProbeJSON = `{
  "streams": [
    {"codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720},
    {"codec_type": "audio", "codec_name": "aac"}
  ],
  "format": {"duration": "754.3"}
}`

func stubClient(stdout string, err error) (*Client, *[]string) {
	var gotArgs []string
	c := New()
	c.execFn = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = append([]string{name}, args...)
		if err != nil {
			return nil, err
		}
		return []byte(stdout), nil
	}
	return c, &gotArgs
}

func TestProbe(t *testing.T) {
	c, gotArgs := stubClient(sampleProbeJSON, nil)

	info, err := c.Probe(context.Background(), "/output/clip.mp4")
	require.NoError(t, err)
	require.Equal(t, "h264", info.VideoCodec)
	require.Equal(t, "aac", info.AudioCodec)
	require.Equal(t, "1280x720", info.Resolution())
	require.Equal(t, "12m34s", info.Duration())

	require.Equal(t, "ffprobe", (*gotArgs)[0])
	require.Contains(t, *gotArgs, "-show_streams")
	require.Contains(t, *gotArgs, "/output/clip.mp4")
}

func TestProbe_ExecFailure(t *testing.T) {
	boom := errors.New("no such file")
	c, _ := stubClient("", boom)

	_, err := c.Probe(context.Background(), "missing.mp4")
	require.ErrorIs(t, err, boom)
}

func TestProbe_BadJSON(t *testing.T) {
	c, _ := stubClient("not json", nil)

	_, err := c.Probe(context.Background(), "clip.mp4")
	require.Error(t, err)
}

func TestInfo_Rendering(t *testing.T) {
	require.Equal(t, "", Info{}.Duration())
	require.Equal(t, "", Info{}.Resolution())
	require.Equal(t, "1h1m5s", Info{DurationSeconds: 3665}.Duration())
	require.Equal(t, "0m42s", Info{DurationSeconds: 42.9}.Duration())
}
