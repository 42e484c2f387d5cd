package ffmpeg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wavProbeJSON = `{
  "streams": [
    {"codec_type": "audio", "codec_name": "pcm_s16le"}
  ],
  "format": {"duration": "12.500000"}
}`

const mp4ProbeJSON = `{
  "streams": [
    {"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080},
    {"codec_type": "audio", "codec_name": "aac"}
  ],
  "format": {"duration": "95.040000"}
}`

func TestProber_Probe(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		wantDur   time.Duration
		wantCodec string
		wantWidth int
		wantAudio bool
	}{
		{name: "wav", output: wavProbeJSON, wantDur: 12500 * time.Millisecond, wantCodec: "pcm_s16le", wantAudio: true},
		{name: "mp4", output: mp4ProbeJSON, wantDur: 95040 * time.Millisecond, wantCodec: "h264", wantWidth: 1920, wantAudio: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockRunner{output: []byte(tt.output)}
			p := NewProber("/opt/ffprobe", runner)

			info, err := p.Probe(context.Background(), "/media/file")
			require.NoError(t, err)
			assert.Equal(t, tt.wantDur, info.Duration)
			assert.Equal(t, tt.wantCodec, info.Codec)
			assert.Equal(t, tt.wantWidth, info.Width)
			assert.Equal(t, tt.wantAudio, info.HasAudio)
			assert.Equal(t, "/opt/ffprobe", runner.calls[0][0])
			assert.Equal(t, "/media/file", runner.calls[0][len(runner.calls[0])-1])
		})
	}
}

func TestProber_SideStreams(t *testing.T) {
	subtitled := `{
  "streams": [
    {"codec_type": "video", "codec_name": "h264"},
    {"codec_type": "subtitle", "codec_name": "mov_text"}
  ],
  "format": {"duration": "10.0"}
}`
	info, err := NewProber("", &mockRunner{output: []byte(subtitled)}).Probe(context.Background(), "/media/clip.mp4")
	require.NoError(t, err)
	assert.False(t, info.HasAudio)
	assert.True(t, info.HasSideStreams)

	info, err = NewProber("", &mockRunner{output: []byte(mp4ProbeJSON)}).Probe(context.Background(), "/media/talk.mp4")
	require.NoError(t, err)
	assert.True(t, info.HasAudio)
	assert.True(t, info.HasSideStreams)
}

func TestProber_Errors(t *testing.T) {
	_, err := NewProber("", &mockRunner{}).Probe(context.Background(), "")
	assert.ErrorContains(t, err, "file path is required")

	_, err = NewProber("", &mockRunner{outputErr: errors.New("exit status 1")}).Probe(context.Background(), "/x.wav")
	assert.ErrorContains(t, err, "ffprobe failed")

	_, err = NewProber("", &mockRunner{output: []byte("not json")}).Probe(context.Background(), "/x.wav")
	assert.ErrorContains(t, err, "failed to parse ffprobe output")

	_, err = NewProber("", &mockRunner{output: []byte(`{"streams": [], "format": {}}`)}).Probe(context.Background(), "/x.txt")
	assert.ErrorContains(t, err, "no streams found")
}
