// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"errors"
	"testing"
)

func TestParseProbe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    StreamInfo
		wantErr error
	}{
		{
			name: "aac in mp4",
			data: `{"streams":[{"index":0,"codec_name":"aac","codec_type":"audio","sample_rate":"44100","channels":2}]}`,
			want: StreamInfo{Codec: "aac", SampleRate: 44100, Channels: 2},
		},
		{
			name: "cover art before audio",
			data: `{"streams":[
				{"index":0,"codec_name":"mjpeg","codec_type":"video"},
				{"index":1,"codec_name":"wmav2","codec_type":"audio","sample_rate":" 48000 ","channels":1}
			]}`,
			want: StreamInfo{Codec: "wmav2", SampleRate: 48000, Channels: 1},
		},
		{
			name:    "no streams",
			data:    `{"streams":[]}`,
			wantErr: ErrNoAudioStream,
		},
		{
			name:    "audio without rate",
			data:    `{"streams":[{"codec_name":"aac","codec_type":"audio","sample_rate":"","channels":2}]}`,
			wantErr: ErrNoAudioStream,
		},
		{
			name:    "not json",
			data:    `Invalid data found when processing input`,
			wantErr: ErrProbe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseProbe([]byte(tt.data))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseProbe() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseProbe() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseProbe() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
