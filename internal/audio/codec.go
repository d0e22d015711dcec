package audio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

// ErrEmptyAudio indicates there were no bytes to decode.
var ErrEmptyAudio = errors.New("audio data is empty")

// Codec turns encoded audio into clips and back.
type Codec interface {
	// Decode parses an encoded buffer into a clip.
	Decode(ctx context.Context, data []byte) (*Clip, error)

	// Encode exports a clip as an encoded buffer of the same format.
	Encode(ctx context.Context, clip *Clip) ([]byte, error)

	// Name identifies the backend in logs.
	Name() string
}

// CodecOptions configures NewCodec.
type CodecOptions struct {
	// FFmpegBinary is the ffmpeg executable for CodecFFmpeg.
	FFmpegBinary string

	// Timeout bounds each ffmpeg run.
	Timeout time.Duration

	// Bitrate is the MP3 bitrate in kbps used by CodecFFmpeg.
	Bitrate int
}

// NewCodec returns the codec backend named by kind.
func NewCodec(kind ttypes.CodecType, opts CodecOptions) (Codec, error) {
	switch kind {
	case ttypes.CodecNative, "":
		return NewNativeCodec(), nil
	case ttypes.CodecFFmpeg:
		return NewFFmpegCodec(FFmpegConfig{
			Binary:  opts.FFmpegBinary,
			Timeout: opts.Timeout,
			Bitrate: opts.Bitrate,
		}), nil
	default:
		return nil, fmt.Errorf("unknown codec %q", kind)
	}
}
