package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// ffmpegSampleRate is the rate clips are decoded to.
	ffmpegSampleRate = 44100
	ffmpegChannels   = 2

	// maxFFmpegOutput bounds what a single run may write to stdout.
	maxFFmpegOutput = 512 * 1024 * 1024
)

// FFmpegConfig configures the ffmpeg codec.
type FFmpegConfig struct {
	Binary  string
	Timeout time.Duration
	Bitrate int
}

// FFmpegCodec decodes and encodes MP3 by piping through ffmpeg.
type FFmpegCodec struct {
	binary  string
	timeout time.Duration
	bitrate int
}

// NewFFmpegCodec creates an ffmpeg backed codec.
func NewFFmpegCodec(config FFmpegConfig) *FFmpegCodec {
	if config.Binary == "" {
		config.Binary = "ffmpeg"
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Bitrate <= 0 {
		config.Bitrate = 128
	}
	return &FFmpegCodec{
		binary:  config.Binary,
		timeout: config.Timeout,
		bitrate: config.Bitrate,
	}
}

// Name identifies the backend.
func (f *FFmpegCodec) Name() string { return "ffmpeg" }

// Decode converts encoded audio to 44.1 kHz stereo PCM.
func (f *FFmpegCodec) Decode(ctx context.Context, data []byte) (*Clip, error) {
	if len(data) == 0 {
		return nil, ErrEmptyAudio
	}

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-f", "s16le", // signed 16-bit little-endian
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(ffmpegSampleRate),
		"-ac", strconv.Itoa(ffmpegChannels),
		"pipe:1",
	}

	pcm, err := f.run(ctx, args, data)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}
	return ClipFromPCM(pcm[:len(pcm)-len(pcm)%4], ffmpegSampleRate, ffmpegChannels)
}

// Encode converts a clip to MP3 at the configured bitrate.
func (f *FFmpegCodec) Encode(ctx context.Context, clip *Clip) ([]byte, error) {
	if clip == nil || len(clip.Samples) == 0 {
		return nil, ErrEmptyAudio
	}

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "s16le",
		"-ar", strconv.Itoa(clip.SampleRate),
		"-ac", strconv.Itoa(clip.Channels),
		"-i", "pipe:0",
		"-f", "mp3",
		"-b:a", fmt.Sprintf("%dk", f.bitrate),
		"pipe:1",
	}

	out, err := f.run(ctx, args, clip.PCM())
	if err != nil {
		return nil, fmt.Errorf("ffmpeg encode failed: %w", err)
	}
	return out, nil
}

// run executes ffmpeg with stdin, returning stdout. The process is
// interrupted, then killed, if it outlives the timeout.
func (f *FFmpegCodec) run(ctx context.Context, args []string, stdin []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.binary, args...)
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- cmd.Run()
	}()

	select {
	case err := <-done:
		log.Debug("ffmpeg finished", "args", strings.Join(args, " "), "duration", time.Since(start), "error", err)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("ffmpeg timeout: %w", ctx.Err())
			}
			return nil, fmt.Errorf("%s failed: %w, stderr: %s", f.binary, err, strings.TrimSpace(stderr.String()))
		}

	case <-ctx.Done():
		if cmd.Process != nil {
			_ = cmd.Process.Signal(os.Interrupt)

			select {
			case <-done:
			case <-time.After(100 * time.Millisecond):
				_ = cmd.Process.Kill()
				<-done
			}
		}
		return nil, fmt.Errorf("ffmpeg timeout after %s: %w", f.timeout, ctx.Err())
	}

	out := stdout.Bytes()
	if len(out) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output, stderr: %s", strings.TrimSpace(stderr.String()))
	}
	if len(out) > maxFFmpegOutput {
		return nil, fmt.Errorf("ffmpeg output too large: %d bytes (max %d)", len(out), maxFFmpegOutput)
	}
	return out, nil
}

var _ Codec = (*FFmpegCodec)(nil)
