package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/audiooverview/internal/audio"
	"github.com/dgnsrekt/audiooverview/internal/cache"
	"github.com/dgnsrekt/audiooverview/internal/pipeline"
	"github.com/dgnsrekt/audiooverview/internal/scenario"
	"github.com/dgnsrekt/audiooverview/internal/tts"
	"github.com/dgnsrekt/audiooverview/internal/tts/engines"
	"github.com/dgnsrekt/audiooverview/internal/ttypes"
	"github.com/dgnsrekt/audiooverview/utils"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	voiceFlags []string
	engineFlag string
	codecFlag  string
	outputFlag string
	playFlag   bool
	strictFlag bool

	errBinaryToTerminal = errors.New("refusing to write MP3 data to a terminal: redirect stdout or use --output FILE")
	errNoScript         = errors.New("no script given: pass a file, \"-\" or pipe the script on stdin")
)

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to open file: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

// openScript returns the script named by args, or stdin when it is piped
// or named as "-".
func openScript(args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		if len(args) == 0 {
			if yes, err := stdinIsPipe(); err != nil {
				return nil, "", err
			} else if !yes {
				return nil, "", errNoScript
			}
		}
		return io.NopCloser(os.Stdin), "stdin", nil
	}

	path := utils.ExpandPath(args[0])
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("unable to open file: %w", err)
	}
	return f, filepath.Base(path), nil
}

// loadScript reads and decodes the script named by args.
func loadScript(args []string) (string, error) {
	r, name, err := openScript(args)
	if err != nil {
		return "", err
	}
	defer r.Close() //nolint:errcheck

	text, charset, err := scenario.ReadScript(r)
	if err != nil {
		return "", fmt.Errorf("unable to read %s: %w", name, err)
	}
	log.Debug("Script loaded", "source", name, "charset", charset, "bytes", len(text))
	return text, nil
}

// voiceOverrides merges the config file's voices list with --voice flags.
// Both use "Name=voice"; flags win.
func voiceOverrides() (map[string]ttypes.Voice, error) {
	overrides, err := scenario.ParseVoiceFlags(viper.GetStringSlice("voices"))
	if err != nil {
		return nil, fmt.Errorf("config voices: %w", err)
	}

	flags, err := scenario.ParseVoiceFlags(voiceFlags)
	if err != nil {
		return nil, err
	}
	for name, v := range flags {
		overrides[name] = v
	}
	return overrides, nil
}

// resolveAssignment builds the voice assignment for text. In strict mode
// only explicit voices are used, so a missing speaker fails validation.
func resolveAssignment(text string, overrides map[string]ttypes.Voice, strict bool) (scenario.Assignment, error) {
	speakers := scenario.ExtractSpeakerNames(text)
	if len(speakers) == 0 {
		return nil, scenario.ErrNoSpeakers
	}

	if !strict {
		return scenario.AssignVoices(speakers, overrides)
	}

	a := make(scenario.Assignment, len(overrides))
	for name, v := range overrides {
		a[scenario.Speaker(name)] = v
	}
	return a, nil
}

// newEngine loads configuration and creates the selected engine and codec.
func newEngine() (tts.Config, tts.Synthesizer, audio.Codec, error) {
	cfg, err := tts.LoadConfig(viper.GetViper())
	if err != nil {
		return cfg, nil, nil, err
	}

	engineType, err := tts.ValidateEngineSelection(engineFlag, cfg)
	if err != nil {
		return cfg, nil, nil, err
	}

	if result := tts.ValidateEngine(engineType, cfg); !result.Available {
		if result.Guidance != "" {
			return cfg, nil, nil, fmt.Errorf("%w\n\n%s", result.Error, result.Guidance)
		}
		return cfg, nil, nil, result.Error
	}

	codec, err := audio.NewCodec(cfg.Codec, audio.CodecOptions{
		FFmpegBinary: utils.ExpandPath(cfg.FFmpeg.Binary),
		Timeout:      cfg.FFmpeg.Timeout,
		Bitrate:      cfg.MP3.Bitrate,
	})
	if err != nil {
		return cfg, nil, nil, err
	}

	synth, err := engines.New(engineType, cfg, codec)
	if err != nil {
		return cfg, nil, nil, err
	}
	return cfg, synth, codec, nil
}

func execute(cmd *cobra.Command, args []string) error {
	text, err := loadScript(args)
	if err != nil {
		return err
	}

	overrides, err := voiceOverrides()
	if err != nil {
		return err
	}
	assignment, err := resolveAssignment(text, overrides, strictFlag)
	if err != nil {
		return err
	}

	// every speaker must have a voice before anything is synthesized
	speakers, entries, err := scenario.Parse(text, assignment)
	if err != nil {
		return err
	}

	cfg, synth, codec, err := newEngine()
	if err != nil {
		return err
	}
	defer synth.Close() //nolint:errcheck

	output := cfg.Output
	if output == "-" && term.IsTerminal(int(os.Stdout.Fd())) {
		return errBinaryToTerminal
	}

	errOut := cmd.ErrOrStderr()
	for _, s := range speakers {
		fmt.Fprintf(errOut, "  %s %s\n", keyword(s.String()), faint(string(assignment[s])))
	}

	var lineSynth tts.Synthesizer = synth
	var memo *cache.Synthesizer
	if !viper.GetBool("cache.disabled") {
		memo = cache.NewSynthesizer(synth, viper.GetInt64("cache.capacity"))
		lineSynth = memo
	}

	builder, err := pipeline.New(lineSynth, codec, pipeline.WithProgress(progressPrinter(errOut)))
	if err != nil {
		return err
	}

	data, err := builder.Build(cmd.Context(), entries)
	if err != nil {
		fmt.Fprintln(errOut, failure("  narration failed, no audio written"))
		return err
	}

	if err := writeOutput(output, data, cmd.OutOrStdout()); err != nil {
		return err
	}

	stats := builder.Stats()
	logMemo(memo)
	if output != "-" {
		fmt.Fprintf(errOut, "\n  Wrote %s (%s, %d lines, %s)\n",
			keyword(output), humanize.Bytes(uint64(len(data))), stats.Entries, stats.Audio.Round(time.Second))
	}

	if playFlag {
		return play(cmd.Context(), codec, data)
	}
	return nil
}

// logMemo reports how many lines were answered from the repeated-line memo.
func logMemo(memo *cache.Synthesizer) {
	if memo == nil {
		return
	}
	st := memo.Stats()
	log.Info("Repeated lines reused", "hits", st.Hits, "misses", st.Misses, "hit_rate", fmt.Sprintf("%.0f%%", st.HitRate*100))
}

func progressPrinter(w io.Writer) pipeline.ProgressFunc {
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return func(done, total int, e scenario.Entry) {
		fmt.Fprintf(w, "\r  %s %d/%d", faint("synthesizing"), done, total)
		if done == total {
			fmt.Fprintln(w)
		}
	}
}

// writeOutput writes data to path, or to stdout for "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "-" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("unable to write to stdout: %w", err)
		}
		return nil
	}

	path = utils.ExpandPath(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("unable to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("unable to write output: %w", err)
	}
	log.Info("Narration written", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return nil
}

func play(ctx context.Context, codec audio.Codec, data []byte) error {
	clip, err := codec.Decode(ctx, data)
	if err != nil {
		return fmt.Errorf("unable to decode narration for playback: %w", err)
	}

	// the player resamples to the device rate
	player, err := audio.NewPlayer(audio.DefaultPlayerConfig())
	if err != nil {
		return fmt.Errorf("unable to start playback: %w", err)
	}
	return player.Play(ctx, clip)
}
