package tts

import (
	"fmt"
	"os/exec"

	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

// ValidationResult contains the result of engine validation
type ValidationResult struct {
	// Engine is the validated engine type
	Engine ttypes.EngineType

	// Available indicates if the engine is available and configured
	Available bool

	// Error contains any validation error
	Error error

	// Guidance provides setup instructions if validation failed
	Guidance string

	// Details contains additional validation information
	Details map[string]string
}

// ValidateEngineSelection resolves the engine from the CLI argument first,
// then config. Returns ErrNoEngineConfigured if neither names one.
func ValidateEngineSelection(cliArg string, config Config) (ttypes.EngineType, error) {
	// 1. CLI argument takes precedence
	engineType := ttypes.ParseEngineType(cliArg)

	// 2. Use config if no CLI arg
	if engineType == ttypes.EngineNone {
		engineType = ttypes.ParseEngineType(string(config.Engine))
	}

	if engineType == ttypes.EngineNone {
		return ttypes.EngineNone, fmt.Errorf("%w\n\nPlease specify an engine:\n  audiooverview --engine openai script.txt   # OpenAI speech (online)\n  audiooverview --engine tone script.txt     # Tone generator (offline)\n\nOr set a default in ~/.config/audiooverview/audiooverview.yml:\n  engine: openai", ErrNoEngineConfigured)
	}

	switch engineType {
	case ttypes.EngineOpenAI, ttypes.EngineTone:
		return engineType, nil
	default:
		return ttypes.EngineNone, fmt.Errorf("%w: %s\n\nSupported engines:\n  - openai (OpenAI speech, requires OPENAI_API_KEY)\n  - tone (offline tone generator)", ErrInvalidEngine, engineType)
	}
}

// ValidateEngine checks that the selected engine and codec can run with config.
func ValidateEngine(engineType ttypes.EngineType, config Config) *ValidationResult {
	result := &ValidationResult{
		Engine:  engineType,
		Details: make(map[string]string),
	}

	switch engineType {
	case ttypes.EngineOpenAI:
		result = validateOpenAIEngine(config.OpenAI, result)
	case ttypes.EngineTone:
		result.Details["engine"] = "Tone generator (offline)"
		result.Details["sample_rate"] = fmt.Sprintf("%d", config.Tone.SampleRate)
		result.Available = true
	case ttypes.EngineNone:
		result.Error = ErrNoEngineConfigured
		result.Guidance = "Please specify an engine with --engine flag or in config file"
	default:
		result.Error = fmt.Errorf("%w: %s", ErrInvalidEngine, engineType)
		result.Guidance = "Supported engines: openai, tone"
	}

	if result.Error == nil && config.Codec == ttypes.CodecFFmpeg {
		result = validateFFmpeg(config.FFmpeg, result)
	}

	return result
}

func validateOpenAIEngine(config OpenAIConfig, result *ValidationResult) *ValidationResult {
	result.Details["engine"] = "OpenAI speech (online)"
	result.Details["model"] = config.Model
	result.Details["base_url"] = config.BaseURL

	if config.APIKey == "" {
		result.Error = ErrMissingAPIKey
		result.Guidance = buildAPIKeyGuidance()
		return result
	}

	result.Available = true
	result.Details["status"] = "Ready (full validation requires network test)"
	return result
}

func validateFFmpeg(config FFmpegConfig, result *ValidationResult) *ValidationResult {
	path, err := exec.LookPath(config.Binary)
	if err != nil {
		result.Available = false
		result.Error = fmt.Errorf("ffmpeg not found in PATH: %w", err)
		result.Guidance = buildFFmpegInstallGuidance()
		return result
	}
	result.Details["ffmpeg_path"] = path
	return result
}

func buildAPIKeyGuidance() string {
	return `The OpenAI engine needs an API key. Either:

1. Export it in your shell:
   export OPENAI_API_KEY=sk-...

2. Put it in a .env file next to where you run audiooverview:
   OPENAI_API_KEY=sk-...

3. Or use the offline engine for a dry run:
   audiooverview --engine tone script.txt`
}

// buildFFmpegInstallGuidance provides instructions for installing ffmpeg
func buildFFmpegInstallGuidance() string {
	return `ffmpeg is required for --codec ffmpeg. To install:

# Ubuntu/Debian
sudo apt update && sudo apt install ffmpeg

# macOS (Homebrew)
brew install ffmpeg

# Arch Linux
sudo pacman -S ffmpeg

Or switch back to the built-in codec with --codec native.`
}
