package engines

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/audiooverview/internal/tts"
	"github.com/dgnsrekt/audiooverview/internal/ttypes"
	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"
)

// maxInputSize is the character limit of the speech endpoint.
const maxInputSize = 4096

// maxAudioSize bounds a single response body.
const maxAudioSize = 50 * 1024 * 1024

// OpenAIEngine implements tts.Synthesizer using the OpenAI speech endpoint.
type OpenAIEngine struct {
	apiKey  string
	baseURL string
	model   string
	speed   float64
	timeout time.Duration

	client *http.Client

	// Rate limiting to stay under the account's request quota
	rateLimiter *rate.Limiter
}

// OpenAIConfig holds configuration for the OpenAI engine.
type OpenAIConfig struct {
	// APIKey is sent as a bearer token
	APIKey string

	// BaseURL of the API - defaults to https://api.openai.com/v1
	BaseURL string

	// Model - defaults to tts-1
	Model string

	// Speed between 0.25 and 4.0 - defaults to 1.0
	Speed float64

	// Timeout per request - defaults to 90s
	Timeout time.Duration

	// Rate limit requests per minute (defaults to 50)
	RequestsPerMinute int

	// HTTPClient overrides the default client
	HTTPClient *http.Client
}

// speechRequest is the JSON body of POST /audio/speech.
type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed,omitempty"`
}

// NewOpenAIEngine creates a new OpenAI speech engine.
func NewOpenAIEngine(config OpenAIConfig) (*OpenAIEngine, error) {
	if config.APIKey == "" {
		return nil, tts.NewTTSError(tts.ErrorCodeEngineUnavailable, "openai engine", tts.ErrMissingAPIKey)
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.openai.com/v1"
	}
	if config.Model == "" {
		config.Model = tts.DefaultModel
	}
	if config.Speed == 0 {
		config.Speed = 1.0
	}
	if config.Timeout == 0 {
		config.Timeout = 90 * time.Second
	}
	if config.RequestsPerMinute == 0 {
		config.RequestsPerMinute = 50
	}
	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}

	rateLimiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), 1)

	return &OpenAIEngine{
		apiKey:      config.APIKey,
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		model:       config.Model,
		speed:       config.Speed,
		timeout:     config.Timeout,
		client:      config.HTTPClient,
		rateLimiter: rateLimiter,
	}, nil
}

// Synthesize converts text to MP3 bytes spoken with voice.
func (e *OpenAIEngine) Synthesize(ctx context.Context, text string, voice ttypes.Voice) ([]byte, error) {
	audio, err := e.synthesize(ctx, text, voice)
	if err != nil {
		var te *tts.TTSError
		if errors.As(err, &te) {
			return nil, err
		}
		return nil, tts.NewSynthesisError(fmt.Sprintf("openai voice %s", voice), err)
	}
	return audio, nil
}

func (e *OpenAIEngine) synthesize(ctx context.Context, text string, voice ttypes.Voice) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, tts.NewTTSError(tts.ErrorCodeInvalidInput, "openai", tts.ErrEmptyText)
	}
	if n := len([]rune(text)); n > maxInputSize {
		return nil, tts.NewTTSError(tts.ErrorCodeInvalidInput, "openai",
			fmt.Errorf("%w: %d characters (max %d)", tts.ErrTextTooLong, n, maxInputSize))
	}
	if !tts.IsKnownVoice(voice) {
		return nil, tts.NewTTSError(tts.ErrorCodeInvalidInput, "openai", fmt.Errorf("%w: %q", tts.ErrUnknownVoice, voice))
	}

	// Rate limit to avoid 429s
	if err := e.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	body, err := json.Marshal(speechRequest{
		Model:          e.model,
		Input:          text,
		Voice:          string(voice),
		ResponseFormat: "mp3",
		Speed:          e.speed,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to encode request: %w", err)
	}

	// adopt timeout from ctx or fall back to the configured one
	reqCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, e.baseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	log.Debug("Synthesis started", "engine", "openai", "model", e.model, "voice", voice, "textLength", len([]rune(text)))
	start := time.Now()

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return nil, fmt.Errorf("openai error %d: %s", resp.StatusCode, apiErrorMessage(b))
	}

	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioSize+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read response: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("openai returned no audio")
	}
	if len(audio) > maxAudioSize {
		return nil, fmt.Errorf("openai audio too large: more than %s", humanize.IBytes(maxAudioSize))
	}

	log.Debug("Synthesis completed", "engine", "openai", "voice", voice, "audio", humanize.IBytes(uint64(len(audio))), "duration", time.Since(start))
	return audio, nil
}

// apiErrorMessage extracts error.message from an API error body, falling
// back to the trimmed body.
func apiErrorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// GetInfo returns engine capabilities and configuration.
func (e *OpenAIEngine) GetInfo() ttypes.EngineInfo {
	return ttypes.EngineInfo{
		Name:        "openai",
		Model:       e.model,
		Format:      "mp3",
		MaxTextSize: maxInputSize,
		IsOnline:    true,
	}
}

// Validate checks if the engine is properly configured.
func (e *OpenAIEngine) Validate() error {
	if e.apiKey == "" {
		return tts.ErrMissingAPIKey
	}
	return nil
}

// Close releases idle connections.
func (e *OpenAIEngine) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

var _ tts.Synthesizer = (*OpenAIEngine)(nil)
