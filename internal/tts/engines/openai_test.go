package engines

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgnsrekt/audiooverview/internal/tts"
	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIEngine {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	engine, err := NewOpenAIEngine(OpenAIConfig{
		APIKey:            "sk-test",
		BaseURL:           srv.URL + "/",
		RequestsPerMinute: 6000,
		Timeout:           5 * time.Second,
		HTTPClient:        srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewOpenAIEngine() error = %v", err)
	}
	return engine
}

func TestNewOpenAIEngine(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		_, err := NewOpenAIEngine(OpenAIConfig{})
		if !errors.Is(err, tts.ErrMissingAPIKey) {
			t.Fatalf("error = %v, want ErrMissingAPIKey", err)
		}
		if !tts.HasCode(err, tts.ErrorCodeEngineUnavailable) {
			t.Errorf("error code = %v, want ENGINE_UNAVAILABLE", err)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		engine, err := NewOpenAIEngine(OpenAIConfig{APIKey: "sk-test"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if engine.model != tts.DefaultModel {
			t.Errorf("model = %q, want %q", engine.model, tts.DefaultModel)
		}
		if engine.baseURL != "https://api.openai.com/v1" {
			t.Errorf("baseURL = %q", engine.baseURL)
		}
		if engine.speed != 1.0 || engine.timeout != 90*time.Second {
			t.Errorf("speed = %v timeout = %v", engine.speed, engine.timeout)
		}
		if err := engine.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})
}

func TestOpenAIEngineSynthesize(t *testing.T) {
	var got speechRequest
	var auth, path string
	engine := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3fake-mp3"))
	})

	data, err := engine.Synthesize(context.Background(), "Hello there.", ttypes.Voice("nova"))
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if string(data) != "ID3fake-mp3" {
		t.Errorf("Synthesize() = %q", data)
	}
	if path != "/audio/speech" {
		t.Errorf("path = %q, want /audio/speech", path)
	}
	if auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", auth)
	}
	want := speechRequest{Model: "tts-1", Input: "Hello there.", Voice: "nova", ResponseFormat: "mp3", Speed: 1.0}
	if got != want {
		t.Errorf("request = %+v, want %+v", got, want)
	}
}

func TestOpenAIEngineSynthesizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		voice   ttypes.Voice
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "api error message",
			text:    "Hi",
			voice:   "echo",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"Incorrect API key provided"}}`,
			wantMsg: "openai error 401: Incorrect API key provided",
		},
		{
			name:    "plain error body",
			text:    "Hi",
			voice:   "echo",
			status:  http.StatusInternalServerError,
			body:    "upstream exploded\n",
			wantMsg: "openai error 500: upstream exploded",
		},
		{
			name:    "empty audio",
			text:    "Hi",
			voice:   "echo",
			status:  http.StatusOK,
			wantMsg: "openai returned no audio",
		},
		{
			name:    "empty text",
			text:    "   ",
			voice:   "echo",
			wantErr: tts.ErrEmptyText,
		},
		{
			name:    "text too long",
			text:    strings.Repeat("a", maxInputSize+1),
			voice:   "echo",
			wantErr: tts.ErrTextTooLong,
		},
		{
			name:    "unknown voice",
			text:    "Hi",
			voice:   "robot",
			wantErr: tts.ErrUnknownVoice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			engine := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := engine.Synthesize(context.Background(), tt.text, tt.voice)
			if err == nil {
				t.Fatal("Synthesize() expected error")
			}
			wantCode := tts.ErrorCodeSynthesis
			if tt.wantErr != nil {
				wantCode = tts.ErrorCodeInvalidInput
			}
			if !tts.HasCode(err, wantCode) {
				t.Errorf("error = %v, want code %s", err, wantCode)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				if calls != 0 {
					t.Errorf("server called %d times for rejected input", calls)
				}
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestOpenAIEngineCancelled(t *testing.T) {
	engine := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("audio"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Synthesize(ctx, "Hi", "alloy"); !errors.Is(err, context.Canceled) {
		t.Errorf("Synthesize() error = %v, want context.Canceled", err)
	}
}

func TestOpenAIEngineGetInfo(t *testing.T) {
	engine, err := NewOpenAIEngine(OpenAIConfig{APIKey: "sk-test", Model: "tts-1-hd"})
	if err != nil {
		t.Fatal(err)
	}
	info := engine.GetInfo()
	if info.Name != "openai" || info.Model != "tts-1-hd" || !info.IsOnline || info.MaxTextSize != maxInputSize {
		t.Errorf("GetInfo() = %+v", info)
	}
	if err := engine.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"error":{"message":"quota"}}`, "quota"},
		{`{"error":{}}`, `{"error":{}}`},
		{"  bad gateway  ", "bad gateway"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := apiErrorMessage([]byte(tt.body)); got != tt.want {
			t.Errorf("apiErrorMessage(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}
