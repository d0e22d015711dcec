package tts

import (
	"errors"
	"fmt"
)

// Common narration errors
var (
	// ErrNoEngineConfigured indicates no synthesis engine has been selected
	ErrNoEngineConfigured = errors.New("no TTS engine configured - specify --engine openai or --engine tone")

	// ErrInvalidEngine indicates an unknown engine was specified
	ErrInvalidEngine = errors.New("invalid TTS engine specified")

	// ErrMissingAPIKey indicates the online engine has no credentials
	ErrMissingAPIKey = errors.New("OpenAI API key is not set: export OPENAI_API_KEY")

	// ErrSynthesisFailed indicates synthesis operation failed
	ErrSynthesisFailed = errors.New("text synthesis failed")

	// ErrDecodeFailed indicates synthesized audio could not be decoded
	ErrDecodeFailed = errors.New("audio decode failed")

	// ErrUnknownVoice indicates a voice outside the allow-list
	ErrUnknownVoice = errors.New("unknown voice")

	// ErrIncompleteAssignment indicates a speaker has no voice
	ErrIncompleteAssignment = errors.New("every speaker needs a voice")

	// ErrEmptyText indicates there is nothing to synthesize
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrTextTooLong indicates text exceeds the engine limit
	ErrTextTooLong = errors.New("text too long")
)

// TTSError represents a narration error with additional context
type TTSError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *TTSError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *TTSError) Unwrap() error {
	return e.Cause
}

// ErrorCode identifies specific error types
type ErrorCode string

const (
	// Input errors
	ErrorCodeConfiguration ErrorCode = "CONFIGURATION"
	ErrorCodeInvalidInput  ErrorCode = "INVALID_INPUT"

	// Engine errors
	ErrorCodeSynthesis         ErrorCode = "SYNTHESIS_FAILURE"
	ErrorCodeEngineUnavailable ErrorCode = "ENGINE_UNAVAILABLE"

	// Audio errors
	ErrorCodeDecode ErrorCode = "DECODE_FAILURE"
	ErrorCodeEncode ErrorCode = "ENCODE_FAILURE"
)

// NewTTSError creates a new error with context
func NewTTSError(code ErrorCode, message string, cause error) *TTSError {
	return &TTSError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewConfigurationError reports an assignment that does not cover the script.
func NewConfigurationError(message string, cause error) *TTSError {
	return NewTTSError(ErrorCodeConfiguration, message, cause)
}

// NewSynthesisError reports a failure of the speech service.
func NewSynthesisError(message string, cause error) *TTSError {
	if cause == nil {
		cause = ErrSynthesisFailed
	}
	return NewTTSError(ErrorCodeSynthesis, message, cause)
}

// NewDecodeError reports synthesized bytes that could not be decoded.
func NewDecodeError(message string, cause error) *TTSError {
	if cause == nil {
		cause = ErrDecodeFailed
	}
	return NewTTSError(ErrorCodeDecode, message, cause)
}

// WithContext adds context to the error
func (e *TTSError) WithContext(key string, value interface{}) *TTSError {
	e.Context[key] = value
	return e
}

// HasCode reports whether err wraps a TTSError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var e *TTSError
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
