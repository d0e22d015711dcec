package server

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/audiooverview/internal/audio"
	"github.com/dgnsrekt/audiooverview/internal/tts"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestid"

// DefaultBodyLimit bounds request bodies; scripts are plain text.
const DefaultBodyLimit = 1 << 20

// Config configures a Server.
type Config struct {
	// Synth produces speech for each dialogue entry.
	Synth tts.Synthesizer

	// Codec decodes synthesized clips and encodes the result.
	Codec audio.Codec

	// BodyLimit in bytes - defaults to 1 MiB
	BodyLimit int

	// CacheCapacity bounds the per-request synthesis memo in bytes. Zero
	// uses the cache default and a negative value disables it.
	CacheCapacity int64

	// ReadTimeout and WriteTimeout are passed to fiber; zero means none.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves narration requests.
type Server struct {
	app           *fiber.App
	synth         tts.Synthesizer
	codec         audio.Codec
	cacheCapacity int64
}

// New builds the fiber app and registers routes.
func New(config Config) (*Server, error) {
	if config.Synth == nil {
		return nil, errors.New("server: synthesizer cannot be nil")
	}
	if config.Codec == nil {
		return nil, errors.New("server: codec cannot be nil")
	}
	if config.BodyLimit == 0 {
		config.BodyLimit = DefaultBodyLimit
	}

	s := &Server{synth: config.Synth, codec: config.Codec, cacheCapacity: config.CacheCapacity}
	s.app = fiber.New(fiber.Config{
		AppName:               "audiooverview",
		BodyLimit:             config.BodyLimit,
		ReadTimeout:           config.ReadTimeout,
		WriteTimeout:          config.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	s.app.Use(requestID, logRequests)
	s.register()
	return s, nil
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()

	log.Info("Server listening", "addr", addr, "engine", s.synth.GetInfo().Name, "codec", s.codec.Name())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Server shutting down")
		if err := s.app.ShutdownWithTimeout(10 * time.Second); err != nil {
			return err
		}
		return <-errCh
	}
}

func requestID(c *fiber.Ctx) error {
	id := c.Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Locals(requestIDKey, id)
	c.Set(RequestIDHeader, id)
	return c.Next()
}

func logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	} else if err != nil {
		status = fiber.StatusInternalServerError
	}

	log.Info("Request", "id", requestIDOf(c), "method", c.Method(), "path", c.Path(), "status", status, "duration", time.Since(start))
	return err
}

func requestIDOf(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}

// errorHandler writes errors as {"error": ..., "request_id": ...}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":      err.Error(),
		"request_id": requestIDOf(c),
	})
}
