package server

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/audiooverview/internal/cache"
	"github.com/dgnsrekt/audiooverview/internal/pipeline"
	"github.com/dgnsrekt/audiooverview/internal/scenario"
	"github.com/dgnsrekt/audiooverview/internal/tts"
	"github.com/dgnsrekt/audiooverview/internal/ttypes"
	"github.com/gofiber/fiber/v2"
)

// MemoHitsHeader reports how many lines of a narration reused earlier audio.
const MemoHitsHeader = "X-Repeated-Lines"

type scriptRequest struct {
	Script string `json:"script"`
}

type speakersResponse struct {
	Speakers []string `json:"speakers"`
	Charset  string   `json:"charset,omitempty"`
}

type narrateRequest struct {
	Script string            `json:"script"`
	Voices map[string]string `json:"voices"`

	// AutoAssign gives speakers missing from Voices a default voice.
	AutoAssign bool `json:"auto_assign"`
}

func (s *Server) register() {
	s.app.Get("/healthz", s.healthz)
	s.app.Get("/voices", s.voices)
	s.app.Post("/speakers", s.speakers)
	s.app.Post("/narrate", s.narrate)
}

func (s *Server) healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "engine": s.synth.GetInfo().Name})
}

func (s *Server) voices(c *fiber.Ctx) error {
	voices := tts.Voices()
	names := make([]string, len(voices))
	for i, v := range voices {
		names[i] = string(v)
	}
	return c.JSON(fiber.Map{"voices": names, "model": tts.DefaultModel})
}

// speakers accepts either {"script": ...} as JSON or the raw script bytes,
// which are charset-detected like script files.
func (s *Server) speakers(c *fiber.Ctx) error {
	var text string
	var resp speakersResponse

	if isJSON(c) {
		var req scriptRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body: "+err.Error())
		}
		text = req.Script
	} else {
		decoded, charset, err := scenario.DecodeScript(c.Body())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		text = decoded
		resp.Charset = string(charset)
	}

	names := scenario.ExtractSpeakerNames(text)
	if len(names) == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, scenario.ErrNoSpeakers.Error())
	}
	resp.Speakers = make([]string, len(names))
	for i, n := range names {
		resp.Speakers[i] = n.String()
	}
	return c.JSON(resp)
}

func (s *Server) narrate(c *fiber.Ctx) error {
	var req narrateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body: "+err.Error())
	}

	assignment, err := resolveAssignment(req)
	if err != nil {
		return statusError(err)
	}

	_, entries, err := scenario.Parse(req.Script, assignment)
	if err != nil {
		return statusError(err)
	}

	// the memo lives only as long as this request
	var synth tts.Synthesizer = s.synth
	var memo *cache.Synthesizer
	if s.cacheCapacity >= 0 {
		memo = cache.NewSynthesizer(s.synth, s.cacheCapacity)
		synth = memo
	}

	builder, err := pipeline.New(synth, s.codec)
	if err != nil {
		return err
	}

	out, err := builder.Build(c.UserContext(), entries)
	if err != nil {
		log.Error("Narration failed", "id", requestIDOf(c), "err", err)
		return statusError(err)
	}

	if memo != nil {
		st := memo.Stats()
		log.Debug("Repeated lines reused", "id", requestIDOf(c), "hits", st.Hits, "misses", st.Misses)
		c.Set(MemoHitsHeader, strconv.FormatInt(st.Hits, 10))
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="script_output.mp3"`)
	return c.Send(out)
}

// resolveAssignment turns the request's voices into an Assignment. Without
// AutoAssign the request must name every speaker itself.
func resolveAssignment(req narrateRequest) (scenario.Assignment, error) {
	overrides := make(map[string]ttypes.Voice, len(req.Voices))
	for name, voice := range req.Voices {
		v, err := tts.ParseVoice(voice)
		if err != nil {
			return nil, tts.NewConfigurationError("speaker "+name, err)
		}
		overrides[strings.TrimSpace(name)] = v
	}

	if req.AutoAssign {
		speakers := scenario.ExtractSpeakerNames(req.Script)
		if len(speakers) == 0 {
			return nil, scenario.ErrNoSpeakers
		}
		return scenario.AssignVoices(speakers, overrides)
	}

	assignment := make(scenario.Assignment, len(overrides))
	for name, v := range overrides {
		assignment[scenario.Speaker(name)] = v
	}
	return assignment, nil
}

// statusError maps narration errors onto HTTP statuses.
func statusError(err error) error {
	switch {
	case errors.Is(err, scenario.ErrNoSpeakers),
		errors.Is(err, scenario.ErrNoDialogue),
		errors.Is(err, pipeline.ErrNoEntries):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case tts.HasCode(err, tts.ErrorCodeConfiguration),
		tts.HasCode(err, tts.ErrorCodeInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case tts.HasCode(err, tts.ErrorCodeEngineUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	case tts.HasCode(err, tts.ErrorCodeSynthesis),
		tts.HasCode(err, tts.ErrorCodeDecode):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func isJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON)
}
