// Package server exposes narration over HTTP using fiber.
//
// Routes:
//
//	GET  /healthz   liveness probe
//	GET  /voices    allowed voice names
//	POST /speakers  speakers found in a script
//	POST /narrate   script and voice assignment in, audio/mpeg out
//
// Every request is independent. Each response carries an X-Request-ID
// header that also tags the request's log lines.
package server
