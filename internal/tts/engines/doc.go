// Package engines contains implementations of different speech engines.
// Currently supports the OpenAI speech endpoint (online) and a tone
// generator (offline).
// Each engine implements the Synthesizer interface from the parent package.
package engines
