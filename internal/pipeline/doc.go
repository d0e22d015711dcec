// Package pipeline turns parsed dialogue into one narrated MP3.
//
// Entries are synthesized one at a time in script order. Each clip is
// decoded to PCM and appended to the running recording, and the result is
// encoded once at the end. The first failure aborts the build and no
// partial audio is returned.
package pipeline
