// Package cache memoizes synthesized speech for the length of one narration.
// A script that repeats a line with the same voice pays for it once.
// Nothing is written to disk and a cache is dropped with its build.
package cache
