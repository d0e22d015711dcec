// Package scenario reads dialogue scripts written as "Name: line" and turns
// them into an ordered list of entries, each paired with the voice assigned
// to its speaker.
package scenario
