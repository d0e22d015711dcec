// Package audio holds decoded audio clips and the codecs that move them in
// and out of MP3. Clips are joined by appending samples, never by splicing
// compressed frames. Playback uses the oto/v3 library.
package audio
