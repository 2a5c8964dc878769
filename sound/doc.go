// Package sound provides audio cue playback for view lifecycle events.
// It uses the beep library to play WAV, OGG, and MP3 audio files
// with volume control and per-cue sound configuration.
package sound
