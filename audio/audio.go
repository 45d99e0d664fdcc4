// Package audio holds the playback contract and the narration logic that
// turns a normalized word-alignment model into the spoken script.
//
// The package never implements audio output itself; the Player is an
// external collaborator (platform TTS, a media player for server-generated
// narration). What it does own is the sequencing rule that narration speaks
// exactly the fields the display renders.
package audio

import "context"

// Clip is one playable unit: either synthesized text or a server-generated
// audio handle. Exactly one of the two fields is set.
type Clip struct {
	Text string
	URI  string
}

// Player is the external audio subsystem. Play blocks until the clip
// finishes or the context is cancelled; Stop aborts any in-progress Play.
type Player interface {
	Play(ctx context.Context, clip Clip) error
	Stop()
}
