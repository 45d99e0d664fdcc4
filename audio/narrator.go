package audio

import (
	"context"

	"github.com/LexaLabs/lexalign"
)

// Script compiles one style's narration under the given audio mode.
//
// Word-by-word mode speaks each entry's source unit then its gloss, in entry
// order — the exact two fields the display format is built from, which is
// how the display==spoken invariant carries into playback. Sentence mode
// speaks the sentence text once; when the server supplied narration audio
// for the turn, that clip is preferred over re-synthesizing the sentence.
func Script(st lexalign.StyleTranslation, mode lexalign.AudioMode, audioPath string) []Clip {
	if mode == lexalign.ModeWordByWord {
		clips := make([]Clip, 0, len(st.Entries)*2)
		for _, e := range st.Entries {
			clips = append(clips, Clip{Text: e.SourceUnit}, Clip{Text: e.GlossUnit})
		}
		return clips
	}

	if audioPath != "" {
		return []Clip{{URI: audioPath}}
	}
	if st.SentenceText == "" {
		return nil
	}
	return []Clip{{Text: st.SentenceText}}
}

// Narrator plays finished turns through an exclusive session. It is a pure
// read-only consumer of the alignment model: playback state never leaks back
// into the model.
type Narrator struct {
	session *Session
}

// NewNarrator creates a Narrator on top of the given session.
func NewNarrator(session *Session) *Narrator {
	return &Narrator{session: session}
}

// NarrateStyle plays one style of a finished turn, choosing the mode from
// the turn's configuration. Starting narration supersedes any playback in
// progress.
func (n *Narrator) NarrateStyle(ctx context.Context, result *lexalign.TurnResult, id lexalign.StyleID) error {
	st := result.StyleFor(id)
	if st == nil {
		return nil
	}
	mode := lexalign.ModeFor(id.Language, result.Config)
	return n.session.Play(ctx, Script(*st, mode, result.AudioPath)...)
}

// Stop aborts any narration in progress.
func (n *Narrator) Stop() {
	n.session.Stop()
}
