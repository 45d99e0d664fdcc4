package lexalign

// ValidateSync checks the display==audio invariant for one entry: an
// AI-sourced entry's DisplayFormat must equal the canonical construction
// from its source unit and gloss, exactly.
//
// Fallback entries are exempt from the format check (they are incomplete by
// construction) but must carry the degraded marker in their gloss so real AI
// output can never be confused with a safety-net placeholder.
func ValidateSync(entry AlignmentEntry) bool {
	switch entry.Provenance {
	case ProvenanceFallback:
		return entry.GlossUnit == FallbackGlossMarker || entry.Note != ""
	default:
		return entry.DisplayFormat == DisplayFormat(entry.SourceUnit, entry.GlossUnit)
	}
}

// SyncHealth returns the fraction of a style's entries that pass the sync
// invariant, in [0,1]. A style with no entries reports full health: there is
// nothing on screen to disagree with the narration.
func SyncHealth(st StyleTranslation) float64 {
	if len(st.Entries) == 0 {
		return 1
	}
	valid := 0
	for _, e := range st.Entries {
		if ValidateSync(e) {
			valid++
		}
	}
	return float64(valid) / float64(len(st.Entries))
}
