package lexalign

import "sort"

// NormalizeStyles orders, repairs and finalizes the parsed per-style
// translations. Its job is strictly structural: entry ordering, index
// repair, fallback filling and sync validation. It never re-derives
// linguistic facts (the atomic-unit flag is trusted from upstream) and it
// never fails — a style that cannot be normalized is returned marked
// degraded so the caller can hide or flag it.
//
// The returned mismatches are diagnostics for AI-sourced entries whose
// display format disagrees with the canonical construction. The entries
// themselves are retained and flagged, never dropped or corrected: losing
// vocabulary data is worse than a cosmetic inconsistency.
func NormalizeStyles(styles map[StyleID]*StyleTranslation) ([]StyleTranslation, []*SyncMismatchError) {
	ids := make([]StyleID, 0, len(styles))
	for id := range styles {
		ids = append(ids, id)
	}
	sortStyles(ids)

	var mismatches []*SyncMismatchError
	finalized := make([]StyleTranslation, 0, len(ids))
	for _, id := range ids {
		st, ms := normalizeStyle(styles[id])
		mismatches = append(mismatches, ms...)
		finalized = append(finalized, st)
	}
	return finalized, mismatches
}

func normalizeStyle(in *StyleTranslation) (StyleTranslation, []*SyncMismatchError) {
	out := StyleTranslation{
		Style:        in.Style,
		SentenceText: in.SentenceText,
		Degraded:     in.Degraded,
	}

	entries := append([]AlignmentEntry(nil), in.Entries...)

	if len(entries) == 0 {
		// The backend sent no alignment for this style: fill from the
		// sentence, clearly marked.
		entries = GenerateFallback(in.SentenceText, in.Style.Language)
		if len(entries) > 0 {
			out.Degraded = true
		}
	}

	if len(entries) == 0 {
		// No sentence and no entries even after fallback. Surface the
		// style anyway; callers decide whether to hide it.
		out.Degraded = true
		out.SyncHealth = 1
		return out, nil
	}

	// Sort by the server-provided order, stably, then reassign contiguous
	// 0-based indices. Bad indices are repaired in place; an entry is never
	// dropped because of one.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Order < entries[j].Order })

	var mismatches []*SyncMismatchError
	for i := range entries {
		entries[i].Order = i
		if !ValidateSync(entries[i]) && entries[i].Provenance == ProvenanceAI {
			entries[i].SyncMismatch = true
			mismatches = append(mismatches, &SyncMismatchError{
				Style: in.Style,
				Order: i,
				Want:  DisplayFormat(entries[i].SourceUnit, entries[i].GlossUnit),
				Got:   entries[i].DisplayFormat,
			})
		}
	}

	out.Entries = entries
	out.SyncHealth = SyncHealth(out)
	return out, mismatches
}
