package lexalign

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RenderHTML renders a finished turn as a self-contained HTML document: one
// section per style with the sentence and the full word-by-word breakdown.
//
// Rendering is unconditional for every entry regardless of the audio mode.
// Each pair is printed exactly as its DisplayFormat, including entries
// flagged with a sync mismatch, so what the page shows is what the model
// holds.
func RenderHTML(result *TurnResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("nil turn result")
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"></head>\n<body>\n")
	fmt.Fprintf(&b, "<main class=\"turn %s\">\n", strings.ToLower(string(result.State)))

	for _, st := range result.Styles {
		renderStyle(&b, st)
	}

	b.WriteString("</main>\n</body>\n</html>\n")

	return decorateHTML(b.String(), result.Config.MotherTongue)
}

func renderStyle(b *strings.Builder, st StyleTranslation) {
	classes := "style"
	if st.Degraded {
		classes += " degraded"
	}
	fmt.Fprintf(b, "<section class=%q lang=%q data-sync-health=\"%.2f\">\n",
		classes, LanguageTag(st.Style.Language), st.SyncHealth)
	fmt.Fprintf(b, "<h3>%s (%s)</h3>\n",
		html.EscapeString(GetLanguageName(st.Style.Language)),
		html.EscapeString(string(st.Style.Register)))
	fmt.Fprintf(b, "<p class=\"sentence\">%s</p>\n", html.EscapeString(st.SentenceText))

	b.WriteString("<ol class=\"alignment\">\n")
	for _, e := range st.Entries {
		classes := "entry"
		if e.Provenance == ProvenanceFallback {
			classes += " fallback"
		}
		if e.SyncMismatch {
			classes += " mismatch"
		}
		if e.AtomicUnit {
			classes += " atomic"
		}
		fmt.Fprintf(b, "<li class=%q data-confidence=\"%.2f\"><span class=\"pair\">%s</span>",
			classes, e.Confidence, html.EscapeString(e.DisplayFormat))
		if e.Note != "" {
			fmt.Fprintf(b, "<span class=\"note\">%s</span>", html.EscapeString(e.Note))
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ol>\n</section>\n")
}

// decorateHTML sets the document language and text direction from the mother
// tongue. Glosses are written in the mother tongue, so the document-level
// direction follows it even when every target section is LTR.
func decorateHTML(doc string, motherTongue Language) (string, error) {
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return doc, nil
	}

	tag := LanguageTag(motherTongue)
	htmlTag := parsed.Find("html")
	if htmlTag.Length() > 0 {
		htmlTag.SetAttr("lang", tag)
		htmlTag.SetAttr("dir", GetDirection(tag))
	}

	out, err := parsed.Html()
	if err != nil {
		return doc, nil
	}
	return out, nil
}
