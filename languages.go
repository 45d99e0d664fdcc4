package lexalign

import "strings"

// LanguageNames maps languages to human-readable names used in AI prompts.
var LanguageNames = map[Language]string{
	LangGerman:  "German",
	LangEnglish: "English",
	LangSpanish: "Spanish",
	LangOther:   "the user's native language",
}

// languageTags maps languages to BCP 47 tags used in rendered HTML.
var languageTags = map[Language]string{
	LangGerman:  "de",
	LangEnglish: "en",
	LangSpanish: "es",
}

// rtlTags contains base language tags written right-to-left. The supported
// target set is all LTR today; the gloss column can still carry RTL text
// when the mother tongue falls outside the supported set.
var rtlTags = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
}

// GetLanguageName returns the human-readable name for a language.
// Falls back to the raw value if not found.
func GetLanguageName(lang Language) string {
	if name, ok := LanguageNames[lang]; ok {
		return name
	}
	return string(lang)
}

// LanguageTag returns the BCP 47 tag for a language, or the raw value when
// no mapping exists.
func LanguageTag(lang Language) string {
	if tag, ok := languageTags[lang]; ok {
		return tag
	}
	return string(lang)
}

// GetDirection returns "rtl" for right-to-left language tags, "ltr" otherwise.
func GetDirection(tag string) string {
	base := strings.SplitN(tag, "-", 2)[0]
	base = strings.SplitN(base, "_", 2)[0]
	if rtlTags[strings.ToLower(base)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL reports whether the language tag is written right-to-left.
func IsRTL(tag string) bool {
	return GetDirection(tag) == "rtl"
}
