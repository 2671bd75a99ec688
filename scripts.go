package zedloc

import (
	"strings"
	"unicode"
)

// Script validation. A translation into a non-Latin-script language that
// contains no characters of that script is almost always an untranslated
// echo of the input, and must not be written into the map.

// scriptRanges maps a base language code to the unicode ranges its writing
// system uses. Languages not listed here are assumed Latin-script and skip
// the check.
var scriptRanges = map[string][]*unicode.RangeTable{
	"zh": {unicode.Han},
	"ja": {unicode.Han, unicode.Hiragana, unicode.Katakana},
	"ko": {unicode.Hangul},
	"ru": {unicode.Cyrillic},
	"uk": {unicode.Cyrillic},
	"bg": {unicode.Cyrillic},
	"sr": {unicode.Cyrillic},
	"be": {unicode.Cyrillic},
	"el": {unicode.Greek},
	"ar": {unicode.Arabic},
	"fa": {unicode.Arabic},
	"ur": {unicode.Arabic},
	"he": {unicode.Hebrew},
	"th": {unicode.Thai},
	"hi": {unicode.Devanagari},
	"ka": {unicode.Georgian},
	"hy": {unicode.Armenian},
}

// BaseLang strips a region subtag: "zh-CN" and "zh_TW" both yield "zh".
func BaseLang(lang string) string {
	base := strings.FieldsFunc(lang, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(base) == 0 {
		return ""
	}
	return strings.ToLower(base[0])
}

// ContainsScript reports whether text contains at least one character of
// the target language's writing system. For Latin-script or unknown
// languages any non-empty text passes.
func ContainsScript(text, lang string) bool {
	ranges, ok := scriptRanges[BaseLang(lang)]
	if !ok {
		return strings.TrimSpace(text) != ""
	}
	for _, r := range text {
		if unicode.IsOneOf(ranges, r) {
			return true
		}
	}
	return false
}

// LanguageNames maps common language codes to English names, used for
// prompt construction and log output.
var LanguageNames = map[string]string{
	"en": "English",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"ru": "Russian",
	"uk": "Ukrainian",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
	"pt": "Portuguese",
	"it": "Italian",
	"nl": "Dutch",
	"pl": "Polish",
	"tr": "Turkish",
	"ar": "Arabic",
	"he": "Hebrew",
	"th": "Thai",
	"hi": "Hindi",
	"vi": "Vietnamese",
	"id": "Indonesian",
}

// LanguageName returns the English name for a language code, falling back
// to the code itself.
func LanguageName(lang string) string {
	if name, ok := LanguageNames[BaseLang(lang)]; ok {
		return name
	}
	return lang
}
